// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package events

import (
	"encoding/json"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot"
	"github.com/pkg/errors"
	"time"
)

type VoteCastEvent struct {
	ProjectId string `json:"project-id"`
	Index     uint32 `json:"vote-index"`
	Voter     string `json:"voter"`
	Timestamp uint64 `json:"timestamp"`
}

func NewVoteCastEvent(receipt *ballot.VoteReceipt, now time.Time) *VoteCastEvent {
	return &VoteCastEvent{
		ProjectId: receipt.ProjectId,
		Index:     receipt.Index,
		Voter:     receipt.Voter,
		Timestamp: uint64(now.UnixNano()),
	}
}

func (e *VoteCastEvent) Marshal() ([]byte, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal vote cast event %s:%d", e.ProjectId, e.Index)
	}
	return body, nil
}

func UnmarshalVoteCastEvent(body []byte) (*VoteCastEvent, error) {
	event := &VoteCastEvent{}
	if err := json.Unmarshal(body, event); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal vote cast event")
	}
	return event, nil
}
