// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package ballot

import (
	"context"
	"fmt"
)

type VoteReceipt struct {
	ProjectId string
	Index     uint32
	Voter     string
}

func (r *VoteReceipt) String() string {
	return fmt.Sprintf("%s:%d by %s", r.ProjectId, r.Index, r.Voter)
}

// Called after a vote is committed. An error is logged and does not undo the vote.
type VoteCastHandler interface {
	HandleVoteCast(ctx context.Context, receipt *VoteReceipt) error
}
