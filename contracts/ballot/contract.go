// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package ballot_contract

import (
	"context"
	"encoding/hex"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot"
	"github.com/orbs-network/orbs-contract-sdk/go/sdk/v1"
	"github.com/orbs-network/orbs-contract-sdk/go/sdk/v1/address"
	"github.com/orbs-network/orbs-contract-sdk/go/sdk/v1/events"
)

const CONTRACT_NAME = "_Ballot"
const PROJECT_DICTIONARY_NAMESPACE = "project_dictionary"

var PUBLIC = sdk.Export(registerProject, vote, getTotalVoteCount, getVoteReceipt)
var SYSTEM = sdk.Export(_init)
var EVENTS = sdk.Export(VoteCastEvent)

func VoteCastEvent(projectId string, index uint32, voter string) {}

type eventEmitter struct{}

func (e *eventEmitter) HandleVoteCast(ctx context.Context, receipt *ballot.VoteReceipt) error {
	events.EmitEvent(VoteCastEvent, receipt.ProjectId, receipt.Index, receipt.Voter)
	return nil
}

// every call runs in its own transaction, so the store is built fresh over the call's state
func _store() *ballot.Service {
	store := ballot.NewEmbeddedBallotStore(PROJECT_DICTIONARY_NAMESPACE, newStatePersistence())
	store.RegisterVoteCastHandler(&eventEmitter{})
	return store
}

func _init() {
	if err := _store().Initialize(context.Background()); err != nil {
		panic(err)
	}
}

func registerProject(projectId string) {
	if err := _store().RegisterProject(context.Background(), projectId); err != nil {
		panic(err)
	}
}

// returns the index of the new vote and 1, or 0 and 0 when the slot was already consumed
func vote(projectId string) (index uint32, recorded uint32) {
	voter := hex.EncodeToString(address.GetSignerAddress())
	receipt, err := _store().CastVote(context.Background(), projectId, voter)
	if err != nil {
		panic(err)
	}
	if receipt == nil {
		return 0, 0
	}
	return receipt.Index, 1
}

func getTotalVoteCount(projectId string) uint32 {
	count, err := _store().GetTotalVoteCount(context.Background(), projectId)
	if err != nil {
		panic(err)
	}
	return count
}

func getVoteReceipt(projectId string, index uint32) string {
	receipt, err := _store().GetVoteReceipt(context.Background(), projectId, index)
	if err != nil {
		panic(err)
	}
	return receipt.Voter
}
