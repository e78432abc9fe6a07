// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package jsonapi

const (
	RegisterProjectPath   = "/api/v1/register-project"
	VotePath              = "/api/v1/vote"
	GetTotalVoteCountPath = "/api/v1/get-total-vote-count"
	GetVoteReceiptPath    = "/api/v1/get-vote-receipt"
	VoteFeedPath          = "/api/v1/vote-feed"

	SignerPublicKeyHeader = "X-BALLOT-SIGNER-PUBLIC-KEY"
	SignatureHeader       = "X-BALLOT-SIGNATURE"
	ErrorDetailsHeader    = "X-BALLOT-ERROR-DETAILS"

	ContentType = "application/json; charset=utf-8"
)

type RegisterProjectRequest struct {
	ProjectId string `json:"project-id"`
}

type RegisterProjectResponse struct {
	ProjectId string `json:"project-id"`
}

// The signature covers the raw request body, timestamp is unix nanoseconds
type VoteRequest struct {
	ProjectId string `json:"project-id"`
	Timestamp uint64 `json:"timestamp"`
}

// Recorded is false when the vote slot was already consumed and nothing was written
type VoteResponse struct {
	ProjectId string `json:"project-id"`
	VoteIndex uint32 `json:"vote-index"`
	Voter     string `json:"voter"`
	Recorded  bool   `json:"recorded"`
}

type GetTotalVoteCountRequest struct {
	ProjectId string `json:"project-id"`
}

type GetTotalVoteCountResponse struct {
	ProjectId string `json:"project-id"`
	VoteCount uint32 `json:"vote-count"`
}

type GetVoteReceiptRequest struct {
	ProjectId string `json:"project-id"`
	VoteIndex uint32 `json:"vote-index"`
}

type GetVoteReceiptResponse struct {
	ProjectId string `json:"project-id"`
	VoteIndex uint32 `json:"vote-index"`
	Voter     string `json:"voter"`
}
