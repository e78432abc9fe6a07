// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package jsonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/encoding"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/keys"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/signature"
	"github.com/pkg/errors"
	"io/ioutil"
	"net/http"
	"strings"
	"time"
)

const DefaultRequestTimeout = 10 * time.Second

// StatusError carries the http status and the server's error details
type StatusError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *StatusError) Error() string {
	if e.Details != "" {
		return http.StatusText(e.StatusCode) + ": " + e.Details
	}
	return http.StatusText(e.StatusCode) + ": " + e.Message
}

func StatusCodeOf(err error) int {
	if statusErr, ok := errors.Cause(err).(*StatusError); ok {
		return statusErr.StatusCode
	}
	return 0
}

type BallotClient struct {
	endpoint   string
	httpClient *http.Client
	clock      func() time.Time
}

func NewBallotClient(endpoint string) *BallotClient {
	return &BallotClient{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{Timeout: DefaultRequestTimeout},
		clock:      time.Now,
	}
}

func (c *BallotClient) RegisterProject(ctx context.Context, projectId string) (*RegisterProjectResponse, error) {
	response := &RegisterProjectResponse{}
	if err := c.post(ctx, RegisterProjectPath, &RegisterProjectRequest{ProjectId: projectId}, nil, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *BallotClient) Vote(ctx context.Context, keyPair *keys.Ed25519KeyPair, projectId string) (*VoteResponse, error) {
	body, err := json.Marshal(&VoteRequest{ProjectId: projectId, Timestamp: uint64(c.clock().UnixNano())})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode vote request")
	}

	sig, err := signature.SignEd25519(keyPair.PrivateKey(), body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign vote request")
	}

	headers := map[string]string{
		SignerPublicKeyHeader: encoding.EncodeHex(keyPair.PublicKey()),
		SignatureHeader:       encoding.EncodeHex(sig),
	}

	response := &VoteResponse{}
	if err := c.postRaw(ctx, VotePath, body, headers, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *BallotClient) GetTotalVoteCount(ctx context.Context, projectId string) (uint32, error) {
	response := &GetTotalVoteCountResponse{}
	if err := c.post(ctx, GetTotalVoteCountPath, &GetTotalVoteCountRequest{ProjectId: projectId}, nil, response); err != nil {
		return 0, err
	}
	return response.VoteCount, nil
}

func (c *BallotClient) GetVoteReceipt(ctx context.Context, projectId string, index uint32) (*GetVoteReceiptResponse, error) {
	response := &GetVoteReceiptResponse{}
	if err := c.post(ctx, GetVoteReceiptPath, &GetVoteReceiptRequest{ProjectId: projectId, VoteIndex: index}, nil, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (c *BallotClient) post(ctx context.Context, path string, request interface{}, headers map[string]string, response interface{}) error {
	body, err := json.Marshal(request)
	if err != nil {
		return errors.Wrapf(err, "failed to encode request to %s", path)
	}
	return c.postRaw(ctx, path, body, headers, response)
}

func (c *BallotClient) postRaw(ctx context.Context, path string, body []byte, headers map[string]string, response interface{}) error {
	req, err := http.NewRequest(http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return errors.Wrapf(err, "failed to create request to %s", path)
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", ContentType)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "request to %s failed", path)
	}
	defer res.Body.Close()

	payload, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "failed to read response from %s", path)
	}

	if res.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: res.StatusCode, Message: string(payload), Details: res.Header.Get(ErrorDetailsHeader)}
	}

	if err := json.Unmarshal(payload, response); err != nil {
		return errors.Wrapf(err, "failed to decode response from %s", path)
	}
	return nil
}
