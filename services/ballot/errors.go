// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package ballot

import "github.com/pkg/errors"

var (
	ErrDuplicateProject   = errors.New("project is already registered")
	ErrUnknownProject     = errors.New("project is not registered")
	ErrMissingStoreHandle = errors.New("project dictionary is missing")

	ErrAlreadyInitialized = errors.New("project dictionary is already initialized")
	ErrInvalidProjectId   = errors.New("project id must not be empty")
	ErrInvalidVoter       = errors.New("voter identity must not be empty")
	ErrReceiptNotFound    = errors.New("vote receipt not found")
	ErrCorruptEntry       = errors.New("stored entry has an unexpected encoding")
	ErrVoteCountOverflow  = errors.New("vote count reached its maximum")
)
