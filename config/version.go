// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import "fmt"

const unknownVersion = "unknown"

// set with -ldflags "-X github.com/orbs-network/orbs-ballot-ledger/config.SemanticVersion=..."
var SemanticVersion string
var CommitVersion string

type Version struct {
	Semantic string `json:"semantic"`
	Commit   string `json:"commit"`
}

func GetVersion() Version {
	return Version{
		Semantic: orUnknown(SemanticVersion),
		Commit:   orUnknown(CommitVersion),
	}
}

func orUnknown(value string) string {
	if value == "" {
		return unknownVersion
	}
	return value
}

func (v Version) String() string {
	return fmt.Sprintf("orbs-ballot-ledger %s (commit %s)", v.Semantic, v.Commit)
}
