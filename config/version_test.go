// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestGetVersion_ReportsUnknownWithoutLinkerFlags(t *testing.T) {
	require.Equal(t, Version{Semantic: "unknown", Commit: "unknown"}, GetVersion())
}

func TestGetVersion_UsesLinkedValues(t *testing.T) {
	SemanticVersion, CommitVersion = "v1.2.0", "abc123"
	defer func() { SemanticVersion, CommitVersion = "", "" }()

	require.Equal(t, "orbs-ballot-ledger v1.2.0 (commit abc123)", GetVersion().String())
}
