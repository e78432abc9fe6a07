// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package ballot

import (
	"encoding/binary"
	"github.com/pkg/errors"
	"strconv"
)

const voteCountSizeBytes = 4

// "a:0" is both the receipt of vote 0 on project "a" and a valid project id, the two share one key space
func receiptKey(projectId string, index uint32) string {
	return projectId + ":" + strconv.FormatUint(uint64(index), 10)
}

func encodeVoteCount(count uint32) []byte {
	value := make([]byte, voteCountSizeBytes)
	binary.BigEndian.PutUint32(value, count)
	return value
}

// an empty value is an entry that exists but was never set, it reads as unregistered
func decodeVoteCount(projectId string, value []byte) (count uint32, registered bool, err error) {
	switch len(value) {
	case 0:
		return 0, false, nil
	case voteCountSizeBytes:
		return binary.BigEndian.Uint32(value), true, nil
	default:
		return 0, false, errors.Wrapf(ErrCorruptEntry, "vote count of project %s is %d bytes long", projectId, len(value))
	}
}
