// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package encoding

import (
	"encoding/hex"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/hash"
	"github.com/pkg/errors"
	"strings"
)

// mixed-case checksum in the EIP-55 manner, hashed with sha256
func EncodeHex(data []byte) string {
	result := []byte(hex.EncodeToString(data))
	hashed := hash.CalcSha256(data)

	for i := 0; i < len(result); i++ {
		hashByte := hashed[(i/2)%hash.SHA256_HASH_SIZE_BYTES]
		if i%2 == 0 {
			hashByte = hashByte >> 4
		} else {
			hashByte &= 0xf
		}

		if result[i] > '9' && hashByte > 7 {
			result[i] -= 32
		}
	}

	return "0x" + string(result)
}

func DecodeHex(str string) ([]byte, error) {
	str = strings.TrimPrefix(str, "0x")

	data, err := hex.DecodeString(str)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hex string")
	}

	encoded := EncodeHex(data)
	if encoded[2:] != str {
		// uniform case input carries no checksum
		if strings.ToUpper(str) == str || strings.ToLower(str) == str {
			return data, nil
		}
		return data, errors.New("invalid checksum")
	}

	return data, nil
}

// decodes and requires an exact length, used for keys and signatures arriving in headers
func DecodeFixedHex(str string, size int) ([]byte, error) {
	data, err := DecodeHex(str)
	if err != nil {
		return nil, err
	}
	if len(data) != size {
		return nil, errors.Errorf("expected %d bytes, got %d", size, len(data))
	}
	return data, nil
}
