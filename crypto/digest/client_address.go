// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package digest

import (
	"encoding/hex"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/hash"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/keys"
	"github.com/pkg/errors"
)

const (
	CLIENT_ADDRESS_SIZE_BYTES    = 20
	CLIENT_ADDRESS_SHA256_OFFSET = hash.SHA256_HASH_SIZE_BYTES - CLIENT_ADDRESS_SIZE_BYTES
)

type ClientAddress []byte

// lowercase hex, this is the voter identity recorded in vote receipts
func (a ClientAddress) String() string {
	return hex.EncodeToString(a)
}

func CalcClientAddressOfEd25519PublicKey(publicKey keys.Ed25519PublicKey) (ClientAddress, error) {
	if len(publicKey) != keys.ED25519_PUBLIC_KEY_SIZE_BYTES {
		return nil, errors.New("request is not signed by a valid signer")
	}
	res := hash.CalcSha256(publicKey)[CLIENT_ADDRESS_SHA256_OFFSET:]
	return ClientAddress(res), nil
}

func VoterIdentityOf(publicKey keys.Ed25519PublicKey) (string, error) {
	address, err := CalcClientAddressOfEd25519PublicKey(publicKey)
	if err != nil {
		return "", err
	}
	return address.String(), nil
}
