// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package signature

import (
	"encoding/hex"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/keys"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ed25519"
)

const (
	ED25519_SIGNATURE_SIZE_BYTES = 64
)

type Ed25519Sig []byte

func (s Ed25519Sig) String() string {
	return hex.EncodeToString(s)
}

func SignEd25519(privateKey keys.Ed25519PrivateKey, data []byte) (Ed25519Sig, error) {
	if len(privateKey) != keys.ED25519_PRIVATE_KEY_SIZE_BYTES {
		return nil, errors.New("cannot sign with ed25519, private key invalid")
	}
	return ed25519.Sign(ed25519.PrivateKey(privateKey), data), nil
}

func VerifyEd25519(publicKey keys.Ed25519PublicKey, data []byte, sig Ed25519Sig) bool {
	if len(publicKey) != keys.ED25519_PUBLIC_KEY_SIZE_BYTES || len(sig) != ED25519_SIGNATURE_SIZE_BYTES {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), data, sig)
}
