// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package keys

import (
	"encoding/hex"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ed25519"
)

const (
	ED25519_PUBLIC_KEY_SIZE_BYTES  = 32
	ED25519_PRIVATE_KEY_SIZE_BYTES = 64
	ED25519_SEED_SIZE_BYTES        = 32
)

type Ed25519PublicKey []byte
type Ed25519PrivateKey []byte

func (k Ed25519PublicKey) String() string {
	return hex.EncodeToString(k)
}

type Ed25519KeyPair struct {
	publicKey  Ed25519PublicKey
	privateKey Ed25519PrivateKey
}

func NewEd25519KeyPair(publicKey Ed25519PublicKey, privateKey Ed25519PrivateKey) *Ed25519KeyPair {
	return &Ed25519KeyPair{publicKey, privateKey}
}

func (k *Ed25519KeyPair) PublicKey() Ed25519PublicKey {
	return k.publicKey
}

func (k *Ed25519KeyPair) PrivateKey() Ed25519PrivateKey {
	return k.privateKey
}

func (k *Ed25519KeyPair) PublicKeyHex() string {
	return hex.EncodeToString(k.publicKey)
}

func (k *Ed25519KeyPair) PrivateKeyHex() string {
	return hex.EncodeToString(k.privateKey)
}

func GenerateEd25519Key() (*Ed25519KeyPair, error) {
	if pub, pri, err := ed25519.GenerateKey(nil); err != nil {
		return nil, errors.Wrapf(err, "cannot create new signature from random keys")
	} else {
		return NewEd25519KeyPair(Ed25519PublicKey(pub), Ed25519PrivateKey(pri)), nil
	}
}

// deterministic key pair, used for test fixtures
func Ed25519KeyPairFromSeed(seed []byte) (*Ed25519KeyPair, error) {
	if len(seed) != ED25519_SEED_SIZE_BYTES {
		return nil, errors.Errorf("ed25519 seed must be %d bytes, got %d", ED25519_SEED_SIZE_BYTES, len(seed))
	}
	pri := ed25519.NewKeyFromSeed(seed)
	pub := pri.Public().(ed25519.PublicKey)
	return NewEd25519KeyPair(Ed25519PublicKey(pub), Ed25519PrivateKey(pri)), nil
}

func Ed25519KeyPairFromHex(privateKeyHex string) (*Ed25519KeyPair, error) {
	pri, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, errors.Wrap(err, "private key is not valid hex")
	}
	if len(pri) != ED25519_PRIVATE_KEY_SIZE_BYTES {
		return nil, errors.Errorf("ed25519 private key must be %d bytes, got %d", ED25519_PRIVATE_KEY_SIZE_BYTES, len(pri))
	}
	pub := ed25519.PrivateKey(pri).Public().(ed25519.PublicKey)
	return NewEd25519KeyPair(Ed25519PublicKey(pub), Ed25519PrivateKey(pri)), nil
}

// n-th fixed key pair for tests
func Ed25519KeyPairForTests(n int) *Ed25519KeyPair {
	seed := make([]byte, ED25519_SEED_SIZE_BYTES)
	seed[0] = byte(n)
	seed[1] = byte(n >> 8)
	kp, err := Ed25519KeyPairFromSeed(seed)
	if err != nil {
		panic(err)
	}
	return kp
}
