// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package signature

import (
	"github.com/orbs-network/orbs-ballot-ledger/crypto/keys"
	"github.com/stretchr/testify/require"
	"testing"
)

var someDataToSign = []byte("this is what we want to sign")

func TestSignEd25519(t *testing.T) {
	kp := keys.Ed25519KeyPairForTests(1)

	sig, err := SignEd25519(kp.PrivateKey(), someDataToSign)
	require.NoError(t, err)
	require.Len(t, sig, ED25519_SIGNATURE_SIZE_BYTES)
	require.True(t, VerifyEd25519(kp.PublicKey(), someDataToSign, sig), "verification failed")
}

func TestSignEd25519InvalidPrivateKey(t *testing.T) {
	_, err := SignEd25519([]byte{0}, someDataToSign)
	require.Error(t, err, "sign succeeded with invalid private key")
}

func TestVerifyEd25519_FailsForOtherSigner(t *testing.T) {
	sig, err := SignEd25519(keys.Ed25519KeyPairForTests(1).PrivateKey(), someDataToSign)
	require.NoError(t, err)

	require.False(t, VerifyEd25519(keys.Ed25519KeyPairForTests(2).PublicKey(), someDataToSign, sig))
}

func TestVerifyEd25519_FailsForTamperedData(t *testing.T) {
	kp := keys.Ed25519KeyPairForTests(1)
	sig, err := SignEd25519(kp.PrivateKey(), someDataToSign)
	require.NoError(t, err)

	require.False(t, VerifyEd25519(kp.PublicKey(), []byte("this is not what we signed"), sig))
}

func TestVerifyEd25519InvalidPublicKey(t *testing.T) {
	sig, err := SignEd25519(keys.Ed25519KeyPairForTests(1).PrivateKey(), someDataToSign)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		require.False(t, VerifyEd25519([]byte{0}, someDataToSign, sig), "verification succeeded without public key")
	})
	require.NotPanics(t, func() {
		require.False(t, VerifyEd25519(keys.Ed25519KeyPairForTests(1).PublicKey(), someDataToSign, []byte{1}))
	})
}

func BenchmarkSignAndVerifyEd25519(b *testing.B) {
	kp := keys.Ed25519KeyPairForTests(1)
	for i := 0; i < b.N; i++ {
		if sig, err := SignEd25519(kp.PrivateKey(), someDataToSign); err != nil {
			b.Error(err)
		} else if !VerifyEd25519(kp.PublicKey(), someDataToSign, sig) {
			b.Error("verification failed")
		}
	}
}
