// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package httpserver

import (
	"github.com/orbs-network/orbs-ballot-ledger/crypto/digest"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/encoding"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/hash"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/keys"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/signature"
	"github.com/orbs-network/orbs-ballot-ledger/jsonapi"
	"github.com/orbs-network/scribe/log"
	"net/http"
	"time"
)

type signedRequest struct {
	voter  string
	digest hash.Sha256
}

// Resolves the voter identity of the key that signed body
func verifySignedRequest(r *http.Request, body []byte) (*signedRequest, *httpErr) {
	publicKey, err := encoding.DecodeFixedHex(r.Header.Get(jsonapi.SignerPublicKeyHeader), keys.ED25519_PUBLIC_KEY_SIZE_BYTES)
	if err != nil {
		return nil, &httpErr{http.StatusUnauthorized, log.Error(err), "missing or malformed signer public key"}
	}

	sig, err := encoding.DecodeFixedHex(r.Header.Get(jsonapi.SignatureHeader), signature.ED25519_SIGNATURE_SIZE_BYTES)
	if err != nil {
		return nil, &httpErr{http.StatusUnauthorized, log.Error(err), "missing or malformed signature"}
	}

	if !signature.VerifyEd25519(keys.Ed25519PublicKey(publicKey), body, signature.Ed25519Sig(sig)) {
		return nil, &httpErr{http.StatusUnauthorized, log.String("signer", keys.Ed25519PublicKey(publicKey).String()), "signature does not match request body"}
	}

	voter, err := digest.VoterIdentityOf(keys.Ed25519PublicKey(publicKey))
	if err != nil {
		return nil, &httpErr{http.StatusUnauthorized, log.Error(err), "request is not signed by a valid signer"}
	}
	return &signedRequest{voter: voter, digest: signedRequestDigest(publicKey, body)}, nil
}

func verifyNotExpired(timestamp uint64, now time.Time, window time.Duration) *httpErr {
	requested := time.Unix(0, int64(timestamp))
	drift := now.Sub(requested)
	if drift < 0 {
		drift = -drift
	}
	if drift > window {
		return &httpErr{http.StatusUnauthorized, log.Stringable("drift", drift), "vote request timestamp is outside the expiration window"}
	}
	return nil
}
