// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package commands

import (
	"flag"
	"fmt"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/digest"
	"github.com/orbs-network/orbs-ballot-ledger/crypto/keys"
	"github.com/orbs-network/orbs-client-sdk-go/orbs"
	"github.com/pkg/errors"
	"io/ioutil"
	"strings"
)

const DefaultKeyFile = "./.ballotKeys"

// key file layout: public key hex on the first line, private key hex on the second
func (r *CommandRunner) HandleKeygenCommand(args []string) (string, error) {
	flagSet := flag.NewFlagSet("keygen", flag.ContinueOnError)
	outPtr := flagSet.String("out", DefaultKeyFile, "path of the key file to write")
	if err := flagSet.Parse(args); err != nil {
		return "", errors.Wrap(err, "flag issues")
	}

	account, err := orbs.CreateAccount()
	if err != nil {
		return "", errors.Wrap(err, "could not create account")
	}

	keyPair := keys.NewEd25519KeyPair(keys.Ed25519PublicKey(account.PublicKey), keys.Ed25519PrivateKey(account.PrivateKey))
	voter, err := digest.VoterIdentityOf(keyPair.PublicKey())
	if err != nil {
		return "", err
	}

	content := keyPair.PublicKeyHex() + "\n" + keyPair.PrivateKeyHex() + "\n"
	if err := ioutil.WriteFile(*outPtr, []byte(content), 0600); err != nil {
		return "", errors.Wrapf(err, "could not write key file %s", *outPtr)
	}

	return fmt.Sprintf("key pair written to %s\nvoter: %s\n", *outPtr, voter), nil
}

func readKeyFile(path string) (*keys.Ed25519KeyPair, error) {
	keyFileBytes, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read key file %s, run keygen first", path)
	}

	lines := strings.Split(strings.TrimSpace(string(keyFileBytes)), "\n")
	if len(lines) != 2 {
		return nil, errors.Errorf("key file %s must hold exactly two lines", path)
	}

	keyPair, err := keys.Ed25519KeyPairFromHex(strings.TrimSpace(lines[1]))
	if err != nil {
		return nil, errors.Wrapf(err, "key file %s", path)
	}

	if keyPair.PublicKeyHex() != strings.TrimSpace(lines[0]) {
		return nil, errors.Errorf("public key in %s does not match its private key", path)
	}
	return keyPair, nil
}
