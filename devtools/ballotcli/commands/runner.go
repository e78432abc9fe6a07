// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package commands

import (
	"context"
	"flag"
	"fmt"
	"github.com/orbs-network/orbs-ballot-ledger/jsonapi"
	"github.com/pkg/errors"
	"time"
)

const DefaultHost = "http://localhost:8080"

type CommandRunner struct {
	timeout time.Duration
}

func NewCommandRunner(timeout time.Duration) *CommandRunner {
	return &CommandRunner{timeout: timeout}
}

func ShowUsage() string {
	return `
Usage:  $ ballot-cli keygen [-out=./.ballotKeys]
Usage:  $ ballot-cli register -project=<id> [-host=http://localhost:8080]
Usage:  $ ballot-cli vote -project=<id> [-keys=./.ballotKeys] [-host=http://localhost:8080]
Usage:  $ ballot-cli count -project=<id> [-host=http://localhost:8080]
Usage:  $ ballot-cli receipt -project=<id> -index=<n> [-host=http://localhost:8080]
`
}

type commonFlags struct {
	flagSet *flag.FlagSet
	host    *string
	project *string
}

func newCommonFlags(name string) *commonFlags {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	return &commonFlags{
		flagSet: flagSet,
		host:    flagSet.String("host", DefaultHost, "<http://...>"),
		project: flagSet.String("project", "", "project id"),
	}
}

func (f *commonFlags) parse(args []string) error {
	if err := f.flagSet.Parse(args); err != nil {
		return errors.Wrap(err, "flag issues")
	}
	if *f.project == "" {
		return errors.New("missing -project")
	}
	return nil
}

func (r *CommandRunner) withClient(host string, f func(ctx context.Context, client *jsonapi.BallotClient) (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	return f(ctx, jsonapi.NewBallotClient(host))
}

func (r *CommandRunner) HandleRegisterCommand(args []string) (string, error) {
	flags := newCommonFlags("register")
	if err := flags.parse(args); err != nil {
		return ShowUsage(), err
	}

	return r.withClient(*flags.host, func(ctx context.Context, client *jsonapi.BallotClient) (string, error) {
		if _, err := client.RegisterProject(ctx, *flags.project); err != nil {
			return "", err
		}
		return fmt.Sprintf("project %s registered\n", *flags.project), nil
	})
}

func (r *CommandRunner) HandleVoteCommand(args []string) (string, error) {
	flags := newCommonFlags("vote")
	keyFilePtr := flags.flagSet.String("keys", DefaultKeyFile, "path of the key file to sign with")
	if err := flags.parse(args); err != nil {
		return ShowUsage(), err
	}

	keyPair, err := readKeyFile(*keyFilePtr)
	if err != nil {
		return "", err
	}

	return r.withClient(*flags.host, func(ctx context.Context, client *jsonapi.BallotClient) (string, error) {
		response, err := client.Vote(ctx, keyPair, *flags.project)
		if err != nil {
			return "", err
		}
		if !response.Recorded {
			return fmt.Sprintf("vote on %s was not recorded, the slot was already taken\n", *flags.project), nil
		}
		return fmt.Sprintf("vote %d on %s recorded for voter %s\n", response.VoteIndex, *flags.project, response.Voter), nil
	})
}

func (r *CommandRunner) HandleCountCommand(args []string) (string, error) {
	flags := newCommonFlags("count")
	if err := flags.parse(args); err != nil {
		return ShowUsage(), err
	}

	return r.withClient(*flags.host, func(ctx context.Context, client *jsonapi.BallotClient) (string, error) {
		count, err := client.GetTotalVoteCount(ctx, *flags.project)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d\n", count), nil
	})
}

func (r *CommandRunner) HandleReceiptCommand(args []string) (string, error) {
	flags := newCommonFlags("receipt")
	indexPtr := flags.flagSet.Uint("index", 0, "vote index")
	if err := flags.parse(args); err != nil {
		return ShowUsage(), err
	}

	return r.withClient(*flags.host, func(ctx context.Context, client *jsonapi.BallotClient) (string, error) {
		receipt, err := client.GetVoteReceipt(ctx, *flags.project, uint32(*indexPtr))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s\n", receipt.Voter), nil
	})
}
