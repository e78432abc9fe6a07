// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package main

import (
	"fmt"
	"github.com/orbs-network/orbs-ballot-ledger/devtools/ballotcli/commands"
	"os"
	"time"
)

// ballot-cli keygen [-out=<path>]
// ballot-cli register|vote|count|receipt -project=<id> [-host=<http://....>]

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Welcome to ballot-cli")
		fmt.Println(commands.ShowUsage())
		os.Exit(0)
	}

	runner := commands.NewCommandRunner(30 * time.Second)

	var output string
	var err error

	switch os.Args[1] {
	case "keygen":
		output, err = runner.HandleKeygenCommand(os.Args[2:])
	case "register":
		output, err = runner.HandleRegisterCommand(os.Args[2:])
	case "vote":
		output, err = runner.HandleVoteCommand(os.Args[2:])
	case "count":
		output, err = runner.HandleCountCommand(os.Args[2:])
	case "receipt":
		output, err = runner.HandleReceiptCommand(os.Args[2:])
	default:
		output = commands.ShowUsage()
		err = fmt.Errorf("unknown command %s", os.Args[1])
	}

	fmt.Print(output)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
