// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package instrumentation

import (
	"github.com/orbs-network/orbs-ballot-ledger/config"
	"github.com/orbs-network/orbs-ballot-ledger/services/ballot"
	"github.com/orbs-network/scribe/log"
	"os"
)

const BootstrapCrashLogPath = "./orbs-ballot-bootstrap.log"
const DefaultBulkSize = 100

func openLogFile(path string) *os.File {
	logFile, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		panic(err)
	}
	return logFile
}

// used until the node config is read, so a failure to parse it still leaves a trace
func GetBootstrapCrashLogger() log.Logger {
	return log.GetLogger().WithOutput(
		log.NewFormattingOutput(log.NewTruncatingFileWriter(openLogFile(BootstrapCrashLogPath)), log.NewHumanReadableFormatter()),
		log.NewFormattingOutput(os.Stdout, log.NewHumanReadableFormatter()),
	)
}

// Without full logging only errors and the ballot store's own records are kept,
// so every registration and cast vote still leaves a line in the node log.
func GetLogger(path string, silent bool, cfg config.LoggerConfig) log.Logger {
	outputs := make([]log.Output, 0, 3)

	if !silent {
		outputs = append(outputs, log.NewFormattingOutput(os.Stdout, log.NewJsonFormatter()))
	}

	if endpoint := cfg.LoggerHttpEndpoint(); endpoint != "" {
		bulkSize := int(cfg.LoggerBulkSize())
		if bulkSize == 0 {
			bulkSize = DefaultBulkSize
		}
		outputs = append(outputs, log.NewBulkOutput(log.NewHttpWriter(endpoint), log.NewJsonFormatter().WithTimestampColumn("@timestamp"), bulkSize))
	}

	if path != "" {
		fileWriter := log.NewTruncatingFileWriter(openLogFile(path), cfg.LoggerFileTruncationInterval())
		outputs = append(outputs, log.NewFormattingOutput(fileWriter, log.NewJsonFormatter()))
	}

	essentialOnly := log.NewConditionalFilter(!cfg.LoggerFullLog(), log.Or(log.OnlyErrors(), log.MatchField(ballot.LogTag)))
	return log.GetLogger().WithOutput(outputs...).WithFilters(essentialOnly)
}
