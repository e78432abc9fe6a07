// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package with

import (
	"github.com/orbs-network/scribe/log"
	"testing"
)

// Logger writes to the test's own output, tagged with the test name.
// An error logged by the code under test fails the test unless it was explicitly allowed.
type LoggingHarness struct {
	Logger     log.Logger
	testOutput *log.TestOutput
	T          testing.TB
}

// for tests that provoke a failure on purpose, e.g. a failing store or vote cast handler
func (h *LoggingHarness) AllowErrorsMatching(pattern string) {
	h.testOutput.AllowErrorsMatching(pattern)
}

func Logging(tb testing.TB, f func(harness *LoggingHarness)) {
	testOutput := log.NewTestOutput(tb, log.NewHumanReadableFormatter())
	h := &LoggingHarness{
		Logger:     log.GetLogger(log.String("test", tb.Name())).WithOutput(testOutput),
		testOutput: testOutput,
		T:          tb,
	}
	defer testOutput.TestTerminated()

	f(h)

	if testOutput.HasErrors() {
		tb.Fatal("test logged unexpected errors")
	}
}
