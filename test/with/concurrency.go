// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package with

import (
	"context"
	"github.com/orbs-network/govnr"
	"testing"
	"time"
)

const shutdownTimeout = 2 * time.Second

type ConcurrencyHarness struct {
	*LoggingHarness
	govnr.TreeSupervisor
}

// Runs f with a cancellable context and waits for everything supervised by the harness to shut down once f returns
func Concurrency(tb testing.TB, f func(ctx context.Context, harness *ConcurrencyHarness)) {
	Logging(tb, func(parent *LoggingHarness) {
		ctx, cancel := context.WithCancel(context.Background())
		h := &ConcurrencyHarness{LoggingHarness: parent}

		func() {
			defer cancel()
			f(ctx, h)
		}()

		waitCtx, waitCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer waitCancel()
		h.WaitUntilShutdown(waitCtx)
		if waitCtx.Err() == context.DeadlineExceeded {
			tb.Error("timed out waiting for supervised goroutines to shut down")
		}
	})
}
