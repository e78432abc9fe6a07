// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package supervised

import (
	"context"
	"github.com/orbs-network/scribe/log"
	"github.com/stretchr/testify/require"
	"syscall"
	"testing"
	"time"
)

type fakeShutdowner struct {
	shutdown chan struct{}
	deadline bool
}

func (f *fakeShutdowner) GracefulShutdown(shutdownContext context.Context) {
	_, f.deadline = shutdownContext.Deadline()
	close(f.shutdown)
}

func (f *fakeShutdowner) WaitUntilShutdown(shutdownContext context.Context) {
	select {
	case <-f.shutdown:
	case <-shutdownContext.Done():
	}
}

func TestShutdownGracefully_PassesContextWithDeadline(t *testing.T) {
	s := &fakeShutdowner{shutdown: make(chan struct{})}
	ShutdownGracefully(s, time.Second)

	require.True(t, s.deadline, "shutdown context should carry a deadline")
}

func TestOSShutdownListener_ShutsDownOnSignal(t *testing.T) {
	s := &fakeShutdowner{shutdown: make(chan struct{})}
	listener := NewShutdownListener(log.DefaultTestingLogger(t), s, time.Second)
	listener.ListenToOSShutdownSignal()

	listener.signals <- syscall.SIGTERM

	select {
	case <-s.shutdown:
	case <-time.After(time.Second):
		t.Fatal("shutdowner was not invoked after signal")
	}
}
