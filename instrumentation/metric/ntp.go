// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package metric

import (
	"context"
	"github.com/beevik/ntp"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/logfields"
	"github.com/orbs-network/orbs-ballot-ledger/synchronization"
	"github.com/orbs-network/scribe/log"
	"time"
)

const NTP_QUERY_INTERVAL = 30 * time.Second

type ntpMetrics struct {
	drift *Gauge
}

type clockOffsetQuery func(address string) (time.Duration, error)

// Reports the offset of the local clock from an ntp server
type NtpReporter struct {
	*synchronization.PeriodicalTrigger
	metrics ntpMetrics
	address string
	query   clockOffsetQuery
	logger  log.Logger
}

func NewNtpReporter(ctx context.Context, metricFactory Factory, logger log.Logger, ntpServerAddress string) *NtpReporter {
	return newNtpReporter(ctx, metricFactory, logger, ntpServerAddress, NTP_QUERY_INTERVAL, queryClockOffset)
}

func newNtpReporter(ctx context.Context, metricFactory Factory, logger log.Logger, address string, interval time.Duration, query clockOffsetQuery) *NtpReporter {
	r := &NtpReporter{
		metrics: ntpMetrics{
			drift: metricFactory.NewGauge("OS.Time.Drift.Millis"),
		},
		address: address,
		query:   query,
		logger:  logger,
	}

	r.PeriodicalTrigger = synchronization.NewPeriodicalTrigger(ctx, "ntp-metric-reporter", interval, logfields.GovnrErrorer(logger), r.report, nil)
	return r
}

func (r *NtpReporter) report() {
	offset, err := r.query(r.address)
	if err != nil {
		r.logger.Info("could not query ntp server", log.String("ntp-server", r.address), log.Error(err))
		return
	}
	r.metrics.drift.Update(offset.Nanoseconds() / int64(time.Millisecond))
}

func queryClockOffset(address string) (time.Duration, error) {
	response, err := ntp.Query(address)
	if err != nil {
		return 0, err
	}
	return response.ClockOffset, nil
}
