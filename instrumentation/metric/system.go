// Copyright 2019 the orbs-network-go authors
// This file is part of the orbs-network-go library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.
package metric

import (
	"context"
	"fmt"
	"github.com/c9s/goprocinfo/linux"
	"github.com/orbs-network/orbs-ballot-ledger/instrumentation/logfields"
	"github.com/orbs-network/orbs-ballot-ledger/synchronization"
	"github.com/orbs-network/scribe/log"
	"os"
	"runtime"
	"time"
)

const PAGESIZE = 4096

type systemMetrics struct {
	rssBytes       *Gauge
	cpuUtilization *Gauge
	goroutines     *Gauge
	heapAllocBytes *Gauge
	uptimeSeconds  *Gauge
}

type SystemReporter struct {
	*synchronization.PeriodicalTrigger
	metrics   systemMetrics
	startTime time.Time
}

func NewSystemReporter(ctx context.Context, metricFactory Factory, logger log.Logger, interval time.Duration) *SystemReporter {
	r := &SystemReporter{
		metrics: systemMetrics{
			rssBytes:       metricFactory.NewGauge("OS.Process.Memory.Bytes"),
			cpuUtilization: metricFactory.NewGauge("OS.Process.CPU.PerCent"),
			goroutines:     metricFactory.NewGauge("Runtime.Goroutines.Count"),
			heapAllocBytes: metricFactory.NewGauge("Runtime.HeapAlloc.Bytes"),
			uptimeSeconds:  metricFactory.NewGauge("Runtime.Uptime.Seconds"),
		},
		startTime: time.Now(),
	}

	r.PeriodicalTrigger = synchronization.NewPeriodicalTrigger(ctx, "system-metrics-reporter", interval, logfields.GovnrErrorer(logger), func() {
		r.reportSystemMetrics(logger)
	}, nil)

	return r
}

func (r *SystemReporter) reportSystemMetrics(logger log.Logger) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	r.metrics.heapAllocBytes.Update(int64(memStats.HeapAlloc))
	r.metrics.goroutines.Update(int64(runtime.NumGoroutine()))
	r.metrics.uptimeSeconds.Update(int64(time.Since(r.startTime).Seconds()))

	if _, err := os.Stat("/proc"); os.IsNotExist(err) {
		return
	}

	if rss, err := getRssMemory(); err != nil {
		logger.Error("failed to retrieve memory stats", log.Error(err))
	} else {
		r.metrics.rssBytes.Update(rss)
	}

	if cpu, err := getCPUUtilization(); err != nil {
		logger.Error("failed to retrieve cpu stats", log.Error(err))
	} else {
		r.metrics.cpuUtilization.Update(cpu)
	}
}

func getRssMemory() (int64, error) {
	statm, err := linux.ReadProcessStatm(fmt.Sprintf("/proc/%d/statm", os.Getpid()))
	if err != nil {
		return 0, err
	}

	return int64(statm.Resident * PAGESIZE), nil
}

func getCPUStats() (uint64, error) {
	cpu, err := linux.ReadStat("/proc/stat")
	if err != nil {
		return 0, err
	}
	e := cpu.CPUStatAll
	return e.User + e.Nice + e.System + e.Idle, nil
}

// procfs counters are cumulative since boot, so utilization is the delta of two samples
func getCPUUtilization() (int64, error) {
	pid := uint64(os.Getpid())

	firstSample, err := linux.ReadProcess(pid, "/proc")
	if err != nil {
		return 0, err
	}

	cpu1, err := getCPUStats()
	if err != nil {
		return 0, err
	}
	<-time.After(time.Second)
	secondSample, err := linux.ReadProcess(pid, "/proc")
	if err != nil {
		return 0, err
	}

	user := (int64(secondSample.Stat.Utime) + secondSample.Stat.Cutime) - (int64(firstSample.Stat.Utime) + firstSample.Stat.Cutime)
	system := (int64(secondSample.Stat.Stime) + secondSample.Stat.Cstime) - (int64(firstSample.Stat.Stime) + firstSample.Stat.Cstime)
	cpu2, err := getCPUStats()
	if err != nil {
		return 0, err
	}

	if cpu2 == cpu1 {
		return 0, nil
	}

	percent := (float64(user+system) / float64(cpu2-cpu1)) * 100

	return int64(percent), nil
}
