package utils

import (
	"sync"
	"time"
)

type ReporterState struct {
	Count       int
	CountInc    int
	ElapsedTime float64
}

// Reporter rate-limits throughput log lines: Add reports once the count grew
// by the threshold or the interval passed since the last report.
type Reporter struct {
	mu sync.Mutex

	reportCountThreshold int
	reportInterval       time.Duration
	reportFunc           func(ReporterState) string
	count                int

	lastReportTime  time.Time
	lastReportCount int
	now             func() time.Time
}

func NewReporter(reportCountThreshold int, reportInterval time.Duration, reportFunc func(ReporterState) string) *Reporter {
	return &Reporter{
		reportCountThreshold: reportCountThreshold,
		reportInterval:       reportInterval,
		reportFunc:           reportFunc,
		lastReportTime:       time.Now(),
		now:                  time.Now,
	}
}

func (r *Reporter) Add(count int) (bool, string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.count += count

	countIncrement := r.count - r.lastReportCount
	elapsedTime := r.now().Sub(r.lastReportTime).Seconds()
	if (r.reportCountThreshold != 0 && countIncrement >= r.reportCountThreshold) || elapsedTime >= r.reportInterval.Seconds() {
		return true, r.flush(countIncrement, elapsedTime)
	}
	return false, ""
}

// Report forces a report of whatever accumulated since the last one.
func (r *Reporter) Report() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.flush(r.count-r.lastReportCount, r.now().Sub(r.lastReportTime).Seconds())
}

func (r *Reporter) flush(countIncrement int, elapsedTime float64) string {
	reportStr := r.reportFunc(ReporterState{
		Count:       r.count,
		CountInc:    countIncrement,
		ElapsedTime: elapsedTime,
	})
	r.lastReportTime = r.now()
	r.lastReportCount = r.count
	return reportStr
}
