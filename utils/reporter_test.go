package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestReporter(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewReporter(10, time.Minute, func(rs ReporterState) string {
		return fmt.Sprintf("%d/%d in %.0fs", rs.CountInc, rs.Count, rs.ElapsedTime)
	})
	r.now = func() time.Time { return now }
	r.lastReportTime = now

	ok, _ := r.Add(4)
	assert.Equal(t, ok, false)

	ok, msg := r.Add(6)
	assert.Equal(t, ok, true)
	assert.Equal(t, msg, "10/10 in 0s")

	now = now.Add(2 * time.Minute)
	ok, msg = r.Add(1)
	assert.Equal(t, ok, true)
	assert.Equal(t, msg, "1/11 in 120s")

	now = now.Add(5 * time.Second)
	assert.Equal(t, r.Report(), "0/11 in 5s")
}
