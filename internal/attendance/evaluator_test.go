package attendance_test

import (
	"testing"
	"time"

	"tireops/internal/attendance"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	cfg := attendance.Config{
		GraceMinutes:        5,
		LateBufferMinutes:   10,
		NoShowCutoffMinutes: 120,
	}
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	shift := 8 * 60 // 08:00

	at := func(hh, mm int) *time.Time {
		ts := time.Date(2026, 9, 1, hh, mm, 0, 0, time.UTC)
		return &ts
	}

	t.Run("early arrival is on time", func(t *testing.T) {
		eval := attendance.Evaluate(cfg, date, shift, at(7, 45), time.Now())
		assert.Equal(t, attendance.StatusOnTime, eval.Status)
		assert.Zero(t, eval.MinutesLate)
	})

	t.Run("exactly at grace boundary is on time", func(t *testing.T) {
		eval := attendance.Evaluate(cfg, date, shift, at(8, 5), time.Now())
		assert.Equal(t, attendance.StatusOnTime, eval.Status)
	})

	t.Run("inside buffer is grace period", func(t *testing.T) {
		eval := attendance.Evaluate(cfg, date, shift, at(8, 6), time.Now())
		assert.Equal(t, attendance.StatusGracePeriod, eval.Status)

		eval = attendance.Evaluate(cfg, date, shift, at(8, 15), time.Now())
		assert.Equal(t, attendance.StatusGracePeriod, eval.Status)
	})

	t.Run("beyond buffer is late with minutes recorded", func(t *testing.T) {
		eval := attendance.Evaluate(cfg, date, shift, at(8, 42), time.Now())
		assert.Equal(t, attendance.StatusLate, eval.Status)
		assert.Equal(t, 42, eval.MinutesLate)
	})

	t.Run("no clock in before cutoff is pending", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
		eval := attendance.Evaluate(cfg, date, shift, nil, now)
		assert.Equal(t, attendance.StatusPending, eval.Status)
	})

	t.Run("no clock in past cutoff is no call no show", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
		eval := attendance.Evaluate(cfg, date, shift, nil, now)
		assert.Equal(t, attendance.StatusNoCallNoShow, eval.Status)
	})

	t.Run("thresholds come from config not constants", func(t *testing.T) {
		tight := attendance.Config{GraceMinutes: 0, LateBufferMinutes: 0, NoShowCutoffMinutes: 30}
		eval := attendance.Evaluate(tight, date, shift, at(8, 1), time.Now())
		assert.Equal(t, attendance.StatusLate, eval.Status)
		assert.Equal(t, 1, eval.MinutesLate)
	})
}
