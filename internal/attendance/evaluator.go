package attendance

import "time"

// Config memuat ambang evaluasi dalam menit. Nilainya urusan bisnis dan
// dimuat dari environment oleh registry, bukan konstanta di logika.
type Config struct {
	GraceMinutes       int
	LateBufferMinutes  int
	NoShowCutoffMinutes int
}

func DefaultConfig() Config {
	return Config{
		GraceMinutes:        5,
		LateBufferMinutes:   10,
		NoShowCutoffMinutes: 120,
	}
}

type Evaluation struct {
	Status      string
	MinutesLate int
}

// Evaluate menilai satu orang untuk satu tanggal terhadap clock-in
// paling awal. scheduledStartMinutes adalah menit sejak tengah malam
// pada tanggal tersebut (UTC). earliestClockIn nil berarti belum atau
// tidak pernah clock in hari itu.
func Evaluate(cfg Config, date time.Time, scheduledStartMinutes int, earliestClockIn *time.Time, now time.Time) Evaluation {
	sched := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC).
		Add(time.Duration(scheduledStartMinutes) * time.Minute)

	if earliestClockIn == nil {
		if now.Sub(sched) >= time.Duration(cfg.NoShowCutoffMinutes)*time.Minute {
			return Evaluation{Status: StatusNoCallNoShow}
		}
		return Evaluation{Status: StatusPending}
	}

	lateBy := int(earliestClockIn.Sub(sched) / time.Minute)
	switch {
	case lateBy <= cfg.GraceMinutes:
		return Evaluation{Status: StatusOnTime}
	case lateBy <= cfg.GraceMinutes+cfg.LateBufferMinutes:
		return Evaluation{Status: StatusGracePeriod}
	default:
		return Evaluation{Status: StatusLate, MinutesLate: lateBy}
	}
}
