// Package progress derives display statistics from the word history.
package progress

import (
	"time"

	"github.com/example/lingobot/pkg/models"
)

// Streak counts consecutive calendar days with at least one learned word,
// ending today or yesterday, in now's location. Multiple words on the same day
// count once. A history that touches neither today nor yesterday is a broken
// streak and counts zero.
func Streak(records []models.WordRecord, now time.Time) int {
	if len(records) == 0 {
		return 0
	}

	loc := now.Location()
	dates := make(map[string]bool, len(records))
	for _, record := range records {
		dates[time.UnixMilli(record.Timestamp).In(loc).Format("2006-01-02")] = true
	}

	today := now
	yesterday := now.AddDate(0, 0, -1)

	// Anchor at today when present so the streak includes today
	var anchor time.Time
	switch {
	case dates[today.Format("2006-01-02")]:
		anchor = today
	case dates[yesterday.Format("2006-01-02")]:
		anchor = yesterday
	default:
		return 0
	}

	streak := 1
	for d := anchor.AddDate(0, 0, -1); dates[d.Format("2006-01-02")]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// Stats is what the progress view shows for the current language. Accuracy and
// time-spent tracking are not implemented; only real numbers are reported.
type Stats struct {
	Streak       int
	WordsLearned int
}

// Compute derives stats from a language's history, newest first
func Compute(records []models.WordRecord, now time.Time) Stats {
	return Stats{
		Streak:       Streak(records, now),
		WordsLearned: len(records),
	}
}
