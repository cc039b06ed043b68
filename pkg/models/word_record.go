package models

import "time"

// WordRecord is a single learned word as returned by the generation API.
// Records are immutable once created and owned by the history ledger.
type WordRecord struct {
	Word            string `json:"word"`
	Translation     string `json:"translation"`
	Pronunciation   string `json:"pronunciation"`
	ExampleSentence string `json:"exampleSentence"`
	Timestamp       int64  `json:"timestamp"` // epoch milliseconds
}

// LearnedAt returns the record's timestamp as a time.Time in the local timezone.
func (w WordRecord) LearnedAt() time.Time {
	return time.UnixMilli(w.Timestamp)
}
