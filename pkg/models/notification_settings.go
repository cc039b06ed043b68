package models

// NotificationSettings controls whether and when daily reminders are delivered.
// The whole struct is persisted as a single JSON blob.
type NotificationSettings struct {
	Enabled       bool `json:"enabled"`
	Frequency     int  `json:"frequency"` // kept for the persisted format; the scheduler ignores it
	MorningTime   bool `json:"morningTime"`
	AfternoonTime bool `json:"afternoonTime"`
	EveningTime   bool `json:"eveningTime"`
}

// DefaultNotificationSettings returns the settings used before the user changes anything:
// reminders off, all three time slots pre-selected.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:       false,
		Frequency:     3,
		MorningTime:   true,
		AfternoonTime: true,
		EveningTime:   true,
	}
}
