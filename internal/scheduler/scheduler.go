// Package scheduler derives the daily reminder plan from the notification
// settings and issues it to a notification service as a cancel-all then
// re-schedule cycle.
package scheduler

import (
	"errors"
	"fmt"

	"github.com/example/lingobot/internal/language"
	"github.com/example/lingobot/internal/state"
	"github.com/example/lingobot/pkg/models"
)

// ErrPermissionDenied means the notification service cannot deliver yet, e.g.
// the user has not started a chat with the bot. Surfaced as a user prompt, not
// a fatal error.
var ErrPermissionDenied = errors.New("notification permission not granted")

// Notification is one reminder message with its retrieval payload
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// Slot is a daily delivery time paired with its notification
type Slot struct {
	Hour         int
	Minute       int
	Notification Notification
}

// The three fixed delivery times, gated by the settings flags
const (
	morningHour   = 9
	afternoonHour = 14
	eveningHour   = 20
)

// Service is the external notification delivery interface
type Service interface {
	// Granted reports whether notifications can currently be delivered
	Granted() bool
	// CancelAll drops every previously scheduled notification
	CancelAll()
	// ScheduleDaily registers a repeating daily notification
	ScheduleDaily(hour, minute int, n Notification) error
	// SendNow delivers a single immediate notification
	SendNow(n Notification) error
}

// BuildPlan computes the delivery slots for the given settings. The plan is
// empty when notifications are disabled, regardless of the time flags.
func BuildPlan(settings models.NotificationSettings, languageCode string, level models.VocabularyLevel) []Slot {
	if !settings.Enabled {
		return nil
	}

	notification := Notification{
		Title: fmt.Sprintf("Time for your daily %s word!", language.DisplayName(languageCode)),
		Body:  fmt.Sprintf("Expand your %s vocabulary with a new word today.", level),
		Data:  map[string]string{"selectedLanguage": languageCode, "selectedLevel": string(level)},
	}

	var slots []Slot
	if settings.MorningTime {
		slots = append(slots, Slot{Hour: morningHour, Notification: notification})
	}
	if settings.AfternoonTime {
		slots = append(slots, Slot{Hour: afternoonHour, Notification: notification})
	}
	if settings.EveningTime {
		slots = append(slots, Slot{Hour: eveningHour, Notification: notification})
	}
	return slots
}

// Scheduler owns the cancel/reschedule cycle. Callers must serialize calls;
// the bot invokes it synchronously after each settings change.
type Scheduler struct {
	service  Service
	selected *state.LanguageSelection
	level    *state.VocabularyLevel
	settings *state.NotificationSettings
}

// New creates a scheduler over the given service and state containers
func New(service Service, selected *state.LanguageSelection, level *state.VocabularyLevel, settings *state.NotificationSettings) *Scheduler {
	return &Scheduler{
		service:  service,
		selected: selected,
		level:    level,
		settings: settings,
	}
}

// ScheduleNotifications cancels every scheduled notification and, if enabled,
// schedules one repeating daily notification per enabled time slot. Calling it
// again with the same settings yields the same scheduled set. Must be
// re-invoked after any change to the settings, language or level.
func (s *Scheduler) ScheduleNotifications() error {
	s.service.CancelAll()

	settings := s.settings.Settings()
	if !settings.Enabled {
		return nil
	}

	if !s.service.Granted() {
		return ErrPermissionDenied
	}

	plan := BuildPlan(settings, s.selected.Code(), s.level.Level())
	for _, slot := range plan {
		if err := s.service.ScheduleDaily(slot.Hour, slot.Minute, slot.Notification); err != nil {
			return fmt.Errorf("failed to schedule %02d:%02d notification: %v", slot.Hour, slot.Minute, err)
		}
	}
	return nil
}

// SendTestNotification delivers one immediate notification using the current
// language and level, independent of the cancel/reschedule cycle.
func (s *Scheduler) SendTestNotification() error {
	if !s.service.Granted() {
		return ErrPermissionDenied
	}

	code := s.selected.Code()
	level := s.level.Level()

	return s.service.SendNow(Notification{
		Title: fmt.Sprintf("Test Notification: %s Word", language.DisplayName(code)),
		Body:  fmt.Sprintf("This is a test notification for your %s vocabulary learning.", level),
		Data:  map[string]string{"selectedLanguage": code, "selectedLevel": string(level)},
	})
}
