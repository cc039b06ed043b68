package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Sender delivers a notification to the user. Ready reports whether delivery
// is currently possible, the bot's equivalent of a notification permission.
type Sender interface {
	Ready() bool
	Send(n Notification) error
}

// Gocron is a Service that runs daily jobs in-process and delivers through a
// Sender.
type Gocron struct {
	scheduler *gocron.Scheduler
	sender    Sender
}

// NewGocron creates a started gocron-backed notification service. Times are
// interpreted in the given location.
func NewGocron(sender Sender, loc *time.Location) *Gocron {
	s := gocron.NewScheduler(loc)
	s.StartAsync()
	return &Gocron{
		scheduler: s,
		sender:    sender,
	}
}

// Granted reports whether the sender can deliver
func (g *Gocron) Granted() bool {
	return g.sender.Ready()
}

// CancelAll drops every scheduled job
func (g *Gocron) CancelAll() {
	g.scheduler.Clear()
}

// ScheduleDaily registers a repeating daily job at the given time. Delivery
// failures are logged, not propagated; the job fires again the next day.
func (g *Gocron) ScheduleDaily(hour, minute int, n Notification) error {
	at := fmt.Sprintf("%02d:%02d", hour, minute)
	_, err := g.scheduler.Every(1).Day().At(at).Do(func() {
		if err := g.sender.Send(n); err != nil {
			log.Printf("Error delivering %s notification: %v", at, err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to register daily job at %s: %v", at, err)
	}
	return nil
}

// SendNow delivers a single immediate notification
func (g *Gocron) SendNow(n Notification) error {
	return g.sender.Send(n)
}

// Stop terminates the underlying scheduler
func (g *Gocron) Stop() {
	g.scheduler.Stop()
}
