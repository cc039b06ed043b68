package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	ready bool
	sent  []Notification
}

func (f *fakeSender) Ready() bool { return f.ready }

func (f *fakeSender) Send(n Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

func TestGocronGrantedFollowsSender(t *testing.T) {
	sender := &fakeSender{}
	service := NewGocron(sender, time.UTC)
	defer service.Stop()

	require.False(t, service.Granted())
	sender.ready = true
	require.True(t, service.Granted())
}

func TestGocronSendNowDelegates(t *testing.T) {
	sender := &fakeSender{ready: true}
	service := NewGocron(sender, time.UTC)
	defer service.Stop()

	n := Notification{Title: "t", Body: "b"}
	require.NoError(t, service.SendNow(n))
	require.Equal(t, []Notification{n}, sender.sent)
}

func TestGocronScheduleDailyAndCancelAll(t *testing.T) {
	sender := &fakeSender{ready: true}
	service := NewGocron(sender, time.UTC)
	defer service.Stop()

	require.NoError(t, service.ScheduleDaily(9, 0, Notification{Title: "morning"}))
	require.NoError(t, service.ScheduleDaily(20, 0, Notification{Title: "evening"}))
	require.Len(t, service.scheduler.Jobs(), 2)

	service.CancelAll()
	require.Empty(t, service.scheduler.Jobs())
}
