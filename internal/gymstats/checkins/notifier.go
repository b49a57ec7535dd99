package checkins

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/memberhub/internal/realtime"
	"github.com/2beens/memberhub/internal/telemetry/metrics"
)

const (
	NotificationKind          = "checkin"
	DefaultNotificationWindow = 5 * time.Minute
)

type Notification struct {
	Kind        string    `json:"kind"`
	CheckinID   int64     `json:"checkin_id"`
	CheckInTime time.Time `json:"check_in_time"`
	Message     string    `json:"message"`
}

// Notifier turns realtime check-in inserts into member notifications. Inserts
// older (or further in the future) than the window are backfills and stay silent.
type Notifier struct {
	window  time.Duration
	loc     *time.Location
	metrics *metrics.Manager
	now     func() time.Time
}

func NewNotifier(window time.Duration, loc *time.Location, metricsManager *metrics.Manager) *Notifier {
	if window <= 0 {
		window = DefaultNotificationWindow
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Notifier{
		window:  window,
		loc:     loc,
		metrics: metricsManager,
		now:     time.Now,
	}
}

func (n *Notifier) FromEvent(event realtime.Event) (*Notification, bool) {
	if event.Type != realtime.EventTypeInsert || event.Table != Table {
		return nil, false
	}

	var c Checkin
	if err := event.Decode(&c); err != nil {
		log.Warnf("checkin notifier, decode event: %s", err)
		return nil, false
	}

	age := n.now().Sub(c.CheckInTime)
	if age < 0 {
		age = -age
	}
	if age > n.window {
		log.Debugf("checkin notifier, checkin %d outside window (%s)", c.ID, age)
		return nil, false
	}

	if n.metrics != nil {
		n.metrics.CounterCheckinNotifications.Inc()
	}
	return &Notification{
		Kind:        NotificationKind,
		CheckinID:   c.ID,
		CheckInTime: c.CheckInTime,
		Message:     fmt.Sprintf("Checked in at %s", c.CheckInTime.In(n.loc).Format("15:04")),
	}, true
}
