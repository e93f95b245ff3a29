package rest

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// LogNotifier is used when no device delivers notifications.
type LogNotifier struct{}

func (LogNotifier) Vibrate(context.Context) {
	log.Debugln("rest over: vibrate")
}

func (LogNotifier) NotifyRestEnd(_ context.Context, expiry Expiry) {
	log.Infof("rest over [session %s, exercise #%d]", expiry.SessionID, expiry.OccurrenceIndex+1)
}
