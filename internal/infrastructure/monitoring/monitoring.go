package monitoring

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// Init configures the Sentry client. An empty DSN disables reporting,
// the helpers below stay safe to call either way.
func Init(dsn, environment string) error {
	return sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	})
}

// Flush drains buffered events, call it on shutdown.
func Flush() {
	sentry.Flush(2 * time.Second)
}

func Message(msg string) {
	sentry.CaptureMessage(msg)
}

func Error(err error) {
	sentry.CaptureException(err)
}
