// Package telemetry reports recoverable failures (§7) to an optional
// external sink, falling back to the process log when none is configured.
package telemetry

import (
	"log"

	"github.com/getsentry/sentry-go"
)

// Reporter is the one thing every failure-handling path in the engine
// depends on: a place to send an error kind and a human-readable message.
type Reporter interface {
	ReportError(err error, tags map[string]string)
}

// New builds a Reporter. If dsn is empty, it returns a Reporter that only
// logs; otherwise it initializes the Sentry SDK against dsn and reports
// through it.
func New(dsn string) (Reporter, error) {
	if dsn == "" {
		return logReporter{}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
		return nil, err
	}
	return sentryReporter{}, nil
}

type logReporter struct{}

func (logReporter) ReportError(err error, tags map[string]string) {
	log.Printf("telemetry: %v %v", err, tags)
}

type sentryReporter struct{}

func (sentryReporter) ReportError(err error, tags map[string]string) {
	sentry.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		sentry.CaptureException(err)
	})
}
