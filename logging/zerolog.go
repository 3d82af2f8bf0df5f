package logging

import (
	"encoding/json"

	"spamguard/analytics"
	"spamguard/spam"

	"github.com/rs/zerolog"
)

// NewZerologResultsLogger creates a results logger that creates log messages like the ones written to the results file, but just outputs them to Zerolog.
func NewZerologResultsLogger(logger zerolog.Logger) ResultsLogger {
	return &zerologResultsLogger{logger: logger}
}

type zerologResultsLogger struct {
	logger zerolog.Logger
}

func (l *zerologResultsLogger) VerdictReached(v spam.Verdict) {
	l.write(newVerdictLogEntry("", v))
}

func (l *zerologResultsLogger) DomainReported(domain string, severity int, oldScore int, newScore int) {
	l.write(newReputationLogEntry("", analytics.ActionSpamReport, domain, severity, oldScore, newScore))
}

func (l *zerologResultsLogger) DomainWhitelisted(domain string, boost int, oldScore int, newScore int) {
	l.write(newReputationLogEntry("", analytics.ActionWhitelist, domain, boost, oldScore, newScore))
}

// Close is a no-op; zerolog owns its writer.
func (l *zerologResultsLogger) Close() error {
	return nil
}

func (l *zerologResultsLogger) write(entry interface{}) {
	bb, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		l.logger.Error().Err(err).Msg("Error while marshaling JSON results log")
		return
	}

	l.logger.Info().Msgf("Results log:\n%s\n", bb)
}
