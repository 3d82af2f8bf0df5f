package logging

import (
	"encoding/json"
	"io"
	"path/filepath"
	"sync"

	"spamguard/analytics"
	"spamguard/spam"

	"github.com/rs/zerolog"
)

// FileName is the results log file name
const FileName = "spamguard_json.log"

// ResultsLogger is a spam.ResultsLogger that must be closed once the filter is done with it.
type ResultsLogger interface {
	spam.ResultsLogger
	io.Closer
}

type filelogResultsLogger struct {
	fileSystem   LogFileSystem
	file         LogFile
	logger       zerolog.Logger
	instanceID   string
	mu           sync.Mutex
	closed       bool
	writelogline chan []byte
	writeDone    chan bool
}

// NewFileResultsLogger creates a results logger that appends one JSON document per line to FileName in dir.
// Close stops the writer goroutine and closes the file.
func NewFileResultsLogger(fileSystem LogFileSystem, logger zerolog.Logger, dir string, instanceID string) (ResultsLogger, error) {
	r := &filelogResultsLogger{fileSystem: fileSystem, logger: logger, instanceID: instanceID}

	err := fileSystem.MkDir(dir)
	if err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create the directory while initializing")
		return nil, err
	}

	name := filepath.Join(dir, FileName)
	r.file, err = fileSystem.Open(name)
	if err != nil {
		logger.Error().Err(err).Str("file", name).Msg("Failed to open the file at initiation")
		return nil, err
	}

	r.writelogline = make(chan []byte)
	r.writeDone = make(chan bool)
	go func() {
		for v := range r.writelogline {
			if err := r.file.Append(append(v, '\n')); err != nil {
				r.logger.Error().Err(err).Str("file", name).Msg("Failed to append to results log")
			}
			r.writeDone <- true
		}
	}()

	return r, nil
}

func (l *filelogResultsLogger) VerdictReached(v spam.Verdict) {
	l.write(newVerdictLogEntry(l.instanceID, v))
}

func (l *filelogResultsLogger) DomainReported(domain string, severity int, oldScore int, newScore int) {
	l.write(newReputationLogEntry(l.instanceID, analytics.ActionSpamReport, domain, severity, oldScore, newScore))
}

func (l *filelogResultsLogger) DomainWhitelisted(domain string, boost int, oldScore int, newScore int) {
	l.write(newReputationLogEntry(l.instanceID, analytics.ActionWhitelist, domain, boost, oldScore, newScore))
}

func (l *filelogResultsLogger) write(entry interface{}) {
	bb, err := json.Marshal(entry)
	if err != nil {
		l.logger.Error().Err(err).Msg("Error while marshaling JSON results log")
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		l.logger.Warn().Msg("Dropped results log entry written after close")
		return
	}
	l.writelogline <- bb
	<-l.writeDone
}

// Close stops the writer goroutine and closes the results file. Entries written afterwards are dropped.
func (l *filelogResultsLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	close(l.writelogline)
	return l.file.Close()
}
