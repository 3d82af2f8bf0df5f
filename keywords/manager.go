package keywords

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"spamguard/bloom"
	"spamguard/spam"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// maxKeywordScore caps the keyword spam score.
const maxKeywordScore = 100

// ScanResult is the outcome of scanning one message for spam keywords.
type ScanResult struct {
	IsSpam          bool
	SpamScore       int
	MatchedKeywords []string
	TokensChecked   int
	ScanTime        time.Duration
	MessageLength   int
}

// ScanRecord is kept in the manager's history for every scanned message.
type ScanRecord struct {
	Time    time.Time
	IsSpam  bool
	Matches int
}

// Statistics summarizes what a Manager has loaded and scanned.
type Statistics struct {
	TotalKeywordsLoaded int
	KeywordSources      int
	TotalScans          int
	SpamDetected        int
	HamDetected         int
	Filter              bloom.Diagnostics
}

// Manager loads spam keywords into a keyword filter and scans messages against it.
type Manager struct {
	logger      zerolog.Logger
	filter      spam.KeywordFilter
	fs          fileSystem
	matchWeight int
	sources     []string
	totalLoaded int
	history     []ScanRecord
}

// NewManager creates a keyword manager on top of filter. Every matched keyword adds matchWeight to a message's score.
func NewManager(logger zerolog.Logger, filter spam.KeywordFilter, fs fileSystem, matchWeight int) *Manager {
	return &Manager{
		logger:      logger,
		filter:      filter,
		fs:          fs,
		matchWeight: matchWeight,
	}
}

// LoadReader inserts one keyword per line from r. Blank lines are skipped.
func (m *Manager) LoadReader(r io.Reader, source string) (n int, err error) {
	var kw []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		if line := strings.TrimSpace(s.Text()); line != "" {
			kw = append(kw, line)
		}
	}
	if err = s.Err(); err != nil {
		m.logger.Error().Err(err).Str("source", source).Msg("Error while reading keywords")
		return
	}

	n = m.LoadList(kw, source)
	return
}

// LoadFile inserts the keywords of the named file.
func (m *Manager) LoadFile(name string) (n int, err error) {
	data, err := m.fs.ReadFile(name)
	if err != nil {
		m.logger.Error().Err(err).Str("file", name).Msg("Error while reading keyword file")
		return
	}
	return m.LoadReader(bytes.NewReader(data), name)
}

// LoadFiles reads all named files concurrently and then inserts their keywords in argument order.
// Nothing is inserted if any file cannot be read.
func (m *Manager) LoadFiles(names ...string) (n int, err error) {
	contents := make([][]byte, len(names))

	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			data, err := m.fs.ReadFile(name)
			if err != nil {
				return fmt.Errorf("reading keyword file %v: %w", name, err)
			}
			contents[i] = data
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		m.logger.Error().Err(err).Msg("Error while loading keyword files")
		return
	}

	for i, data := range contents {
		var c int
		c, err = m.LoadReader(bytes.NewReader(data), names[i])
		n += c
		if err != nil {
			return
		}
	}
	return
}

// LoadList inserts keywords and records source as a keyword source.
func (m *Manager) LoadList(keywords []string, source string) int {
	n := m.BulkInsert(keywords)
	m.sources = append(m.sources, source)
	m.logger.Info().Str("source", source).Int("count", n).Msg("Loaded spam keywords")
	return n
}

// BulkInsert adds every non-blank keyword to the filter and returns how many were added.
func (m *Manager) BulkInsert(keywords []string) int {
	n := 0
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		m.filter.Add(kw)
		n++
	}
	m.totalLoaded += n
	return n
}

// CheckMessage looks up every word and short phrase of message in the keyword filter.
func (m *Manager) CheckMessage(message string) ScanResult {
	start := time.Now()

	tokens := Tokens(message)
	matches := []string{}
	for _, tok := range tokens {
		if m.filter.Contains(tok) {
			matches = append(matches, tok)
		}
	}

	score := len(matches) * m.matchWeight
	if score > maxKeywordScore {
		score = maxKeywordScore
	}

	res := ScanResult{
		IsSpam:          len(matches) > 0,
		SpamScore:       score,
		MatchedKeywords: matches,
		TokensChecked:   len(tokens),
		ScanTime:        time.Since(start),
		MessageLength:   utf8.RuneCountInString(message),
	}

	m.history = append(m.history, ScanRecord{Time: start, IsSpam: res.IsSpam, Matches: len(matches)})

	m.logger.Debug().Int("tokens", res.TokensChecked).Strs("matches", matches).Dur("scanTime", res.ScanTime).Msg("Scanned message")
	return res
}

// MatchedKeywords scans message and returns only the matched keywords.
func (m *Manager) MatchedKeywords(message string) []string {
	return m.CheckMessage(message).MatchedKeywords
}

// History returns the most recent scan records, oldest first. A non-positive limit returns all of them.
func (m *Manager) History(limit int) []ScanRecord {
	h := m.history
	if limit > 0 && len(h) > limit {
		h = h[len(h)-limit:]
	}
	return append([]ScanRecord(nil), h...)
}

// Statistics reports load and scan counters together with the filter diagnostics.
func (m *Manager) Statistics() Statistics {
	s := Statistics{
		TotalKeywordsLoaded: m.totalLoaded,
		KeywordSources:      len(m.sources),
		TotalScans:          len(m.history),
		Filter:              m.filter.Diagnostics(),
	}
	for _, r := range m.history {
		if r.IsSpam {
			s.SpamDetected++
		}
	}
	s.HamDetected = s.TotalScans - s.SpamDetected
	return s
}
