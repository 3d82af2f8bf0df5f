package analytics

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"spamguard/reputation"
	"spamguard/spam"
	"spamguard/testutils"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type mockResultsLogger struct {
	reported    []string
	whitelisted []string
}

func (l *mockResultsLogger) VerdictReached(v spam.Verdict) {}

func (l *mockResultsLogger) DomainReported(domain string, severity int, oldScore int, newScore int) {
	l.reported = append(l.reported, domain)
}

func (l *mockResultsLogger) DomainWhitelisted(domain string, boost int, oldScore int, newScore int) {
	l.whitelisted = append(l.whitelisted, domain)
}

func newTestAnalytics(t *testing.T, rl spam.ResultsLogger) (*Analytics, *reputation.Index) {
	idx := reputation.NewIndex()
	idx.InsertAll([]reputation.Record{
		{Domain: "example.com", Score: 75},
		{Domain: "spam-central.net", Score: 15},
		{Domain: "phishing-scam.org", Score: 5},
		{Domain: "trusted-bank.com", Score: 95},
		{Domain: "newsletter-service.io", Score: 60},
		{Domain: "malware-host.ru", Score: 10},
		{Domain: "legitimate-shop.com", Score: 85},
	})
	a := New(testutils.NewTestLogger(t), idx, spam.DefaultPolicy(), rl)
	a.now = func() time.Time { return testTime }
	return a, idx
}

func applyDemoFeedback(a *Analytics) {
	a.ReportSpam("spam-central.net", 3)
	a.ReportSpam("phishing-scam.org", 5)
	a.Whitelist("trusted-bank.com", 5)
	a.Whitelist("legitimate-shop.com", 15)
}

func domains(entries []reputation.Entry) (d []string) {
	for _, e := range entries {
		d = append(d, e.Domain)
	}
	return
}

func TestReportSpamKnownDomain(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	rl := &mockResultsLogger{}
	a, idx := newTestAnalytics(t, rl)

	// Act
	score := a.ReportSpam("example.com", 2)

	// Assert
	// 75 - 2*10 = 55, then two spam reports at 5 points each.
	assert.Equal(45, score)
	e, _ := idx.Search("example.com")
	assert.Equal(45, e.ReputationScore)
	assert.Equal(2, e.SpamReports)
	assert.Equal([]string{"example.com"}, rl.reported)
	h := a.History(0)
	require.Len(t, h, 1)
	assert.Equal(Action{Time: testTime, Kind: ActionSpamReport, Domain: "example.com", Amount: 2, OldScore: 75, NewScore: 45}, h[0])
}

func TestReportSpamUnknownDomain(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	a, idx := newTestAnalytics(t, nil)

	// Act
	score := a.ReportSpam("unknown.biz", 1)

	// Assert
	assert.Equal(25, score)
	assert.Equal(8, idx.Len())
	assert.Equal(40, a.History(1)[0].OldScore)
}

func TestReportSpamClampsAtZero(t *testing.T) {
	a, idx := newTestAnalytics(t, nil)

	score := a.ReportSpam("phishing-scam.org", 5)

	assert.Equal(t, 0, score)
	e, _ := idx.Search("phishing-scam.org")
	assert.Equal(t, 5, e.SpamReports)
}

func TestWhitelist(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	rl := &mockResultsLogger{}
	a, idx := newTestAnalytics(t, rl)

	// Act
	score := a.Whitelist("newsletter-service.io", 9)
	newScore := a.Whitelist("new-partner.com", 6)

	// Assert
	// 60 + 9 = 69, then three legitimate reports at 3 points each.
	assert.Equal(78, score)
	e, _ := idx.Search("newsletter-service.io")
	assert.Equal(3, e.LegitimateReports)
	assert.Equal(92, newScore)
	assert.Equal([]string{"newsletter-service.io", "new-partner.com"}, rl.whitelisted)
	assert.Empty(rl.reported)
}

func TestNegativeFeedbackAmountsLeaveDomainUnchanged(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	a, idx := newTestAnalytics(t, nil)

	// Act
	whitelisted := a.Whitelist("newsletter-service.io", -9)
	reported := a.ReportSpam("example.com", -4)

	// Assert
	assert.Equal(60, whitelisted)
	assert.Equal(75, reported)
	e, _ := idx.Search("newsletter-service.io")
	assert.Equal(0, e.LegitimateReports)
	e, _ = idx.Search("example.com")
	assert.Equal(0, e.SpamReports)
	h := a.History(0)
	require.Len(t, h, 2)
	assert.Equal(0, h[0].Amount)
	assert.Equal(0, h[1].Amount)
}

func TestHugeFeedbackAmountsSaturate(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	a, idx := newTestAnalytics(t, nil)

	// Act
	reported := a.ReportSpam("trusted-bank.com", math.MaxInt/3)
	whitelisted := a.Whitelist("malware-host.ru", math.MaxInt)

	// Assert
	assert.Equal(0, reported)
	assert.Equal(100, whitelisted)
	e, _ := idx.Search("trusted-bank.com")
	assert.Equal(100, e.SpamReports)
	e, _ = idx.Search("malware-host.ru")
	assert.Equal(33, e.LegitimateReports)
}

func TestTopSpammers(t *testing.T) {
	// Arrange
	a, _ := newTestAnalytics(t, nil)
	applyDemoFeedback(a)

	// Act
	top := a.TopSpammers(3)

	// Assert
	expected := []string{"phishing-scam.org", "spam-central.net", "malware-host.ru"}
	if diff := cmp.Diff(expected, domains(top)); diff != "" {
		t.Fatalf("TopSpammers mismatch (-want +got):\n%s", diff)
	}
}

func TestTopTrusted(t *testing.T) {
	// Arrange
	a, _ := newTestAnalytics(t, nil)
	applyDemoFeedback(a)

	// Act
	top := a.TopTrusted(3)

	// Assert
	expected := []string{"legitimate-shop.com", "trusted-bank.com", "example.com"}
	if diff := cmp.Diff(expected, domains(top)); diff != "" {
		t.Fatalf("TopTrusted mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 5, top[0].LegitimateReports)
}

func TestTopLimits(t *testing.T) {
	a, _ := newTestAnalytics(t, nil)

	assert.Len(t, a.TopSpammers(100), 7)
	assert.Empty(t, a.TopTrusted(0))
}

func TestHistoryLimit(t *testing.T) {
	a, _ := newTestAnalytics(t, nil)
	applyDemoFeedback(a)

	h := a.History(2)

	assert.Len(t, h, 2)
	assert.Equal(t, "trusted-bank.com", h[0].Domain)
	assert.Equal(t, ActionWhitelist, h[1].Kind)
	assert.Len(t, a.History(20), 4)
}

func TestReport(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	a, _ := newTestAnalytics(t, nil)
	applyDemoFeedback(a)

	// Act
	r := a.Report()

	// Assert
	assert.Equal(testTime, r.Timestamp)
	assert.Equal(7, r.TotalDomains)
	assert.InDelta(49.29, r.Scores.Average, 0.01)
	assert.Equal(ScoreStats{Average: r.Scores.Average, Median: 60, Min: 0, Max: 100}, r.Scores)

	counts := map[string]int{}
	for _, c := range r.Categories {
		counts[c.Name] = c.Count
	}
	assert.Equal(map[string]int{"blacklisted": 3, "suspicious": 0, "neutral": 2, "trusted": 2}, counts)
	assert.InDelta(42.86, r.Categories[0].Percentage, 0.01)
	assert.Equal("< 30", r.Categories[0].Threshold)
	assert.Equal(">= 80", r.Categories[3].Threshold)

	assert.Equal(8, r.Reports.TotalSpamReports)
	assert.Equal(6, r.Reports.TotalLegitimateReports)
	assert.True(r.Tree.IsBalanced)
	assert.True(r.Tree.Height >= 3 && r.Tree.Height <= 6)
	assert.Equal(4, r.ActionCount)
}

func TestReportEmptyIndex(t *testing.T) {
	a := New(testutils.NewTestLogger(t), reputation.NewIndex(), spam.DefaultPolicy(), nil)

	r := a.Report()
	var buf bytes.Buffer
	err := WriteReport(&buf, r)

	assert.Equal(t, 0, r.TotalDomains)
	assert.Nil(t, err)
	assert.Contains(t, buf.String(), "No domains in database.")
}

func TestWriteReport(t *testing.T) {
	// Arrange
	a, _ := newTestAnalytics(t, nil)
	applyDemoFeedback(a)
	var buf bytes.Buffer

	// Act
	err := WriteReport(&buf, a.Report())

	// Assert
	assert.Nil(t, err)
	out := buf.String()
	assert.Contains(t, out, "Total Domains: 7\n")
	assert.Contains(t, out, "BLACKLISTED    :    3 domains (42.86%) [< 30]\n")
	assert.Contains(t, out, "Median Score:  60\n")
	assert.Contains(t, out, "Is Balanced:   Yes\n")
}

func TestExportBlacklist(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	a, _ := newTestAnalytics(t, nil)
	applyDemoFeedback(a)
	var buf bytes.Buffer

	// Act
	n, err := a.ExportBlacklist(&buf, 30)

	// Assert
	assert.Nil(err)
	assert.Equal(3, n)
	assert.True(strings.HasPrefix(buf.String(), "# Spam Domain Blacklist\n# Generated: 2024-03-01T12:00:00Z\n"))
	records, err := reputation.ParseDomainList(buf.String())
	assert.Nil(err)
	assert.Equal([]reputation.Record{
		{Domain: "malware-host.ru", Score: 10},
		{Domain: "phishing-scam.org", Score: 0},
		{Domain: "spam-central.net", Score: 0},
	}, records)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestExportBlacklistWriteError(t *testing.T) {
	a, _ := newTestAnalytics(t, nil)

	n, err := a.ExportBlacklist(failingWriter{}, 30)

	assert.NotNil(t, err)
	assert.Equal(t, 0, n)
}

func TestExportJSON(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	a, _ := newTestAnalytics(t, nil)
	applyDemoFeedback(a)
	var buf bytes.Buffer

	// Act
	err := a.ExportJSON(&buf)

	// Assert
	require.Nil(t, err)
	var data exportedData
	require.Nil(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(7, data.TotalDomains)
	assert.True(testTime.Equal(data.ExportTimestamp))
	assert.Equal(exportedDomain{Domain: "example.com", ReputationScore: 75}, data.Domains[0])
	assert.Equal(exportedDomain{Domain: "legitimate-shop.com", ReputationScore: 100, LegitimateReports: 5}, data.Domains[1])
	assert.Contains(buf.String(), `"reputationScore": 75`)
}
