package spamfilter

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"spamguard/analytics"
	"spamguard/keywords"
	"spamguard/reputation"
	"spamguard/spam"

	"github.com/rs/zerolog"
)

// ErrNoSenderDomain is returned for feedback on a sender address without a domain part.
var ErrNoSenderDomain = errors.New("sender address has no domain")

var domainRegex = regexp.MustCompile(`@([\w.-]+)`)

type keywordScanner interface {
	CheckMessage(message string) keywords.ScanResult
	Statistics() keywords.Statistics
}

type feedbackRecorder interface {
	ReportSpam(domain string, severity int) int
	Whitelist(domain string, boost int) int
	Report() analytics.Report
}

// Filter combines keyword scanning with sender domain reputation to classify emails.
type Filter struct {
	logger        zerolog.Logger
	policy        spam.Policy
	keywords      keywordScanner
	index         spam.ReputationIndex
	analytics     feedbackRecorder
	resultsLogger spam.ResultsLogger
}

// New creates an email spam filter. The results logger may be nil.
func New(logger zerolog.Logger, policy spam.Policy, km keywordScanner, index spam.ReputationIndex, a feedbackRecorder, rl spam.ResultsLogger) *Filter {
	return &Filter{
		logger:        logger,
		policy:        policy,
		keywords:      km,
		index:         index,
		analytics:     a,
		resultsLogger: rl,
	}
}

// ExtractDomain returns the part of an email address after the @, or "" if there is none.
func ExtractDomain(address string) string {
	m := domainRegex.FindStringSubmatch(address)
	if m == nil {
		return ""
	}
	return m[1]
}

// CheckEmail scans subject and body for spam keywords and weighs the result against the sender domain's reputation.
// Sender domains not yet in the index are added with the neutral score.
func (f *Filter) CheckEmail(sender string, subject string, body string) (v spam.Verdict) {
	logger := f.logger.With().Str("sender", sender).Logger()

	if logger.Debug() != nil {
		startTime := time.Now()
		defer func() {
			logger.Debug().Dur("timeTaken", time.Since(startTime)).Stringer("decision", v.Decision).Float64("score", v.CombinedScore).Msg("Email checked")
		}()
	}

	kw := f.keywords.CheckMessage(subject + " " + body)

	domain := ExtractDomain(sender)
	domainScore := f.policy.NeutralScore
	status := spam.Unknown
	if domain != "" {
		if e, found := f.index.Search(domain); found {
			domainScore = e.ReputationScore
			status = f.policy.StatusFor(domainScore)
		} else {
			f.index.Insert(domain, f.policy.NeutralScore)
			status = spam.New
			logger.Info().Str("domain", domain).Int("score", f.policy.NeutralScore).Msg("Added unknown sender domain")
		}
	}

	combined := float64(kw.SpamScore)*f.policy.KeywordWeight + float64(reputation.MaxScore-domainScore)*f.policy.DomainWeight

	v = spam.Verdict{
		Sender:        sender,
		Domain:        domain,
		Decision:      spam.Ham,
		CombinedScore: combined,
		Confidence:    f.policy.ConfidenceFor(combined),
		Keywords: spam.KeywordAnalysis{
			SpamScore:       kw.SpamScore,
			MatchedKeywords: kw.MatchedKeywords,
		},
		DomainInfo: spam.DomainAnalysis{
			ReputationScore: domainScore,
			Status:          status,
		},
		ScanTime: kw.ScanTime,
	}
	if combined > f.policy.SpamThreshold {
		v.Decision = spam.Spam
	}

	if f.resultsLogger != nil {
		f.resultsLogger.VerdictReached(v)
	}
	return
}

// ReportSpamEmail reports the sender's domain as spam with the given severity and returns its new score.
func (f *Filter) ReportSpamEmail(sender string, severity int) (score int, err error) {
	domain := ExtractDomain(sender)
	if domain == "" {
		err = fmt.Errorf("%w: %q", ErrNoSenderDomain, sender)
		return
	}
	score = f.analytics.ReportSpam(domain, severity)
	return
}

// WhitelistEmail raises the reputation of the sender's domain by boost and returns its new score.
func (f *Filter) WhitelistEmail(sender string, boost int) (score int, err error) {
	domain := ExtractDomain(sender)
	if domain == "" {
		err = fmt.Errorf("%w: %q", ErrNoSenderDomain, sender)
		return
	}
	score = f.analytics.Whitelist(domain, boost)
	return
}

// DomainReputation looks up the reputation of domain.
func (f *Filter) DomainReputation(domain string) (e reputation.Entry, err error) {
	e, found := f.index.Search(domain)
	if !found {
		err = fmt.Errorf("%w: %v", spam.ErrDomainNotFound, domain)
	}
	return
}

// WriteSystemReport writes keyword scanning statistics, keyword filter efficiency and the domain reputation report.
func (f *Filter) WriteSystemReport(w io.Writer) (err error) {
	s := f.keywords.Statistics()

	var b strings.Builder
	rule := strings.Repeat("=", 70)
	fmt.Fprintf(&b, "%s\nSPAM FILTER SYSTEM REPORT\n%s\n", rule, rule)
	b.WriteString("\n--- Keyword Detection System ---\n")
	fmt.Fprintf(&b, "Total Keywords Loaded: %d\n", s.TotalKeywordsLoaded)
	fmt.Fprintf(&b, "Total Scans Performed: %d\n", s.TotalScans)
	fmt.Fprintf(&b, "Spam Detected: %d\n", s.SpamDetected)
	fmt.Fprintf(&b, "Ham Detected: %d\n", s.HamDetected)
	b.WriteString("\nKeyword Filter Efficiency:\n")
	fmt.Fprintf(&b, "  Capacity Usage: %.2f%%\n", s.Filter.CapacityUsage)
	fmt.Fprintf(&b, "  False Positive Rate: %.6f\n\n", s.Filter.EstimatedFalsePositiveRate)

	if _, err = io.WriteString(w, b.String()); err != nil {
		return
	}
	return analytics.WriteReport(w, f.analytics.Report())
}

// WriteVerdict renders v the way operators read it on the console.
func WriteVerdict(w io.Writer, v spam.Verdict) (err error) {
	var b strings.Builder
	rule := strings.Repeat("=", 70)

	label := "LEGITIMATE"
	if v.IsSpam() {
		label = "SPAM"
	}

	fmt.Fprintf(&b, "%s\nEMAIL SPAM ANALYSIS RESULT\n%s\n", rule, rule)
	fmt.Fprintf(&b, "From: %s\n", v.Sender)
	fmt.Fprintf(&b, "Domain: %s\n", v.Domain)
	fmt.Fprintf(&b, "\n%s (Confidence: %v)\n", label, v.Confidence)
	fmt.Fprintf(&b, "Combined Spam Score: %.2f/100\n", v.CombinedScore)

	b.WriteString("\n--- Keyword Analysis ---\n")
	fmt.Fprintf(&b, "Keyword Spam Score: %d/100\n", v.Keywords.SpamScore)
	fmt.Fprintf(&b, "Matched Keywords: %d\n", len(v.Keywords.MatchedKeywords))
	if kw := v.Keywords.MatchedKeywords; len(kw) > 0 {
		if len(kw) > 5 {
			kw = kw[:5]
		}
		fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(kw, ", "))
	}

	b.WriteString("\n--- Domain Analysis ---\n")
	fmt.Fprintf(&b, "Reputation Score: %d/100\n", v.DomainInfo.ReputationScore)
	fmt.Fprintf(&b, "Status: %s\n", strings.ToUpper(v.DomainInfo.Status.String()))
	fmt.Fprintf(&b, "\nScan Time: %v\n%s\n", v.ScanTime, rule)

	_, err = io.WriteString(w, b.String())
	return
}
