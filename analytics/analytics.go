package analytics

import (
	"time"

	"spamguard/reputation"
	"spamguard/spam"

	"github.com/rs/zerolog"
)

// Kinds of actions kept in the action log.
const (
	ActionSpamReport = "spam_report"
	ActionWhitelist  = "whitelist"
)

// Action is one entry of the analytics action log.
type Action struct {
	Time     time.Time `json:"timestamp"`
	Kind     string    `json:"action"`
	Domain   string    `json:"domain"`
	Amount   int       `json:"amount"`
	OldScore int       `json:"oldScore"`
	NewScore int       `json:"newScore"`
}

// Analytics applies operator feedback to the reputation index and reports on its contents.
type Analytics struct {
	logger        zerolog.Logger
	index         spam.ReputationIndex
	policy        spam.Policy
	resultsLogger spam.ResultsLogger
	actions       []Action
	now           func() time.Time
}

// New creates an analytics layer over index. The results logger may be nil.
func New(logger zerolog.Logger, index spam.ReputationIndex, policy spam.Policy, rl spam.ResultsLogger) *Analytics {
	return &Analytics{
		logger:        logger,
		index:         index,
		policy:        policy,
		resultsLogger: rl,
		now:           time.Now,
	}
}

// ReportSpam lowers the reputation of domain by the severity penalty and records severity spam reports against it.
// Domains never seen before are first inserted with the reported domain score. Returns the resulting score.
// Severity is bounded to [0, reputation.MaxScore].
func (a *Analytics) ReportSpam(domain string, severity int) (newScore int) {
	severity = boundAmount(severity)
	e, found := a.index.Search(domain)
	if !found {
		e = a.index.Insert(domain, a.policy.ReportedDomainScore)
	}

	oldScore := e.ReputationScore
	a.index.UpdateScore(domain, oldScore-severity*min(a.policy.SeverityPenalty, reputation.MaxScore))
	newScore, _ = a.index.IncrementSpamReports(domain, severity)

	a.record(ActionSpamReport, domain, severity, oldScore, newScore)
	a.logger.Info().Str("domain", domain).Int("severity", severity).Int("oldScore", oldScore).Int("newScore", newScore).Msg("Domain reported as spam")
	if a.resultsLogger != nil {
		a.resultsLogger.DomainReported(domain, severity, oldScore, newScore)
	}
	return
}

// Whitelist raises the reputation of domain by boost and credits it with boost/3 legitimate reports.
// Domains never seen before are first inserted with the whitelisted domain score. Returns the resulting score.
// Boost is bounded to [0, reputation.MaxScore].
func (a *Analytics) Whitelist(domain string, boost int) (newScore int) {
	boost = boundAmount(boost)
	e, found := a.index.Search(domain)
	if !found {
		e = a.index.Insert(domain, a.policy.WhitelistedDomainScore)
	}

	oldScore := e.ReputationScore
	a.index.UpdateScore(domain, oldScore+boost)
	newScore, _ = a.index.IncrementLegitimateReports(domain, boost/3)

	a.record(ActionWhitelist, domain, boost, oldScore, newScore)
	a.logger.Info().Str("domain", domain).Int("boost", boost).Int("oldScore", oldScore).Int("newScore", newScore).Msg("Domain whitelisted")
	if a.resultsLogger != nil {
		a.resultsLogger.DomainWhitelisted(domain, boost, oldScore, newScore)
	}
	return
}

// History returns the most recent actions, oldest first. A non-positive limit returns the whole log.
func (a *Analytics) History(limit int) []Action {
	h := a.actions
	if limit > 0 && len(h) > limit {
		h = h[len(h)-limit:]
	}
	return append([]Action(nil), h...)
}

func boundAmount(amount int) int {
	return min(max(amount, 0), reputation.MaxScore)
}

func (a *Analytics) record(kind string, domain string, amount int, oldScore int, newScore int) {
	a.actions = append(a.actions, Action{
		Time:     a.now(),
		Kind:     kind,
		Domain:   domain,
		Amount:   amount,
		OldScore: oldScore,
		NewScore: newScore,
	})
}

func (a *Analytics) entries() (all []reputation.Entry) {
	for e := range a.index.All() {
		all = append(all, e)
	}
	return
}
