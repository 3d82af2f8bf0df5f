package spam

import "time"

// KeywordAnalysis is the keyword half of a verdict.
type KeywordAnalysis struct {
	SpamScore       int
	MatchedKeywords []string
}

// DomainAnalysis is the sender domain half of a verdict.
type DomainAnalysis struct {
	ReputationScore int
	Status          DomainStatus
}

// Verdict is the result of checking one email.
type Verdict struct {
	Sender        string
	Domain        string
	Decision      Decision
	CombinedScore float64
	Confidence    Confidence
	Keywords      KeywordAnalysis
	DomainInfo    DomainAnalysis
	ScanTime      time.Duration
}

// IsSpam reports whether the verdict is Spam.
func (v Verdict) IsSpam() bool {
	return v.Decision == Spam
}
