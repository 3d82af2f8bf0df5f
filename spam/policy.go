package spam

// Policy holds the scoring constants shared by the orchestration and analytics layers.
// The core structures never read these; callers pass the relevant values in.
type Policy struct {
	// NeutralScore is assumed for unknown domains and used when inserting them.
	NeutralScore int `yaml:"neutralScore"`

	// SpamReportPenalty and LegitimateReportReward are applied per report by the reputation index.
	SpamReportPenalty      int `yaml:"spamReportPenalty"`
	LegitimateReportReward int `yaml:"legitimateReportReward"`

	// KeywordMatchWeight is the keyword score added per matched keyword, capped at 100.
	KeywordMatchWeight int `yaml:"keywordMatchWeight"`

	KeywordWeight float64 `yaml:"keywordWeight"`
	DomainWeight  float64 `yaml:"domainWeight"`

	// SpamThreshold is the combined score above which a message is spam.
	SpamThreshold float64 `yaml:"spamThreshold"`

	// Combined scores above HighConfidenceAbove or below HighConfidenceBelow are reported with high confidence.
	HighConfidenceAbove float64 `yaml:"highConfidenceAbove"`
	HighConfidenceBelow float64 `yaml:"highConfidenceBelow"`

	BlacklistThreshold  int `yaml:"blacklistThreshold"`
	SuspiciousThreshold int `yaml:"suspiciousThreshold"`
	TrustedThreshold    int `yaml:"trustedThreshold"`

	// Scores given to domains first seen through a spam report or a whitelist action.
	ReportedDomainScore    int `yaml:"reportedDomainScore"`
	WhitelistedDomainScore int `yaml:"whitelistedDomainScore"`

	// SeverityPenalty is subtracted from the score per severity point of a spam report.
	SeverityPenalty int `yaml:"severityPenalty"`
}

// DefaultPolicy returns the scoring constants the filter ships with.
func DefaultPolicy() Policy {
	return Policy{
		NeutralScore:           50,
		SpamReportPenalty:      5,
		LegitimateReportReward: 3,
		KeywordMatchWeight:     15,
		KeywordWeight:          0.6,
		DomainWeight:           0.4,
		SpamThreshold:          50,
		HighConfidenceAbove:    70,
		HighConfidenceBelow:    30,
		BlacklistThreshold:     30,
		SuspiciousThreshold:    60,
		TrustedThreshold:       80,
		ReportedDomainScore:    40,
		WhitelistedDomainScore: 80,
		SeverityPenalty:        10,
	}
}

// StatusFor maps a reputation score onto a DomainStatus.
func (p Policy) StatusFor(score int) DomainStatus {
	switch {
	case score < p.BlacklistThreshold:
		return Blacklisted
	case score < p.SuspiciousThreshold:
		return Suspicious
	case score < p.TrustedThreshold:
		return Neutral
	}
	return Trusted
}

// ConfidenceFor reports how confident a verdict with the given combined score is.
func (p Policy) ConfidenceFor(combined float64) Confidence {
	if combined > p.HighConfidenceAbove || combined < p.HighConfidenceBelow {
		return High
	}
	return Medium
}
