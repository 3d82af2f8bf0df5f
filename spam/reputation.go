package spam

import (
	"errors"
	"iter"

	"spamguard/reputation"
)

// ErrDomainNotFound is returned by layers above the reputation index when an operation needs a domain that was never inserted.
var ErrDomainNotFound = errors.New("domain not found in reputation index")

// ReputationIndex is the ordered domain reputation store consulted by the filter and the analytics layer.
type ReputationIndex interface {
	Insert(domain string, initialScore int) reputation.Entry
	Search(domain string) (reputation.Entry, bool)
	UpdateScore(domain string, score int) bool
	IncrementSpamReports(domain string, amount int) (int, bool)
	IncrementLegitimateReports(domain string, amount int) (int, bool)
	All() iter.Seq[reputation.Entry]
	Below(threshold int) iter.Seq[reputation.Entry]
	Len() int
	Height() int
	VerifyInvariants() (bool, []reputation.Violation)
}
