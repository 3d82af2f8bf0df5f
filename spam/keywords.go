package spam

import "spamguard/bloom"

// KeywordFilter is the probabilistic set of spam keywords messages are scanned against.
type KeywordFilter interface {
	Add(item string)
	Contains(item string) bool
	Diagnostics() bloom.Diagnostics
	Clear()
}
