package spam

// Decision denotes the filter's verdict on a message
type Decision int

const (
	_ Decision = iota
	// Ham means that the message looks legitimate
	Ham

	// Spam means that the message should be treated as spam
	Spam
)

func (d Decision) String() string {
	switch d {
	case Ham:
		return "ham"
	case Spam:
		return "spam"
	}
	return "undecided"
}

// Confidence is how far a combined score sits from the decision boundary.
type Confidence int

const (
	_ Confidence = iota
	// Medium means the combined score is close to the spam threshold
	Medium

	// High means the combined score is far from the spam threshold
	High
)

func (c Confidence) String() string {
	if c == High {
		return "high"
	}
	return "medium"
}

// DomainStatus classifies a sender domain by its reputation score.
type DomainStatus int

const (
	// Unknown is used when no domain could be extracted from the sender
	Unknown DomainStatus = iota
	// New means the domain was not in the index and has just been added
	New
	Blacklisted
	Suspicious
	Neutral
	Trusted
)

var domainStatusNames = [...]string{"unknown", "new", "blacklisted", "suspicious", "neutral", "trusted"}

func (s DomainStatus) String() string {
	if s < 0 || int(s) >= len(domainStatusNames) {
		return "invalid"
	}
	return domainStatusNames[s]
}
