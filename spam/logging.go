package spam

// ResultsLogger is where the filter writes the high level results that operators look at.
type ResultsLogger interface {
	VerdictReached(v Verdict)
	DomainReported(domain string, severity int, oldScore int, newScore int)
	DomainWhitelisted(domain string, boost int, oldScore int, newScore int)
}
