package analytics

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

type exportedDomain struct {
	Domain            string `json:"domain"`
	ReputationScore   int    `json:"reputationScore"`
	SpamReports       int    `json:"spamReports"`
	LegitimateReports int    `json:"legitimateReports"`
}

type exportedData struct {
	ExportTimestamp time.Time        `json:"exportTimestamp"`
	TotalDomains    int              `json:"totalDomains"`
	Domains         []exportedDomain `json:"domains"`
}

// ExportBlacklist writes every domain scoring below threshold as a tab separated "domain score" line,
// preceded by a commented header. The output can be read back with reputation.LoadDomainList.
func (a *Analytics) ExportBlacklist(w io.Writer, threshold int) (n int, err error) {
	var body strings.Builder
	for e := range a.index.Below(threshold) {
		fmt.Fprintf(&body, "%s\t%d\n", e.Domain, e.ReputationScore)
		n++
	}

	var b strings.Builder
	b.WriteString("# Spam Domain Blacklist\n")
	fmt.Fprintf(&b, "# Generated: %s\n", a.now().Format(time.RFC3339))
	fmt.Fprintf(&b, "# Threshold: Reputation < %d\n", threshold)
	fmt.Fprintf(&b, "# Total domains: %d\n\n", n)
	b.WriteString(body.String())

	if _, err = io.WriteString(w, b.String()); err != nil {
		a.logger.Error().Err(err).Msg("Error while exporting blacklist")
		n = 0
		return
	}

	a.logger.Info().Int("count", n).Int("threshold", threshold).Msg("Exported blacklisted domains")
	return
}

// ExportJSON writes every domain of the index, in domain order, as an indented JSON document.
func (a *Analytics) ExportJSON(w io.Writer) (err error) {
	data := exportedData{
		ExportTimestamp: a.now(),
		Domains:         []exportedDomain{},
	}
	for _, e := range a.entries() {
		data.Domains = append(data.Domains, exportedDomain{
			Domain:            e.Domain,
			ReputationScore:   e.ReputationScore,
			SpamReports:       e.SpamReports,
			LegitimateReports: e.LegitimateReports,
		})
	}
	data.TotalDomains = len(data.Domains)

	bb, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		a.logger.Error().Err(err).Msg("Error while marshaling reputation data")
		return
	}

	if _, err = w.Write(append(bb, '\n')); err != nil {
		a.logger.Error().Err(err).Msg("Error while exporting reputation data")
		return
	}

	a.logger.Info().Int("count", data.TotalDomains).Msg("Exported reputation data")
	return
}
