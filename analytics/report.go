package analytics

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

// ScoreStats summarizes the reputation scores in the index.
type ScoreStats struct {
	Average float64 `json:"averageScore"`
	Median  int     `json:"medianScore"`
	Min     int     `json:"minScore"`
	Max     int     `json:"maxScore"`
}

// Category counts the domains whose score falls in one status band.
type Category struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
	Threshold  string  `json:"threshold"`
}

// ReportStats summarizes the report counters of all domains.
type ReportStats struct {
	TotalSpamReports       int     `json:"totalSpamReports"`
	TotalLegitimateReports int     `json:"totalLegitimateReports"`
	AvgSpamReports         float64 `json:"avgSpamReportsPerDomain"`
	AvgLegitimateReports   float64 `json:"avgLegitReportsPerDomain"`
}

// TreeStats describes the health of the reputation index.
type TreeStats struct {
	Height     int  `json:"height"`
	IsBalanced bool `json:"isBalanced"`
}

// Report is a point in time summary of the reputation index.
type Report struct {
	Timestamp    time.Time   `json:"timestamp"`
	TotalDomains int         `json:"totalDomains"`
	Scores       ScoreStats  `json:"reputationStats"`
	Categories   []Category  `json:"categories"`
	Reports      ReportStats `json:"reportStats"`
	Tree         TreeStats   `json:"treeStats"`
	ActionCount  int         `json:"actionHistoryCount"`
}

// Report computes score, category and report statistics over every domain in the index.
func (a *Analytics) Report() Report {
	all := a.entries()
	r := Report{
		Timestamp:    a.now(),
		TotalDomains: len(all),
		ActionCount:  len(a.actions),
	}
	if len(all) == 0 {
		return r
	}

	p := a.policy
	r.Categories = []Category{
		{Name: "blacklisted", Threshold: fmt.Sprintf("< %d", p.BlacklistThreshold)},
		{Name: "suspicious", Threshold: fmt.Sprintf("%d-%d", p.BlacklistThreshold, p.SuspiciousThreshold-1)},
		{Name: "neutral", Threshold: fmt.Sprintf("%d-%d", p.SuspiciousThreshold, p.TrustedThreshold-1)},
		{Name: "trusted", Threshold: fmt.Sprintf(">= %d", p.TrustedThreshold)},
	}

	scores := make([]int, 0, len(all))
	sum := 0
	for _, e := range all {
		scores = append(scores, e.ReputationScore)
		sum += e.ReputationScore
		r.Reports.TotalSpamReports += e.SpamReports
		r.Reports.TotalLegitimateReports += e.LegitimateReports

		switch {
		case e.ReputationScore < p.BlacklistThreshold:
			r.Categories[0].Count++
		case e.ReputationScore < p.SuspiciousThreshold:
			r.Categories[1].Count++
		case e.ReputationScore < p.TrustedThreshold:
			r.Categories[2].Count++
		default:
			r.Categories[3].Count++
		}
	}
	sort.Ints(scores)

	n := float64(len(all))
	r.Scores = ScoreStats{
		Average: float64(sum) / n,
		Median:  scores[len(scores)/2],
		Min:     scores[0],
		Max:     scores[len(scores)-1],
	}
	for i := range r.Categories {
		r.Categories[i].Percentage = float64(r.Categories[i].Count) / n * 100
	}
	r.Reports.AvgSpamReports = float64(r.Reports.TotalSpamReports) / n
	r.Reports.AvgLegitimateReports = float64(r.Reports.TotalLegitimateReports) / n

	r.Tree.Height = a.index.Height()
	r.Tree.IsBalanced, _ = a.index.VerifyInvariants()
	return r
}

// WriteReport renders r as the human readable reputation report.
func WriteReport(w io.Writer, r Report) (err error) {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	fmt.Fprintf(&b, "%s\nDOMAIN REPUTATION REPORT\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Generated: %s\n", r.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&b, "Total Domains: %d\n", r.TotalDomains)

	if r.TotalDomains == 0 {
		b.WriteString("\nNo domains in database.\n")
		_, err = io.WriteString(w, b.String())
		return
	}

	b.WriteString("\n--- REPUTATION STATISTICS ---\n")
	fmt.Fprintf(&b, "Average Score: %.2f\n", r.Scores.Average)
	fmt.Fprintf(&b, "Median Score:  %d\n", r.Scores.Median)
	fmt.Fprintf(&b, "Range:         %d - %d\n", r.Scores.Min, r.Scores.Max)

	b.WriteString("\n--- DOMAIN CATEGORIES ---\n")
	for _, c := range r.Categories {
		fmt.Fprintf(&b, "%-15s: %4d domains (%5.2f%%) [%s]\n", strings.ToUpper(c.Name), c.Count, c.Percentage, c.Threshold)
	}

	b.WriteString("\n--- REPORT STATISTICS ---\n")
	fmt.Fprintf(&b, "Total Spam Reports:       %d\n", r.Reports.TotalSpamReports)
	fmt.Fprintf(&b, "Total Legitimate Reports: %d\n", r.Reports.TotalLegitimateReports)
	fmt.Fprintf(&b, "Avg Spam Reports/Domain:  %.2f\n", r.Reports.AvgSpamReports)
	fmt.Fprintf(&b, "Avg Legit Reports/Domain: %.2f\n", r.Reports.AvgLegitimateReports)

	balanced := "No"
	if r.Tree.IsBalanced {
		balanced = "Yes"
	}
	b.WriteString("\n--- TREE HEALTH ---\n")
	fmt.Fprintf(&b, "Tree Height:   %d\n", r.Tree.Height)
	fmt.Fprintf(&b, "Is Balanced:   %s\n", balanced)
	fmt.Fprintf(&b, "Total Actions: %d\n", r.ActionCount)
	fmt.Fprintf(&b, "%s\n", rule)

	_, err = io.WriteString(w, b.String())
	return
}
