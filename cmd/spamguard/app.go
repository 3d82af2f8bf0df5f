package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"spamguard/analytics"
	"spamguard/config"
	"spamguard/keywords"
	"spamguard/logging"
	"spamguard/reputation"
	"spamguard/spam"
	"spamguard/spamfilter"

	"github.com/rs/zerolog"
)

const (
	blacklistFileName  = "spam_blacklist.txt"
	reputationFileName = "domain_reputation.json"
)

var knownDomains = []reputation.Record{
	{Domain: "gmail.com", Score: 95},
	{Domain: "yahoo.com", Score: 90},
	{Domain: "outlook.com", Score: 92},
	{Domain: "spam-domain.net", Score: 10},
	{Domain: "phishing-site.org", Score: 5},
	{Domain: "malware-host.ru", Score: 8},
	{Domain: "suspicious-sender.info", Score: 25},
	{Domain: "legitimate-bank.com", Score: 98},
	{Domain: "trusted-service.edu", Score: 100},
}

type email struct {
	sender  string
	subject string
	body    string
}

var demoEmails = []email{
	{
		sender:  "winner@spam-domain.net",
		subject: "Congratulations! You won!",
		body:    "You won a lottery prize! Click here to claim your cash prize now! Act now, limited time offer!",
	},
	{
		sender:  "support@legitimate-bank.com",
		subject: "Account Statement",
		body:    "Your monthly account statement is ready. Please log in to view your transactions.",
	},
	{
		sender:  "pharmacy@suspicious-sender.info",
		subject: "Buy Viagra Online",
		body:    "Cheap viagra and cialis available. Guaranteed results. Order prescription medication online now!",
	},
	{
		sender:  "friend@gmail.com",
		subject: "Lunch tomorrow?",
		body:    "Hey, are you free for lunch tomorrow? Let me know what time works for you.",
	},
}

type app struct {
	logger        zerolog.Logger
	config        config.Main
	fs            spam.FileSystem
	keywords      *keywords.Manager
	index         *reputation.Index
	analytics     *analytics.Analytics
	filter        *spamfilter.Filter
	resultsLogger logging.ResultsLogger
}

func newApp(logger zerolog.Logger, c config.Main, fs spam.FileSystem, lfs logging.LogFileSystem) (a *app, err error) {
	if err = c.Validate(); err != nil {
		return
	}

	bf, err := c.NewKeywordFilter()
	if err != nil {
		return
	}
	km := keywords.NewManager(logger, bf, fs, c.Policy.KeywordMatchWeight)
	if len(c.KeywordFiles) > 0 {
		if _, err = km.LoadFiles(c.KeywordFiles...); err != nil {
			return
		}
	} else {
		km.LoadList(keywords.SampleKeywords(), "builtin")
	}

	idx := reputation.NewIndex(reputation.WithReportWeights(c.Policy.SpamReportPenalty, c.Policy.LegitimateReportReward))
	if c.DomainList != "" {
		var n int
		if n, err = reputation.LoadDomainList(idx, fs, c.DomainList); err != nil {
			logger.Error().Err(err).Str("file", c.DomainList).Msg("Error while loading domain list")
			return
		}
		logger.Info().Int("count", n).Str("file", c.DomainList).Msg("Loaded known domains")
	} else {
		idx.InsertAll(knownDomains)
		logger.Info().Int("count", len(knownDomains)).Msg("Loaded known domains")
	}

	var rl logging.ResultsLogger
	if c.ResultsLogDir != "" {
		hostname, _ := os.Hostname()
		if rl, err = logging.NewFileResultsLogger(lfs, logger, c.ResultsLogDir, hostname); err != nil {
			return
		}
	} else {
		rl = logging.NewZerologResultsLogger(logger)
	}

	an := analytics.New(logger, idx, c.Policy, rl)
	a = &app{
		logger:        logger,
		config:        c,
		fs:            fs,
		keywords:      km,
		index:         idx,
		analytics:     an,
		filter:        spamfilter.New(logger, c.Policy, km, idx, an, rl),
		resultsLogger: rl,
	}
	return
}

// Close releases the results log.
func (a *app) Close() error {
	return a.resultsLogger.Close()
}

func (a *app) runDemo(out io.Writer, benchmarkCount int) (err error) {
	rule := strings.Repeat("=", 70)
	var b strings.Builder

	fmt.Fprintf(&b, "%s\nTESTING EMAIL SPAM DETECTION\n%s\n", rule, rule)
	for i, e := range demoEmails {
		fmt.Fprintf(&b, "\n--- Testing Email %d ---\n", i+1)
		v := a.filter.CheckEmail(e.sender, e.subject, e.body)
		if err = spamfilter.WriteVerdict(&b, v); err != nil {
			return
		}
	}

	fmt.Fprintf(&b, "\n%s\nUPDATING DOMAIN REPUTATIONS\n%s\n", rule, rule)
	for _, fb := range []struct {
		sender string
		amount int
		spam   bool
	}{
		{"winner@spam-domain.net", 5, true},
		{"support@legitimate-bank.com", 2, false},
	} {
		var score int
		if fb.spam {
			score, err = a.filter.ReportSpamEmail(fb.sender, fb.amount)
		} else {
			score, err = a.filter.WhitelistEmail(fb.sender, fb.amount)
		}
		if err != nil {
			return
		}
		fmt.Fprintf(&b, "%s -> reputation %d\n", fb.sender, score)
	}

	b.WriteString("\n--- TOP 5 SPAM DOMAINS ---\n")
	for i, e := range a.analytics.TopSpammers(5) {
		fmt.Fprintf(&b, "%d. %-30s Score: %3d  Reports: %d\n", i+1, e.Domain, e.ReputationScore, e.SpamReports)
	}
	b.WriteString("\n--- TOP 5 TRUSTED DOMAINS ---\n")
	for i, e := range a.analytics.TopTrusted(5) {
		fmt.Fprintf(&b, "%d. %-30s Score: %3d  Reports: %d\n", i+1, e.Domain, e.ReputationScore, e.LegitimateReports)
	}
	b.WriteString("\n")

	if _, err = io.WriteString(out, b.String()); err != nil {
		return
	}
	if err = a.filter.WriteSystemReport(out); err != nil {
		return
	}

	if a.config.ExportDir != "" {
		if err = a.export(a.config.ExportDir); err != nil {
			return
		}
	}

	fmt.Fprintf(out, "\n%s\nRED-BLACK TREE STRUCTURE\n%s\nLegend: [R] = Red, [B] = Black\n\n", rule, rule)
	if err = a.index.Dump(out); err != nil {
		return
	}
	if ok, violations := a.index.VerifyInvariants(); !ok {
		for _, v := range violations {
			a.logger.Error().Err(v).Msg("Reputation index invariant violated")
		}
	}

	if benchmarkCount > 0 {
		res := a.keywords.Benchmark(benchmarkCount)
		fmt.Fprintf(out, "\n%s\nKEYWORD DETECTION BENCHMARK\n%s\n", rule, rule)
		fmt.Fprintf(out, "Messages Scanned:    %d\n", res.TotalMessages)
		fmt.Fprintf(out, "Spam Detected:       %d (%.2f%%)\n", res.SpamDetected, res.SpamPercentage)
		fmt.Fprintf(out, "Ham Detected:        %d\n", res.HamDetected)
		fmt.Fprintf(out, "Total Time:          %v\n", res.TotalTime)
		fmt.Fprintf(out, "Avg Time/Message:    %v\n", res.AvgTimePerMessage)
		fmt.Fprintf(out, "Throughput:          %.0f messages/s\n", res.MessagesPerSecond)
		fmt.Fprintf(out, "Avg Matches/Spam:    %.2f\n", res.AvgMatchesPerSpam)
	}

	_, err = fmt.Fprintf(out, "\n%s\nSPAM FILTER SYSTEM DEMO COMPLETE\n%s\n", rule, rule)
	return
}

func (a *app) export(dir string) (err error) {
	if err = a.fs.MkDir(dir); err != nil {
		a.logger.Error().Err(err).Str("path", dir).Msg("Failed to create the export directory")
		return
	}

	var blacklist bytes.Buffer
	if _, err = a.analytics.ExportBlacklist(&blacklist, a.config.Policy.BlacklistThreshold); err != nil {
		return
	}
	if err = a.fs.WriteFile(filepath.Join(dir, blacklistFileName), blacklist.Bytes()); err != nil {
		a.logger.Error().Err(err).Msg("Error while writing blacklist export")
		return
	}

	var data bytes.Buffer
	if err = a.analytics.ExportJSON(&data); err != nil {
		return
	}
	if err = a.fs.WriteFile(filepath.Join(dir, reputationFileName), data.Bytes()); err != nil {
		a.logger.Error().Err(err).Msg("Error while writing reputation export")
	}
	return
}
