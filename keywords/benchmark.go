package keywords

import (
	"time"
)

var spamTemplates = []string{
	"Congratulations! You won a prize. Click here to claim now!",
	"Free money waiting for you. Act now, limited time offer!",
	"Buy viagra online with guaranteed results. Order now!",
	"Work from home and make money fast. Visit our website today.",
	"Casino jackpot winner! Claim your cash prize immediately.",
}

var hamTemplates = []string{
	"Hello, how are you doing today? Let's meet for coffee.",
	"The project report is attached. Please review by Friday.",
	"Thank you for your email. I'll get back to you soon.",
	"Meeting scheduled for 3pm tomorrow in conference room.",
	"Happy birthday! Hope you have a wonderful day.",
}

// BenchmarkResult summarizes a Benchmark run.
type BenchmarkResult struct {
	TotalMessages       int
	SpamDetected        int
	HamDetected         int
	SpamPercentage      float64
	TotalTime           time.Duration
	AvgTimePerMessage   time.Duration
	MessagesPerSecond   float64
	TotalKeywordMatches int
	AvgMatchesPerSpam   float64
}

// TestMessages returns count synthetic messages; every third one, starting with the first, is spam.
func TestMessages(count int) []string {
	messages := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if i%3 == 0 {
			messages = append(messages, spamTemplates[i%len(spamTemplates)])
		} else {
			messages = append(messages, hamTemplates[i%len(hamTemplates)])
		}
	}
	return messages
}

// Benchmark scans count synthetic messages and reports throughput and detection counts.
// The scans are recorded in the manager's history like any other scan.
func (m *Manager) Benchmark(count int) (res BenchmarkResult) {
	if count <= 0 {
		return
	}
	messages := TestMessages(count)

	start := time.Now()
	for _, msg := range messages {
		r := m.CheckMessage(msg)
		if r.IsSpam {
			res.SpamDetected++
		}
		res.TotalKeywordMatches += len(r.MatchedKeywords)
	}
	res.TotalTime = time.Since(start)

	res.TotalMessages = count
	res.HamDetected = count - res.SpamDetected
	res.SpamPercentage = float64(res.SpamDetected) / float64(count) * 100
	res.AvgTimePerMessage = res.TotalTime / time.Duration(count)
	if secs := res.TotalTime.Seconds(); secs > 0 {
		res.MessagesPerSecond = float64(count) / secs
	}
	if res.SpamDetected > 0 {
		res.AvgMatchesPerSpam = float64(res.TotalKeywordMatches) / float64(res.SpamDetected)
	}

	m.logger.Info().Int("messages", count).Int("spam", res.SpamDetected).Dur("total", res.TotalTime).Msg("Keyword benchmark finished")
	return
}
