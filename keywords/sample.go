package keywords

import "strings"

var sampleKeywords = []string{
	// Financial
	"free money", "make money fast", "get rich quick", "guaranteed income",
	"work from home", "easy money", "cash bonus", "wire transfer",
	// Pharma
	"viagra", "cialis", "pharmacy", "prescription", "medication online",
	"weight loss", "diet pills", "male enhancement",
	// Prizes and lotteries
	"you won", "claim prize", "winner", "congratulations winner",
	"lottery", "jackpot", "cash prize", "claim now",
	// Urgency
	"act now", "limited time", "expires today", "urgent response",
	"immediate action", "don't wait", "hurry", "last chance",
	// Calls to action
	"click here", "click below", "visit now", "download now",
	"open attachment", "verify account", "confirm identity",
	// Gambling
	"casino", "poker online", "slot machine", "betting",
	"gambling", "win big", "jackpot winner",
	// Credential and payment requests
	"send money", "bank account", "credit card", "social security",
	"password reset", "verify information", "update payment",
	// Investment scams
	"investment opportunity", "guaranteed returns", "risk free",
	"double your money", "crypto investment", "forex trading",
}

// SampleKeywords returns the built-in spam keyword dictionary.
func SampleKeywords() []string {
	return append([]string(nil), sampleKeywords...)
}

// WriteSampleDictionary writes the built-in dictionary to the named file, one keyword per line.
func (m *Manager) WriteSampleDictionary(name string) error {
	data := []byte(strings.Join(sampleKeywords, "\n") + "\n")
	if err := m.fs.WriteFile(name, data); err != nil {
		m.logger.Error().Err(err).Str("file", name).Msg("Error while writing sample dictionary")
		return err
	}
	m.logger.Info().Str("file", name).Msg("Sample dictionary created")
	return nil
}
