package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"spamguard/bloom"
	"spamguard/reputation"
	"spamguard/spam"

	yaml "gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Names accepted for KeywordFilter.HashFamily.
const (
	HashFamilyClassic = "classic"
	HashFamilyFarm    = "farm"
)

// Main is the top level configuration.
type Main struct {
	KeywordFilter KeywordFilter `yaml:"keywordFilter"`
	Policy        spam.Policy   `yaml:"policy"`

	// KeywordFiles are loaded into the keyword filter. The built-in dictionary is used when empty.
	KeywordFiles []string `yaml:"keywordFiles"`

	// DomainList is an optional file of "domain score" lines preloaded into the reputation index.
	DomainList string `yaml:"domainList"`

	// ResultsLogDir enables the JSON-lines results log when set.
	ResultsLogDir string `yaml:"resultsLogDir"`

	// ExportDir receives the blacklist and reputation exports when set.
	ExportDir string `yaml:"exportDir"`
}

// KeywordFilter sizes the keyword membership filter.
type KeywordFilter struct {
	ExpectedItems     int     `yaml:"expectedItems"`
	FalsePositiveRate float64 `yaml:"falsePositiveRate"`
	HashFamily        string  `yaml:"hashFamily"`
}

type fileSystem interface {
	ReadFile(name string) ([]byte, error)
}

// Default returns the configuration used when no file is given.
func Default() Main {
	return Main{
		KeywordFilter: KeywordFilter{
			ExpectedItems:     5000,
			FalsePositiveRate: 0.01,
			HashFamily:        HashFamilyClassic,
		},
		Policy: spam.DefaultPolicy(),
	}
}

// Load reads a YAML configuration file. Keys missing from the file keep their default values; unknown keys are an error.
func Load(fs fileSystem, name string) (c Main, err error) {
	c = Default()

	data, err := fs.ReadFile(name)
	if err != nil {
		return
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err = dec.Decode(&c); err != nil {
		if err != io.EOF {
			err = fmt.Errorf("%w: %v: %v", ErrInvalidConfig, name, err)
			return
		}
		err = nil
	}

	err = c.Validate()
	return
}

// Validate checks the ranges of all numeric settings and the hash family name.
func (c Main) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	kf := c.KeywordFilter
	check(kf.ExpectedItems > 0, "keywordFilter.expectedItems must be positive, got %d", kf.ExpectedItems)
	check(kf.FalsePositiveRate > 0 && kf.FalsePositiveRate < 1, "keywordFilter.falsePositiveRate must be in (0, 1), got %v", kf.FalsePositiveRate)
	_, err := c.HashFamily()
	check(err == nil, "keywordFilter.hashFamily must be %q or %q, got %q", HashFamilyClassic, HashFamilyFarm, kf.HashFamily)

	p := c.Policy
	inRange := func(v int) bool { return v >= reputation.MinScore && v <= reputation.MaxScore }
	check(inRange(p.NeutralScore), "policy.neutralScore out of range: %d", p.NeutralScore)
	check(inRange(p.ReportedDomainScore), "policy.reportedDomainScore out of range: %d", p.ReportedDomainScore)
	check(inRange(p.WhitelistedDomainScore), "policy.whitelistedDomainScore out of range: %d", p.WhitelistedDomainScore)
	check(p.SpamReportPenalty >= 0 && p.LegitimateReportReward >= 0 && p.SeverityPenalty >= 0, "policy report weights must not be negative")
	check(p.KeywordMatchWeight >= 0, "policy.keywordMatchWeight must not be negative, got %d", p.KeywordMatchWeight)
	check(p.KeywordWeight >= 0 && p.DomainWeight >= 0, "policy score weights must not be negative")
	check(p.BlacklistThreshold <= p.SuspiciousThreshold && p.SuspiciousThreshold <= p.TrustedThreshold,
		"policy status thresholds must be ordered, got %d, %d, %d", p.BlacklistThreshold, p.SuspiciousThreshold, p.TrustedThreshold)
	check(p.HighConfidenceBelow <= p.HighConfidenceAbove, "policy.highConfidenceBelow must not exceed policy.highConfidenceAbove")

	if len(problems) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// HashFamily returns the keyword filter hash family named by the configuration.
func (c Main) HashFamily() (bloom.HashFamily, error) {
	switch c.KeywordFilter.HashFamily {
	case HashFamilyClassic, "":
		return bloom.ClassicFamily, nil
	case HashFamilyFarm:
		return bloom.FarmFamily, nil
	}
	return nil, fmt.Errorf("%w: unknown hash family %q", ErrInvalidConfig, c.KeywordFilter.HashFamily)
}

// NewKeywordFilter creates the keyword membership filter described by the configuration.
func (c Main) NewKeywordFilter() (*bloom.Filter, error) {
	family, err := c.HashFamily()
	if err != nil {
		return nil, err
	}
	return bloom.New(c.KeywordFilter.ExpectedItems, c.KeywordFilter.FalsePositiveRate, bloom.WithHashFamily(family))
}
