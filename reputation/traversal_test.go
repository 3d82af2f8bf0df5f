package reputation

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newDemoIndex() *Index {
	idx := NewIndex()
	for _, r := range []Record{
		{"spam-domain.com", 10},
		{"trusted-site.org", 95},
		{"suspicious-email.net", 25},
		{"legitimate-bank.com", 90},
		{"phishing-site.info", 5},
		{"newsletter-service.com", 70},
		{"malware-host.ru", 0},
		{"verified-sender.edu", 100},
	} {
		idx.Insert(r.Domain, r.Score)
	}
	return idx
}

func TestBelowThreshold(t *testing.T) {
	// Arrange
	idx := newDemoIndex()

	// Act
	var got []string
	for e := range idx.Below(30) {
		got = append(got, e.Domain)
	}

	// Assert
	assert.Equal(t, []string{"malware-host.ru", "phishing-site.info", "spam-domain.com", "suspicious-email.net"}, got)
}

func TestFilterIsRestartable(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	idx := newDemoIndex()
	trusted := idx.Filter(func(e Entry) bool { return e.ReputationScore >= 80 })

	// Act
	var first, second []string
	for e := range trusted {
		first = append(first, e.Domain)
	}
	idx.UpdateScore("newsletter-service.com", 85)
	for e := range trusted {
		second = append(second, e.Domain)
	}

	// Assert
	assert.Equal([]string{"legitimate-bank.com", "trusted-site.org", "verified-sender.edu"}, first)
	assert.Equal([]string{"legitimate-bank.com", "newsletter-service.com", "trusted-site.org", "verified-sender.edu"}, second)
}

func TestFilterStopsEarly(t *testing.T) {
	idx := newDemoIndex()

	var got []string
	for e := range idx.All() {
		got = append(got, e.Domain)
		if len(got) == 2 {
			break
		}
	}

	assert.Equal(t, []string{"legitimate-bank.com", "malware-host.ru"}, got)
}

func TestAllOnEmptyIndex(t *testing.T) {
	n := 0
	for range NewIndex().All() {
		n++
	}

	assert.Equal(t, 0, n)
}

func TestAllCarriesCounters(t *testing.T) {
	idx := newDemoIndex()
	idx.IncrementSpamReports("spam-domain.com", 2)

	for e := range idx.All() {
		if e.Domain == "spam-domain.com" {
			assert.Equal(t, 2, e.SpamReports)
			assert.Equal(t, 0, e.ReputationScore)
			return
		}
	}
	t.Fatalf("spam-domain.com missing from traversal")
}

func TestDump(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	idx := NewIndex()
	idx.Insert("b.com", 50)
	idx.Insert("a.com", 80)
	idx.Insert("c.com", 20)
	var buf bytes.Buffer

	// Act
	err := idx.Dump(&buf)

	// Assert
	assert.Nil(err)
	expected := strings.Join([]string{
		"|-- [B] b.com: 50",
		"|   |-- [R] a.com: 80",
		"|   `-- [R] c.com: 20",
		"",
	}, "\n")
	assert.Equal(expected, buf.String())
}

func TestDumpEmpty(t *testing.T) {
	var buf bytes.Buffer

	err := NewIndex().Dump(&buf)

	assert.Nil(t, err)
	assert.Equal(t, "(empty)\n", buf.String())
}
