package reputation

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func domains(t *Index) (dd []string) {
	for e := range t.All() {
		dd = append(dd, e.Domain)
	}
	return
}

func TestInsertThreeDomains(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	idx := NewIndex()

	// Act
	idx.Insert("b.com", 50)
	idx.Insert("a.com", 80)
	idx.Insert("c.com", 20)

	// Assert
	if diff := cmp.Diff([]string{"a.com", "b.com", "c.com"}, domains(idx)); diff != "" {
		t.Fatalf("Unexpected traversal order (-want +got):\n%s", diff)
	}
	assert.LessOrEqual(idx.Height(), 2)
	ok, violations := idx.VerifyInvariants()
	assert.True(ok)
	assert.Empty(violations)
	assert.Equal(3, idx.Len())
}

func TestInsertAscendingRunRotates(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	idx := NewIndex()

	// Act
	idx.Insert("a.com", 10)
	idx.Insert("b.com", 20)
	idx.Insert("c.com", 30)

	// Assert
	root := idx.nodes[idx.root]
	assert.Equal("b.com", root.domain)
	assert.Equal(Black, root.color)
	assert.Equal(Red, idx.nodes[root.left].color)
	assert.Equal(Red, idx.nodes[root.right].color)
	assert.Equal(2, idx.Height())
}

func TestInsertInnerGrandchildDoubleRotation(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	idx := NewIndex()

	// Act
	idx.Insert("c.com", 10)
	idx.Insert("a.com", 20)
	idx.Insert("b.com", 30)

	// Assert
	assert.Equal("b.com", idx.nodes[idx.root].domain)
	assert.Equal([]string{"a.com", "b.com", "c.com"}, domains(idx))
	ok, _ := idx.VerifyInvariants()
	assert.True(ok)
}

func TestInvariantsHoldAfterEveryInsert(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	r := rand.New(rand.NewSource(7))
	idx := NewIndex()
	inserted := map[string]bool{}

	for i := 0; i < 2000; i++ {
		// Act
		d := fmt.Sprintf("host-%d.example", r.Intn(1500))
		idx.Insert(d, r.Intn(101))
		inserted[d] = true

		// Assert
		ok, violations := idx.VerifyInvariants()
		if !ok {
			t.Fatalf("Invariants broken after inserting %q: %v", d, violations)
		}
	}

	assert.Equal(len(inserted), idx.Len())
	got := domains(idx)
	assert.True(slices.IsSorted(got))
	assert.Len(got, len(inserted))
}

func TestHeightStaysLogarithmic(t *testing.T) {
	// Arrange
	idx := NewIndex()
	const n = 4096

	// Act
	for i := 0; i < n; i++ {
		idx.Insert(fmt.Sprintf("d%06d.net", i), 50)
	}

	// Assert: a red-black tree with n nodes has height at most 2*log2(n+1).
	assert.LessOrEqual(t, idx.Height(), 2*13)
	ok, _ := idx.VerifyInvariants()
	assert.True(t, ok)
}

func TestSearch(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	idx := NewIndex()
	idx.Insert("gmail.com", 95)
	idx.Insert("spam-domain.net", 10)

	// Act
	e, found := idx.Search("gmail.com")
	_, missing := idx.Search("nonexistent.com")

	// Assert
	assert.True(found)
	assert.Equal("gmail.com", e.Domain)
	assert.Equal(95, e.ReputationScore)
	assert.False(missing)
}

func TestSearchIsCaseSensitive(t *testing.T) {
	idx := NewIndex()
	idx.Insert("Example.com", 70)

	_, found := idx.Search("example.com")

	assert.False(t, found)
}

func TestSearchEmptyIndex(t *testing.T) {
	idx := NewIndex()

	_, found := idx.Search("a.com")

	assert.False(t, found)
	assert.Equal(t, 0, idx.Height())
}

func TestReinsertOverwritesScoreOnly(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	idx := NewIndex()
	idx.Insert("b.com", 50)
	idx.Insert("a.com", 80)
	idx.IncrementSpamReports("b.com", 2)
	before := idx.nodes[idx.root]

	// Act
	e := idx.Insert("b.com", 77)

	// Assert
	assert.Equal(2, idx.Len())
	assert.Equal(77, e.ReputationScore)
	assert.Equal(2, e.SpamReports)
	after := idx.nodes[idx.root]
	assert.Equal(before.left, after.left)
	assert.Equal(before.right, after.right)
	assert.Equal(before.color, after.color)
	ok, _ := idx.VerifyInvariants()
	assert.True(ok)
}

func TestInsertClampsScore(t *testing.T) {
	idx := NewIndex()

	high := idx.Insert("high.com", 250)
	low := idx.Insert("low.com", -3)

	assert.Equal(t, 100, high.ReputationScore)
	assert.Equal(t, 0, low.ReputationScore)
}

func TestUpdateScore(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	idx := NewIndex()
	idx.Insert("spam-domain.com", 10)

	// Act
	updated := idx.UpdateScore("spam-domain.com", 5)
	clampedHigh := idx.UpdateScore("spam-domain.com", 101)
	e, _ := idx.Search("spam-domain.com")
	missing := idx.UpdateScore("nonexistent.com", 20)

	// Assert
	assert.True(updated)
	assert.True(clampedHigh)
	assert.Equal(100, e.ReputationScore)
	assert.False(missing)
	assert.Equal(1, idx.Len())
}

func TestIncrementSpamReports(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	idx := NewIndex()
	idx.Insert("suspicious-email.net", 25)

	// Act
	score, ok := idx.IncrementSpamReports("suspicious-email.net", 3)

	// Assert
	assert.True(ok)
	assert.Equal(10, score)
	e, _ := idx.Search("suspicious-email.net")
	assert.Equal(3, e.SpamReports)

	score, _ = idx.IncrementSpamReports("suspicious-email.net", 10)
	assert.Equal(0, score)
}

func TestIncrementLegitimateReports(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	idx := NewIndex()
	idx.Insert("trusted-site.org", 95)

	// Act
	score, ok := idx.IncrementLegitimateReports("trusted-site.org", 1)
	clamped, _ := idx.IncrementLegitimateReports("trusted-site.org", 5)

	// Assert
	assert.True(ok)
	assert.Equal(98, score)
	assert.Equal(100, clamped)
	e, _ := idx.Search("trusted-site.org")
	assert.Equal(6, e.LegitimateReports)
}

func TestIncrementAbsentDomain(t *testing.T) {
	idx := NewIndex()

	_, spamOK := idx.IncrementSpamReports("ghost.com", 1)
	_, legitOK := idx.IncrementLegitimateReports("ghost.com", 1)

	assert.False(t, spamOK)
	assert.False(t, legitOK)
	assert.Equal(t, 0, idx.Len())
}

func TestSpamThenLegitimateReportsStayInRange(t *testing.T) {
	assert := assert.New(t)

	for _, start := range []int{0, 3, 50, 97, 100} {
		for _, amount := range []int{1, 4, 25} {
			// Arrange
			idx := NewIndex()
			idx.Insert("x.org", start)

			// Act
			afterSpam, _ := idx.IncrementSpamReports("x.org", amount)
			afterLegit, _ := idx.IncrementLegitimateReports("x.org", amount)

			// Assert
			assert.True(afterSpam >= MinScore && afterSpam <= MaxScore)
			assert.True(afterLegit >= MinScore && afterLegit <= MaxScore)
			e, _ := idx.Search("x.org")
			assert.Equal(amount, e.SpamReports)
			assert.Equal(amount, e.LegitimateReports)
		}
	}
}

func TestNonPositiveReportAmountsAreIgnored(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	idx := NewIndex()
	idx.Insert("a.com", 50)

	// Act
	afterSpam, spamOK := idx.IncrementSpamReports("a.com", -4)
	afterLegit, legitOK := idx.IncrementLegitimateReports("a.com", -9)
	afterZero, _ := idx.IncrementSpamReports("a.com", 0)

	// Assert
	assert.True(spamOK)
	assert.True(legitOK)
	assert.Equal(50, afterSpam)
	assert.Equal(50, afterLegit)
	assert.Equal(50, afterZero)
	e, _ := idx.Search("a.com")
	assert.Equal(0, e.SpamReports)
	assert.Equal(0, e.LegitimateReports)
}

func TestHugeReportAmountsSaturate(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	idx := NewIndex()
	idx.Insert("spam.com", 90)
	idx.Insert("good.com", 10)

	// Act
	spamScore, _ := idx.IncrementSpamReports("spam.com", math.MaxInt/3)
	legitScore, _ := idx.IncrementLegitimateReports("good.com", math.MaxInt/3)
	idx.IncrementSpamReports("spam.com", math.MaxInt)

	// Assert
	assert.Equal(MinScore, spamScore)
	assert.Equal(MaxScore, legitScore)
	e, _ := idx.Search("spam.com")
	assert.Equal(MinScore, e.ReputationScore)
	assert.Equal(math.MaxInt, e.SpamReports)
	e, _ = idx.Search("good.com")
	assert.Equal(math.MaxInt/3, e.LegitimateReports)
}

func TestHugeReportWeightsSaturate(t *testing.T) {
	idx := NewIndex(WithReportWeights(math.MaxInt, math.MaxInt))
	idx.Insert("a.com", 50)

	spam, _ := idx.IncrementSpamReports("a.com", 3)
	legit, _ := idx.IncrementLegitimateReports("a.com", 3)

	assert.Equal(t, MinScore, spam)
	assert.Equal(t, MaxScore, legit)
}

func TestCustomReportWeights(t *testing.T) {
	idx := NewIndex(WithReportWeights(10, 1))
	idx.Insert("a.com", 50)

	spam, _ := idx.IncrementSpamReports("a.com", 2)
	legit, _ := idx.IncrementLegitimateReports("a.com", 2)

	assert.Equal(t, 30, spam)
	assert.Equal(t, 32, legit)
}

func TestClear(t *testing.T) {
	assert := assert.New(t)

	// Arrange
	idx := NewIndex()
	for i := 0; i < 50; i++ {
		idx.Insert(fmt.Sprintf("d%d.com", i), i)
	}

	// Act
	idx.Clear()

	// Assert
	assert.Equal(0, idx.Len())
	assert.Equal(0, idx.Height())
	assert.Empty(domains(idx))
	_, found := idx.Search("d1.com")
	assert.False(found)

	idx.Insert("b.com", 50)
	idx.Insert("a.com", 80)
	idx.Insert("c.com", 20)
	require.Equal(t, []string{"a.com", "b.com", "c.com"}, domains(idx))
	ok, _ := idx.VerifyInvariants()
	assert.True(ok)
}
