package reputation

import "math"

// Color of a tree node.
type Color uint8

const (
	// Red nodes are freshly inserted or recolored by fixup.
	Red Color = iota
	// Black nodes count towards the black-height.
	Black
)

func (c Color) String() string {
	switch c {
	case Red:
		return "R"
	case Black:
		return "B"
	}
	return "?"
}

// Score bounds.
const (
	MinScore = 0
	MaxScore = 100
)

// Default weights applied per spam or legitimate report.
const (
	DefaultSpamPenalty      = 5
	DefaultLegitimateReward = 3
)

// nilIndex is the arena slot of the shared black sentinel. It stands in for every leaf and for the root's parent.
const nilIndex uint32 = 0

type node struct {
	domain            string
	score             int
	spamReports       int
	legitimateReports int
	color             Color
	left              uint32
	right             uint32
	parent            uint32
}

// Entry is a snapshot of one domain's reputation record.
type Entry struct {
	Domain            string
	ReputationScore   int
	SpamReports       int
	LegitimateReports int
	Color             Color
}

// Index is an ordered map from domain name to reputation, kept balanced as a red-black tree.
// Nodes live in a slice arena and link to each other by slot number; slot 0 is the sentinel.
// An Index is not safe for concurrent use.
type Index struct {
	nodes            []node
	root             uint32
	spamPenalty      int
	legitimateReward int
}

// Option configures an Index.
type Option func(*Index)

// WithReportWeights sets the score change applied per spam report and per legitimate report.
func WithReportWeights(spamPenalty, legitimateReward int) Option {
	return func(t *Index) {
		t.spamPenalty = spamPenalty
		t.legitimateReward = legitimateReward
	}
}

// NewIndex creates an empty reputation index.
func NewIndex(opts ...Option) *Index {
	t := &Index{
		spamPenalty:      DefaultSpamPenalty,
		legitimateReward: DefaultLegitimateReward,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.Clear()
	return t
}

// Clear drops every entry. The index behaves like a freshly constructed one afterwards.
func (t *Index) Clear() {
	t.nodes = append(t.nodes[:0], node{color: Black})
	t.root = nilIndex
}

// Len returns the number of domains in the index.
func (t *Index) Len() int {
	return len(t.nodes) - 1
}

// Insert adds domain with the given score and returns the stored entry.
// If the domain is already present only its score is overwritten; report counters and tree shape are left alone.
func (t *Index) Insert(domain string, initialScore int) Entry {
	score := clamp(initialScore)

	parent := nilIndex
	cur := t.root
	for cur != nilIndex {
		parent = cur
		n := &t.nodes[cur]
		switch {
		case domain < n.domain:
			cur = n.left
		case domain > n.domain:
			cur = n.right
		default:
			n.score = score
			return t.entry(cur)
		}
	}

	t.nodes = append(t.nodes, node{
		domain: domain,
		score:  score,
		color:  Red,
		left:   nilIndex,
		right:  nilIndex,
		parent: parent,
	})
	z := uint32(len(t.nodes) - 1)

	switch {
	case parent == nilIndex:
		t.root = z
	case domain < t.nodes[parent].domain:
		t.nodes[parent].left = z
	default:
		t.nodes[parent].right = z
	}

	t.insertFixup(z)
	return t.entry(z)
}

// InsertAll inserts every pair of records in order.
func (t *Index) InsertAll(records []Record) {
	for _, r := range records {
		t.Insert(r.Domain, r.Score)
	}
}

// Search looks up domain. The second result is false when the domain is not in the index.
func (t *Index) Search(domain string) (Entry, bool) {
	i := t.find(domain)
	if i == nilIndex {
		return Entry{}, false
	}
	return t.entry(i), true
}

// UpdateScore overwrites the score of an existing domain, clamped to [MinScore, MaxScore].
// Returns false when the domain is absent.
func (t *Index) UpdateScore(domain string, score int) bool {
	i := t.find(domain)
	if i == nilIndex {
		return false
	}
	t.nodes[i].score = clamp(score)
	return true
}

// IncrementSpamReports records amount spam reports against domain and lowers its score by the spam penalty per report.
// A non-positive amount changes nothing. Returns the new score, or false when the domain is absent.
func (t *Index) IncrementSpamReports(domain string, amount int) (int, bool) {
	i := t.find(domain)
	if i == nilIndex {
		return 0, false
	}
	n := &t.nodes[i]
	if amount <= 0 {
		return n.score, true
	}
	n.spamReports = addReports(n.spamReports, amount)
	n.score = clamp(n.score - scoreDelta(amount, t.spamPenalty))
	return n.score, true
}

// IncrementLegitimateReports records amount legitimate reports for domain and raises its score by the reward per report.
// A non-positive amount changes nothing. Returns the new score, or false when the domain is absent.
func (t *Index) IncrementLegitimateReports(domain string, amount int) (int, bool) {
	i := t.find(domain)
	if i == nilIndex {
		return 0, false
	}
	n := &t.nodes[i]
	if amount <= 0 {
		return n.score, true
	}
	n.legitimateReports = addReports(n.legitimateReports, amount)
	n.score = clamp(n.score + scoreDelta(amount, t.legitimateReward))
	return n.score, true
}

// addReports saturates at math.MaxInt instead of wrapping.
func addReports(count int, amount int) int {
	if count > math.MaxInt-amount {
		return math.MaxInt
	}
	return count + amount
}

// scoreDelta returns amount*weight with both factors capped at MaxScore. Any delta of MaxScore or more already pins the score.
func scoreDelta(amount int, weight int) int {
	return min(amount, MaxScore) * min(max(weight, 0), MaxScore)
}

func (t *Index) find(domain string) uint32 {
	cur := t.root
	for cur != nilIndex {
		n := &t.nodes[cur]
		switch {
		case domain < n.domain:
			cur = n.left
		case domain > n.domain:
			cur = n.right
		default:
			return cur
		}
	}
	return nilIndex
}

func (t *Index) entry(i uint32) Entry {
	n := &t.nodes[i]
	return Entry{
		Domain:            n.domain,
		ReputationScore:   n.score,
		SpamReports:       n.spamReports,
		LegitimateReports: n.legitimateReports,
		Color:             n.color,
	}
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
