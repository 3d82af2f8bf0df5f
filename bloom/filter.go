package bloom

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidConfiguration is returned by New when the expected item count or the false positive rate is out of range.
var ErrInvalidConfiguration = errors.New("invalid bloom filter configuration")

// Filter is a fixed-size Bloom filter over normalized strings.
// Items are trimmed and lowercased before hashing, so "Casino " and "casino" are the same item.
// A Filter is not safe for concurrent use.
type Filter struct {
	bits          bitset
	numHashes     int
	family        HashFamily
	expectedItems int
	targetFPRate  float64
	itemsAdded    uint64
}

// Option configures a Filter.
type Option func(*Filter)

// WithHashFamily replaces the default ClassicFamily. Families with fewer than two functions are ignored.
func WithHashFamily(family HashFamily) Option {
	return func(f *Filter) {
		if len(family) >= 2 {
			f.family = family
		}
	}
}

// New creates a filter sized for expectedItems items at the target false positive rate.
// The bit array length m and the hash count k are derived as
//
//	m = ceil(-(n * ln p) / (ln 2)^2)
//	k = ceil((m / n) * ln 2)
func New(expectedItems int, falsePositiveRate float64, opts ...Option) (*Filter, error) {
	if expectedItems <= 0 {
		return nil, fmt.Errorf("%w: expected item count must be positive, got %d", ErrInvalidConfiguration, expectedItems)
	}
	if !(falsePositiveRate > 0 && falsePositiveRate < 1) {
		return nil, fmt.Errorf("%w: false positive rate must be in (0,1), got %v", ErrInvalidConfiguration, falsePositiveRate)
	}

	m := OptimalSize(expectedItems, falsePositiveRate)
	if m > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bits do not fit a 32-bit index", ErrInvalidConfiguration, m)
	}

	f := &Filter{
		bits:          newBitset(uint32(m)),
		numHashes:     OptimalHashCount(m, expectedItems),
		family:        ClassicFamily,
		expectedItems: expectedItems,
		targetFPRate:  falsePositiveRate,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// OptimalSize returns the bit array length for n items at false positive rate p.
func OptimalSize(n int, p float64) uint64 {
	return uint64(math.Ceil(-(float64(n) * math.Log(p)) / (math.Ln2 * math.Ln2)))
}

// OptimalHashCount returns the number of hash evaluations for m bits and n items.
func OptimalHashCount(m uint64, n int) int {
	k := int(math.Ceil(float64(m) / float64(n) * math.Ln2))
	if k < 1 {
		k = 1
	}
	return k
}

// Add inserts item. Items that are empty after normalization are ignored.
func (f *Filter) Add(item string) {
	item = normalize(item)
	if item == "" {
		return
	}
	f.eachIndex(item, func(i uint32) bool {
		f.bits.set(i)
		return true
	})
	f.itemsAdded++
}

// Contains reports whether item may have been added. False means item was definitely never added.
func (f *Filter) Contains(item string) bool {
	item = normalize(item)
	if item == "" {
		return false
	}
	found := true
	f.eachIndex(item, func(i uint32) bool {
		found = f.bits.test(i)
		return found
	})
	return found
}

// Indexes returns the bit positions item maps to, in hash evaluation order. It returns nil for an empty item.
func (f *Filter) Indexes(item string) []uint32 {
	item = normalize(item)
	if item == "" {
		return nil
	}
	idx := make([]uint32, 0, f.numHashes)
	f.eachIndex(item, func(i uint32) bool {
		idx = append(idx, i)
		return true
	})
	return idx
}

// Clear resets every bit and the added-items counter.
func (f *Filter) Clear() {
	f.bits.reset()
	f.itemsAdded = 0
}

// eachIndex calls fn with each of the k bit positions of a normalized item until fn returns false.
func (f *Filter) eachIndex(item string, fn func(uint32) bool) {
	nf := len(f.family)
	for i := 0; i < f.numHashes; i++ {
		h := f.family[i%nf](item, uint32(i/nf))
		if !fn(h % f.bits.size) {
			return
		}
	}
}

func normalize(item string) string {
	return strings.ToLower(strings.TrimSpace(item))
}
