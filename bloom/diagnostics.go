package bloom

import "math"

// Diagnostics is a point-in-time summary of a filter's configuration and fill level.
type Diagnostics struct {
	SizeBits                int     `json:"sizeBits"`
	HashFunctions           int     `json:"hashFunctions"`
	ItemsAdded              uint64  `json:"itemsAdded"`
	ExpectedItems           int     `json:"expectedItems"`
	TargetFalsePositiveRate float64 `json:"targetFalsePositiveRate"`

	// CapacityUsage is ItemsAdded as a percentage of ExpectedItems.
	CapacityUsage float64 `json:"capacityUsagePercent"`

	// BitFillRatio is the fraction of bits set, in [0,1].
	BitFillRatio float64 `json:"bitFillRatio"`

	// EstimatedFalsePositiveRate is (1 - e^(-k*n/m))^k for the n items added so far.
	EstimatedFalsePositiveRate float64 `json:"estimatedFalsePositiveRate"`
}

// Diagnostics reports the filter's size, hash count, fill level and estimated false positive rate.
func (f *Filter) Diagnostics() Diagnostics {
	m := float64(f.bits.size)
	return Diagnostics{
		SizeBits:                   int(f.bits.size),
		HashFunctions:              f.numHashes,
		ItemsAdded:                 f.itemsAdded,
		ExpectedItems:              f.expectedItems,
		TargetFalsePositiveRate:    f.targetFPRate,
		CapacityUsage:              float64(f.itemsAdded) / float64(f.expectedItems) * 100,
		BitFillRatio:               float64(f.bits.count()) / m,
		EstimatedFalsePositiveRate: EstimateFalsePositiveRate(f.numHashes, f.itemsAdded, f.bits.size),
	}
}

// EstimateFalsePositiveRate returns the textbook false positive estimate for k hashes, n items and m bits.
func EstimateFalsePositiveRate(k int, n uint64, m uint32) float64 {
	if n == 0 || m == 0 {
		return 0
	}
	return math.Pow(1-math.Exp(-float64(k)*float64(n)/float64(m)), float64(k))
}
