package bloom

import "math/bits"

const wordSize = 64

// bitset is a fixed-length bit array packed into 64-bit words, lowest bit first.
type bitset struct {
	words []uint64
	size  uint32
}

func newBitset(size uint32) bitset {
	return bitset{
		words: make([]uint64, (uint64(size)+wordSize-1)/wordSize),
		size:  size,
	}
}

func (b *bitset) set(i uint32) {
	b.words[i/wordSize] |= 1 << (i % wordSize)
}

func (b *bitset) test(i uint32) bool {
	return b.words[i/wordSize]&(1<<(i%wordSize)) != 0
}

func (b *bitset) count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

func (b *bitset) reset() {
	for i := range b.words {
		b.words[i] = 0
	}
}
