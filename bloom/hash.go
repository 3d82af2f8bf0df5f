package bloom

import (
	"github.com/cespare/xxhash/v2"
	farmhash "github.com/leemcloughlin/gofarmhash"
)

// HashFunc maps a normalized item and a seed to a 32-bit value. It only needs to mix well; it is not meant to be collision resistant.
type HashFunc func(item string, seed uint32) uint32

// HashFamily is an ordered set of structurally different hash functions.
// Hash evaluation i uses function i mod len(family) with seed i div len(family).
type HashFamily []HashFunc

// ClassicFamily is the default family: four simple byte mixers.
var ClassicFamily = HashFamily{murmurMix, fnv1a, djb2, sdbm}

// FarmFamily uses farmhash and xxhash, both with native seed support.
var FarmFamily = HashFamily{farm32, xxhash32}

// murmurMix folds each byte in with the MurmurHash2 multiplier and a right shift.
func murmurMix(item string, seed uint32) uint32 {
	h := seed
	for i := 0; i < len(item); i++ {
		h ^= uint32(item[i])
		h *= 0x5bd1e995
		h ^= h >> 15
	}
	return h
}

// fnv1a is 32-bit FNV-1a with the seed added to the offset basis.
func fnv1a(item string, seed uint32) uint32 {
	const (
		offset = 0x811c9dc5
		prime  = 0x01000193
	)
	h := uint32(offset) + seed
	for i := 0; i < len(item); i++ {
		h ^= uint32(item[i])
		h *= prime
	}
	return h
}

func djb2(item string, seed uint32) uint32 {
	h := 5381 + seed
	for i := 0; i < len(item); i++ {
		h = h<<5 + h + uint32(item[i])
	}
	return h
}

func sdbm(item string, seed uint32) uint32 {
	h := seed
	for i := 0; i < len(item); i++ {
		h = uint32(item[i]) + h<<6 + h<<16 - h
	}
	return h
}

func farm32(item string, seed uint32) uint32 {
	return farmhash.Hash32WithSeed([]byte(item), seed)
}

func xxhash32(item string, seed uint32) uint32 {
	d := xxhash.NewWithSeed(uint64(seed))
	d.WriteString(item)
	h := d.Sum64()
	return uint32(h ^ h>>32)
}
