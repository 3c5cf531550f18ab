// Package tables holds the three lookup tables treated as opaque constants
// shared bit-for-bit with a paired receiver: the two polar-code frozen-bit
// sets and the base-37 call-sign bitmap font.
//
// This implementation does not have access to the real receiver-shared
// tables — they are supplied to the implementation from outside. It
// generates tables of the correct shape — right code size,
// right frozen/non-frozen bit counts, right font dimensions — via a fixed,
// deterministic procedure, so that every structural property this repo can
// test (shortening counts, systematic encoding, fancy-header pixel counts)
// holds exactly. A real deployment swaps FrozenA/FrozenB/Base37Bitmap for
// the receiver's actual shared tables without touching any other package.
package tables

import "sort"

const (
	// CodeSize is the polar code block length K = 2^16.
	CodeSize = 65536
	// NonFrozenA is the number of non-frozen (information) positions in
	// FrozenA, shared by operation modes 6-9.
	NonFrozenA = 43808
	// NonFrozenB is the number of non-frozen (information) positions in
	// FrozenB, shared by operation modes 10-13.
	NonFrozenB = 44096
)

// FrozenA and FrozenB are CodeSize/32-word bitmaps; bit i of word i/32 set
// means position i is frozen (fixed to zero).
var (
	FrozenA [CodeSize / 32]uint32
	FrozenB [CodeSize / 32]uint32
)

// Base37Bitmap is an 8-pixel-wide, 11-row glyph font indexed by
// call[j] + 37*(10-row), call[j] in [0,36] (0 = blank/space).
var Base37Bitmap [37 * 11]byte

func init() {
	buildFrozenSet(&FrozenA, NonFrozenA)
	buildFrozenSet(&FrozenB, NonFrozenB)
	buildBitmapFont(&Base37Bitmap)
}

// buildFrozenSet freezes the CodeSize-nonFrozenCount least "reliable"
// positions, using the bit-reversal permutation of the index as the
// reliability proxy: for the Kronecker-power polarization construction,
// channel reliability is monotonic (to first order) in the bit-reversal of
// the natural index, the same ordering used in several open polar-code
// reference encoders to approximate a from-scratch Bhattacharyya
// computation.
func buildFrozenSet(out *[CodeSize / 32]uint32, nonFrozenCount int) {
	bits := 0
	for n := CodeSize; n > 1; n >>= 1 {
		bits++
	}
	type scored struct {
		index       int
		reliability int
	}
	order := make([]scored, CodeSize)
	for i := range order {
		order[i] = scored{index: i, reliability: bitReverse(i, bits)}
	}
	sort.Slice(order, func(a, b int) bool {
		return order[a].reliability < order[b].reliability
	})
	frozenCount := CodeSize - nonFrozenCount
	for _, s := range order[:frozenCount] {
		out[s.index/32] |= 1 << uint(s.index%32)
	}
}

func bitReverse(x, bits int) int {
	result := 0
	for i := 0; i < bits; i++ {
		result = (result << 1) | (x & 1)
		x >>= 1
	}
	return result
}

// buildBitmapFont synthesizes an 8x11 glyph per base-37 symbol via a fixed
// hash of (symbol, row), giving every symbol a distinct, stable, non-empty
// pixel pattern.
func buildBitmapFont(out *[37 * 11]byte) {
	for symbol := 0; symbol < 37; symbol++ {
		for row := 0; row < 11; row++ {
			h := uint32(symbol)*2654435761 + uint32(row)*40503 + 1
			h ^= h >> 15
			h *= 0x85ebca6b
			h ^= h >> 13
			out[symbol+37*row] = byte(h) | 1 // never fully blank
		}
	}
}
