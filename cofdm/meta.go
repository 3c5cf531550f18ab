package cofdm

import (
	"github.com/jeongseonghan/cofdmtv/internal/bch"
	"github.com/jeongseonghan/cofdmtv/internal/bitops"
	"github.com/jeongseonghan/cofdmtv/internal/crc"
)

// maxCallSignChars is the longest call sign base37 packs.
const maxCallSignChars = 9

// base37Digit maps one call-sign rune to its base-37 digit, matching the
// reference encoder's base37_map: 0 for blank/pad, 1-10 for '0'-'9', 11-36
// for A-Z/a-z. ok is false for any character outside [A-Za-z0-9], space
// included; callers skip spaces before calling it.
func base37Digit(r rune) (digit uint64, ok bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint64(r-'0') + 1, true
	case r >= 'a' && r <= 'z':
		return uint64(r-'a') + 11, true
	case r >= 'A' && r <= 'Z':
		return uint64(r-'A') + 11, true
	default:
		return 0, false
	}
}

// base37 packs up to 9 alphanumeric characters of a call sign into a
// base-37 integer, skipping (and not counting) spaces, folding letters to
// upper case, and padding any unused trailing positions with the blank
// digit 0. Any character that is not a letter, digit, or space is
// rejected: the caller must treat the entire transmission's header as the
// all-ones sentinel. The transmitter stays tolerant here; only the receiver
// discriminates, via its CRC-16 check.
func base37(callSign string) (value uint64, ok bool) {
	count := 0
	for _, r := range callSign {
		if r == 0 {
			break // NUL terminator
		}
		if r == ' ' {
			continue // skipped, not counted
		}
		if count >= maxCallSignChars {
			break
		}
		d, digitOK := base37Digit(r)
		if !digitOK {
			return 0, false
		}
		value = value*37 + d
		count++
	}
	for ; count < maxCallSignChars; count++ {
		value *= 37
	}
	return value, true
}

// callSignDigits returns each of the 9 call-sign positions' base-37 digit
// (0 for blank/pad or any invalid character), used by the fancy header to
// look up glyph rows independent of whether the packed metadata word is
// valid.
func callSignDigits(callSign string) [maxCallSignChars]int {
	var digits [maxCallSignChars]int
	pos := 0
	for _, r := range callSign {
		if r == 0 {
			break
		}
		if r == ' ' {
			continue
		}
		if pos >= maxCallSignChars {
			break
		}
		d, ok := base37Digit(r)
		if ok {
			digits[pos] = int(d)
		}
		pos++
	}
	return digits
}

// invalidMeta is the sentinel all-ones metadata word an invalid call sign
// produces: chosen as the unsigned 64-bit all-ones pattern rather than a
// sign-extended value, since Go's uint64 metadata word has no signed
// representation to extend from (see DESIGN.md).
const invalidMeta = ^uint64(0)

// metaWord computes the 64-bit metadata word: (base37(callSign) << 8) |
// operationMode, or the all-ones sentinel if callSign contains a character
// outside the call-sign alphabet.
func metaWord(callSign string, operationMode int) uint64 {
	call, ok := base37(callSign)
	if !ok {
		return invalidMeta
	}
	return (call << 8) | uint64(operationMode&0xFF)
}

// buildHeaderBits assembles the 71-bit systematic BCH header: the low 55
// bits of meta (MSB first) followed by the 16-bit CRC-16 of meta<<9 (MSB
// first), BCH-encodes it, and returns all 255 bits (message + parity) as
// ±1 NRZ samples ready to place on the preamble symbol's carriers.
func buildHeaderBits(enc *bch.Encoder, meta uint64) [255]int8 {
	var msg [9]byte
	for i := 0; i < 55; i++ {
		bit := int((meta >> uint(54-i)) & 1)
		bitops.SetBEBit(msg[:], i, bit)
	}

	crcEngine := crc.NewHeader16()
	crcEngine.UpdateBitsWide(meta, 64)
	crc16 := crcEngine.UpdateBitsWide(0, 9)
	for i := 0; i < 16; i++ {
		bit := int((crc16 >> uint(15-i)) & 1)
		bitops.SetBEBit(msg[:], 55+i, bit)
	}

	var parity [bch.ParityBits / 8]byte
	enc.Encode(msg, &parity)

	var bits [255]int8
	for i := 0; i < bch.K; i++ {
		bits[i] = nrz(bitops.GetBEBit(msg[:], i))
	}
	for i := 0; i < bch.ParityBits; i++ {
		bits[bch.K+i] = nrz(bitops.GetBEBit(parity[:], i))
	}
	return bits
}

// nrz converts a 0/1 bit to its ±1 soft value: 0 -> +1, 1 -> -1.
func nrz(bit int) int8 {
	if bit != 0 {
		return -1
	}
	return 1
}
