// Package modes holds the per-operation-mode rate/modulation table: which
// frozen-bit set, how many payload carriers, how many OFDM symbols, and
// which PSK order each of the eight operation modes selects.
package modes

import "github.com/jeongseonghan/cofdmtv/internal/tables"

// FrozenSet names which polar frozen-bit table a mode uses.
type FrozenSet int

const (
	// FrozenSetA is frozen_64800_43072, shared by modes 6-9.
	FrozenSetA FrozenSet = iota
	// FrozenSetB is frozen_64512_43072, shared by modes 10-13.
	FrozenSetB
)

// Params is one row of the operation-mode table.
type Params struct {
	PayCarCnt    int // payload carriers per OFDM symbol
	SymbolCount  int // number of payload symbols in the transmission
	ModBits      int // bits per PSK symbol (2 = QPSK, 3 = 8-PSK)
	ConsBits     int // polar code bits after shortening
	MesgBits     int // polar message length (payload + CRC + zero padding)
	Frozen       FrozenSet
}

// table is indexed by operation_mode; mode 0 and modes outside [6,13] have
// no entry and are handled by the caller (silence-only / rejected).
var table = map[int]Params{
	6:  {PayCarCnt: 432, SymbolCount: 50, ModBits: 3, ConsBits: 64800, MesgBits: 43808, Frozen: FrozenSetA},
	7:  {PayCarCnt: 400, SymbolCount: 54, ModBits: 3, ConsBits: 64800, MesgBits: 43808, Frozen: FrozenSetA},
	8:  {PayCarCnt: 400, SymbolCount: 81, ModBits: 2, ConsBits: 64800, MesgBits: 43808, Frozen: FrozenSetA},
	9:  {PayCarCnt: 360, SymbolCount: 90, ModBits: 2, ConsBits: 64800, MesgBits: 43808, Frozen: FrozenSetA},
	10: {PayCarCnt: 512, SymbolCount: 42, ModBits: 3, ConsBits: 64512, MesgBits: 44096, Frozen: FrozenSetB},
	11: {PayCarCnt: 384, SymbolCount: 56, ModBits: 3, ConsBits: 64512, MesgBits: 44096, Frozen: FrozenSetB},
	12: {PayCarCnt: 384, SymbolCount: 84, ModBits: 2, ConsBits: 64512, MesgBits: 44096, Frozen: FrozenSetB},
	13: {PayCarCnt: 256, SymbolCount: 126, ModBits: 2, ConsBits: 64512, MesgBits: 44096, Frozen: FrozenSetB},
}

// DataBits is the fixed payload size in bits (43040 bits = 5380 bytes).
const DataBits = 43040

// PayloadBytes is DataBits/8, the fixed payload buffer size.
const PayloadBytes = DataBits / 8

// CRCBits is the number of non-frozen positions kept unshortened: the
// payload bits plus the 32-bit payload CRC.
const CRCBits = DataBits + 32

// Lookup returns the rate/modulation parameters for operation_mode, and
// whether the mode is a valid payload-carrying mode (6-13).
func Lookup(mode int) (Params, bool) {
	p, ok := table[mode]
	return p, ok
}

// IsSilence reports whether mode is the silence-only mode (0).
func IsSilence(mode int) bool {
	return mode == 0
}

// Valid reports whether mode is any mode configure() accepts: 0 or 6-13.
func Valid(mode int) bool {
	if IsSilence(mode) {
		return true
	}
	_, ok := table[mode]
	return ok
}

// FrozenBits returns the frozen-bit bitmap for the set this mode uses.
func (p Params) FrozenBits() *[tables.CodeSize / 32]uint32 {
	if p.Frozen == FrozenSetB {
		return &tables.FrozenB
	}
	return &tables.FrozenA
}

// ConsCnt is the number of complex constellation symbols the mode's
// polar-coded bits map to.
func (p Params) ConsCnt() int {
	return p.ConsBits / p.ModBits
}
