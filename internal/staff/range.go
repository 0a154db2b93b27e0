package staff

import "fmt"

// Range limits how far outside the staff a note may fall, in ledger lines.
type Range struct {
	Above int
	Below int
}

// DefaultRange allows two ledger lines on either side.
var DefaultRange = Range{Above: 2, Below: 2}

// Validate checks both counts are within 0..MaxLedgerLines.
func (r Range) Validate() error {
	if r.Above < 0 || r.Above > MaxLedgerLines {
		return fmt.Errorf("ledger lines above must be between 0 and %d, got %d", MaxLedgerLines, r.Above)
	}
	if r.Below < 0 || r.Below > MaxLedgerLines {
		return fmt.Errorf("ledger lines below must be between 0 and %d, got %d", MaxLedgerLines, r.Below)
	}
	return nil
}

// Bounds returns the inclusive lowest and highest legal positions. A zero
// count clamps that side to the staff edge.
func (r Range) Bounds() (lo, hi int) {
	lo, hi = BottomLine, TopLine
	if r.Below > 0 {
		lo = BottomLine - 2*r.Below
	}
	if r.Above > 0 {
		hi = TopLine + 2*r.Above
	}
	return lo, hi
}

// Positions returns every line and space position within the range.
func (r Range) Positions() []int {
	lo, hi := r.Bounds()
	if hi < lo {
		return nil
	}
	out := make([]int, 0, hi-lo+1)
	for p := lo; p <= hi; p++ {
		out = append(out, p)
	}
	return out
}
