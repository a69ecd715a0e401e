package diag

import (
	"fmt"
	"sort"
)

// DefaultCap bounds a bag when the caller does not choose a limit.
const DefaultCap = 256

// Bag accumulates diagnostics up to a fixed limit.
type Bag struct {
	items []Diagnostic
	max   uint16
}

// NewBag allocates a bag capped at max diagnostics. Non-positive or
// oversized limits fall back to DefaultCap.
func NewBag(max int) *Bag {
	if max <= 0 || max > int(^uint16(0)) {
		max = DefaultCap
	}
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   uint16(max),
	}
}

// Add appends a diagnostic, honoring the limit. It reports false when
// the bag is full and the diagnostic was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() uint16 {
	return b.max
}

// HasErrors reports whether the bag carries at least one error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether the bag carries at least one warning.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only view of the accumulated diagnostics; the
// slice aliases the bag's storage and must not be modified.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Sort orders diagnostics by item, then span, then code, giving the
// driver a deterministic output order independent of worker timing.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := &b.items[i], &b.items[j]
		if di.Item != dj.Item {
			return di.Item < dj.Item
		}
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		return di.Code < dj.Code
	})
}

// Merge copies every diagnostic from other, stamping the given item
// name on entries that do not carry one yet.
func (b *Bag) Merge(item string, other *Bag) {
	if other == nil {
		return
	}
	for _, d := range other.items {
		if d.Item == "" {
			d.Item = item
		}
		b.Add(d)
	}
}

func (b *Bag) String() string {
	return fmt.Sprintf("Bag(%d/%d)", len(b.items), b.max)
}
