package diag

import (
	"cmp"
	"slices"
)

const maxBagItems = 0xFFFF

// Bag собирает диагностики одной сборки; сверх лимита Add их отбрасывает.
type Bag struct {
	items []Diagnostic
	limit int
}

// NewBag returns a bag holding at most limit diagnostics; limit <= 0 means
// the maximum.
func NewBag(limit int) *Bag {
	if limit <= 0 || limit > maxBagItems {
		limit = maxBagItems
	}
	return &Bag{items: make([]Diagnostic, 0, min(limit, 16)), limit: limit}
}

// Add reports false when the bag is already full.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.limit {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
}

func (b *Bag) Len() int { return len(b.items) }

// Items возвращает внутренний срез; вызывающий его не меняет.
func (b *Bag) Items() []Diagnostic { return b.items }

// Pointers returns pointers into the bag, for the formatters.
func (b *Bag) Pointers() []*Diagnostic {
	out := make([]*Diagnostic, len(b.items))
	for i := range b.items {
		out[i] = &b.items[i]
	}
	return out
}

// Merge appends everything from other. The per-file results were already
// limited, so the merged bag grows its limit instead of dropping them.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	b.limit = max(b.limit, min(len(b.items), maxBagItems))
}

// Sort orders by path, file and span, then puts errors before warnings.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Path, y.Path),
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}
