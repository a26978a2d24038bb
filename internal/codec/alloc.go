package codec

import (
	"fmt"
	"sync"

	"kiwi/internal/gen"
)

// Allocator supplies the fresh record a STRUCT or MESSAGE decode fills in.
// The allocator owns the record's lifetime; the codec never releases it.
type Allocator interface {
	Alloc() *Record
}

// AllocatorFunc adapts a function to Allocator.
type AllocatorFunc func() *Record

func (f AllocatorFunc) Alloc() *Record { return f() }

type defaultAllocator struct {
	def *gen.DefPlan
}

func (a defaultAllocator) Alloc() *Record { return NewRecord(a.def) }

// RecordPool recycles records of one definition.
type RecordPool struct {
	def  *gen.DefPlan
	pool sync.Pool
}

// NewRecordPool returns a pool for the named STRUCT or MESSAGE.
func NewRecordPool(plan *gen.Plan, typeName string) (*RecordPool, error) {
	def, ok := plan.Def(typeName)
	if !ok || !isRecordKind(def) {
		return nil, fmt.Errorf("%w: %q is not a struct or message", ErrUnknownType, typeName)
	}
	p := &RecordPool{def: def}
	p.pool.New = func() any { return NewRecord(def) }
	return p, nil
}

// Alloc returns a cleared record.
func (p *RecordPool) Alloc() *Record {
	r, ok := p.pool.Get().(*Record)
	if !ok {
		return NewRecord(p.def)
	}
	r.Reset()
	return r
}

// Release hands a record back. Records of other definitions are dropped.
func (p *RecordPool) Release(r *Record) {
	if r == nil || r.def != p.def {
		return
	}
	p.pool.Put(r)
}
