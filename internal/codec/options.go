package codec

// Option configures Compile.
type Option func(*options)

type options struct {
	allocators   map[string]Allocator
	lenientEnums bool
}

// WithAllocator delegates record construction for typeName to a.
func WithAllocator(typeName string, a Allocator) Option {
	return func(o *options) {
		if o.allocators == nil {
			o.allocators = make(map[string]Allocator)
		}
		o.allocators[typeName] = a
	}
}

// WithLenientEnums makes decode leave an enum field absent (or an empty
// array element) for ordinals the enum does not declare instead of failing.
func WithLenientEnums() Option {
	return func(o *options) {
		o.lenientEnums = true
	}
}
