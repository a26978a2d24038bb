package ast

// NativeTypes lists the built-in field types.
var NativeTypes = []string{
	"bool",
	"byte",
	"float",
	"int",
	"int8",
	"int16",
	"int32",
	"string",
	"uint",
	"uint8",
	"uint16",
	"uint32",
	"float32",
	"discriminator",
}

// ReservedNames cannot be used as definition names.
var ReservedNames = []string{"ByteBuffer", "package", "Allocator"}

// Discriminator is the pseudo-type naming a union's tag field.
const Discriminator = "discriminator"

var nativeSet = func() map[string]struct{} {
	out := make(map[string]struct{}, len(NativeTypes))
	for _, name := range NativeTypes {
		out[name] = struct{}{}
	}
	return out
}()

// IsNative reports whether name is a built-in type.
func IsNative(name string) bool {
	_, ok := nativeSet[name]
	return ok
}

// IsReserved reports whether name may not be used for a definition.
func IsReserved(name string) bool {
	for _, r := range ReservedNames {
		if r == name {
			return true
		}
	}
	return false
}
