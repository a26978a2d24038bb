package ast

import "fmt"

// DefKind is the kind of a schema definition.
type DefKind uint8

const (
	KindEnum DefKind = iota
	KindSmol
	KindStruct
	KindMessage
	KindUnion
	KindAlias
	KindEntity
	// KindPick exists only while parsing; resolved picks become KindStruct.
	KindPick
)

var kindNames = [...]string{
	KindEnum:    "ENUM",
	KindSmol:    "SMOL",
	KindStruct:  "STRUCT",
	KindMessage: "MESSAGE",
	KindUnion:   "UNION",
	KindAlias:   "ALIAS",
	KindEntity:  "ENTITY",
	KindPick:    "PICK",
}

func (k DefKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Keyword returns the schema keyword introducing a definition of this kind.
func (k DefKind) Keyword() string {
	switch k {
	case KindEnum:
		return "enum"
	case KindSmol:
		return "smol"
	case KindStruct:
		return "struct"
	case KindMessage:
		return "message"
	case KindUnion:
		return "union"
	case KindAlias:
		return "alias"
	case KindEntity:
		return "entity"
	case KindPick:
		return "pick"
	}
	return ""
}

// MarshalText renders the kind by name in JSON/YAML dumps.
func (k DefKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name produced by MarshalText.
func (k *DefKind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = DefKind(i) // #nosec G115 -- bounded by kindNames
			return nil
		}
	}
	return fmt.Errorf("unknown definition kind %q", text)
}

// IsMemberList reports whether the kind's fields are untyped name = value members.
func (k DefKind) IsMemberList() bool {
	return k == KindEnum || k == KindSmol
}

// HasExplicitIDs reports whether field values are written by the author
// rather than assigned by position.
func (k DefKind) HasExplicitIDs() bool {
	return k == KindMessage || k == KindEntity
}
