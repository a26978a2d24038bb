package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an optionally signed decimal integer.
	IntLit
	// Assign represents '='.
	Assign
	// Colon represents ':'.
	Colon
	// Semicolon represents ';'.
	Semicolon
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// Brackets represents the array suffix '[]'.
	Brackets
	// Deprecated represents the '[deprecated]' marker.
	Deprecated
	// Required represents the '[!]' marker.
	Required
	// Quote represents '"'.
	Quote
	// Minus represents a lone '-' (only meaningful inside serializer paths).
	Minus
	// Amp represents '&'.
	Amp
	// Pipe represents '|'.
	Pipe
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	IntLit:     "IntLit",
	Assign:     "Assign",
	Colon:      "Colon",
	Semicolon:  "Semicolon",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	Brackets:   "Brackets",
	Deprecated: "Deprecated",
	Required:   "Required",
	Quote:      "Quote",
	Minus:      "Minus",
	Amp:        "Amp",
	Pipe:       "Pipe",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
