package gogen

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// exported turns a schema identifier into an exported Go identifier:
// underscores split words, every word is title-cased.
func exported(name string) string {
	// Caser хранит состояние, поэтому новый на каждый вызов
	titler := cases.Title(language.Und, cases.NoLower)
	var sb strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		sb.WriteString(titler.String(part))
	}
	if sb.Len() == 0 {
		return "X"
	}
	return sb.String()
}

// unexported lowers the first rune of an exported identifier.
func unexported(name string) string {
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// packageName makes a valid lower-case package clause from a schema package.
func packageName(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if r == '_' || unicode.IsLetter(r) || (sb.Len() > 0 && unicode.IsDigit(r)) {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "schema"
	}
	return sb.String()
}
