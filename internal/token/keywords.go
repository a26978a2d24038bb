package token

// Keyword is a contextual keyword of the schema language.
type Keyword uint8

const (
	KwNone Keyword = iota
	KwPackage
	KwEnum
	KwSmol
	KwPick
	KwStruct
	KwMessage
	KwEntity
	KwUnion
	KwAlias
	KwFrom
)

var keywords = map[string]Keyword{
	"package": KwPackage,
	"enum":    KwEnum,
	"smol":    KwSmol,
	"pick":    KwPick,
	"struct":  KwStruct,
	"message": KwMessage,
	"entity":  KwEntity,
	"union":   KwUnion,
	"alias":   KwAlias,
	"from":    KwFrom,
}

var keywordNames = func() map[Keyword]string {
	out := make(map[Keyword]string, len(keywords))
	for name, kw := range keywords {
		out[kw] = name
	}
	return out
}()

// LookupKeyword возвращает ключевое слово и bool, если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(ident string) (Keyword, bool) {
	k, ok := keywords[ident]
	return k, ok
}

func (k Keyword) String() string {
	if name, ok := keywordNames[k]; ok {
		return name
	}
	return "<none>"
}
