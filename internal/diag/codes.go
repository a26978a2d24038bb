package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001

	// Парсерные
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynExpectIdentifier     Code = 2002
	SynExpectInteger        Code = 2003
	SynExpectPunct          Code = 2004
	SynInvalidInteger       Code = 2005
	SynDeprecatedNotAllowed Code = 2006
	SynDuplicatePickField   Code = 2007
	SynUnterminatedPath     Code = 2008

	// Семантические
	SemaInfo                      Code = 3000
	SemaDuplicateType             Code = 3001
	SemaReservedName              Code = 3002
	SemaUnknownType               Code = 3003
	SemaDiscriminatorOutsideUnion Code = 3004
	SemaDuplicateField            Code = 3005
	SemaDuplicateID               Code = 3006
	SemaNonPositiveID             Code = 3007
	SemaIDOutOfRange              Code = 3008
	SemaRecursiveStruct           Code = 3009
	SemaUnknownAliasTarget        Code = 3010
	SemaExtendNotStruct           Code = 3011
	SemaExtendCycle               Code = 3012
	SemaPickUnknownType           Code = 3013
	SemaPickUnknownField          Code = 3014
	SemaDuplicateEnumValue        Code = 3015

	// Генерация
	GenInfo                 Code = 4000
	GenUnsupportedFieldType Code = 4001
	GenInvalidUnionMember   Code = 4002
	GenEmitFailed           Code = 4003

	// I/O
	IOLoadFileError  Code = 5001
	IOWriteFileError Code = 5002

	// Проект
	ProjInfo             Code = 6000
	ProjManifestNotFound Code = 6001
	ProjInvalidManifest  Code = 6002
	ProjNoInputs         Code = 6003
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                   "Unknown error",
		LexInfo:                       "Lexical information",
		LexUnknownChar:                "Unexpected character",
		SynInfo:                       "Syntax information",
		SynUnexpectedToken:            "Unexpected token",
		SynExpectIdentifier:           "Expected identifier",
		SynExpectInteger:              "Expected integer",
		SynExpectPunct:                "Expected punctuation",
		SynInvalidInteger:             "Invalid integer",
		SynDeprecatedNotAllowed:       "Deprecation is only allowed in messages",
		SynDuplicatePickField:         "Duplicate field in pick",
		SynUnterminatedPath:           "Unterminated serializer path",
		SemaInfo:                      "Semantic information",
		SemaDuplicateType:             "Type defined twice",
		SemaReservedName:              "Reserved type name",
		SemaUnknownType:               "Unknown type",
		SemaDiscriminatorOutsideUnion: "discriminator is only available inside of unions",
		SemaDuplicateField:            "Duplicate field name",
		SemaDuplicateID:               "Duplicate field id",
		SemaNonPositiveID:             "Field id must be positive",
		SemaIDOutOfRange:              "Field id out of range",
		SemaRecursiveStruct:           "Recursive struct nesting",
		SemaUnknownAliasTarget:        "Unknown alias target",
		SemaExtendNotStruct:           "Extension target is not a struct",
		SemaExtendCycle:               "Extension cycle",
		SemaPickUnknownType:           "Unknown pick source type",
		SemaPickUnknownField:          "Unknown pick field",
		SemaDuplicateEnumValue:        "Duplicate enum value",
		GenInfo:                       "Generator information",
		GenUnsupportedFieldType:       "Field type has no wire encoding",
		GenInvalidUnionMember:         "Invalid union member",
		GenEmitFailed:                 "Code emission failed",
		IOLoadFileError:               "I/O load file error",
		IOWriteFileError:              "I/O write file error",
		ProjInfo:                      "Project information",
		ProjManifestNotFound:          "kiwi.toml not found",
		ProjInvalidManifest:           "Invalid kiwi.toml",
		ProjNoInputs:                  "No schema inputs",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
