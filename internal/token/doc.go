// Package token defines lexical token kinds for the kiwi schema language.
// Invariants:
//   - Token.Text is exactly the source bytes covered by Token.Span.
//   - Token.Pos is the 1-based line/column of Span.Start.
//   - Keywords are contextual: the lexer always emits Ident for words and the
//     parser asks LookupKeyword. A field may therefore be called "message".
//   - Built-in type names (int, uint32, string, ...) are identifiers too.
//     They are recognized by the semantic layer, not the lexer.
package token
