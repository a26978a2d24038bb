// Package lexer splits schema text into tokens.
//
// Recognized: identifiers ([A-Za-z_][A-Za-z0-9_]*), optionally signed decimal
// integers, the punctuation = : ; { } & | " -, and the bracket markers [],
// [!] and [deprecated]. Whitespace and // line comments are skipped. The
// first unrecognized span aborts lexing with a LEX1001 *diag.Error.
package lexer
