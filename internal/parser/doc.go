// Package parser builds an ast.Schema from a token stream.
//
// Grammar, with keywords recognized contextually:
//
//	schema     = [ "package" Ident ";" ] { definition } EOF
//	definition = enum | smol | struct | message | entity | union | alias | pick
//	enum       = ("enum" | "smol") Ident [ from ] "{" { Ident "=" Int ";" } "}"
//	struct     = "struct" Ident { "&" Ident } [ from ] "{" { Type ["[]"] Ident ";" } "}"
//	message    = ("message" | "entity") Ident [ from ]
//	             "{" { Type ["[]"] Ident "=" Int ["[!]"] ["[deprecated]"] ";" } "}"
//	union      = "union" Ident "=" Ident { "|" Ident } ( ";" | "{" Ident ";" "}" )
//	alias      = "alias" Ident "=" Ident ";"
//	pick       = "pick" Ident ":" Ident "{" { Ident ";" } "}"
//	from       = "from" '"' { token } '"'
//
// Only message fields may be deprecated. Parsing stops at the first error.
package parser
