// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package token defines the lexical tokens produced by pkg/lexer and
// consumed by pkg/parser: their kinds, their source positions, and the
// fixed keyword table used to disambiguate identifiers from keywords.
package token

import "fmt"

// Pos is a byte offset into a source buffer, together with the derived
// line and column used for diagnostics. Line and Col are both 1's based.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

// Span is the half-open byte range [Start, End), Start <= End, denoting the inter-token gap between two
// grammar productions. A span with Start == End is empty.
type Span struct {
	Start Pos
	End   Pos
}

// Kind identifies the lexical class of a Token.
type Kind int

const (
	EOF Kind = iota
	Ident
	Keyword
	Number
	String       // normal- or char-quoted string; Text holds the de-escaped payload,
	// Level is 0 for a "double" quote and 1 for a 'single' quote
	LongString // long-bracket string; Token.Level holds k
	Punct        // single- or multi-character punctuation/operator
	SheBang      // a leading #!... line, carried as a chunk-level token
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case Keyword:
		return "keyword"
	case Number:
		return "numeral"
	case String:
		return "string"
	case LongString:
		return "long string"
	case Punct:
		return "punctuation"
	case SheBang:
		return "shebang"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is one lexical unit scanned from a source buffer. Text carries the
// literal payload for kinds that need one (Ident, Keyword, Number, String,
// LongString, SheBang, Punct). Level is the count of '=' signs between the
// brackets for LongString, and the quote marker (0 for '"', 1 for '\'')
// for String; it is 0 for every other kind.
type Token struct {
	Kind  Kind
	Text  string
	Level int
	Span  Span
}

func (t Token) String() string {
	if t.Kind == Punct || t.Kind == Keyword {
		return t.Text
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

// Keywords is the fixed reserved-word table. A word lexed as Ident is
// re-tagged Keyword if it appears here (invariant 5 of the data model:
// keyword-vs-identifier disambiguation is purely lexical).
var Keywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "goto": true,
	"if": true, "in": true, "local": true, "nil": true, "not": true,
	"or": true, "repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}

// Punctuation and operator spellings, longest first so the lexer's peek
// can always try the longest match before falling back to a shorter one.
const (
	Ellipsis    = "..."
	Concat      = ".."
	FloorDiv    = "//"
	ShiftLeft   = "<<"
	ShiftRight  = ">>"
	LE          = "<="
	GE          = ">="
	EQ          = "=="
	NE          = "~="
	DoubleColon = "::"
)
