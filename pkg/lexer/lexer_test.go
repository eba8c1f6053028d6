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

package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/openconfig/gnmi/errdiff"

	"github.com/luafmt/luafmt/pkg/token"
)

// tok is a trimmed projection of token.Token used by the table below so
// expectations don't have to spell out Span/Pos for every case.
type tok struct {
	Kind  token.Kind
	Text  string
	Level int
}

func scanAll(t *testing.T, input string) []tok {
	t.Helper()
	l := New(input, "<test>")
	var got []tok
	for {
		tt := l.Next()
		got = append(got, tok{tt.Kind, tt.Text, tt.Level})
		if tt.Kind == token.EOF {
			break
		}
	}
	return got
}

func TestNext(t *testing.T) {
	tests := []struct {
		desc  string
		in    string
		want  []tok
	}{{
		desc: "empty input",
		in:   "",
		want: []tok{{token.EOF, "", 0}},
	}, {
		desc: "identifiers and keywords",
		in:   "local x = nil",
		want: []tok{
			{token.Keyword, "local", 0},
			{token.Ident, "x", 0},
			{token.Punct, "=", 0},
			{token.Keyword, "nil", 0},
			{token.EOF, "", 0},
		},
	}, {
		desc: "double-quoted string with escape",
		in:   `"a\nb"`,
		want: []tok{
			{token.String, "a\nb", 0},
			{token.EOF, "", 0},
		},
	}, {
		desc: "single-quoted string",
		in:   `'hi'`,
		want: []tok{
			{token.String, "hi", 1},
			{token.EOF, "", 0},
		},
	}, {
		desc: "hex byte escape decodes to a single byte",
		in:   `"\x41"`,
		want: []tok{
			{token.String, "A", 0},
			{token.EOF, "", 0},
		},
	}, {
		desc: "decimal byte escape decodes to a single byte",
		in:   `"\065\10"`,
		want: []tok{
			{token.String, "A\n", 0},
			{token.EOF, "", 0},
		},
	}, {
		desc: "long bracket string level 2",
		in:   "[==[ raw ]] text ]==]",
		want: []tok{
			{token.LongString, " raw ]] text ", 2},
			{token.EOF, "", 0},
		},
	}, {
		desc: "hex and float numerals",
		in:   "0x1F 3.14 1e10",
		want: []tok{
			{token.Number, "0x1F", 0},
			{token.Number, "3.14", 0},
			{token.Number, "1e10", 0},
			{token.EOF, "", 0},
		},
	}, {
		desc: "longest-match operators",
		in:   "a <= b ~= c .. d ... e",
		want: []tok{
			{token.Ident, "a", 0},
			{token.Punct, token.LE, 0},
			{token.Ident, "b", 0},
			{token.Punct, token.NE, 0},
			{token.Ident, "c", 0},
			{token.Punct, token.Concat, 0},
			{token.Ident, "d", 0},
			{token.Punct, token.Ellipsis, 0},
			{token.Ident, "e", 0},
			{token.EOF, "", 0},
		},
	}, {
		desc: "shebang line then code",
		in:   "#!/usr/bin/env lua\nreturn 1",
		want: []tok{
			{token.SheBang, "#!/usr/bin/env lua", 0},
			{token.Keyword, "return", 0},
			{token.Number, "1", 0},
			{token.EOF, "", 0},
		},
	}, {
		desc: "line comment produces no token",
		in:   "1 -- comment\n2",
		want: []tok{
			{token.Number, "1", 0},
			{token.Number, "2", 0},
			{token.EOF, "", 0},
		},
	}, {
		desc: "long comment produces no token",
		in:   "1 --[[ long\ncomment ]] 2",
		want: []tok{
			{token.Number, "1", 0},
			{token.Number, "2", 0},
			{token.EOF, "", 0},
		},
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := scanAll(t, tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Next() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNextErrors(t *testing.T) {
	tests := []struct {
		desc          string
		in            string
		wantErrSubstr string
	}{{
		desc:          "unrecognized symbol",
		in:            "a $ b",
		wantErrSubstr: "unrecognized symbol",
	}, {
		desc:          "unterminated string",
		in:            `"abc`,
		wantErrSubstr: "unterminated",
	}, {
		desc:          "unterminated long bracket",
		in:            "[[abc",
		wantErrSubstr: "unexpected end of file",
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			l := New(tt.in, "<test>")
			for {
				tok := l.Next()
				if tok.Kind == token.EOF {
					break
				}
			}
			err := l.Err()
			if diff := errdiff.Substring(err, tt.wantErrSubstr); diff != "" {
				t.Error(diff)
			}
		})
	}
}
