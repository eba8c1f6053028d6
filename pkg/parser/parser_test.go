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

package parser

import (
	"testing"

	"github.com/openconfig/gnmi/errdiff"

	"github.com/luafmt/luafmt/pkg/ast"
)

func TestParseShape(t *testing.T) {
	tests := []struct {
		desc          string
		in            string
		wantStmts     int
		wantHasReturn bool
	}{{
		desc:      "empty chunk",
		in:        "",
		wantStmts: 0,
	}, {
		desc:      "local assignment",
		in:        "local x = 1",
		wantStmts: 1,
	}, {
		desc:      "two statements",
		in:        "local x = 1\nlocal y = 2",
		wantStmts: 2,
	}, {
		desc:          "return with expression",
		in:            "local x = 1\nreturn x",
		wantStmts:     1,
		wantHasReturn: true,
	}, {
		desc:      "if/elseif/else chain",
		in:        "if a then b() elseif c then d() else e() end",
		wantStmts: 1,
	}, {
		desc:      "numeric for",
		in:        "for i = 1, 10, 2 do print(i) end",
		wantStmts: 1,
	}, {
		desc:      "function declaration with dotted path",
		in:        "function t.a.b:c(x, y, ...) return x end",
		wantStmts: 1,
	}, {
		desc:      "table constructor mixed fields",
		in:        `local t = { 1, 2, name = "x", [k] = v }`,
		wantStmts: 1,
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			chunk, err := Parse(tt.in, "<test>")
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := len(chunk.Body.Stmts); got != tt.wantStmts {
				t.Errorf("len(Body.Stmts) = %d, want %d", got, tt.wantStmts)
			}
			if got := chunk.Body.ReturnStmt != nil; got != tt.wantHasReturn {
				t.Errorf("has ReturnStmt = %v, want %v", got, tt.wantHasReturn)
			}
		})
	}
}

func TestParseBinopPrecedence(t *testing.T) {
	// `1 + 2 * 3` must parse as `1 + (2 * 3)`, i.e. the top-level node is
	// the `+`, per Lua's official operator-precedence table.
	chunk, err := Parse("local x = 1 + 2 * 3", "<test>")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	local := chunk.Body.Stmts[0].Stmt.(*ast.LocalStmt)
	top, ok := local.Values.Items[0].Value.(*ast.BinopExpr)
	if !ok {
		t.Fatalf("top expr = %T, want *ast.BinopExpr", local.Values.Items[0].Value)
	}
	if top.Op != "+" {
		t.Fatalf("top.Op = %q, want %q", top.Op, "+")
	}
	if _, ok := top.Right.(*ast.BinopExpr); !ok {
		t.Fatalf("top.Right = %T, want *ast.BinopExpr (2 * 3)", top.Right)
	}
}

func TestParseRightAssociativity(t *testing.T) {
	// `..` is right-associative: `a .. b .. c` parses as `a .. (b .. c)`.
	chunk, err := Parse(`local x = a .. b .. c`, "<test>")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	local := chunk.Body.Stmts[0].Stmt.(*ast.LocalStmt)
	top := local.Values.Items[0].Value.(*ast.BinopExpr)
	if _, ok := top.Left.(*ast.BinopExpr); ok {
		t.Fatalf("top.Left is *ast.BinopExpr; .. should nest on the right, not the left")
	}
	if _, ok := top.Right.(*ast.BinopExpr); !ok {
		t.Fatalf("top.Right = %T, want *ast.BinopExpr (b .. c)", top.Right)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		desc          string
		in            string
		wantErrSubstr string
	}{{
		desc:          "missing end",
		in:            "if true then",
		wantErrSubstr: "end",
	}, {
		desc:          "missing then",
		in:            "if true x = 1 end",
		wantErrSubstr: "then",
	}, {
		desc:          "dangling operator",
		in:            "local x = 1 +",
		wantErrSubstr: "",
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := Parse(tt.in, "<test>")
			if err == nil {
				t.Fatalf("Parse() error = nil, want non-nil")
			}
			if tt.wantErrSubstr != "" {
				if diff := errdiff.Substring(err, tt.wantErrSubstr); diff != "" {
					t.Error(diff)
				}
			}
		})
	}
}
