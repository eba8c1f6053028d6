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

package printer_test

import (
	"strings"
	"testing"

	"github.com/luafmt/luafmt/pkg/parser"
	"github.com/luafmt/luafmt/pkg/printer"
)

func render(t *testing.T, src string, cfg *printer.Config) string {
	t.Helper()
	chunk, err := parser.Parse(src, "<test>")
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	out, err := printer.Print(chunk, src, cfg)
	if err != nil {
		t.Fatalf("Print(%q) error = %v", src, err)
	}
	return out
}

func TestPrintPreservesStructure(t *testing.T) {
	tests := []string{
		"local x = 1",
		"local x, y = 1, 2",
		"if a then b() end",
		"if a then b() else c() end",
		"while a do b() end",
		"repeat b() until a",
		"for i = 1, 10 do print(i) end",
		"for k, v in pairs(t) do print(k, v) end",
		"function f(a, b, ...) return a + b end",
		"local function g() return 1 end",
		"a.b.c:d(1, 2)",
		"local t = {1, 2, name = 'x'}",
		"goto done\n::done::",
		"break",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			out := render(t, src, nil)
			if out == "" {
				t.Fatalf("Print(%q) produced empty output", src)
			}
			// The printed output must itself be valid Lua the parser accepts.
			if _, err := parser.Parse(out, "<reparse>"); err != nil {
				t.Fatalf("reparsing printed output failed: %v\noutput:\n%s", err, out)
			}
		})
	}
}

func TestPrintMaxWidthForcesBreak(t *testing.T) {
	width := 15
	onelineTbl := true
	auto := printer.NFAuto
	cfg := &printer.Config{
		MaxWidth:                      &width,
		EnableOnelineTableConstructor: &onelineTbl,
		NewlineFormatTableConstructor: &auto,
	}

	out := render(t, "local t = {1, 2, 3, 4, 5, 6, 7, 8, 9, 10}", cfg)
	if !strings.Contains(out, "\n") {
		t.Errorf("expected a wide table constructor to break across lines under max_width=15, got:\n%s", out)
	}
}

func TestPrintNewlineFormatNeverKeepsTableOneLine(t *testing.T) {
	never := printer.NFNever
	cfg := &printer.Config{NewlineFormatTableConstructor: &never}
	out := render(t, "local t = {\n  1,\n  2,\n  3,\n}", cfg)
	if strings.Contains(out, "\n") {
		t.Errorf("newline_format_table_constructor=0 (never) should force a single line, got:\n%s", out)
	}
}

func TestPrintLocalStmtSingleSpace(t *testing.T) {
	out := render(t, "local x = 1", nil)
	if out != "local x = 1" {
		t.Errorf("Print(%q) = %q, want exactly one space around each token", "local x = 1", out)
	}
}

func TestPrintLocalStmtMultiName(t *testing.T) {
	out := render(t, "local x, y = 1, 2", nil)
	if out != "local x, y = 1, 2" {
		t.Errorf("Print(%q) = %q", "local x, y = 1, 2", out)
	}
}

func TestPrintLocalStmtIdempotent(t *testing.T) {
	first := render(t, "local x = 1", nil)
	second := render(t, first, nil)
	if first != second {
		t.Errorf("formatting is not idempotent: first pass %q, second pass %q", first, second)
	}
}

func TestPrintStringHexEscapeRoundTrips(t *testing.T) {
	out := render(t, `local x = "\x41"`, nil)
	want := `local x = "A"`
	if out != want {
		t.Errorf(`Print("local x = \"\\x41\"") = %q, want %q (decoded, not re-escaped)`, out, want)
	}
}

func TestPrintTableOnelineHasNoInnerPadding(t *testing.T) {
	oneline := true
	cfg := &printer.Config{EnableOnelineTableConstructor: &oneline}
	out := render(t, "local t = {\n  1,\n  2,\n  3,\n}", cfg)
	if strings.Contains(out, "{ ") || strings.Contains(out, " }") {
		t.Errorf("one-line table constructor should have no inner padding, got: %s", out)
	}
}

func TestPrintNewlineFormatDoEndForcesBreak(t *testing.T) {
	always := printer.NFAlways
	cfg := &printer.Config{NewlineFormatDoEnd: &always}
	out := render(t, "do x() end", cfg)
	if !strings.Contains(out, "\n") {
		t.Errorf("newline_format_do_end=2 (always) should force a break around do/end, got:\n%s", out)
	}
}

func TestPrintNewlineFormatExpListFirstForcesBreak(t *testing.T) {
	always := printer.NFAlways
	auto := printer.NFAuto
	cfg := &printer.Config{NewlineFormatExpList: &auto, NewlineFormatExpListFirst: &always}
	out := render(t, "return 1, 2, 3", cfg)
	if !strings.Contains(out, "\n") {
		t.Errorf("newline_format_exp_list_first=2 (always) should force a break before the first item, got:\n%s", out)
	}
}

func TestPrintRemoveComments(t *testing.T) {
	remove := true
	cfg := &printer.Config{RemoveComments: &remove}
	out := render(t, "local x = 1 -- trailing comment\n", cfg)
	if strings.Contains(out, "trailing comment") {
		t.Errorf("RemoveComments=true left a comment in output:\n%s", out)
	}
}

func TestPrintKeepsCommentsByDefault(t *testing.T) {
	out := render(t, "local x = 1 -- trailing comment\n", nil)
	if !strings.Contains(out, "trailing comment") {
		t.Errorf("default Config dropped a comment, output:\n%s", out)
	}
}
