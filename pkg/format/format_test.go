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

package format

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"github.com/luafmt/luafmt/pkg/printer"
)

func TestSourceRoundTrips(t *testing.T) {
	tests := []struct {
		desc string
		in   string
	}{
		{"local assignment", "local x = 1"},
		{"function declaration", "function f(a, b) return a + b end"},
		{"if chain", "if a then b() elseif c then d() else e() end"},
		{"numeric for", "for i = 1, 10 do print(i) end"},
		{"table constructor", "local t = {1, 2, 3}"},
		{"nested call", "a.b.c:d(1, 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			out, err := Source(tt.in, nil)
			if err != nil {
				t.Fatalf("Source() error = %v", err)
			}
			if out == "" {
				t.Fatalf("Source() produced empty output for %q", tt.in)
			}
			// Re-parsing the output must not error: the printer never
			// emits something the parser rejects.
			if _, err := Source(out, nil); err != nil {
				t.Fatalf("Source(Source(in)) error = %v\noutput was:\n%s", err, out)
			}
		})
	}
}

func TestIsIdempotent(t *testing.T) {
	tests := []string{
		"local x = 1",
		"local x,y = 1,2",
		"if a then b() end",
		"for i=1,10 do print(i) end",
		"function f() return 1 end",
	}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			ok, err := IsIdempotent(in, nil)
			if err != nil {
				t.Fatalf("IsIdempotent() error = %v", err)
			}
			if !ok {
				once, _ := Source(in, nil)
				twice, _ := Source(once, nil)
				t.Errorf("formatting is not idempotent for %q:\n%s", in, pretty.Compare(once, twice))
			}
		})
	}
}

func TestSourceWithConfig(t *testing.T) {
	width := 10
	cfg := &printer.Config{MaxWidth: &width}
	out, err := Source("local really_long_name = 1 + 2 + 3 + 4", cfg)
	if err != nil {
		t.Fatalf("Source() error = %v", err)
	}
	if out == "" {
		t.Fatalf("Source() produced empty output")
	}
}

func TestSourceParseError(t *testing.T) {
	_, err := Source("if true then", nil)
	if err == nil {
		t.Fatalf("Source() error = nil, want non-nil for unterminated if")
	}
}
