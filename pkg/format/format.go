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

// Package format provides the single convenience entry point that
// chains pkg/lexer (via pkg/parser), pkg/parser, and pkg/printer, plus
// the idempotence self-check spec.md §8 requires: formatting already-
// formatted output must be a no-op.
package format

import (
	"fmt"

	"github.com/luafmt/luafmt/pkg/parser"
	"github.com/luafmt/luafmt/pkg/printer"
)

// Source formats the Lua source src under cfg, returning the rendered
// text. A nil cfg renders with every option at its documented default.
func Source(src string, cfg *printer.Config) (string, error) {
	chunk, err := parser.Parse(src, "<input>")
	if err != nil {
		return "", fmt.Errorf("format: %w", err)
	}
	out, err := printer.Print(chunk, src, cfg)
	if err != nil {
		return "", fmt.Errorf("format: %w", err)
	}
	return out, nil
}

// File is like Source but attributes parser diagnostics to path.
func File(src, path string, cfg *printer.Config) (string, error) {
	chunk, err := parser.Parse(src, path)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", path, err)
	}
	out, err := printer.Print(chunk, src, cfg)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", path, err)
	}
	return out, nil
}

// IsIdempotent reports whether formatting src's own output a second time
// reproduces it exactly, the property spec.md §8 names as the
// formatter's self-check: Source(Source(src)) == Source(src).
func IsIdempotent(src string, cfg *printer.Config) (bool, error) {
	once, err := Source(src, cfg)
	if err != nil {
		return false, err
	}
	twice, err := Source(once, cfg)
	if err != nil {
		return false, err
	}
	return once == twice, nil
}
