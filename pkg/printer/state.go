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

package printer

import (
	"strings"

	"github.com/luafmt/luafmt/pkg/indent"
	"github.com/luafmt/luafmt/pkg/token"
)

// state carries the context a render needs: the Config driving layout
// decisions, the original source buffer (for verbatim location-hint
// text), and the current indent/function-nesting depth. Every render
// method takes *state by value at the call boundary it matters (probe)
// and returns a plain string; nested blocks are rendered at indent level
// zero into their own string and re-indented with pkg/indent before
// being spliced into the parent, mirroring the teacher's pkg/indent
// "wrap an io.Writer, prefix every line" role but applied to an
// already-rendered string rather than a live stream.
type state struct {
	cfg          *Config
	src          []byte
	indentLevel  int
	funcLevel    int
}

func newState(cfg *Config, src []byte) *state {
	if cfg == nil {
		cfg = &Config{}
	}
	return &state{cfg: cfg, src: src}
}

// clone returns a copy of st suitable for a speculative one-line probe:
// same Config and source, same indent/func depth, but entirely
// independent of whatever buffer the caller is accumulating (probes in
// this design return their own string, so there is nothing further to
// decouple — clone exists so a probe can freely call incIndent/incFunc
// on its own copy without perturbing st).
func (st *state) clone() *state {
	cp := *st
	return &cp
}

func (st *state) incIndent()  { st.indentLevel++ }
func (st *state) decIndent() {
	if st.indentLevel > 0 {
		st.indentLevel--
	}
}

func (st *state) incFunc() { st.funcLevel++ }
func (st *state) decFunc() {
	if st.funcLevel > 0 {
		st.funcLevel--
	}
}

// indentUnit is the literal string one indent level contributes.
func (st *state) indentUnit() string {
	return st.cfg.indentationString()
}

// reindent shifts every line of body by one indent unit per current
// indentLevel, via the teacher-derived pkg/indent.String.
func (st *state) reindent(body string) string {
	if st.indentLevel == 0 || body == "" {
		return body
	}
	return indent.String(strings.Repeat(st.indentUnit(), st.indentLevel), body)
}

// raw returns the verbatim source text of sp.
func (st *state) raw(sp token.Span) string {
	if sp.End.Offset <= sp.Start.Offset || sp.Start.Offset < 0 || sp.End.Offset > len(st.src) {
		return ""
	}
	return string(st.src[sp.Start.Offset:sp.End.Offset])
}

func applyRemoveNewlines(cfg *Config, s string) string {
	if !boolOpt(cfg.RemoveNewlines) {
		return s
	}
	return strings.ReplaceAll(s, "\n", " ")
}

// spaceHint renders a plain inter-token gap (spec.md's "SpaceLocHint"):
// verbatim by default, or a single placeholder space when
// remove_spaces_between_tokens is set (original_source/loc_hint.rs).
func (st *state) spaceHint(sp token.Span) string {
	if boolOpt(st.cfg.RemoveSpacesBetweenTokens) {
		return " "
	}
	return applyRemoveNewlines(st.cfg, st.raw(sp))
}

// commentHint renders a gap that may carry a comment (spec.md's
// "CommentLocHint"), following original_source/loc_hint.rs exactly: an
// empty span writes the zero-space placeholder only if
// replace_zero_spaces_with_hint is set; a non-empty span is written
// verbatim (subject to remove_comments/remove_newlines), bracketed by
// hint_before_comment when the block's first rendered character is '-'
// and hint_after_multiline_comment when its last is ']'.
func (st *state) commentHint(sp token.Span) string {
	raw := st.raw(sp)
	if boolOpt(st.cfg.RemoveComments) {
		raw = stripComments(raw)
	}
	raw = applyRemoveNewlines(st.cfg, raw)

	if raw == "" {
		if boolOpt(st.cfg.ReplaceZeroSpacesWithHint) {
			return " "
		}
		return ""
	}

	var b strings.Builder
	if raw[0] == '-' {
		if st.cfg.HintBeforeComment != nil {
			b.WriteString(*st.cfg.HintBeforeComment)
		}
	}
	b.WriteString(raw)
	if raw[len(raw)-1] == ']' {
		if st.cfg.HintAfterMultilineComment != nil {
			b.WriteString(*st.cfg.HintAfterMultilineComment)
		}
	}
	return b.String()
}

// stripComments removes `--...` line comments and `--[=*[ ... ]=*]` long
// comments from raw trivia text, leaving the surrounding whitespace
// intact so that tokens on either side stay separated by at least
// whatever plain whitespace originally ran up to the comment.
func stripComments(raw string) string {
	var out strings.Builder
	i := 0
	for i < len(raw) {
		if raw[i] == '-' && i+1 < len(raw) && raw[i+1] == '-' {
			j := i + 2
			if j < len(raw) && raw[j] == '[' {
				k := j + 1
				level := 0
				for k < len(raw) && raw[k] == '=' {
					level++
					k++
				}
				if k < len(raw) && raw[k] == '[' {
					closer := "]" + strings.Repeat("=", level) + "]"
					end := strings.Index(raw[k+1:], closer)
					if end >= 0 {
						i = k + 1 + end + len(closer)
						continue
					}
				}
			}
			for j < len(raw) && raw[j] != '\n' {
				j++
			}
			i = j
			continue
		}
		out.WriteByte(raw[i])
		i++
	}
	return out.String()
}

// sepWithFormat applies a NewlineFormat tri-state decision to a separator position
// that sits between two already-rendered pieces, given the verbatim gap
// text that may already contain a newline or a comment. NFNever
// collapses pure-whitespace gaps down to plain, NFAlways guarantees at
// least one newline is present, and NFAuto leaves the gap exactly as
// rendered (spec.md §4.D: the default is to follow what the source already
// had except where a config option overrides it).
func sepWithFormat(format NewlineFormat, gapText, plain string) string {
	switch format {
	case NFNever:
		if strings.TrimSpace(gapText) == "" {
			return plain
		}
		return gapText
	case NFAlways:
		if strings.Contains(gapText, "\n") {
			return gapText
		}
		if gapText == "" {
			return "\n"
		}
		return gapText + "\n"
	default: // NFAuto
		return gapText
	}
}

// probe renders fn against a scratch clone of st and reports the
// candidate text together with whether it fits in a single line under
// cfg.MaxWidth, measured in bytes from the last newline already written
// to curLineLen (original_source/util.rs: width is byte length, not
// grapheme count). probe leaks no state: it operates on its own *state
// clone and the caller only ever sees the returned string, never a
// mutated st.
func (st *state) probe(curLineLen int, fn func(*state) string) (string, bool) {
	maxWidth, ok := st.cfg.maxWidth()
	if !ok {
		return "", false
	}
	scratch := st.clone()
	candidate := fn(scratch)
	if strings.Contains(candidate, "\n") {
		return candidate, false
	}
	if curLineLen+len(candidate) > maxWidth {
		return candidate, false
	}
	return candidate, true
}

// lastLineLen returns the byte length of s after its final newline (or
// all of s, if it has none) — the "current column" a probe measures
// from when s is what has been written to the line so far.
func lastLineLen(s string) int {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return len(s) - i - 1
	}
	return len(s)
}

// lineIndentLen is the curLineLen a probe should start from when the
// construct it is probing begins a fresh source line: the indentation
// this state's current nesting depth will prepend via reindent is
// lastLineLen of that indent prefix (trivially its own full length,
// since an indent prefix never itself contains a newline).
func (st *state) lineIndentLen() int {
	return lastLineLen(strings.Repeat(st.indentUnit(), st.indentLevel))
}
