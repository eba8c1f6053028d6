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

// Package printer implements Components D and E: the layout primitives
// (location hints, conditional newlines, indent deltas, list renderers,
// the speculative one-line probe) and the per-AST-variant print rules
// that drive them, configured by Config (spec.md §6).
package printer

import (
	"fmt"
	"strconv"
)

// NewlineFormat is the tri-state line-break policy spec.md §6 assigns to
// most `newline_format_*` options. 0 adds no break of its own: a gap that
// holds only whitespace collapses to the construct's plain separator,
// which between statements and at block keywords (do/then/end/until) is a
// single newline. 1 keeps such gaps as the source wrote them, and renders
// a table constructor, expression list or binary operator in its broken
// form unless a one-line probe succeeds. 2 guarantees a line break at each
// such gap. Where a one-line probe is enabled (enable_oneline_*), table
// constructors, suffix chains and binary operators try it first, whatever
// the value. For `newline_format_binary_op` specifically, 1 and 2
// additionally select where the break lands (before or after the operator)
// — see spec.md §4.D "Binary operators" and DESIGN.md.
type NewlineFormat int

const (
	NFNever NewlineFormat = iota
	NFAuto
	NFAlways
)

// Config is a named bag of optional settings. Every field is a pointer so
// that "unset" (nil) is distinguishable from an explicit zero value;
// every accessor below returns the spec's documented default for an
// absent option (spec.md §3: "every option is absent by default and
// enables a behavior only when explicitly set").
type Config struct {
	IndentationString *string

	NewlineFormatStatement        *NewlineFormat
	NewlineFormatExpList          *NewlineFormat
	NewlineFormatExpListFirst     *NewlineFormat
	NewlineFormatBinaryOp         *NewlineFormat
	NewlineFormatTableConstructor *NewlineFormat
	NewlineFormatTableField       *NewlineFormat
	NewlineFormatFunction         *NewlineFormat
	NewlineFormatIf               *NewlineFormat
	NewlineFormatDoEnd            *NewlineFormat
	NewlineFormatWhile            *NewlineFormat
	NewlineFormatFor              *NewlineFormat
	NewlineFormatRepeatUntil      *NewlineFormat
	NewlineFormatVarSuffix        *NewlineFormat

	EnableOnelineBinaryOp         *bool
	EnableOnelineIvTable          *bool
	EnableOnelineTableConstructor *bool
	EnableOnelineIf               *bool
	EnableOnelineTopLevelFunction *bool
	EnableOnelineScopedFunction   *bool
	EnableOnelineExpList          *bool
	EnableOnelineVarSuffix        *bool

	MaxWidth *int

	FieldSeparator              *string
	WriteTrailingFieldSeparator *bool

	HintBeforeComment         *string
	HintAfterMultilineComment *string

	RemoveComments            *bool
	RemoveNewlines            *bool
	RemoveSpacesBetweenTokens *bool
	ReplaceZeroSpacesWithHint *bool

	WriteNewlineAtEOF *bool
}

func (c *Config) indentationString() string {
	if c == nil || c.IndentationString == nil {
		return ""
	}
	return *c.IndentationString
}

func (c *Config) maxWidth() (int, bool) {
	if c == nil || c.MaxWidth == nil {
		return 0, false
	}
	return *c.MaxWidth, true
}

func (c *Config) fieldSeparator() string {
	if c == nil || c.FieldSeparator == nil {
		return ","
	}
	return *c.FieldSeparator
}

func boolOpt(p *bool) bool { return p != nil && *p }

func nf(p *NewlineFormat) NewlineFormat {
	if p == nil {
		return NFNever
	}
	return *p
}

// clone returns a shallow copy of c (an empty Config if c is nil). Probes
// (state.probe) do not use it: they render under the live Config, with no
// options switched off for the probe.
func (c *Config) clone() *Config {
	if c == nil {
		return &Config{}
	}
	cp := *c
	return &cp
}

func nfPtr(v NewlineFormat) *NewlineFormat { return &v }
func boolPtr(v bool) *bool                 { return &v }

// Set applies a single "name=value" Config option by name, following the
// generic string-keyed dispatch of the original formatter's
// Config::set(option_name, value_str) (see DESIGN.md). It is what
// cmd/luafmt uses to turn `--set name=value` entries into Config fields.
func (c *Config) Set(name, value string) error {
	switch name {
	case "indentation_string":
		c.IndentationString = &value
	case "field_separator":
		c.FieldSeparator = &value
	case "hint_before_comment":
		c.HintBeforeComment = &value
	case "hint_after_multiline_comment":
		c.HintAfterMultilineComment = &value

	case "write_trailing_field_separator":
		return setBool(&c.WriteTrailingFieldSeparator, value)
	case "remove_comments":
		return setBool(&c.RemoveComments, value)
	case "remove_newlines":
		return setBool(&c.RemoveNewlines, value)
	case "remove_spaces_between_tokens":
		return setBool(&c.RemoveSpacesBetweenTokens, value)
	case "replace_zero_spaces_with_hint":
		return setBool(&c.ReplaceZeroSpacesWithHint, value)
	case "write_newline_at_eof":
		return setBool(&c.WriteNewlineAtEOF, value)

	case "enable_oneline_binary_op":
		return setBool(&c.EnableOnelineBinaryOp, value)
	case "enable_oneline_iv_table":
		return setBool(&c.EnableOnelineIvTable, value)
	case "enable_oneline_table_constructor":
		return setBool(&c.EnableOnelineTableConstructor, value)
	case "enable_oneline_if":
		return setBool(&c.EnableOnelineIf, value)
	case "enable_oneline_top_level_function":
		return setBool(&c.EnableOnelineTopLevelFunction, value)
	case "enable_oneline_scoped_function":
		return setBool(&c.EnableOnelineScopedFunction, value)
	case "enable_oneline_exp_list":
		return setBool(&c.EnableOnelineExpList, value)
	case "enable_oneline_var_suffix":
		return setBool(&c.EnableOnelineVarSuffix, value)

	case "max_width":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid config %q option value %q", name, value)
		}
		c.MaxWidth = &n

	case "newline_format_statement":
		return setNF(&c.NewlineFormatStatement, value)
	case "newline_format_exp_list":
		return setNF(&c.NewlineFormatExpList, value)
	case "newline_format_exp_list_first":
		return setNF(&c.NewlineFormatExpListFirst, value)
	case "newline_format_binary_op":
		return setNF(&c.NewlineFormatBinaryOp, value)
	case "newline_format_table_constructor":
		return setNF(&c.NewlineFormatTableConstructor, value)
	case "newline_format_table_field":
		return setNF(&c.NewlineFormatTableField, value)
	case "newline_format_function":
		return setNF(&c.NewlineFormatFunction, value)
	case "newline_format_if":
		return setNF(&c.NewlineFormatIf, value)
	case "newline_format_do_end":
		return setNF(&c.NewlineFormatDoEnd, value)
	case "newline_format_while":
		return setNF(&c.NewlineFormatWhile, value)
	case "newline_format_for":
		return setNF(&c.NewlineFormatFor, value)
	case "newline_format_repeat_until":
		return setNF(&c.NewlineFormatRepeatUntil, value)
	case "newline_format_var_suffix":
		return setNF(&c.NewlineFormatVarSuffix, value)

	default:
		return fmt.Errorf("invalid option name %q", name)
	}
	return nil
}

func setBool(field **bool, value string) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid config option value %q", value)
	}
	*field = &v
	return nil
}

func setNF(field **NewlineFormat, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 || n > 2 {
		return fmt.Errorf("invalid newline_format option value %q", value)
	}
	v := NewlineFormat(n)
	*field = &v
	return nil
}
