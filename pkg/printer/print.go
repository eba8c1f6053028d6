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
	"fmt"
	"strings"

	"github.com/luafmt/luafmt/pkg/ast"
	"github.com/luafmt/luafmt/pkg/token"
)

// Print renders chunk back to Lua source under cfg. It is the single
// entry point pkg/format and cmd/luafmt call; every other function in
// this package is an internal collaborator reached from here.
func Print(chunk *ast.Chunk, src string, cfg *Config) (string, error) {
	st := newState(cfg, []byte(src))

	var out strings.Builder
	if chunk.SheBang != "" {
		out.WriteString(chunk.SheBang)
		out.WriteString("\n")
	}
	out.WriteString(st.printBlock(chunk.Body))

	result := out.String()
	if boolOpt(st.cfg.WriteNewlineAtEOF) && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	return result, nil
}

// printBlock renders b at indent level zero; callers that need it
// nested wrap the result with st.reindent after incrementing
// st.indentLevel (see printNestedBlock). The first statement's Leading
// span is the block's Leading span, and each later statement's Leading
// span is the previous statement's Gap, so each is written only once; the
// last statement's Gap is the block's Trailing span unless a return
// statement follows.
func (st *state) printBlock(b *ast.Block) string {
	if b == nil {
		return ""
	}
	var out strings.Builder
	out.WriteString(st.commentHint(b.Leading))
	for i := range b.Stmts {
		item := &b.Stmts[i]
		out.WriteString(st.printStmt(item.Stmt))
		if i < len(b.Stmts)-1 || b.ReturnStmt != nil {
			gapText := st.commentHint(item.Gap)
			out.WriteString(sepWithFormat(nf(st.cfg.NewlineFormatStatement), gapText, "\n"))
		}
	}
	if b.ReturnStmt != nil {
		out.WriteString(st.printStmt(b.ReturnStmt))
	}
	out.WriteString(st.commentHint(b.Trailing))
	return out.String()
}

// printNestedBlock renders b one indent level deeper than st currently
// is, for use between a block-opening and block-closing keyword (do/end,
// then/end, while...do, for...do).
func (st *state) printNestedBlock(b *ast.Block) string {
	inner := st.clone()
	inner.incIndent()
	body := inner.printBlock(b)
	return inner.reindent(body)
}

func (st *state) printStmt(s ast.Stmt) string {
	switch n := s.(type) {
	case *ast.AssignStmt:
		return st.printVarList(n.Vars) + st.spaceHint(n.EqGap) + "=" + st.printAssignValues(n)
	case *ast.LocalStmt:
		return st.printLocalStmt(n)
	case *ast.CallStmt:
		return st.printExpr(n.Call)
	case *ast.DoStmt:
		format := nf(st.cfg.NewlineFormatDoEnd)
		return "do" + st.blockGap(format, n.DoGap) + st.printNestedBlock(n.Body) + st.blockGap(format, n.EndGap) + "end"
	case *ast.WhileStmt:
		format := nf(st.cfg.NewlineFormatWhile)
		return "while " + st.printExpr(n.Cond) + " do" + st.blockGap(format, n.DoGap) +
			st.printNestedBlock(n.Body) + st.blockGap(format, n.EndGap) + "end"
	case *ast.RepeatStmt:
		format := nf(st.cfg.NewlineFormatRepeatUntil)
		return "repeat" + st.printNestedBlock(n.Body) + "until" + st.blockGap(format, n.UntilGap) + st.printExpr(n.Cond)
	case *ast.IfStmt:
		return st.printIfStmt(n)
	case *ast.NumForStmt:
		return st.printNumForStmt(n)
	case *ast.GenForStmt:
		return st.printGenForStmt(n)
	case *ast.FuncDeclStmt:
		return st.printFuncDeclStmt(n)
	case *ast.LocalFuncStmt:
		return "local function " + n.Name + st.printFuncBody(n.Body)
	case *ast.BreakStmt:
		return "break"
	case *ast.GotoStmt:
		return "goto " + n.Label
	case *ast.LabelStmt:
		return "::" + n.Name + "::"
	case *ast.EmptyStmt:
		return ";"
	case *ast.ReturnStmt:
		return st.printReturnStmt(n)
	default:
		return fmt.Sprintf("--[[unknown statement %T]]", s)
	}
}

// blockGap renders a gap that sits at a block-opening or block-closing
// keyword boundary (do/end, while's do, for's do, repeat's until) through
// sepWithFormat with a newline as the plain separator — the
// newline_format_do_end/while/for/repeat_until options. Under the default
// (NFNever) a gap holding only whitespace therefore becomes a single
// newline; NFAuto keeps the gap verbatim; NFAlways keeps or adds a newline.
func (st *state) blockGap(format NewlineFormat, sp token.Span) string {
	return sepWithFormat(format, st.spaceHint(sp), "\n")
}

func (st *state) printLocalStmt(n *ast.LocalStmt) string {
	var b strings.Builder
	b.WriteString("local")
	for i, name := range n.Names {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(st.commentHint(name.Leading))
		b.WriteString(name.Name)
		if name.Attrib != "" {
			b.WriteString(" <")
			b.WriteString(name.Attrib)
			b.WriteString(">")
		}
		b.WriteString(st.commentHint(name.Gap))
	}
	if n.HasValues {
		b.WriteString(st.spaceHint(n.EqGap))
		b.WriteString("=")
		b.WriteString(" ")
		b.WriteString(st.printExprList(n.Values))
	}
	return b.String()
}

func (st *state) printAssignValues(n *ast.AssignStmt) string {
	return " " + st.printExprList(n.Values)
}

func (st *state) printIfStmt(n *ast.IfStmt) string {
	format := nf(st.cfg.NewlineFormatIf)
	var b strings.Builder
	b.WriteString("if ")
	b.WriteString(st.printExpr(n.Cond))
	b.WriteString(" then")
	b.WriteString(st.blockGap(format, n.ThenGap))
	b.WriteString(st.printNestedBlock(n.Then))
	for i := range n.ElseIfs {
		clause := &n.ElseIfs[i]
		b.WriteString(st.commentHint(clause.Leading))
		b.WriteString("elseif ")
		b.WriteString(st.printExpr(clause.Cond))
		b.WriteString(" then")
		b.WriteString(st.blockGap(format, clause.ThenGap))
		b.WriteString(st.printNestedBlock(clause.Body))
	}
	if n.HasElse {
		b.WriteString(st.commentHint(n.ElseGap))
		b.WriteString("else")
		b.WriteString(st.printNestedBlock(n.Else))
	}
	b.WriteString(st.blockGap(format, n.EndGap))
	b.WriteString("end")

	full := b.String()
	if boolOpt(st.cfg.EnableOnelineIf) {
		if oneline, ok := st.probe(st.lineIndentLen(), func(s *state) string { return s.printIfStmtOneline(n) }); ok {
			return oneline
		}
	}
	return full
}

// printIfStmtOneline renders a single `if cond then stmt end` with no
// elseif/else clauses, used only as a probe candidate: a multi-statement
// or branching if never fits the one-line shape, so the caller (probe)
// naturally rejects it by falling back to the newline-containing render.
func (st *state) printIfStmtOneline(n *ast.IfStmt) string {
	if len(n.ElseIfs) > 0 || n.HasElse || n.Then == nil || len(n.Then.Stmts) != 1 || n.Then.ReturnStmt != nil {
		return "\n"
	}
	return "if " + st.printExpr(n.Cond) + " then " + st.printStmt(n.Then.Stmts[0].Stmt) + " end"
}

func (st *state) printNumForStmt(n *ast.NumForStmt) string {
	var b strings.Builder
	b.WriteString("for ")
	b.WriteString(n.Name)
	b.WriteString(" = ")
	b.WriteString(st.printExpr(n.Start))
	b.WriteString(", ")
	b.WriteString(st.printExpr(n.Stop))
	if n.HasStep {
		b.WriteString(", ")
		b.WriteString(st.printExpr(n.Step))
	}
	format := nf(st.cfg.NewlineFormatFor)
	b.WriteString(" do")
	b.WriteString(st.blockGap(format, n.DoGap))
	b.WriteString(st.printNestedBlock(n.Body))
	b.WriteString(st.blockGap(format, n.EndGap))
	b.WriteString("end")
	return b.String()
}

func (st *state) printGenForStmt(n *ast.GenForStmt) string {
	var b strings.Builder
	b.WriteString("for ")
	b.WriteString(strings.Join(n.Names, ", "))
	b.WriteString(" in")
	b.WriteString(st.spaceHint(n.InGap))
	b.WriteString(st.printExprList(n.Exprs))
	format := nf(st.cfg.NewlineFormatFor)
	b.WriteString(" do")
	b.WriteString(st.blockGap(format, n.DoGap))
	b.WriteString(st.printNestedBlock(n.Body))
	b.WriteString(st.blockGap(format, n.EndGap))
	b.WriteString("end")
	return b.String()
}

func (st *state) printFuncDeclStmt(n *ast.FuncDeclStmt) string {
	var b strings.Builder
	b.WriteString("function ")
	for i, seg := range n.Path {
		b.WriteString(st.commentHint(seg.Leading))
		switch {
		case i == 0:
			// no separator before the base name
		case i == len(n.Path)-1 && n.IsMethod:
			b.WriteString(":")
		default:
			b.WriteString(".")
		}
		b.WriteString(seg.Name)
	}
	b.WriteString(st.printFuncBody(n.Body))
	return b.String()
}

func (st *state) printReturnStmt(n *ast.ReturnStmt) string {
	var b strings.Builder
	b.WriteString("return")
	if n.HasExprs {
		b.WriteString(" ")
		b.WriteString(st.printExprList(n.Exprs))
	}
	if n.HasSemi {
		b.WriteString(st.spaceHint(n.SemiGap))
		b.WriteString(";")
	}
	return b.String()
}

func (st *state) printFuncBody(fb *ast.FuncBody) string {
	if fb == nil {
		return "()"
	}
	st.incFunc()
	defer st.decFunc()

	var head strings.Builder
	head.WriteString("(")
	head.WriteString(st.spaceHint(fb.ParamsGap))
	for i, p := range fb.Params {
		if i > 0 {
			head.WriteString(", ")
		}
		head.WriteString(st.commentHint(p.Leading))
		head.WriteString(p.Name)
		head.WriteString(st.commentHint(p.Gap))
	}
	if fb.IsVararg {
		if len(fb.Params) > 0 {
			head.WriteString(", ")
		}
		head.WriteString(st.commentHint(fb.VarargGap))
		head.WriteString("...")
	}
	funcFormat := nf(st.cfg.NewlineFormatFunction)
	head.WriteString(")")
	head.WriteString(st.blockGap(funcFormat, fb.BodyGap))

	var b strings.Builder
	b.WriteString(head.String())
	b.WriteString(st.printNestedBlock(fb.Body))
	b.WriteString(st.blockGap(funcFormat, fb.EndGap))
	b.WriteString("end")

	full := b.String()

	onelineAllowed := false
	if st.funcLevel <= 1 {
		onelineAllowed = boolOpt(st.cfg.EnableOnelineTopLevelFunction)
	} else {
		onelineAllowed = boolOpt(st.cfg.EnableOnelineScopedFunction)
	}
	if onelineAllowed {
		if oneline, ok := st.probe(st.lineIndentLen(), func(s *state) string { return s.printFuncBodyOneline(fb, head.String()) }); ok {
			return oneline
		}
	}
	return full
}

// printFuncBodyOneline renders a candidate one-line function body; it is
// only ever used inside a probe, so returning a string containing "\n"
// is a deliberate, harmless way to force the probe to reject a body that
// has more than a single statement plus an optional return.
func (st *state) printFuncBodyOneline(fb *ast.FuncBody, head string) string {
	if fb.Body == nil {
		return head + "end"
	}
	if len(fb.Body.Stmts) > 1 {
		return "\n"
	}
	var b strings.Builder
	b.WriteString(head)
	for i := range fb.Body.Stmts {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(st.printStmt(fb.Body.Stmts[i].Stmt))
		b.WriteString(" ")
	}
	if fb.Body.ReturnStmt != nil {
		b.WriteString(st.printStmt(fb.Body.ReturnStmt))
		b.WriteString(" ")
	}
	b.WriteString("end")
	return b.String()
}

// ---- Expressions ----

func (st *state) printExpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.NilExpr:
		return "nil"
	case *ast.TrueExpr:
		return "true"
	case *ast.FalseExpr:
		return "false"
	case *ast.VarargExpr:
		return "..."
	case *ast.NumberExpr:
		return n.Text
	case *ast.StringExpr:
		return printStringLiteral(n)
	case *ast.LongStringExpr:
		eq := strings.Repeat("=", n.Level)
		return "[" + eq + "[" + n.Value + "]" + eq + "]"
	case *ast.NameExpr:
		return n.Name
	case *ast.ParenExpr:
		return "(" + st.spaceHint(n.InnerGap) + st.printExpr(n.Inner) + st.spaceHint(n.CloseGap) + ")"
	case *ast.UnopExpr:
		return n.Op + st.spaceHint(n.OpGap) + st.printExpr(n.Operand)
	case *ast.BinopExpr:
		return st.printBinopExpr(n)
	case *ast.SuffixedExpr:
		return st.printSuffixedExpr(n)
	case *ast.TableExpr:
		return st.printTableExpr(n)
	case *ast.FuncExpr:
		return "function" + st.printFuncBody(n.Body)
	default:
		return fmt.Sprintf("--[[unknown expr %T]]", e)
	}
}

// printStringLiteral re-escapes n.Value, which is already fully decoded
// (lexer.scanEscape turns \xHH and \ddd into their single raw byte, same
// as \n/\t/etc.) and so may hold bytes that are not valid UTF-8 on their
// own. It therefore walks n.Value byte by byte rather than rune by rune:
// ranging over a string as runes would decode those raw bytes as UTF-8
// and substitute utf8.RuneError, corrupting exactly the escapes this is
// meant to round-trip.
func printStringLiteral(n *ast.StringExpr) string {
	q := n.Quote
	if q != '"' && q != '\'' {
		q = '"'
	}
	var b strings.Builder
	b.WriteByte(q)
	for i := 0; i < len(n.Value); i++ {
		c := n.Value[i]
		switch c {
		case q:
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(q)
	return b.String()
}

// printBinopExpr applies the break-before/break-after semantics spec.md
// §4.D assigns to newline_format_binary_op specifically: 0 never breaks;
// 1 and 2 break unless a one-line probe (enable_oneline_binary_op)
// succeeds, 1 with the operator starting the new line, 2 with the
// operator ending the previous line.
func (st *state) printBinopExpr(n *ast.BinopExpr) string {
	format := nf(st.cfg.NewlineFormatBinaryOp)

	render := func(s *state) string {
		left := s.printExpr(n.Left)
		right := s.printExpr(n.Right)
		opGap := s.spaceHint(n.OpGap)
		rightGap := s.spaceHint(n.RightGap)
		return left + opGap + n.Op + rightGap + right
	}

	if format == NFNever {
		return render(st)
	}

	if boolOpt(st.cfg.EnableOnelineBinaryOp) {
		if oneline, ok := st.probe(st.lineIndentLen(), render); ok {
			return oneline
		}
	}

	left := st.printExpr(n.Left)
	right := st.printExpr(n.Right)
	nested := st.clone()
	nested.incIndent()
	if format == NFAlways { // break after operator
		return left + " " + n.Op + "\n" + nested.reindent(right)
	}
	return left + "\n" + nested.reindent(n.Op+" "+right)
}

func (st *state) printSuffixedExpr(n *ast.SuffixedExpr) string {
	render := func(s *state) string {
		var b strings.Builder
		b.WriteString(s.printExpr(n.Primary))
		for i := range n.Suffixes {
			b.WriteString(s.printSuffix(&n.Suffixes[i]))
		}
		return b.String()
	}
	if boolOpt(st.cfg.EnableOnelineVarSuffix) {
		if oneline, ok := st.probe(st.lineIndentLen(), render); ok {
			return oneline
		}
	}
	if nf(st.cfg.NewlineFormatVarSuffix) == NFAlways && len(n.Suffixes) > 1 {
		nested := st.clone()
		nested.incIndent()
		var b strings.Builder
		b.WriteString(st.printExpr(n.Primary))
		for i := range n.Suffixes {
			b.WriteString("\n")
			b.WriteString(nested.reindent(nested.printSuffix(&n.Suffixes[i])))
		}
		return b.String()
	}
	return render(st)
}

func (st *state) printSuffix(s *ast.Suffix) string {
	lead := st.commentHint(s.Leading)
	switch s.Kind {
	case ast.DotSuffix:
		return lead + "." + s.Name
	case ast.IndexSuffix:
		return lead + "[" + st.printExpr(s.Index) + "]"
	case ast.CallSuffix:
		return lead + "(" + st.printCallArgs(s.Args) + ")"
	case ast.MethodCallSuffix:
		return lead + ":" + s.Method + "(" + st.printCallArgs(s.Args) + ")"
	case ast.TableArgSuffix:
		return lead + st.printTableExpr(s.Args.Table)
	case ast.StringArgSuffix:
		if s.Args.LongStr != nil {
			return lead + st.printExpr(s.Args.LongStr)
		}
		return lead + st.printExpr(s.Args.String)
	default:
		return lead
	}
}

func (st *state) printCallArgs(args ast.CallArgs) string {
	return st.spaceHint(args.OpenGap) + st.printExprList(args.Exprs) + st.spaceHint(args.CloseGap)
}

func (st *state) printTableExpr(n *ast.TableExpr) string {
	if n == nil {
		return "{}"
	}
	if len(n.Fields) == 0 {
		return "{" + st.spaceHint(n.OpenGap) + st.spaceHint(n.CloseGap) + "}"
	}

	allowOneline := boolOpt(st.cfg.EnableOnelineTableConstructor) ||
		(n.AllSequential && boolOpt(st.cfg.EnableOnelineIvTable))
	if allowOneline {
		if oneline, ok := st.probe(st.lineIndentLen(), func(s *state) string { return s.printTableExprOneline(n) }); ok {
			return oneline
		}
	}

	if nf(st.cfg.NewlineFormatTableConstructor) == NFNever {
		return st.printTableExprOneline(n)
	}

	nested := st.clone()
	nested.incIndent()
	var b strings.Builder
	b.WriteString("{")
	b.WriteString(st.commentHint(n.OpenGap))
	b.WriteString("\n")
	for i := range n.Fields {
		fi := &n.Fields[i]
		b.WriteString(nested.reindent(nested.commentHint(fi.Leading)))
		b.WriteString(strings.Repeat(nested.indentUnit(), nested.indentLevel))
		b.WriteString(nested.printField(fi.Field))
		sep := fi.Separator
		if sep == "" && (i < len(n.Fields)-1 || boolOpt(st.cfg.WriteTrailingFieldSeparator)) {
			sep = st.cfg.fieldSeparator()
		}
		b.WriteString(sep)
		gapText := nested.commentHint(fi.Gap)
		b.WriteString(sepWithFormat(nf(st.cfg.NewlineFormatTableField), gapText, "\n"))
	}
	b.WriteString(st.commentHint(n.CloseGap))
	b.WriteString("}")
	return b.String()
}

func (st *state) printTableExprOneline(n *ast.TableExpr) string {
	var b strings.Builder
	b.WriteString("{")
	for i := range n.Fields {
		if i > 0 {
			b.WriteString(st.cfg.fieldSeparator())
			b.WriteString(" ")
		}
		b.WriteString(st.printField(n.Fields[i].Field))
	}
	b.WriteString("}")
	return b.String()
}

func (st *state) printField(f ast.Field) string {
	switch n := f.(type) {
	case ast.PosField:
		return st.printExpr(n.Value)
	case ast.NameField:
		return n.Name + st.spaceHint(n.EqGap) + "=" + " " + st.printExpr(n.Value)
	case ast.IndexField:
		return "[" + st.printExpr(n.Key) + st.spaceHint(n.CloseGap) + "]" + st.spaceHint(n.EqGap) + "= " + st.printExpr(n.Value)
	default:
		return fmt.Sprintf("--[[unknown field %T]]", f)
	}
}

// ---- Lists ----

func (st *state) printExprList(l ast.ExprList) string {
	return st.printList(l.Items, nf(st.cfg.NewlineFormatExpList), nf(st.cfg.NewlineFormatExpListFirst), boolOpt(st.cfg.EnableOnelineExpList))
}

func (st *state) printVarList(l ast.VarList) string {
	return st.printList(l.Items, NFNever, NFNever, true)
}

// printList renders a comma-separated ListItem chain. When oneline is
// true (enable_oneline_exp_list, or always for a VarList — an
// assignment's left side is never broken across lines), a probe first
// tries the whole list on one line; otherwise, or when the probe fails,
// each item is rendered with its own leading/trailing gaps, breaking
// between items wherever format calls for it. firstFormat governs only
// the gap before the first item (newline_format_exp_list_first),
// independently of format, which governs every gap between items.
func (st *state) printList(items []ast.ListItem, format, firstFormat NewlineFormat, oneline bool) string {
	render := func(s *state) string {
		var b strings.Builder
		for i := range items {
			it := &items[i]
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(s.commentHint(it.Leading))
			b.WriteString(s.printExpr(it.Value))
			b.WriteString(s.commentHint(it.Trailing))
		}
		return b.String()
	}

	if oneline || format == NFNever {
		if text, ok := st.probe(st.lineIndentLen(), render); ok || format == NFNever {
			if ok {
				return text
			}
			return render(st)
		}
	}

	nested := st.clone()
	nested.incIndent()
	var b strings.Builder
	for i := range items {
		it := &items[i]
		if i > 0 {
			b.WriteString(",")
			gapText := nested.commentHint(it.Leading)
			b.WriteString(sepWithFormat(format, gapText, " "))
		} else {
			gapText := nested.commentHint(it.Leading)
			b.WriteString(sepWithFormat(firstFormat, gapText, ""))
		}
		b.WriteString(nested.printExpr(it.Value))
		if !it.IsLast {
			b.WriteString(nested.commentHint(it.Trailing))
		}
	}
	return nested.reindent(b.String())
}
