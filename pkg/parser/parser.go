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

// Package parser implements Component B: recursive-descent construction
// of the pkg/ast typed syntax tree from a pkg/lexer token stream, with
// location spans attached to every node per spec.md §3-§4.B. Its error
// style (accumulate, then join into one reported error; no recovery
// inside a file) follows the teacher's pkg/yang/parse.go.
package parser

import (
	"errors"
	"fmt"

	"github.com/luafmt/luafmt/pkg/ast"
	"github.com/luafmt/luafmt/pkg/lexer"
	"github.com/luafmt/luafmt/pkg/token"
)

// Error is a parse error: an unexpected token at an offset, naming the
// offending token and (when known) what was expected.
type Error struct {
	Pos      token.Pos
	Msg      string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Msg)
}

// Parse parses src (Lua source text) and returns the root Chunk. path
// names the source for diagnostics; it may be empty. On any syntax or
// lex error, Parse returns a nil Chunk and a non-nil error describing
// every error found (no error-recovery is attempted within one file, per
// spec.md §4.B/§7).
func Parse(src, path string) (*ast.Chunk, error) {
	p := &parser{lex: lexer.New(src, path), src: src}
	p.advance()
	c := p.parseChunk()
	if lerr := p.lex.Err(); lerr != nil {
		p.errs = append(p.errs, &Error{Pos: lerr.(*lexer.Error).Pos, Msg: lerr.(*lexer.Error).Msg})
	}
	if len(p.errs) > 0 {
		msgs := make([]error, len(p.errs))
		for i, e := range p.errs {
			msgs[i] = e
		}
		return nil, errors.Join(msgs...)
	}
	return c, nil
}

type parser struct {
	lex     *lexer.Lexer
	src     string
	cur     token.Token
	prev    token.Pos // end position of the last consumed (non-gap) token
	started bool
	errs    []*Error
}

func (p *parser) advance() {
	if p.started {
		p.prev = p.cur.Span.End
	}
	p.started = true
	p.cur = p.lex.Next()
}

func (p *parser) gapBefore() token.Span {
	return token.Span{Start: p.prev, End: p.cur.Span.Start}
}

func (p *parser) errorf(format string, args ...interface{}) {
	p.errs = append(p.errs, &Error{Pos: p.cur.Span.Start, Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) isPunct(text string) bool {
	return p.cur.Kind == token.Punct && p.cur.Text == text
}

func (p *parser) isKeyword(text string) bool {
	return p.cur.Kind == token.Keyword && p.cur.Text == text
}

// expectPunct consumes cur if it is the given punctuation, returning the
// gap before it and true; otherwise it reports an error and returns false.
func (p *parser) expectPunct(text string) (token.Span, bool) {
	if !p.isPunct(text) {
		p.errorf("expected %q, found %s", text, p.describeCur())
		return token.Span{}, false
	}
	gap := p.gapBefore()
	p.advance()
	return gap, true
}

func (p *parser) expectKeyword(text string) (token.Span, bool) {
	if !p.isKeyword(text) {
		p.errorf("expected %q, found %s", text, p.describeCur())
		return token.Span{}, false
	}
	gap := p.gapBefore()
	p.advance()
	return gap, true
}

func (p *parser) describeCur() string {
	if p.cur.Kind == token.EOF {
		return "end of file"
	}
	return p.cur.String()
}

func (p *parser) expectName() (string, token.Span, bool) {
	if p.cur.Kind != token.Ident {
		p.errorf("expected identifier, found %s", p.describeCur())
		return "", token.Span{}, false
	}
	gap := p.gapBefore()
	name := p.cur.Text
	p.advance()
	return name, gap, true
}

// blockEnders names the keywords (besides EOF) that terminate a block.
var blockEnders = map[string]bool{
	"end": true, "else": true, "elseif": true, "until": true,
}

func (p *parser) atBlockEnd() bool {
	return p.cur.Kind == token.EOF || (p.cur.Kind == token.Keyword && blockEnders[p.cur.Text]) || p.isKeyword("return")
}

func (p *parser) parseChunk() *ast.Chunk {
	var shebang string
	if p.cur.Kind == token.SheBang {
		shebang = p.cur.Text
		p.advance()
	}
	block := p.parseBlock()
	if p.cur.Kind != token.EOF {
		p.errorf("unexpected %s", p.describeCur())
	}
	return &ast.Chunk{SheBang: shebang, Body: block}
}

func (p *parser) parseBlock() *ast.Block {
	b := &ast.Block{Leading: p.gapBefore()}
	for !p.atBlockEnd() {
		gap := p.gapBefore()
		stmt := p.parseStmt()
		if stmt == nil {
			// parseStmt already reported an error; advance to avoid
			// looping forever on an unrecognized token.
			if p.cur.Kind == token.EOF {
				break
			}
			p.advance()
			continue
		}
		item := ast.StmtItem{Leading: gap, Stmt: stmt}
		item.Gap = p.gapBefore()
		b.Stmts = append(b.Stmts, item)
	}
	if p.isKeyword("return") {
		b.ReturnStmt = p.parseReturnStmt()
	}
	b.Trailing = p.gapBefore()
	return b
}

func (p *parser) parseReturnStmt() *ast.ReturnStmt {
	p.advance() // "return"
	r := &ast.ReturnStmt{}
	if !p.atBlockEnd() && !p.isPunct(";") {
		r.HasExprs = true
		r.Exprs = p.parseExprList()
	}
	if p.isPunct(";") {
		r.HasSemi = true
		r.SemiGap = p.gapBefore()
		p.advance()
	}
	return r
}

func (p *parser) parseStmt() ast.Stmt {
	switch {
	case p.isPunct(";"):
		p.advance()
		return &ast.EmptyStmt{}
	case p.isPunct("::"):
		return p.parseLabelStmt()
	case p.isKeyword("break"):
		p.advance()
		return &ast.BreakStmt{}
	case p.isKeyword("goto"):
		p.advance()
		name, _, ok := p.expectName()
		if !ok {
			return nil
		}
		return &ast.GotoStmt{Label: name}
	case p.isKeyword("do"):
		return p.parseDoStmt()
	case p.isKeyword("while"):
		return p.parseWhileStmt()
	case p.isKeyword("repeat"):
		return p.parseRepeatStmt()
	case p.isKeyword("if"):
		return p.parseIfStmt()
	case p.isKeyword("for"):
		return p.parseForStmt()
	case p.isKeyword("function"):
		return p.parseFuncDeclStmt()
	case p.isKeyword("local"):
		return p.parseLocalStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseLabelStmt() ast.Stmt {
	p.advance() // "::"
	name, _, ok := p.expectName()
	if !ok {
		return nil
	}
	if _, ok := p.expectPunct("::"); !ok {
		return nil
	}
	return &ast.LabelStmt{Name: name}
}

func (p *parser) parseDoStmt() ast.Stmt {
	p.advance() // "do"
	doGap := p.gapBefore()
	body := p.parseBlock()
	endGap, ok := p.expectKeyword("end")
	if !ok {
		return nil
	}
	_ = endGap
	return &ast.DoStmt{DoGap: doGap, Body: body, EndGap: endGap}
}

func (p *parser) parseWhileStmt() ast.Stmt {
	p.advance() // "while"
	cond := p.parseExpr()
	if _, ok := p.expectKeyword("do"); !ok {
		return nil
	}
	doGap := p.gapBefore()
	body := p.parseBlock()
	endGap, ok := p.expectKeyword("end")
	if !ok {
		return nil
	}
	return &ast.WhileStmt{Cond: cond, DoGap: doGap, Body: body, EndGap: endGap}
}

func (p *parser) parseRepeatStmt() ast.Stmt {
	p.advance() // "repeat"
	body := p.parseBlock()
	untilGap, ok := p.expectKeyword("until")
	if !ok {
		return nil
	}
	cond := p.parseExpr()
	return &ast.RepeatStmt{Body: body, UntilGap: untilGap, Cond: cond}
}

func (p *parser) parseIfStmt() ast.Stmt {
	p.advance() // "if"
	cond := p.parseExpr()
	thenGap, ok := p.expectKeyword("then")
	if !ok {
		return nil
	}
	then := p.parseBlock()
	st := &ast.IfStmt{Cond: cond, ThenGap: thenGap, Then: then}
	for p.isKeyword("elseif") {
		leading := p.gapBefore()
		p.advance()
		c := p.parseExpr()
		tg, ok := p.expectKeyword("then")
		if !ok {
			return nil
		}
		body := p.parseBlock()
		st.ElseIfs = append(st.ElseIfs, ast.ElseIfClause{Leading: leading, Cond: c, ThenGap: tg, Body: body})
	}
	if p.isKeyword("else") {
		st.HasElse = true
		st.ElseGap = p.gapBefore()
		p.advance()
		st.Else = p.parseBlock()
	}
	endGap, ok := p.expectKeyword("end")
	if !ok {
		return nil
	}
	st.EndGap = endGap
	return st
}

func (p *parser) parseForStmt() ast.Stmt {
	p.advance() // "for"
	name, _, ok := p.expectName()
	if !ok {
		return nil
	}
	if p.isPunct("=") {
		p.advance()
		start := p.parseExpr()
		if _, ok := p.expectPunct(","); !ok {
			return nil
		}
		stop := p.parseExpr()
		st := &ast.NumForStmt{Name: name, Start: start, Stop: stop}
		if p.isPunct(",") {
			p.advance()
			st.HasStep = true
			st.Step = p.parseExpr()
		}
		doGap, ok := p.expectKeyword("do")
		if !ok {
			return nil
		}
		st.DoGap = doGap
		st.Body = p.parseBlock()
		endGap, ok := p.expectKeyword("end")
		if !ok {
			return nil
		}
		st.EndGap = endGap
		return st
	}
	names := []string{name}
	for p.isPunct(",") {
		p.advance()
		n, _, ok := p.expectName()
		if !ok {
			return nil
		}
		names = append(names, n)
	}
	inGap, ok := p.expectKeyword("in")
	if !ok {
		return nil
	}
	exprs := p.parseExprList()
	doGap, ok := p.expectKeyword("do")
	if !ok {
		return nil
	}
	body := p.parseBlock()
	endGap, ok := p.expectKeyword("end")
	if !ok {
		return nil
	}
	return &ast.GenForStmt{Names: names, InGap: inGap, Exprs: exprs, DoGap: doGap, Body: body, EndGap: endGap}
}

func (p *parser) parseFuncDeclStmt() ast.Stmt {
	p.advance() // "function"
	name, leading, ok := p.expectName()
	if !ok {
		return nil
	}
	path := []ast.PathSegment{{Leading: leading, Name: name}}
	isMethod := false
	for p.isPunct(".") {
		p.advance()
		n, leading, ok := p.expectName()
		if !ok {
			return nil
		}
		path = append(path, ast.PathSegment{Leading: leading, Name: n})
	}
	if p.isPunct(":") {
		p.advance()
		n, leading, ok := p.expectName()
		if !ok {
			return nil
		}
		path = append(path, ast.PathSegment{Leading: leading, Name: n})
		isMethod = true
	}
	body := p.parseFuncBody(isMethod)
	if body == nil {
		return nil
	}
	return &ast.FuncDeclStmt{Path: path, IsMethod: isMethod, Body: body}
}

func (p *parser) parseLocalStmt() ast.Stmt {
	p.advance() // "local"
	if p.isKeyword("function") {
		p.advance()
		name, _, ok := p.expectName()
		if !ok {
			return nil
		}
		body := p.parseFuncBody(false)
		if body == nil {
			return nil
		}
		return &ast.LocalFuncStmt{Name: name, Body: body}
	}
	var names []ast.LocalName
	for {
		leading := p.gapBefore()
		name, _, ok := p.expectName()
		if !ok {
			return nil
		}
		ln := ast.LocalName{Leading: leading, Name: name}
		if p.isPunct("<") {
			p.advance()
			attrib, _, ok := p.expectName()
			if !ok {
				return nil
			}
			ln.Attrib = attrib
			if _, ok := p.expectPunct(">"); !ok {
				return nil
			}
		}
		hasComma := p.isPunct(",")
		if hasComma {
			ln.Gap = p.gapBefore()
		}
		names = append(names, ln)
		if !hasComma {
			break
		}
		p.advance()
	}
	st := &ast.LocalStmt{Names: names}
	if p.isPunct("=") {
		st.HasValues = true
		st.EqGap = p.gapBefore()
		p.advance()
		st.Values = p.parseExprList()
	}
	return st
}

// parseExprStmt parses either an assignment or a bare call statement: both
// begin with a SuffixedExpr (spec.md §4.B), and which one it is can only
// be told apart after parsing that prefix.
func (p *parser) parseExprStmt() ast.Stmt {
	first := p.parseSuffixedExpr()
	if first == nil {
		p.errorf("unexpected %s", p.describeCur())
		return nil
	}
	if p.isPunct("=") || p.isPunct(",") {
		items := []ast.ListItem{{Value: first}}
		for p.isPunct(",") {
			p.advance()
			v := p.parseSuffixedExpr()
			if v == nil {
				p.errorf("unexpected %s in assignment target list", p.describeCur())
				return nil
			}
			items = append(items, ast.ListItem{Value: v})
		}
		items[len(items)-1].IsLast = true
		eqGap, ok := p.expectPunct("=")
		if !ok {
			return nil
		}
		values := p.parseExprList()
		return &ast.AssignStmt{Vars: ast.VarList{Items: items}, EqGap: eqGap, Values: values}
	}
	if se, ok := first.(*ast.SuffixedExpr); ok && isCallSuffix(se) {
		return &ast.CallStmt{Call: se}
	}
	p.errorf("syntax error: expression used as a statement")
	return nil
}

func isCallSuffix(se *ast.SuffixedExpr) bool {
	if len(se.Suffixes) == 0 {
		return false
	}
	k := se.Suffixes[len(se.Suffixes)-1].Kind
	return k == ast.CallSuffix || k == ast.MethodCallSuffix
}

// ---- Expressions ----

func (p *parser) parseExprList() ast.ExprList {
	var items []ast.ListItem
	for {
		v := p.parseExpr()
		items = append(items, ast.ListItem{Value: v})
		if !p.isPunct(",") {
			break
		}
		items[len(items)-1].Trailing = p.gapBefore()
		p.advance()
	}
	items[len(items)-1].IsLast = true
	return ast.ExprList{Items: items}
}

// binary operator precedence, following the Lua reference parser's table
// (left, right binding power; '..' and '^' are right-associative).
var binPrec = map[string][2]int{
	"or": {1, 1}, "and": {2, 2},
	"<": {3, 3}, ">": {3, 3}, "<=": {3, 3}, ">=": {3, 3}, "~=": {3, 3}, "==": {3, 3},
	"|": {4, 4}, "~": {5, 5}, "&": {6, 6},
	token.ShiftLeft: {7, 7}, token.ShiftRight: {7, 7},
	token.Concat: {9, 8},
	"+": {10, 10}, "-": {10, 10},
	"*": {11, 11}, "/": {11, 11}, token.FloorDiv: {11, 11}, "%": {11, 11},
	"^": {14, 13},
}

const unaryPriority = 12

func (p *parser) curBinOp() (string, bool) {
	if p.cur.Kind == token.Punct || p.cur.Kind == token.Keyword {
		if _, ok := binPrec[p.cur.Text]; ok {
			return p.cur.Text, true
		}
	}
	return "", false
}

func (p *parser) parseExpr() ast.Expr {
	return p.parseBinExpr(0)
}

func (p *parser) parseBinExpr(limit int) ast.Expr {
	left := p.parseUnaryExpr()
	for {
		op, ok := p.curBinOp()
		if !ok {
			break
		}
		prec := binPrec[op]
		if prec[0] <= limit {
			break
		}
		opGap := p.gapBefore()
		p.advance()
		rightGap := p.gapBefore()
		right := p.parseBinExpr(prec[1])
		left = &ast.BinopExpr{Left: left, OpGap: opGap, Op: op, RightGap: rightGap, Right: right}
	}
	return left
}

func (p *parser) parseUnaryExpr() ast.Expr {
	if p.cur.Kind == token.Keyword && p.cur.Text == "not" || p.isPunct("-") || p.isPunct("#") || p.isPunct("~") {
		op := p.cur.Text
		p.advance()
		opGap := p.gapBefore()
		operand := p.parseBinExpr(unaryPriority)
		return &ast.UnopExpr{Op: op, OpGap: opGap, Operand: operand}
	}
	return p.parsePowExpr()
}

// parsePowExpr just parses a simple expression. '^' needs no special case
// here: its left binding power (14) is above unaryPriority, so parseBinExpr
// already lets a unary operand absorb a following '^', and its lower right
// power (13) makes it right-associative.
func (p *parser) parsePowExpr() ast.Expr {
	return p.parseSimpleExpr()
}

func (p *parser) parseSimpleExpr() ast.Expr {
	switch {
	case p.isKeyword("nil"):
		p.advance()
		return &ast.NilExpr{}
	case p.isKeyword("true"):
		p.advance()
		return &ast.TrueExpr{}
	case p.isKeyword("false"):
		p.advance()
		return &ast.FalseExpr{}
	case p.cur.Kind == token.Number:
		text := p.cur.Text
		p.advance()
		return &ast.NumberExpr{Text: text}
	case p.cur.Kind == token.String:
		value, quote := p.cur.Text, byte('"')
		if p.cur.Level == 1 {
			quote = '\''
		}
		p.advance()
		return &ast.StringExpr{Value: value, Quote: quote}
	case p.cur.Kind == token.LongString:
		value, level := p.cur.Text, p.cur.Level
		p.advance()
		return &ast.LongStringExpr{Value: value, Level: level}
	case p.isPunct(token.Ellipsis):
		p.advance()
		return &ast.VarargExpr{}
	case p.isKeyword("function"):
		p.advance()
		body := p.parseFuncBody(false)
		if body == nil {
			return nil
		}
		return &ast.FuncExpr{Body: body}
	case p.isPunct("{"):
		return p.parseTableExpr()
	default:
		nerrs := len(p.errs)
		e := p.parseSuffixedExpr()
		if e == nil && len(p.errs) == nerrs {
			p.errorf("unexpected %s", p.describeCur())
		}
		return e
	}
}

// parseSuffixedExpr parses a Name or parenthesized expression followed by
// zero or more suffixes, returning the flat ast.SuffixedExpr spec.md §4.B
// requires. If the chain has no suffixes, the primary (a NameExpr or
// ParenExpr) is returned directly rather than wrapped, since it needs no
// suffix machinery.
func (p *parser) parseSuffixedExpr() ast.Expr {
	var primary ast.Expr
	switch {
	case p.cur.Kind == token.Ident:
		primary = &ast.NameExpr{Name: p.cur.Text}
		p.advance()
	case p.isPunct("("):
		p.advance()
		innerGap := p.gapBefore()
		inner := p.parseExpr()
		closeGap, ok := p.expectPunct(")")
		if !ok {
			return nil
		}
		primary = &ast.ParenExpr{InnerGap: innerGap, Inner: inner, CloseGap: closeGap}
	default:
		return nil
	}

	var suffixes []ast.Suffix
	for {
		leading := p.gapBefore()
		switch {
		case p.isPunct("."):
			p.advance()
			name, _, ok := p.expectName()
			if !ok {
				return nil
			}
			suffixes = append(suffixes, ast.Suffix{Leading: leading, Kind: ast.DotSuffix, Name: name})
		case p.isPunct("["):
			p.advance()
			idx := p.parseExpr()
			if _, ok := p.expectPunct("]"); !ok {
				return nil
			}
			suffixes = append(suffixes, ast.Suffix{Leading: leading, Kind: ast.IndexSuffix, Index: idx})
		case p.isPunct(":"):
			p.advance()
			name, _, ok := p.expectName()
			if !ok {
				return nil
			}
			args, ok := p.parseCallArgs()
			if !ok {
				return nil
			}
			suffixes = append(suffixes, ast.Suffix{Leading: leading, Kind: ast.MethodCallSuffix, Method: name, Args: args})
		case p.isPunct("("):
			args, ok := p.parseCallArgs()
			if !ok {
				return nil
			}
			suffixes = append(suffixes, ast.Suffix{Leading: leading, Kind: ast.CallSuffix, Args: args})
		case p.isPunct("{"):
			tblExpr := p.parseTableExpr()
			tbl, ok := tblExpr.(*ast.TableExpr)
			if !ok {
				return nil
			}
			suffixes = append(suffixes, ast.Suffix{Leading: leading, Kind: ast.TableArgSuffix, Args: ast.CallArgs{Table: tbl}})
		case p.cur.Kind == token.String:
			value, quote := p.cur.Text, byte('"')
			if p.cur.Level == 1 {
				quote = '\''
			}
			p.advance()
			suffixes = append(suffixes, ast.Suffix{Leading: leading, Kind: ast.StringArgSuffix, Args: ast.CallArgs{String: &ast.StringExpr{Value: value, Quote: quote}}})
		case p.cur.Kind == token.LongString:
			value, level := p.cur.Text, p.cur.Level
			p.advance()
			suffixes = append(suffixes, ast.Suffix{Leading: leading, Kind: ast.StringArgSuffix, Args: ast.CallArgs{LongStr: &ast.LongStringExpr{Value: value, Level: level}}})
		default:
			goto done
		}
	}
done:
	if len(suffixes) == 0 {
		return primary
	}
	return &ast.SuffixedExpr{Primary: primary, Suffixes: suffixes}
}

// parseCallArgs parses the "(args)" form of a call; the "{table}" and
// "string" forms are handled directly by their callers since they don't
// share open/close punctuation with the parenthesized form.
func (p *parser) parseCallArgs() (ast.CallArgs, bool) {
	if _, ok := p.expectPunct("("); !ok {
		return ast.CallArgs{}, false
	}
	openGap := p.gapBefore()
	var exprs ast.ExprList
	if !p.isPunct(")") {
		exprs = p.parseExprList()
	}
	closeGap, ok := p.expectPunct(")")
	if !ok {
		return ast.CallArgs{}, false
	}
	return ast.CallArgs{OpenGap: openGap, Exprs: exprs, CloseGap: closeGap}, true
}

func (p *parser) parseTableExpr() ast.Expr {
	openGap, ok := p.expectPunct("{")
	if !ok {
		return nil
	}
	t := &ast.TableExpr{OpenGap: openGap, AllSequential: true}
	first := true
	for !p.isPunct("}") {
		leading := p.gapBefore()
		field := p.parseField()
		if field == nil {
			return nil
		}
		if _, ok := field.(ast.NameField); ok {
			t.AllSequential = false
		}
		if _, ok := field.(ast.IndexField); ok {
			t.AllSequential = false
		}
		item := ast.FieldItem{Leading: leading, Field: field, IsFirst: first}
		first = false
		if p.isPunct(",") || p.isPunct(";") {
			item.Separator = p.cur.Text
			item.Gap = p.gapBefore()
			p.advance()
		}
		t.Fields = append(t.Fields, item)
		if item.Separator == "" {
			break
		}
	}
	closeGap, ok := p.expectPunct("}")
	if !ok {
		return nil
	}
	t.CloseGap = closeGap
	return t
}

func (p *parser) parseField() ast.Field {
	switch {
	case p.isPunct("["):
		p.advance()
		key := p.parseExpr()
		closeGap, ok := p.expectPunct("]")
		if !ok {
			return nil
		}
		eqGap, ok := p.expectPunct("=")
		if !ok {
			return nil
		}
		value := p.parseExpr()
		return ast.IndexField{Key: key, CloseGap: closeGap, EqGap: eqGap, Value: value}
	case p.cur.Kind == token.Ident && p.peekIsAssign():
		name := p.cur.Text
		p.advance()
		eqGap := p.gapBefore()
		p.advance() // "="
		value := p.parseExpr()
		return ast.NameField{Name: name, EqGap: eqGap, Value: value}
	default:
		value := p.parseExpr()
		if value == nil {
			return nil
		}
		return ast.PosField{Value: value}
	}
}

// peekIsAssign reports whether the token after the current identifier is
// "=" (and not "=="), which disambiguates `name = expr` fields from a
// positional field that happens to start with a name.
func (p *parser) peekIsAssign() bool {
	save := *p.lex
	next := p.lex.Next()
	*p.lex = save
	return next.Kind == token.Punct && next.Text == "="
}

func (p *parser) parseFuncBody(isMethod bool) *ast.FuncBody {
	if _, ok := p.expectPunct("("); !ok {
		return nil
	}
	fb := &ast.FuncBody{ParamsGap: p.gapBefore()}
	for !p.isPunct(")") {
		if p.isPunct(token.Ellipsis) {
			fb.VarargGap = p.gapBefore()
			fb.IsVararg = true
			p.advance()
			break
		}
		leading := p.gapBefore()
		name, _, ok := p.expectName()
		if !ok {
			return nil
		}
		param := ast.Param{Leading: leading, Name: name}
		hasComma := p.isPunct(",")
		if hasComma {
			param.Gap = p.gapBefore()
		}
		fb.Params = append(fb.Params, param)
		if !hasComma {
			break
		}
		p.advance()
	}
	if _, ok := p.expectPunct(")"); !ok {
		return nil
	}
	fb.BodyGap = p.gapBefore()
	fb.Body = p.parseBlock()
	endGap, ok := p.expectKeyword("end")
	if !ok {
		return nil
	}
	fb.EndGap = endGap
	return fb
}
