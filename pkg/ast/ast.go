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

// Package ast defines the typed syntax tree built by pkg/parser and walked
// by pkg/printer. Every node carries a Span covering itself plus the
// ordered "location hints" (inter-child spans) spec.md §3 requires, so
// that original comments and whitespace can be reattached when printing.
//
// The variant set is closed (spec.md §9 design note: "no dynamic dispatch
// is needed"): every node type below is a concrete struct, and pkg/printer
// dispatches on a type switch rather than an interface method. Node exists
// only so containers (slices, Field.Value, etc.) can hold any variant.
package ast

import "github.com/luafmt/luafmt/pkg/token"

// Node is implemented by every syntax tree variant. It carries no
// behavior; pkg/printer type-switches on the concrete type.
type Node interface {
	Span() token.Span
}

// base is embedded in every node variant to give it a Span() method and
// the stmtNode/exprNode markers.
type base struct {
	span token.Span
}

func (b base) Span() token.Span { return b.span }

// Chunk is the root of a parsed file: an optional SheBang line followed by
// a Block. Body.Leading is the span before the first statement (or before
// EOF if the block is empty); it is where a file's opening comment lives.
type Chunk struct {
	base
	SheBang string // empty if the file had no "#!" line
	Body    *Block
}

// Block is a statement list: spec.md's "sequence-carrying variant" with
// (leading_span, child_node, trailing_span) tuples per statement, plus one
// leading span before the first statement and one trailing span after the
// last (§4.C: "the sequence always includes the leading span before the
// first child and the trailing span after the last child").
type Block struct {
	base
	Leading    token.Span
	Stmts      []StmtItem
	Trailing   token.Span
	ReturnStmt *ReturnStmt // nil if the block has no return
}

// StmtItem pairs one statement with the comment/whitespace span that
// precedes it and the span between it and the next statement (or the
// block's Trailing span, for the last item).
type StmtItem struct {
	Leading token.Span
	Stmt    Stmt
	Gap     token.Span // span between this statement and the next (or EOF/return)
}

// Stmt is implemented by every statement variant.
type Stmt interface {
	Node
	stmtNode()
}

func (base) stmtNode() {}

// Expr is implemented by every expression variant.
type Expr interface {
	Node
	exprNode()
}

func (base) exprNode() {}

// ---- Statements ----

// AssignStmt is `varlist = explist`.
type AssignStmt struct {
	base
	Vars    VarList
	EqGap   token.Span
	Values  ExprList
}

// LocalStmt is `local namelist [attribs] [= explist]`.
type LocalStmt struct {
	base
	Names      []LocalName
	HasValues  bool
	EqGap      token.Span
	Values     ExprList
}

// LocalName is one name in a `local` statement's name list, with its
// optional Lua 5.4 `<attrib>` annotation.
type LocalName struct {
	Leading token.Span
	Name    string
	Attrib  string // "" if absent, else "const" or "close"
	Gap     token.Span
}

// CallStmt is a function or method call used as a statement.
type CallStmt struct {
	base
	Call *SuffixedExpr
}

// DoStmt is `do block end`.
type DoStmt struct {
	base
	DoGap  token.Span
	Body   *Block
	EndGap token.Span
}

// WhileStmt is `while expr do block end`.
type WhileStmt struct {
	base
	Cond     Expr
	DoGap    token.Span
	Body     *Block
	EndGap   token.Span
}

// RepeatStmt is `repeat block until expr`.
type RepeatStmt struct {
	base
	Body       *Block
	UntilGap   token.Span
	Cond       Expr
}

// IfStmt enumerates the cartesian product spec.md §4.B describes
// ({has-then-body?} x {has-elseif-chain?} x {has-else?} x {has-else-body?})
// as a single struct with optional pieces, rather than four-plus distinct
// Go types: the printer's per-variant rule is just as "local" inspecting
// these fields, and Go's zero-value slices/pointers make "absent" free to
// represent.
type IfStmt struct {
	base
	Cond     Expr
	ThenGap  token.Span
	Then     *Block // nil only if malformed; always present for valid input
	ElseIfs  []ElseIfClause
	HasElse  bool
	ElseGap  token.Span
	Else     *Block
	EndGap   token.Span
}

// ElseIfClause is one `elseif expr then block` link in an if-chain.
type ElseIfClause struct {
	Leading token.Span
	Cond    Expr
	ThenGap token.Span
	Body    *Block
}

// NumForStmt is `for Name = start, stop [, step] do block end`.
type NumForStmt struct {
	base
	Name     string
	Start    Expr
	Stop     Expr
	HasStep  bool
	Step     Expr
	DoGap    token.Span
	Body     *Block
	EndGap   token.Span
}

// GenForStmt is `for namelist in explist do block end`.
type GenForStmt struct {
	base
	Names    []string
	InGap    token.Span
	Exprs    ExprList
	DoGap    token.Span
	Body     *Block
	EndGap   token.Span
}

// FuncDeclStmt is `function funcname funcbody`, where funcname is a
// dotted/colon path (spec.md: "function-name dotted paths" is a
// sequence-carrying variant).
type FuncDeclStmt struct {
	base
	Path     []PathSegment
	IsMethod bool // true if the path ends in `:name` rather than `.name`
	Body     *FuncBody
}

// PathSegment is one `.name` (or, for the final segment of a method
// declaration, `:name`) link of a function declaration's dotted path.
type PathSegment struct {
	Leading token.Span
	Name    string
}

// LocalFuncStmt is `local function Name funcbody`.
type LocalFuncStmt struct {
	base
	Name string
	Body *FuncBody
}

// BreakStmt is `break`.
type BreakStmt struct{ base }

// GotoStmt is `goto Name`.
type GotoStmt struct {
	base
	Label string
}

// LabelStmt is `::Name::`.
type LabelStmt struct {
	base
	Name string
}

// EmptyStmt is a bare `;` with no statement, legal but meaningless.
type EmptyStmt struct{ base }

// ReturnStmt is `return [explist] [;]`. spec.md: "Return statement
// variants distinguish presence of expressions and a trailing ;" — modeled
// here as two booleans rather than four struct types, for the same reason
// given on IfStmt.
type ReturnStmt struct {
	base
	HasExprs   bool
	Exprs      ExprList
	HasSemi    bool
	SemiGap    token.Span
}

// ---- Function bodies ----

// FuncBody is split, per spec.md §4.B, on whether the parameter list is
// present and whether the body is empty; those two facts are read from
// the fields (parameters are present when len(Params) > 0 or IsVararg;
// the body is empty when len(Body.Stmts) == 0 and Body.ReturnStmt is nil)
// rather than from four distinct struct types, so the printer can check
// them directly instead of type-switching.
type FuncBody struct {
	base
	ParamsGap  token.Span // span between "(" and the first param, or between "(" and ")" if there are none
	Params     []Param
	IsVararg   bool
	VarargGap  token.Span // leading span of the "..." param, if IsVararg
	BodyGap    token.Span
	Body       *Block
	EndGap     token.Span
}

// Param is one fixed parameter name in a function's parameter list.
type Param struct {
	Leading token.Span
	Name    string
	Gap     token.Span
}

// ---- Expressions ----

// NilExpr, TrueExpr, FalseExpr, VarargExpr are the zero-payload literals.
type NilExpr struct{ base }
type TrueExpr struct{ base }
type FalseExpr struct{ base }
type VarargExpr struct{ base }

// NumberExpr is a numeral literal, carrying its exact source spelling so
// that e.g. hex literals and trailing exponents round-trip unchanged.
type NumberExpr struct {
	base
	Text string
}

// StringExpr is a normal- or char-quoted string literal.
type StringExpr struct {
	base
	Value  string // de-escaped payload
	Quote  byte   // '"' or '\''
}

// LongStringExpr is a `[==[ ... ]==]` literal.
type LongStringExpr struct {
	base
	Value string
	Level int
}

// NameExpr is a bare identifier used as a value (a local, upvalue, or
// global reference).
type NameExpr struct {
	base
	Name string
}

// ParenExpr is a parenthesized expression, `(expr)`. Lua gives this
// explicit AST representation because it truncates a multi-value
// expression to exactly one value; the printer must never drop the
// parens.
type ParenExpr struct {
	base
	InnerGap token.Span
	Inner    Expr
	CloseGap token.Span
}

// UnopExpr is a prefix unary operator application: `-e`, `not e`, `#e`, `~e`.
type UnopExpr struct {
	base
	Op      string
	OpGap   token.Span
	Operand Expr
}

// BinopExpr is a binary operator application. Precedence and
// associativity are resolved by the parser (spec.md §4.B); the AST need
// not record them, only the already-correct tree shape.
type BinopExpr struct {
	base
	Left     Expr
	OpGap    token.Span
	Op       string
	RightGap token.Span
	Right    Expr
}

// SuffixedExpr is the flattened prefix-expression-plus-suffix-chain
// spec.md §4.B calls for ("Prefix expressions and variable suffixes are
// parsed into a flat VarSuffixList rather than a left-recursive tree").
// Primary is the leading Name or ParenExpr; Suffixes is the ordered chain
// of `.name`, `[expr]`, `(args)`, `{table}`, `"string"`, and `:name(args)`
// links applied to it.
type SuffixedExpr struct {
	base
	Primary  Expr // *NameExpr or *ParenExpr
	Suffixes []Suffix
}

// Suffix is one link of a SuffixedExpr's chain. Exactly one of the typed
// fields is meaningful, selected by Kind.
type Suffix struct {
	Leading token.Span
	Kind    SuffixKind

	Name string // DotSuffix

	Index Expr // IndexSuffix: the bracketed expression

	// CallSuffix / MethodCallSuffix
	Method   string // method name, MethodCallSuffix only
	Args     CallArgs

	// StringArgSuffix: Args.StringArg holds the literal
}

// SuffixKind discriminates the six forms spec.md §4.B lists for variable
// suffixes.
type SuffixKind int

const (
	DotSuffix SuffixKind = iota
	IndexSuffix
	CallSuffix
	MethodCallSuffix
	TableArgSuffix
	StringArgSuffix
)

// CallArgs is the argument list of a `(args)`, `{table}`, `"string"`, or
// `:name(args)` suffix.
type CallArgs struct {
	OpenGap  token.Span // after "(" for a parenthesized call; the zero span for table and string arguments
	Exprs    ExprList   // meaningful only when the suffix is a parenthesized call
	Table    *TableExpr // meaningful only for a table-constructor argument
	String   *StringExpr
	LongStr  *LongStringExpr
	CloseGap token.Span
}

// TableExpr is a table constructor `{ ... }`.
type TableExpr struct {
	base
	OpenGap  token.Span
	Fields   []FieldItem
	CloseGap token.Span

	// AllSequential is true when every field is positional (no `key =`
	// form); the printer's "all-sequential table" one-line policy
	// (spec.md §4.D "Table constructor") reads this directly rather than
	// recomputing it from Fields on every probe.
	AllSequential bool
	// SoleChild marks a table that is the only child of its parent
	// construct (e.g. the sole argument to a call). pkg/parser never sets
	// it, so it is always false, and pkg/printer does not read it.
	SoleChild bool
}

// FieldItem pairs one table field with its leading/trailing gaps and the
// separator token actually used in the source (spec.md §4.B: "the parser
// records whether the source used , or ; for each field").
type FieldItem struct {
	Leading   token.Span
	Field     Field
	Gap       token.Span
	Separator string // "," or ";" as written; "" for the last field if unseparated
	IsFirst   bool
}

// Field is implemented by the three table-constructor field forms:
// positional (`expr`), named (`name = expr`), and bracketed
// (`[expr] = expr`).
type Field interface {
	fieldNode()
}

// PosField is a positional field: just a value expression.
type PosField struct{ Value Expr }

// NameField is `name = expr`.
type NameField struct {
	Name    string
	EqGap   token.Span
	Value   Expr
}

// IndexField is `[expr] = expr`.
type IndexField struct {
	Key      Expr
	CloseGap token.Span
	EqGap    token.Span
	Value    Expr
}

func (PosField) fieldNode()   {}
func (NameField) fieldNode()  {}
func (IndexField) fieldNode() {}

// FuncExpr is an anonymous `function funcbody` used as an expression.
type FuncExpr struct {
	base
	Body *FuncBody
}

// ---- Lists ----

// VarList is the left side of an assignment: a comma-separated list of
// assignable targets (NameExpr or SuffixedExpr ending in an index/field
// suffix).
type VarList struct {
	Leading token.Span
	Items   []ListItem
}

// ExprList is a comma-separated list of expressions: explist in the
// grammar, used by assignments, return statements, call arguments, and
// generic-for's `in` clause.
type ExprList struct {
	Leading token.Span
	Items   []ListItem
}

// ListItem pairs one element of a comma-separated list with the gap
// before it and the gap after it (before the comma, or before the list's
// closing context if it is the last item).
type ListItem struct {
	Leading  token.Span
	Value    Expr
	Trailing token.Span // before the separator, or list-end if last
	IsLast   bool
}
