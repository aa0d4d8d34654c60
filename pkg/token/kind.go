// Package token defines the lexical token kinds produced by pkg/lexer and
// consumed by pkg/parser: the C89-C23 keyword set, the SafeC extension
// keywords, every operator and punctuation mark, and the three literal
// forms (spec.md §4.4).
package token

// Kind identifies the lexical class of a Token.
type Kind int

const (
	Invalid Kind = iota
	Eof

	// Literals.
	IntLit
	FloatLit
	StringLit
	CharLit

	// Identifier (keywords are resolved to their own Kind by the lexer;
	// anything left over is Ident).
	Ident

	// C keywords.
	KwAuto
	KwBreak
	KwCase
	KwChar
	KwConst
	KwContinue
	KwDefault
	KwDo
	KwDouble
	KwElse
	KwEnum
	KwExtern
	KwFloat
	KwFor
	KwGoto
	KwIf
	KwInline
	KwInt
	KwLong
	KwRegister
	KwRestrict
	KwReturn
	KwShort
	KwSigned
	KwSizeof
	KwStatic
	KwStruct
	KwSwitch
	KwTypedef
	KwUnion
	KwUnsigned
	KwVoid
	KwVolatile
	KwWhile
	KwBool
	KwTrue
	KwFalse
	KwNull

	// SafeC extension keywords.
	KwRegion
	KwUnsafe
	KwConsteval
	KwGeneric
	KwStaticAssert
	KwStack
	KwHeap
	KwArena
	KwCapacity
	KwSelf
	KwOperator
	KwNew
	KwArenaReset
	KwTuple
	KwSpawn
	KwJoin
	KwDefer
	KwErrdefer
	KwMatch
	KwPacked
	KwTry
	KwMustUse
	KwFn
	KwAlignof
	KwTypeof
	KwFieldcount
	KwAsm

	// Operators.
	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	Pipe
	Caret
	Tilde
	LShift
	RShift
	PlusPlus
	MinusMinus
	PlusEq
	MinusEq
	StarEq
	SlashEq
	PercentEq
	AmpEq
	PipeEq
	CaretEq
	LShiftEq
	RShiftEq
	AmpAmp
	PipePipe
	Bang
	EqEq
	BangEq
	Lt
	Gt
	LtEq
	GtEq
	Eq
	Arrow
	Dot
	DotDotDot
	Question
	QuestionAmp
	Colon
	ColonColon
	FatArrow

	// Punctuation.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Hash
)

var names = map[Kind]string{
	Invalid: "invalid", Eof: "eof",
	IntLit: "int-literal", FloatLit: "float-literal", StringLit: "string-literal", CharLit: "char-literal",
	Ident: "identifier",

	KwAuto: "auto", KwBreak: "break", KwCase: "case", KwChar: "char", KwConst: "const",
	KwContinue: "continue", KwDefault: "default", KwDo: "do", KwDouble: "double", KwElse: "else",
	KwEnum: "enum", KwExtern: "extern", KwFloat: "float", KwFor: "for", KwGoto: "goto",
	KwIf: "if", KwInline: "inline", KwInt: "int", KwLong: "long", KwRegister: "register",
	KwRestrict: "restrict", KwReturn: "return", KwShort: "short", KwSigned: "signed",
	KwSizeof: "sizeof", KwStatic: "static", KwStruct: "struct", KwSwitch: "switch",
	KwTypedef: "typedef", KwUnion: "union", KwUnsigned: "unsigned", KwVoid: "void",
	KwVolatile: "volatile", KwWhile: "while", KwBool: "bool", KwTrue: "true", KwFalse: "false",
	KwNull: "null",

	KwRegion: "region", KwUnsafe: "unsafe", KwConsteval: "consteval", KwGeneric: "generic",
	KwStaticAssert: "static_assert", KwStack: "stack", KwHeap: "heap", KwArena: "arena",
	KwCapacity: "capacity", KwSelf: "self", KwOperator: "operator", KwNew: "new",
	KwArenaReset: "arena_reset", KwTuple: "tuple", KwSpawn: "spawn", KwJoin: "join",
	KwDefer: "defer", KwErrdefer: "errdefer", KwMatch: "match", KwPacked: "packed",
	KwTry: "try", KwMustUse: "must_use", KwFn: "fn", KwAlignof: "alignof",
	KwTypeof: "typeof", KwFieldcount: "fieldcount", KwAsm: "asm",

	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Amp: "&", Pipe: "|", Caret: "^", Tilde: "~",
	LShift: "<<", RShift: ">>", PlusPlus: "++", MinusMinus: "--",
	PlusEq: "+=", MinusEq: "-=", StarEq: "*=", SlashEq: "/=", PercentEq: "%=",
	AmpEq: "&=", PipeEq: "|=", CaretEq: "^=", LShiftEq: "<<=", RShiftEq: ">>=",
	AmpAmp: "&&", PipePipe: "||", Bang: "!",
	EqEq: "==", BangEq: "!=",
	Lt: "<", Gt: ">", LtEq: "<=", GtEq: ">=",
	Eq: "=", Arrow: "->", Dot: ".", DotDotDot: "...",
	Question: "?", QuestionAmp: "?&", Colon: ":", ColonColon: "::", FatArrow: "=>",

	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Semicolon: ";", Comma: ",", Hash: "#",
}

// String renders a human-readable name for the token kind.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown"
}

// keywords maps lexeme text to the reserved keyword Kind for that spelling.
// stack/heap/arena/capacity are deliberately included here (they lex as
// keywords) even though the parser treats them as contextual identifiers
// outside type position — see Token.IsContextualKeyword.
var keywords = map[string]Kind{
	"auto": KwAuto, "break": KwBreak, "case": KwCase, "char": KwChar, "const": KwConst,
	"continue": KwContinue, "default": KwDefault, "do": KwDo, "double": KwDouble, "else": KwElse,
	"enum": KwEnum, "extern": KwExtern, "float": KwFloat, "for": KwFor, "goto": KwGoto,
	"if": KwIf, "inline": KwInline, "int": KwInt, "long": KwLong, "register": KwRegister,
	"restrict": KwRestrict, "return": KwReturn, "short": KwShort, "signed": KwSigned,
	"sizeof": KwSizeof, "static": KwStatic, "struct": KwStruct, "switch": KwSwitch,
	"typedef": KwTypedef, "union": KwUnion, "unsigned": KwUnsigned, "void": KwVoid,
	"volatile": KwVolatile, "while": KwWhile, "bool": KwBool, "true": KwTrue, "false": KwFalse,
	"null": KwNull,

	"region": KwRegion, "unsafe": KwUnsafe, "consteval": KwConsteval, "generic": KwGeneric,
	"static_assert": KwStaticAssert, "stack": KwStack, "heap": KwHeap, "arena": KwArena,
	"capacity": KwCapacity, "self": KwSelf, "operator": KwOperator, "new": KwNew,
	"arena_reset": KwArenaReset, "tuple": KwTuple, "spawn": KwSpawn, "join": KwJoin,
	"defer": KwDefer, "errdefer": KwErrdefer, "match": KwMatch, "packed": KwPacked,
	"try": KwTry, "must_use": KwMustUse, "fn": KwFn, "alignof": KwAlignof,
	"typeof": KwTypeof, "fieldcount": KwFieldcount, "asm": KwAsm,
}

// LookupKeyword returns the keyword Kind for an identifier spelling, and
// whether it is in fact a keyword.
func LookupKeyword(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}

// contextualKinds are keyword kinds that the parser still accepts as plain
// identifiers outside of type position (spec.md §4.4).
var contextualKinds = map[Kind]bool{
	KwStack: true, KwHeap: true, KwArena: true, KwCapacity: true,
}

// IsContextual reports whether a keyword Kind is one of the contextual
// keywords that double as identifiers.
func IsContextual(k Kind) bool {
	return contextualKinds[k]
}
