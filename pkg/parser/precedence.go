package parser

import "sheetscript/pkg/token"

// Precedence levels, tightest last per spec.md §6.1: primary, index,
// unary `not`, `**`, `* / %`, `+ -`, `.. ..=`, `< > <= >= in`, `== !=`,
// `and`, `or`.
const (
	LOWEST   = 0
	OR       = 10
	AND      = 20
	EQUALITY = 30
	COMPARE  = 40
	RANGEOP  = 50
	SUM      = 60
	PRODUCT  = 70
	POWER    = 80
	UNARY    = 90
	INDEXBP  = 100
)

var precedences = map[token.Type]int{
	token.OR:     OR,
	token.AND:    AND,
	token.EQ:     EQUALITY,
	token.NEQ:    EQUALITY,
	token.LT:     COMPARE,
	token.GT:     COMPARE,
	token.LTE:    COMPARE,
	token.GTE:    COMPARE,
	token.IN:     COMPARE,
	token.RANGE:  RANGEOP,
	token.IRANGE: RANGEOP,
	token.PLUS:   SUM,
	token.MINUS:  SUM,
	token.MUL:    PRODUCT,
	token.DIV:    PRODUCT,
	token.MOD:    PRODUCT,
	token.POW:    POWER,
	token.LBRACKET: INDEXBP,
}
