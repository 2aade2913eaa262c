package constraint

import (
	"math"
	"strconv"
	"strings"
)

// literalKind selects how a nondet function's literal text is parsed.
type literalKind int

const (
	kindInt literalKind = iota
	kindChar
	kindBool
	kindFloat
)

type nondetType struct {
	width  int
	signed bool
	kind   literalKind
}

// nondetTable maps a __VERIFIER_nondet_* function's type suffix to its
// width, signedness, and literal dialect, per the table in spec §4.3(b).
var nondetTable = map[string]nondetType{
	"int":   {32, true, kindInt},
	"short": {16, true, kindInt},
	"long":  {64, true, kindInt},
	"char":  {8, true, kindChar},

	"uint":      {32, false, kindInt},
	"ushort":    {16, false, kindInt},
	"ulong":     {64, false, kindInt},
	"uchar":     {8, false, kindInt},
	"u32":       {32, false, kindInt},
	"unsigned":  {32, false, kindInt},
	"size_t":    {64, false, kindInt},
	"loff_t":    {64, false, kindInt},
	"sector_t":  {64, false, kindInt},
	"pointer":   {64, false, kindInt},
	"pchar":     {8, false, kindInt},
	"pthread_t": {64, false, kindInt},

	"bool":  {1, false, kindBool},
	"_Bool": {1, false, kindBool},

	"float":  {32, true, kindFloat},
	"double": {64, true, kindFloat},
}

// ParseNondetLiteral produces a typed concrete Value for a
// __VERIFIER_nondet_* assumption. funcSymbol is the function name as it
// appears in assumption.resultfunction (e.g. "__VERIFIER_nondet_int");
// literal is the right-hand side text of the \result assumption, already
// isolated from its comparator.
//
// Unknown function suffixes report unknown=true along with a dummy 32-bit
// signed zero value, per spec §4.3(b) and §7 kind-4 (advisory) errors: the
// caller is expected to downgrade determinism, not abort the load.
func ParseNondetLiteral(funcSymbol, literal string) (value Value, unknown bool) {
	suffix := strings.TrimPrefix(funcSymbol, "__VERIFIER_nondet_")
	typ, ok := nondetTable[suffix]
	if !ok {
		return NewSigned(32, 0), true
	}

	switch typ.kind {
	case kindBool:
		switch literal {
		case "true", "True":
			return NewUnsigned(1, 1), false
		case "false", "False":
			return NewUnsigned(1, 0), false
		default:
			n, ok := parseInt(literal, typ.width, typ.signed)
			if !ok {
				return NewUnsigned(1, 0), true
			}
			return n, false
		}
	case kindChar:
		if len(literal) >= 3 && literal[0] == '"' && literal[len(literal)-1] == '"' {
			inner := literal[1 : len(literal)-1]
			if len(inner) != 1 {
				return NewSigned(8, 0), true
			}
			return NewSigned(8, int64(inner[0])), false
		}
		n, ok := parseInt(literal, typ.width, typ.signed)
		if !ok {
			return NewSigned(8, 0), true
		}
		return n, false
	case kindFloat:
		f, err := strconv.ParseFloat(literal, typ.width)
		if err != nil {
			return NewUnsigned(typ.width, 0), true
		}
		if typ.width == 32 {
			return NewUnsigned(32, uint64(math.Float32bits(float32(f)))), false
		}
		return NewUnsigned(64, math.Float64bits(f)), false
	default:
		n, ok := parseInt(literal, typ.width, typ.signed)
		if !ok {
			return NewSigned(typ.width, 0), true
		}
		return n, false
	}
}

// parseInt parses a decimal/hex/octal integer literal with base
// autodetection ("0x" hex, leading "0" octal), matching strconv's base-0
// rules, and reports false if any characters remain unconsumed.
func parseInt(literal string, width int, signed bool) (Value, bool) {
	if signed {
		n, err := strconv.ParseInt(literal, 0, 64)
		if err != nil {
			return Value{}, false
		}
		return NewSigned(width, n), true
	}
	n, err := strconv.ParseUint(literal, 0, 64)
	if err != nil {
		return Value{}, false
	}
	return NewUnsigned(width, n), true
}
