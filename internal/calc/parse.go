package calc

import (
	"fmt"
	"strings"

	"github.com/agbru/einteger"
	apperrors "github.com/agbru/einteger/internal/errors"
)

// LastResult is the variable holding the previous REPL result.
const LastResult = "_"

// Vars holds named values for operand references of the form $name.
// A bare "$" refers to LastResult.
type Vars map[string]*einteger.EInteger

var radixPrefixes = []struct {
	prefix string
	radix  int
}{
	{"0x", 16}, {"0X", 16},
	{"0b", 2}, {"0B", 2},
	{"0o", 8}, {"0O", 8},
}

// ParseOperand parses one operand. A 0x, 0b or 0o prefix (after an
// optional '-') overrides radix; underscores between digits are ignored;
// $name looks the value up in vars.
func ParseOperand(s string, radix int, vars Vars) (*einteger.EInteger, error) {
	if strings.HasPrefix(s, "$") {
		name := s[1:]
		if name == "" {
			name = LastResult
		}
		if v, ok := vars[name]; ok {
			return v, nil
		}
		return nil, apperrors.ValidationError{Field: s, Message: "undefined variable"}
	}

	body, neg := s, false
	if strings.HasPrefix(body, "-") {
		body, neg = body[1:], true
	}
	for _, p := range radixPrefixes {
		if strings.HasPrefix(body, p.prefix) && len(body) > len(p.prefix) {
			body, radix = body[len(p.prefix):], p.radix
			break
		}
	}
	body = strings.ReplaceAll(body, "_", "")
	if neg {
		body = "-" + body
	}
	x, err := einteger.FromRadixString(body, radix)
	if err != nil {
		return nil, apperrors.ValidationError{Field: s, Message: fmt.Sprintf("not an integer in radix %d", radix)}
	}
	return x, nil
}

// ParseOperands parses every element of args.
func ParseOperands(args []string, radix int, vars Vars) ([]*einteger.EInteger, error) {
	out := make([]*einteger.EInteger, len(args))
	for i, a := range args {
		x, err := ParseOperand(a, radix, vars)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

// Statement is one parsed REPL line: "[name =] op operand...".
type Statement struct {
	Assign string
	Op     string
	Args   []string
}

// ParseStatement splits a REPL line into a Statement.
func ParseStatement(line string) (Statement, error) {
	fields := strings.Fields(line)
	var st Statement
	if len(fields) >= 2 && fields[1] == "=" {
		if !validName(fields[0]) {
			return Statement{}, apperrors.ValidationError{Field: fields[0], Message: "invalid variable name"}
		}
		st.Assign = fields[0]
		fields = fields[2:]
	}
	if len(fields) == 0 {
		return Statement{}, apperrors.ValidationError{Field: "op", Message: "missing operation"}
	}
	st.Op = strings.ToLower(fields[0])
	st.Args = fields[1:]
	return st, nil
}

func validName(s string) bool {
	if s == "" || s == LastResult {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
