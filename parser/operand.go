package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ezrec/sbasm/ast"
	"github.com/ezrec/sbasm/commands"
)

var labelRegexp = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)

// splitWords splits a line on blanks and commas, except inside brackets.
// The text of a raw instruction, after its stat outputs, is one word.
func splitWords(line string) (words []string) {
	rest := line
	for {
		rest = strings.TrimLeft(rest, " \t,")
		if len(rest) == 0 {
			return
		}

		if rawText(words) && rest[0] != '>' {
			words = append(words, strings.TrimSpace(rest))
			return
		}

		depth := 0
		end := len(rest)
	scan:
		for n, ch := range rest {
			switch ch {
			case '[':
				depth++
			case ']':
				depth--
			case ' ', '\t', ',':
				if depth <= 0 {
					end = n
					break scan
				}
			}
		}

		words = append(words, rest[:end])
		rest = rest[end:]
	}
}

// rawText returns true if the next word is the text of a raw instruction.
func rawText(words []string) bool {
	n := 0
	for n < len(words) && (strings.HasSuffix(words[n], ":") || strings.HasPrefix(words[n], "?")) {
		n++
	}
	if n == len(words) || words[n] != "raw" {
		return false
	}
	for _, word := range words[n+1:] {
		if !strings.HasPrefix(word, ">") {
			return false
		}
	}
	return true
}

// valueOf returns the 32-bit pattern of a number in [-2^31, 2^32-1].
// A leading '~' inverts the bits.
func valueOf(word string) (value uint32, err error) {
	invert := false
	if strings.HasPrefix(word, "~") {
		invert = true
		word = word[1:]
	}

	v64, err := strconv.ParseInt(word, 0, 34)
	if err != nil || v64 > 0xffffffff || v64 < -0x80000000 {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)
	if invert {
		value = ^value
	}

	return
}

// ParseRegister parses a register name: r<n>, p<n>, lr, or %name.
func ParseRegister(word string) (reg ast.Register, err error) {
	return register(word)
}

func register(word string) (reg ast.Register, err error) {
	switch {
	case word == "lr":
		reg = ast.Spec("lr")
		return
	case len(word) > 1 && word[0] == '%':
		reg = ast.Spec(word[1:])
		return
	case len(word) > 1 && (word[0] == 'r' || word[0] == 'p'):
		n, perr := strconv.ParseUint(word[1:], 10, 16)
		if perr != nil {
			break
		}
		if word[0] == 'r' {
			reg = ast.Gen(int(n))
		} else {
			reg = ast.Pred(int(n))
		}
		return
	}

	err = ErrRegisterInvalid(word)
	return
}

// immediate parses #n.
func immediate(word string) (value int32, err error) {
	text, ok := strings.CutPrefix(word, "#")
	if !ok {
		err = ErrOperandInvalid(word)
		return
	}
	v, err := valueOf(text)
	value = int32(v)
	return
}

// bound parses #n, or _ for an open bound.
func bound(word string) (b ast.Bound, err error) {
	if word == "_" {
		return
	}
	v, err := immediate(word)
	if err != nil {
		return
	}
	b = ast.Some(uint32(v))
	return
}

// memory parses [reg].
func memory(word string) (reg ast.Register, err error) {
	if len(word) < 3 || word[0] != '[' || word[len(word)-1] != ']' {
		err = ErrOperandInvalid(word)
		return
	}
	return register(strings.TrimSpace(word[1 : len(word)-1]))
}

// label parses foo or =foo.
func label(word string) (name string, err error) {
	name = strings.TrimPrefix(word, "=")
	if !labelRegexp.MatchString(name) {
		err = ErrLabelInvalid(word)
	}
	return
}

// guard parses ?reg=min..max, ?reg=..max, ?reg=min.., or ?reg=value.
func guard(word string) (cond ast.Cond, err error) {
	text := strings.TrimPrefix(word, "?")
	name, bounds, ok := strings.Cut(text, "=")
	if !ok {
		err = ErrGuardInvalid(word)
		return
	}

	reg, err := register(name)
	if err != nil {
		return
	}

	limit := func(text string) (v *int32, err error) {
		if len(text) == 0 || text == "_" {
			return
		}
		u, err := valueOf(text)
		if err != nil {
			return
		}
		n := int32(u)
		v = &n
		return
	}

	lo_text, hi_text, ranged := strings.Cut(bounds, "..")
	if !ranged {
		hi_text = lo_text
	}

	lo, err := limit(lo_text)
	if err != nil {
		return
	}
	hi, err := limit(hi_text)
	if err != nil {
		return
	}

	interval, ok := commands.NewInterval(lo, hi)
	if !ok || interval.IsEmpty() {
		err = ErrGuardInvalid(word)
		return
	}

	cond = ast.NewCond(reg, interval)
	return
}

// statOut parses >Stat:reg.
func statOut(word string) (out ast.Out, err error) {
	name, regName, ok := strings.Cut(strings.TrimPrefix(word, ">"), ":")
	if !ok {
		err = ErrOperandInvalid(word)
		return
	}

	kind, ok := commands.ParseStatKind(name)
	if !ok {
		err = ErrOperandInvalid(word)
		return
	}

	reg, err := register(regName)
	if err != nil {
		return
	}

	out = ast.Out{Stat: kind, Reg: reg}
	return
}
