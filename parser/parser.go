// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package parser

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/sbasm/ast"
)

// MACRO_DEPTH limits nested macro expansion.
const MACRO_DEPTH = 16

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":   "0",
	"INT_MIN":  "-0x80000000",
	"INT_MAX":  "0x7fffffff",
	"UINT_MAX": "0xffffffff",
}

var (
	charRegexp  = regexp.MustCompile(`'\\?[^']'`)
	parenRegexp = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Parser is a single pass macro assembler front end.
type Parser struct {
	Verbose bool                // If set, verbosely logs the parser actions.
	Equate  map[string]string   // Map of equates.
	Macro   map[string](*Macro) // Map of macros.

	predefine  map[string]string
	labels     map[string]int
	lines      []Line
	expansions int
	depth      int
}

// Predefine defines a new equate or redefines an existing equate.
func (p *Parser) Predefine(equ string, value string) {
	if p.predefine == nil {
		p.predefine = map[string]string{equ: value}
	} else {
		p.predefine[equ] = value
	}
}

// parenEval does compile-time $(...) evaluations.
// Integer equates are visible as starlark variables.
func (p *Parser) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range p.Equate {
		value32, verr := valueOf(str)
		if verr != nil {
			// Not every equate is a number.
			continue
		}
		pred[key] = starlark.MakeInt64(int64(int32(value32)))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 > 0xffffffff || st_int64 < -0x80000000 {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// substitute replaces equates in an operand, including inside the
// immediate, label and memory operand forms.
func (p *Parser) substitute(word string) string {
	if equate, ok := p.Equate[word]; ok {
		return equate
	}

	for _, prefix := range []string{"#", "=", "?"} {
		if rest, ok := strings.CutPrefix(word, prefix); ok {
			if prefix == "?" {
				name, bounds, found := strings.Cut(rest, "=")
				if !found {
					return word
				}
				lo, hi, ranged := strings.Cut(bounds, "..")
				bounds = p.substitute(lo)
				if ranged {
					bounds += ".." + p.substitute(hi)
				}
				return "?" + p.substitute(name) + "=" + bounds
			}
			if equate, ok := p.Equate[rest]; ok {
				return prefix + equate
			}
			return word
		}
	}

	if len(word) > 2 && word[0] == '[' && word[len(word)-1] == ']' {
		return "[" + p.substitute(word[1:len(word)-1]) + "]"
	}

	return word
}

// parseLine expands a line, and declares its labels.
// The remaining words are returned for parseWords.
func (p *Parser) parseLine(line string, lineno int) (words []string, err error) {
	p.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = charRegexp.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "t":
				str = "\t"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = parenRegexp.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := p.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = splitWords(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := p.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		p.Equate[words[1]] = words[2]
		words = nil
		return
	}

	raw := rawText(words)
	for n, word := range words {
		if raw && n == len(words)-1 && !strings.HasPrefix(word, ">") {
			break
		}
		words[n] = p.substitute(word)
	}

	for strings.HasSuffix(words[0], ":") {
		name := strings.TrimSuffix(words[0], ":")
		err = p.declare(name, lineno)
		if err != nil {
			return
		}
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := p.Macro[words[0]]
	if ok {
		err = p.expand(words[0], macro, words[1:])
		words = nil
		return
	}

	return
}

// declare adds a label statement.
func (p *Parser) declare(name string, lineno int) (err error) {
	if !labelRegexp.MatchString(name) {
		err = ErrLabelInvalid(name)
		return
	}

	_, ok := p.labels[name]
	if ok {
		err = ErrLabelDuplicate(name)
		return
	}

	p.labels[name] = lineno
	p.lines = append(p.lines, Line{LineNo: lineno, Text: name + ":", Statement: ast.LabelStmt(name)})
	return
}

// expand instantiates a macro. Each '@' in the macro body becomes a prefix
// unique to this expansion.
func (p *Parser) expand(name string, macro *Macro, args []string) (err error) {
	if len(args) != len(macro.Args) {
		err = ErrMacroSyntax
		return
	}

	if p.depth >= MACRO_DEPTH {
		err = ErrMacroDepth
		return
	}
	p.depth++
	defer func() { p.depth-- }()

	// Turn args into equates
	old_equate := maps.Clone(p.Equate)
	for n, arg := range macro.Args {
		p.Equate[arg] = args[n]
	}
	defer func() { p.Equate = old_equate }()

	p.expansions++
	local := fmt.Sprintf("%v_%v_", name, p.expansions)

	for n, line := range macro.Lines {
		lineno := macro.LineNo + n

		line = strings.ReplaceAll(line, "@", local)

		var words []string
		words, err = p.parseLine(line, lineno)
		if err == nil {
			err = p.parseWords(words, lineno, line)
		}
		if err != nil {
			err = &ErrMacro{Macro: name, Line: lineno, Err: err}
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}
	}

	return
}

// Parse parses an input stream into a Program.
func (p *Parser) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	p.labels = map[string]int{}
	p.lines = nil
	p.expansions = 0
	p.depth = 0
	p.Macro = map[string](*Macro){}
	p.Equate = maps.Clone(sysEquate)
	for attr, val := range p.predefine {
		p.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if p.Verbose {
			log.Infof("%v: %v", lineno, text)
		}

		text_comment := strings.SplitN(text, ";", 2)
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := p.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			p.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = p.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = p.parseWords(words, lineno, line)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	prog = &Program{Lines: p.lines}

	return
}
