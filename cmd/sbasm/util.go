package main

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/ezrec/sbasm/ast"
	"github.com/ezrec/sbasm/hw"
	"github.com/ezrec/sbasm/parser"
	"github.com/ezrec/sbasm/translate"
)

var f = translate.From

// fatal reports err, and exits after the registered cleanups.
func fatal(err error) {
	log.Error(err)
	atexit.Exit(2)
}

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fatal(err)
	}
	return r
}

func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fatal(err)
	}
	return r
}

func getStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fatal(err)
	}
	return r
}

func getInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fatal(err)
	}
	return r
}

// splitDefine splits NAME=VALUE.
func splitDefine(define string) (name string, value string, err error) {
	name, value, ok := strings.Cut(define, "=")
	if !ok || len(name) == 0 {
		err = errors.New(f("malformed definition \"%s\"", define))
	}
	return
}

// readComputer loads the --machine description, or the default machine.
func readComputer(cmd *cobra.Command) (computer *hw.Computer, err error) {
	path := getString(cmd, "machine")
	if len(path) == 0 {
		computer = hw.DefaultComputer()
		return
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	computer, err = hw.LoadComputer(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}
	return
}

// readPrograms parses each source file with the --define equates, and links
// them into one statement stream.
func readPrograms(cmd *cobra.Command, paths []string) (seq iter.Seq[ast.Statement], err error) {
	p := &parser.Parser{Verbose: getFlag(cmd, "verbose")}
	for _, define := range getStringArray(cmd, "define") {
		var name, value string
		name, value, err = splitDefine(define)
		if err != nil {
			return
		}
		p.Predefine(name, value)
	}

	var progs []*parser.Program
	for _, path := range paths {
		var prog *parser.Program
		prog, err = readProgram(p, path)
		if err != nil {
			return
		}
		progs = append(progs, prog)
	}

	return parser.Link(progs...)
}

func readProgram(p *parser.Parser, path string) (prog *parser.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	prog, err = p.Parse(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}
	return
}

// parseRegisters parses a list of register names.
func parseRegisters(names []string) (regs []ast.Register, err error) {
	for _, name := range names {
		var reg ast.Register
		reg, err = parser.ParseRegister(strings.TrimSpace(name))
		if err != nil {
			return
		}
		regs = append(regs, reg)
	}
	return
}
