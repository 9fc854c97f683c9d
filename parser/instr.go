package parser

import (
	"strings"

	"github.com/ezrec/sbasm/ast"
	"github.com/ezrec/sbasm/commands"
)

// Register-register instructions.
var rrMap = map[string]ast.OpKind{
	"and":  ast.OP_AND_RR,
	"orr":  ast.OP_ORR_RR,
	"eor":  ast.OP_EOR_RR,
	"asr":  ast.OP_ASR_RR,
	"lsr":  ast.OP_LSR_RR,
	"lsl":  ast.OP_LSL_RR,
	"mul":  ast.OP_MUL_RR,
	"sdiv": ast.OP_SDIV_RR,
	"udiv": ast.OP_UDIV_RR,
	"srem": ast.OP_SREM_RR,
	"urem": ast.OP_UREM_RR,
}

// Instructions taking either a register or an immediate source.
var riMap = map[string][2]ast.OpKind{
	"add": {ast.OP_ADD_RR, ast.OP_ADD_RI},
	"sub": {ast.OP_SUB_RR, ast.OP_SUB_RI},
	"mov": {ast.OP_MOV_RR, ast.OP_MOV_RI},
}

// Register-immediate instructions.
var immMap = map[string]ast.OpKind{
	"addi": ast.OP_ADD_RI,
	"subi": ast.OP_SUB_RI,
	"movi": ast.OP_MOV_RI,
}

// External score instructions.
var xrMap = map[string]ast.OpKind{
	"addxr": ast.OP_ADD_XR,
	"subxr": ast.OP_SUB_XR,
	"movxr": ast.OP_MOV_XR,
}

// args checks the operand count.
func args(words []string, least, most int) (err error) {
	switch {
	case len(words) < least:
		err = ErrOpcodeValueMissing
	case len(words) > most:
		err = ErrOpcodeExtraArgs
	}
	return
}

// parseWords evaluates the words of one line of assembly text.
func (p *Parser) parseWords(words []string, lineno int, text string) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	var conds []ast.Cond
	for len(words) > 0 && strings.HasPrefix(words[0], "?") {
		var cond ast.Cond
		cond, err = guard(words[0])
		if err != nil {
			return
		}
		conds = append(conds, cond)
		words = words[1:]
	}

	if len(words) == 0 {
		err = ErrGuardMissing
		return
	}

	op, err := instruction(words[0], words[1:])
	if err != nil {
		return
	}

	p.lines = append(p.lines, Line{LineNo: lineno, Text: text, Statement: ast.Instr(op, conds...)})
	return
}

// instruction parses a mnemonic and its operands.
func instruction(mnemonic string, words []string) (op ast.Op, err error) {
	if kind, ok := rrMap[mnemonic]; ok {
		return rr(kind, words)
	}

	if kinds, ok := riMap[mnemonic]; ok {
		if len(words) == 2 && strings.HasPrefix(words[1], "#") {
			return ri(kinds[1], words)
		}
		return rr(kinds[0], words)
	}

	if kind, ok := immMap[mnemonic]; ok {
		return ri(kind, words)
	}

	if kind, ok := xrMap[mnemonic]; ok {
		return xr(kind, words)
	}

	switch mnemonic {
	case "movrx":
		err = args(words, 3, 3)
		if err != nil {
			return
		}
		var dst ast.Register
		dst, err = register(words[0])
		if err != nil {
			return
		}
		var tgt commands.Target
		tgt, err = commands.ParseTarget(words[1])
		if err != nil {
			return
		}
		op = ast.MakeMovRX(dst, tgt, words[2])
	case "srng", "urng":
		kind := ast.OP_SRNG
		if mnemonic == "urng" {
			kind = ast.OP_URNG
		}
		err = args(words, 4, 4)
		if err != nil {
			return
		}
		var regs [2]ast.Register
		for n := range regs {
			regs[n], err = register(words[n])
			if err != nil {
				return
			}
		}
		var bounds [2]ast.Bound
		for n := range bounds {
			bounds[n], err = bound(words[2+n])
			if err != nil {
				return
			}
		}
		op = ast.MakeRange(kind, regs[0], regs[1], bounds[0], bounds[1])
	case "ldr", "str":
		err = args(words, 2, 2)
		if err != nil {
			return
		}
		var reg, addr ast.Register
		reg, err = register(words[0])
		if err != nil {
			return
		}
		addr, err = memory(words[1])
		if err != nil {
			return
		}
		if mnemonic == "ldr" {
			op = ast.MakeLdr(reg, addr)
		} else {
			op = ast.MakeStr(reg, addr)
		}
	case "b", "bl":
		err = args(words, 1, 1)
		if err != nil {
			return
		}
		link := mnemonic == "bl"
		if !strings.HasPrefix(words[0], "=") {
			reg, rerr := register(words[0])
			if rerr == nil {
				op = ast.MakeBranchReg(link, reg)
				return
			}
		}
		var name string
		name, err = label(words[0])
		if err != nil {
			return
		}
		op = ast.MakeBranch(link, name)
	case "br", "blr":
		err = args(words, 1, 1)
		if err != nil {
			return
		}
		var reg ast.Register
		reg, err = register(words[0])
		if err != nil {
			return
		}
		op = ast.MakeBranchReg(mnemonic == "blr", reg)
	case "halt":
		err = args(words, 0, 0)
		if err != nil {
			return
		}
		op = ast.MakeHalt()
	case "raw":
		if len(words) == 0 || strings.HasPrefix(words[len(words)-1], ">") {
			err = ErrOpcodeValueMissing
			return
		}
		var outs []ast.Out
		for _, word := range words[:len(words)-1] {
			var out ast.Out
			out, err = statOut(word)
			if err != nil {
				return
			}
			outs = append(outs, out)
		}
		op = ast.MakeRaw(words[len(words)-1], outs...)
	default:
		err = ErrInstructionInvalid
	}

	return
}

func rr(kind ast.OpKind, words []string) (op ast.Op, err error) {
	err = args(words, 2, 2)
	if err != nil {
		return
	}
	dst, err := register(words[0])
	if err != nil {
		return
	}
	src, err := register(words[1])
	if err != nil {
		return
	}
	op = ast.MakeRR(kind, dst, src)
	return
}

func ri(kind ast.OpKind, words []string) (op ast.Op, err error) {
	err = args(words, 2, 2)
	if err != nil {
		return
	}
	dst, err := register(words[0])
	if err != nil {
		return
	}
	imm, err := immediate(words[1])
	if err != nil {
		return
	}
	op = ast.MakeRI(kind, dst, imm)
	return
}

// xr parses <target> <objective>, src[, success].
func xr(kind ast.OpKind, words []string) (op ast.Op, err error) {
	err = args(words, 3, 4)
	if err != nil {
		return
	}
	tgt, err := commands.ParseTarget(words[0])
	if err != nil {
		return
	}
	src, err := register(words[2])
	if err != nil {
		return
	}
	var success ast.Register
	if len(words) == 4 && words[3] != "_" {
		success, err = register(words[3])
		if err != nil {
			return
		}
	}
	op = ast.MakeXR(kind, tgt, words[1], src, success)
	return
}
