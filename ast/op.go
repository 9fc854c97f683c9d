// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ast

import (
	"fmt"
	"strings"

	"github.com/ezrec/sbasm/commands"
)

//go:generate go tool stringer -linecomment -type=OpKind

// OpKind is an instruction opcode.
type OpKind int

const (
	OP_INVALID   = OpKind(iota) // invalid
	OP_LDR                      // ldr
	OP_STR                      // str
	OP_ADD_RR                   // add
	OP_ADD_RI                   // addi
	OP_ADD_XR                   // addxr
	OP_SUB_RR                   // sub
	OP_SUB_RI                   // subi
	OP_SUB_XR                   // subxr
	OP_AND_RR                   // and
	OP_ORR_RR                   // orr
	OP_EOR_RR                   // eor
	OP_ASR_RR                   // asr
	OP_LSR_RR                   // lsr
	OP_LSL_RR                   // lsl
	OP_MOV_RR                   // mov
	OP_MOV_RI                   // movi
	OP_MOV_RX                   // movrx
	OP_MOV_XR                   // movxr
	OP_MUL_RR                   // mul
	OP_SDIV_RR                  // sdiv
	OP_UDIV_RR                  // udiv
	OP_SREM_RR                  // srem
	OP_UREM_RR                  // urem
	OP_SRNG                     // srng
	OP_URNG                     // urng
	OP_BR_L                     // b
	OP_BR_R                     // br
	OP_BRLNK_L                  // bl
	OP_BRLNK_R                  // blr
	OP_HALT                     // halt
	OP_RAW                      // raw
)

// Bound is an optional raw 32-bit range bound.
type Bound struct {
	Set   bool
	Value uint32
}

// Some returns a present bound holding the bit pattern of value.
func Some(value uint32) Bound {
	return Bound{Set: true, Value: value}
}

// Signed returns the bound as a signed value, or nil.
func (b Bound) Signed() *int32 {
	if !b.Set {
		return nil
	}
	v := int32(b.Value)
	return &v
}

// Unsigned returns the bound as an unsigned value, if present.
func (b Bound) Unsigned() (value uint32, ok bool) {
	return b.Value, b.Set
}

func (b Bound) String() string {
	if !b.Set {
		return "_"
	}
	return fmt.Sprintf("#%d", b.Value)
}

// Out routes a command block statistic to a register.
type Out struct {
	Stat commands.StatKind
	Reg  Register
}

// Op is one instruction.
//
// Operand use depends on Kind:
//
//	ldr    Dst <- memory[Src]
//	str    memory[Dst] <- Src
//	*_RR   Dst <- Dst op Src
//	*_RI   Dst <- Dst op Imm
//	*_XR   Target.Objective <- Target.Objective op Src, success count to Success
//	mov_rx Dst <- Target.Objective
//	*rng   Dst <- Src in [Min, Max]
//	b, bl  Label
//	br,blr Src
//	raw    Raw, with Outs
type Op struct {
	Kind      OpKind
	Dst       Register
	Src       Register
	Imm       int32
	Label     string
	Target    commands.Target
	Objective string
	Success   Register
	Min       Bound
	Max       Bound
	Outs      []Out
	Raw       string
}

// MakeRR makes a register-register instruction.
func MakeRR(kind OpKind, dst, src Register) Op {
	return Op{Kind: kind, Dst: dst, Src: src}
}

// MakeRI makes a register-immediate instruction.
func MakeRI(kind OpKind, dst Register, imm int32) Op {
	return Op{Kind: kind, Dst: dst, Imm: imm}
}

// MakeXR makes an external-register instruction.
func MakeXR(kind OpKind, tgt commands.Target, obj string, src, success Register) Op {
	return Op{Kind: kind, Target: tgt, Objective: obj, Src: src, Success: success}
}

// MakeMovRX reads an external score into a register.
func MakeMovRX(dst Register, tgt commands.Target, obj string) Op {
	return Op{Kind: OP_MOV_RX, Dst: dst, Target: tgt, Objective: obj}
}

// MakeLdr loads dst from the memory address in addr.
func MakeLdr(dst, addr Register) Op {
	return Op{Kind: OP_LDR, Dst: dst, Src: addr}
}

// MakeStr stores value to the memory address in addr.
func MakeStr(value, addr Register) Op {
	return Op{Kind: OP_STR, Dst: addr, Src: value}
}

// MakeRange makes a srng or urng range test.
func MakeRange(kind OpKind, dst, test Register, min, max Bound) Op {
	return Op{Kind: kind, Dst: dst, Src: test, Min: min, Max: max}
}

// MakeBranch makes a b or bl to a label.
func MakeBranch(link bool, label string) Op {
	kind := OP_BR_L
	if link {
		kind = OP_BRLNK_L
	}
	return Op{Kind: kind, Label: label}
}

// MakeBranchReg makes a br or blr through a register.
func MakeBranchReg(link bool, reg Register) Op {
	kind := OP_BR_R
	if link {
		kind = OP_BRLNK_R
	}
	return Op{Kind: kind, Src: reg}
}

// MakeHalt ends the current segment.
func MakeHalt() Op {
	return Op{Kind: OP_HALT}
}

// MakeRaw passes a command through, routing its statistics to registers.
func MakeRaw(cmd string, outs ...Out) Op {
	return Op{Kind: OP_RAW, Raw: cmd, Outs: outs}
}

func (op Op) String() string {
	var args []string
	switch op.Kind {
	case OP_LDR:
		args = []string{op.Dst.String(), "[" + op.Src.String() + "]"}
	case OP_STR:
		args = []string{op.Src.String(), "[" + op.Dst.String() + "]"}
	case OP_ADD_RI, OP_SUB_RI, OP_MOV_RI:
		args = []string{op.Dst.String(), fmt.Sprintf("#%d", op.Imm)}
	case OP_ADD_XR, OP_SUB_XR, OP_MOV_XR:
		args = []string{op.Target.String() + " " + op.Objective, op.Src.String(), op.Success.String()}
	case OP_MOV_RX:
		args = []string{op.Dst.String(), op.Target.String() + " " + op.Objective}
	case OP_SRNG, OP_URNG:
		args = []string{op.Dst.String(), op.Src.String(), op.Min.String(), op.Max.String()}
	case OP_BR_L, OP_BRLNK_L:
		args = []string{"=" + op.Label}
	case OP_BR_R, OP_BRLNK_R:
		args = []string{op.Src.String()}
	case OP_HALT, OP_INVALID:
	case OP_RAW:
		var outs []string
		for _, out := range op.Outs {
			outs = append(outs, fmt.Sprintf(">%v:%v ", out.Stat, out.Reg))
		}
		return "raw " + strings.Join(outs, "") + op.Raw
	default:
		args = []string{op.Dst.String(), op.Src.String()}
	}

	if len(args) == 0 {
		return op.Kind.String()
	}
	return op.Kind.String() + " " + strings.Join(args, ", ")
}
