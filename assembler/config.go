package assembler

import (
	"math"

	"github.com/ezrec/sbasm/ast"
	"github.com/ezrec/sbasm/commands"
)

// Config names the entities, teams and objectives the generated code uses.
// It is fixed for the lifetime of an Assembler.
type Config struct {
	Computer     string // Name of the control entity holding the registers.
	BitTeam      string // Team of the 32 bit lane entities.
	BitComponent string // Lane objective: 1 << BitNumber.
	BitNumber    string // Lane objective: bit index 0..31.
	Tmp0         string // Scratch objectives.
	Tmp1         string
	Tmp2         string
	Guard        string // Latched guard result.
	Two          string // Constant 2.
	Min          string // Constant math.MinInt32.
	Zero         string // Constant 0.
	MemOp        string // Memory controller objectives.
	MemAddr      string
	MemData      string
	MemTag       string
	Link         string // Link register.
	IndAddr      string // Indirect branch address.
	JumpIndirect string // Label of the indirect jump table.
}

// DefaultConfig is the configuration used by the runtime.
var DefaultConfig = Config{
	Computer:     "computer",
	BitTeam:      "Shifters",
	BitComponent: "BitComponent",
	BitNumber:    "BitNumber",
	Tmp0:         "t0",
	Tmp1:         "t1",
	Tmp2:         "t2",
	Guard:        "Guard",
	Two:          "TWO",
	Min:          "MIN",
	Zero:         "ZERO",
	MemOp:        "MemOp",
	MemAddr:      "MemAddr",
	MemData:      "MemData",
	MemTag:       "MemTag",
	Link:         "lr",
	IndAddr:      "IndAddr",
	JumpIndirect: "@jump_indirect",
}

// Constants are the objectives the runtime must preset on the control entity.
func (cfg Config) Constants() map[string]int32 {
	return map[string]int32{
		cfg.Two:  2,
		cfg.Min:  math.MinInt32,
		cfg.Zero: 0,
	}
}

// ComputerSelector selects the control entity.
func (cfg Config) ComputerSelector() commands.Selector {
	return commands.Selector{Kind: 'e', Name: cfg.Computer}
}

// BitAll selects every bit lane.
func (cfg Config) BitAll() commands.Selector {
	return commands.Selector{Kind: 'e', Team: cfg.BitTeam}
}

// BitOne selects the bit lane nearest the executor.
func (cfg Config) BitOne() commands.Selector {
	return commands.Selector{Kind: 'e', Team: cfg.BitTeam, Count: 1}
}

// regs are the special registers the lowering uses.
type regs struct {
	t0, t1, t2 ast.Register
	guard      ast.Register
	two, min   ast.Register
	zero       ast.Register
	link       ast.Register
	indAddr    ast.Register
}

func (cfg Config) regs() regs {
	return regs{
		t0:      ast.Spec(cfg.Tmp0),
		t1:      ast.Spec(cfg.Tmp1),
		t2:      ast.Spec(cfg.Tmp2),
		guard:   ast.Spec(cfg.Guard),
		two:     ast.Spec(cfg.Two),
		min:     ast.Spec(cfg.Min),
		zero:    ast.Spec(cfg.Zero),
		link:    ast.Spec(cfg.Link),
		indAddr: ast.Spec(cfg.IndAddr),
	}
}
