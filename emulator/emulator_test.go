package emulator

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sbasm/assembler"
	"github.com/ezrec/sbasm/ast"
	"github.com/ezrec/sbasm/commands"
	"github.com/ezrec/sbasm/hw"
	"github.com/ezrec/sbasm/parser"
)

var (
	r0 = ast.Gen(0)
	r1 = ast.Gen(1)
	r2 = ast.Gen(2)
	r3 = ast.Gen(3)
	r4 = ast.Gen(4)
	r5 = ast.Gen(5)
)

// doLoad assembles program, and loads it into emu.
func doLoad(emu *Emulator, program ...string) (err error) {
	p := &parser.Parser{}
	prog, err := p.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		return
	}

	asm := assembler.New(hw.DefaultComputer(), prog.Statements())
	defer asm.Close()

	return emu.Load(asm)
}

// doRun loads program, and runs it from main.
func doRun(t *testing.T, emu *Emulator, program ...string) {
	assert := assert.New(t)

	err := doLoad(emu, program...)
	if !assert.NoError(err, program) {
		return
	}

	err = emu.Run("main")
	assert.NoError(err, program)
	assert.Empty(emu.Powered(), program)
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.False(emu.Verbose)
	assert.Equal(MAX_TICKS, emu.MaxTicks)

	_, err := emu.Tick()
	assert.ErrorIs(err, ErrNotLoaded)
	assert.ErrorIs(emu.Power("main"), ErrNotLoaded)
}

func TestConstantRegs(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doRun(t, emu, "main:", "halt")

	assert.Equal(int32(math.MinInt32), emu.Register(ast.Spec("MIN")))
	assert.Equal(int32(2), emu.Register(ast.Spec("TWO")))
	assert.Equal(int32(0), emu.Register(ast.Spec("ZERO")))
}

func TestArithmetic(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op       string
		left     int32
		right    int32
		expected int32
	}){
		{"add", 100, 37, 100 + 37},
		{"sub", 100, 37, 100 - 37},
		{"mul", 100, 37, 100 * 37},
		{"sdiv", 100, 37, 100 / 37},
		{"srem", 100, 37, 100 % 37},
		{"sdiv", -100, 37, -2},
		{"srem", -100, 37, -26},
		{"add", math.MaxInt32, 1, math.MinInt32},
		{"mul", 0x10000, 0x10000, 0},
		{"sdiv", 7, 0, 7},
		{"srem", 7, 0, 7},
	}

	emu := NewEmulator()
	for _, entry := range table {
		name := fmt.Sprintf("%v %d, %d", entry.op, entry.left, entry.right)
		doRun(t, emu,
			"main:",
			fmt.Sprintf("mov r0, #%d", entry.left),
			fmt.Sprintf("mov r1, #%d", entry.right),
			fmt.Sprintf("%v r0, r1", entry.op),
		)
		assert.Equal(entry.expected, emu.Register(r0), name)
		assert.Equal(entry.right, emu.Register(r1), name)
	}
}

func TestImmediates(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doRun(t, emu,
		"main:",
		"mov r0, #100",
		"addi r0, #-5",
		"mov r1, #~0",
		"subi r1, #3",
		"mov r2, r0",
	)

	assert.Equal(int32(95), emu.Register(r0))
	assert.Equal(int32(-4), emu.Register(r1))
	assert.Equal(int32(95), emu.Register(r2))
}

var unsignedValues = []int32{
	math.MinInt32, -1234568, -1234567, -33, -32, -3, -2, -1,
	1, 2, 3, 32, 33, 1234567, 1234568, math.MaxInt32,
}

func TestUnsignedDivide(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	for _, left := range unsignedValues {
		for _, right := range unsignedValues {
			for _, op := range []string{"udiv", "urem"} {
				name := fmt.Sprintf("%v %d, %d", op, left, right)
				doRun(t, emu,
					"main:",
					fmt.Sprintf("mov r0, #%d", left),
					fmt.Sprintf("mov r1, #%d", right),
					fmt.Sprintf("%v r0, r1", op),
				)

				expected := int32(uint32(left) / uint32(right))
				if op == "urem" {
					expected = int32(uint32(left) % uint32(right))
				}
				assert.Equal(expected, emu.Register(r0), name)
				assert.Equal(right, emu.Register(r1), name)
			}
		}
	}
}

func TestUnsignedDivideSelf(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		value int32
		div   int32
		rem   int32
	}){
		{0, 0, 0},
		{5, 1, 0},
		{-5, 1, 0},
		{math.MinInt32, 1, 0},
	}

	emu := NewEmulator()
	for _, entry := range table {
		doRun(t, emu,
			"main:",
			fmt.Sprintf("mov r0, #%d", entry.value),
			"mov r1, r0",
			"udiv r0, r0",
			"urem r1, r1",
		)
		assert.Equal(entry.div, emu.Register(r0), entry.value)
		assert.Equal(entry.rem, emu.Register(r1), entry.value)
	}
}

var bitValues = []int32{
	math.MinInt32, -1234568, -1234567, -1,
	0, 1, 1234567, 1234568, math.MaxInt32,
}

func TestLogic(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op string
		fn func(a, b int32) int32
	}){
		{"and", func(a, b int32) int32 { return a & b }},
		{"orr", func(a, b int32) int32 { return a | b }},
		{"eor", func(a, b int32) int32 { return a ^ b }},
	}

	emu := NewEmulator()
	for _, entry := range table {
		for _, left := range bitValues {
			for _, right := range bitValues {
				name := fmt.Sprintf("%v %d, %d", entry.op, left, right)
				doRun(t, emu,
					"main:",
					fmt.Sprintf("mov r0, #%d", left),
					fmt.Sprintf("mov r1, #%d", right),
					fmt.Sprintf("%v r0, r1", entry.op),
				)
				assert.Equal(entry.fn(left, right), emu.Register(r0), name)
				assert.Equal(right, emu.Register(r1), name)
			}
		}
	}
}

var shiftValues = []int32{
	math.MinInt32, -1234568, -1234567, -3, -2, -1,
	0, 1, 2, 3, 1234567, 1234568, math.MaxInt32,
}

func TestShift(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op string
		fn func(value int32, amount uint) int32
	}){
		{"asr", func(v int32, n uint) int32 { return v >> n }},
		{"lsr", func(v int32, n uint) int32 { return int32(uint32(v) >> n) }},
		{"lsl", func(v int32, n uint) int32 { return v << n }},
	}

	emu := NewEmulator()
	for _, entry := range table {
		for _, value := range shiftValues {
			for _, amount := range []uint{0, 1, 2, 30, 31} {
				name := fmt.Sprintf("%v %d, %d", entry.op, value, amount)
				doRun(t, emu,
					"main:",
					fmt.Sprintf("mov r0, #%d", value),
					fmt.Sprintf("mov r1, #%d", amount),
					fmt.Sprintf("%v r0, r1", entry.op),
				)
				assert.Equal(entry.fn(value, amount), emu.Register(r0), name)
			}
		}
	}
}

func TestUnsignedRange(t *testing.T) {
	assert := assert.New(t)

	type inOut struct {
		input  int32
		output int32
	}

	table := [](struct {
		min, max uint32
		inOuts   []inOut
	}){
		{0, 100, []inOut{{0, 1}, {10, 1}, {100, 1}, {-1, 0}, {500, 0}}},
		{math.MaxUint32 - 2, math.MaxUint32, []inOut{{-4, 0}, {-3, 1}, {-2, 1}, {-1, 1}, {0, 0}}},
		{1 << 30, 1 << 31, []inOut{{-1, 0}, {math.MaxInt32, 1}, {math.MinInt32, 1}}},
	}

	emu := NewEmulator()
	for _, entry := range table {
		for _, io := range entry.inOuts {
			name := fmt.Sprintf("urng %d in [%d, %d]", io.input, entry.min, entry.max)
			doRun(t, emu,
				"main:",
				fmt.Sprintf("mov r0, #%d", io.input),
				fmt.Sprintf("urng r0, r0, #%d, #%d", entry.min, entry.max),
			)
			assert.Equal(io.output, emu.Register(r0), name)
		}
	}
}

func TestUnsignedRangeOpen(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		bounds string
		lo, hi uint32
	}){
		{"_, #5", 0, 5},
		{"#5, _", 5, math.MaxUint32},
		{"_, _", 0, math.MaxUint32},
		{"#0x80000000, _", 1 << 31, math.MaxUint32},
		{"_, #0x7fffffff", 0, math.MaxInt32},
		{"#-5, _", math.MaxUint32 - 4, math.MaxUint32},
	}

	inputs := []int32{0, 1, 5, 6, math.MaxInt32, math.MinInt32, -6, -5, -1}

	emu := NewEmulator()
	for _, entry := range table {
		for _, input := range inputs {
			expected := int32(0)
			if uint32(input) >= entry.lo && uint32(input) <= entry.hi {
				expected = 1
			}
			name := fmt.Sprintf("urng %d in %v", input, entry.bounds)
			doRun(t, emu,
				"main:",
				fmt.Sprintf("mov r1, #%d", input),
				"mov r0, #7",
				"urng r0, r1, "+entry.bounds,
			)
			assert.Equal(expected, emu.Register(r0), name)
			assert.Equal(input, emu.Register(r1), name)
		}
	}
}

func TestSignedRange(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		bounds   string
		input    int32
		expected int32
	}){
		{"#-5, #5", -5, 1},
		{"#-5, #5", 5, 1},
		{"#-5, #5", 6, 0},
		{"#-5, #5", math.MinInt32, 0},
		{"_, #0", math.MinInt32, 1},
		{"_, #0", 1, 0},
		{"#0, _", math.MaxInt32, 1},
		{"#0, _", -1, 0},
		{"_, _", 12345, 1},
	}

	emu := NewEmulator()
	for _, entry := range table {
		name := fmt.Sprintf("srng %d in %v", entry.input, entry.bounds)
		doRun(t, emu,
			"main:",
			fmt.Sprintf("mov r1, #%d", entry.input),
			"mov p0, #77",
			"srng p0, r1, "+entry.bounds,
		)
		assert.Equal(entry.expected, emu.Register(ast.Pred(0)), name)
		assert.Equal(entry.input, emu.Register(r1), name)
	}
}

func TestLoadStore(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		addr  uint32
		value uint32
	}){
		{0x10, 1},
		{0x14, 0xffffffff},
		{0x18, 0xfedcba97},
		{0x1c, 0x12345678},
		{0x20, 0},
		{0x10c, 0xedbca987},
	}

	emu := NewEmulator()
	for _, entry := range table {
		doRun(t, emu,
			"main:",
			fmt.Sprintf("mov r0, #%d", entry.value),
			fmt.Sprintf("mov r1, #%d", entry.addr),
			"str r0, [r1]",
		)

		value, err := emu.Peek(entry.addr)
		assert.NoError(err)
		assert.Equal(int32(entry.value), value, entry.addr)
	}

	// Banks are kept when the next program is loaded.
	for _, entry := range table {
		doRun(t, emu,
			"main:",
			fmt.Sprintf("mov r0, #%d", entry.addr),
			"ldr r1, [r0]",
		)
		assert.Equal(int32(entry.value), emu.Register(r1), entry.addr)
	}

	// The banks are the only place the words live.
	assert.Len(emu.Banks, 2)
	assert.Equal(int32(-0x12435679), emu.Banks[1].Words[0x10c])
}

func TestLoadStoreUnmapped(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doRun(t, emu,
		"main:",
		"mov r1, #9",
		"mov r0, #0x300",
		"ldr r1, [r0]",
		"str r1, [r0]",
	)
	assert.Equal(int32(9), emu.Register(r1))

	_, err := emu.Peek(0x300)
	assert.ErrorIs(err, ErrAddressUnmapped(0x300))
	assert.ErrorIs(emu.Poke(0x200, 1), ErrAddressUnmapped(0x200))
}

func TestLoadGuarded(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := doLoad(emu,
		"main:",
		"mov r0, #0x10",
		"?r0=0x10 ldr r0, [r0]",
		"?r0=0x10 ldr r0, [r0]",
		"mov r1, #0x14",
		"?r0=0 ldr r1, [r1]",
	)
	assert.NoError(err)

	assert.NoError(emu.Poke(0x10, 1234))
	assert.NoError(emu.Poke(0x14, 5678))

	assert.NoError(emu.Run("main"))
	assert.Equal(int32(1234), emu.Register(r0))
	assert.Equal(int32(0x14), emu.Register(r1))
}

func TestBranchLink(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doRun(t, emu,
		"foo:",
		"; prove the ordering",
		"mov r1, #0",
		"",
		"mov r0, #1234",
		"b lr",
		"",
		"main:",
		"; prove the ordering",
		"mov r0, #0",
		"",
		"bl =foo",
		"mov r1, #5678",
	)

	assert.Equal(int32(1234), emu.Register(r0))
	assert.Equal(int32(5678), emu.Register(r1))
}

func TestBranchRegisterLink(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doRun(t, emu,
		"main:",
		"bl sub",
		"mov r2, #7",
		"halt",
		"sub:",
		"mov r1, #1",
		"blr lr",
		"mov r1, #2",
	)

	assert.Equal(int32(1), emu.Register(r1))
	assert.Equal(int32(7), emu.Register(r2))
}

func TestBranchLoop(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doRun(t, emu,
		"main:",
		"mov r0, #0",
		"loop:",
		"addi r0, #1",
		"srng p0, r0, _, #9",
		"?p0=1 b loop",
		"mov r1, r0",
	)

	assert.Equal(int32(10), emu.Register(r0))
	assert.Equal(int32(10), emu.Register(r1))
	assert.Greater(emu.Ticks(), 10)
}

func TestBranchScratchGuard(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doRun(t, emu,
		"main:",
		"mov r0, #0",
		"mov %t0, #1",
		"?%t0=1 b foo",
		"mov r0, #1",
		"halt",
		"foo:",
		"mov r1, #2",
	)

	assert.Equal(int32(0), emu.Register(r0))
	assert.Equal(int32(2), emu.Register(r1))
}

func TestGuards(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doRun(t, emu,
		"main:",
		"mov r0, #5",
		"mov r1, #3",
		"?r0=5 mov r2, #1",
		"?r0=6 mov r3, #1",
		"?r0=..4 mov r4, #1",
		"?r0=5.. ?r1=3 mov r5, #1",
		"?r0=5 lsl r0, r1",
		"?r0=5 lsl r0, r1",
	)

	assert.Equal(int32(40), emu.Register(r0))
	assert.Equal(int32(1), emu.Register(r2))
	assert.Equal(int32(0), emu.Register(r3))
	assert.Equal(int32(0), emu.Register(r4))
	assert.Equal(int32(1), emu.Register(r5))
}

func TestExternalScores(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doRun(t, emu,
		"main:",
		"mov r1, #10",
		"movxr #x score, r1, r3",
		"mov r1, #3",
		"addxr #x score, r1",
		"subxr #x score, r1, r4",
		"addxr #x score, r1",
		"movrx r2, #x score",
		"movxr @e[name=nobody] score, r1, r5",
	)

	assert.Equal(int32(13), emu.Register(r2))
	assert.Equal(int32(1), emu.Register(r3))
	assert.Equal(int32(1), emu.Register(r4))
	assert.Equal(int32(0), emu.Register(r5))

	value, ok := emu.World.Player("#x").Score("score")
	assert.True(ok)
	assert.Equal(int32(13), value)
}

func TestRaw(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doRun(t, emu,
		"main:",
		"raw >SuccessCount:r0 say hello, world",
		"raw >AffectedEntities:r1 >SuccessCount:r2 testfor @e[team=Shifters]",
		"mov r3, #7",
		"raw >SuccessCount:r3 bogus command",
	)

	assert.Equal(int32(1), emu.Register(r0))
	assert.Equal(int32(BIT_LANES), emu.Register(r1))
	assert.Equal(int32(1), emu.Register(r2))
	assert.Equal(int32(0), emu.Register(r3))
}

func TestErrors(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	err := doLoad(emu, "main:", "b nowhere")
	assert.ErrorIs(err, ErrLabelMissing("nowhere"))

	err = doLoad(emu, "main:", "mov r0, #1", "bogus")
	var syntax *parser.ErrSyntax
	assert.True(errors.As(err, &syntax))

	assert.NoError(doLoad(emu, "main:", "b main"))
	assert.ErrorIs(emu.Power("elsewhere"), ErrLabelMissing("elsewhere"))

	emu.MaxTicks = 50
	err = emu.Run("main")
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(50, emu.Ticks())
	assert.Equal([]string{"main"}, emu.Powered())

	emu.Reset()
	assert.Empty(emu.Powered())
	assert.Equal(0, emu.Ticks())
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doRun(t, emu, "main:", "mov r0, #5")
	assert.Equal(int32(5), emu.Register(r0))

	emu.SetRegister(r1, 9)
	assert.Equal(int32(9), emu.Register(r1))

	emu.Reset()
	assert.Equal(int32(0), emu.Register(r0))
	assert.Equal(int32(0), emu.Register(r1))

	lanes := 0
	for ent := range emu.World.Entities() {
		if ent.Team != assembler.DefaultConfig.BitTeam {
			continue
		}
		number, _ := ent.Score("BitNumber")
		component, _ := ent.Score("BitComponent")
		assert.Equal(int32(uint32(1)<<number), component, ent)
		lanes++
	}
	assert.Equal(BIT_LANES, lanes)

	assert.NotNil(emu.World.Find("mem_0"))
	assert.NotNil(emu.World.Find("mem_100"))
}

func TestLayout(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.Empty(slices.Collect(emu.Layout()))

	assert.NoError(doLoad(emu, "main:", "mov r0, #1"))

	layout := slices.Collect(emu.Layout())
	if !assert.Len(layout, 6) {
		return
	}

	entry := commands.Vec3{X: 0, Y: SLOT_Y}
	assert.Equal([]string{"main"}, layout[0].Labels)
	assert.Equal(commands.Fill{Min: entry, Max: entry, Block: commands.BLOCK_AIR}, layout[0].Block.Command)
	assert.Equal("scoreboard players set @e[name=computer] r0 1", layout[1].Block.Command.String())
	assert.Nil(layout[1].Labels)
	assert.True(layout[2].Terminal)
	assert.Equal([]string{"@jump_indirect"}, layout[3].Labels)
	assert.Equal(commands.Vec3{X: 4, Y: FABRIC_Y}, layout[4].Pos)
	assert.Equal("execute @e[name=computer,score_IndAddr_min=1,score_IndAddr=1] ~ ~ ~ fill 0 5 0 0 5 0 minecraft:redstone_block", layout[4].Block.Command.String())
	assert.True(layout[5].Terminal)
}
