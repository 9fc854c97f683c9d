package emulator

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var fuzzOps = [](struct {
	op string
	fn func(a, b int32) (int32, bool)
}){
	{"add", func(a, b int32) (int32, bool) { return a + b, true }},
	{"sub", func(a, b int32) (int32, bool) { return a - b, true }},
	{"mul", func(a, b int32) (int32, bool) { return a * b, true }},
	{"sdiv", func(a, b int32) (int32, bool) {
		if b == 0 {
			return a, true
		}
		return a / b, true
	}},
	{"srem", func(a, b int32) (int32, bool) {
		if b == 0 {
			return a, true
		}
		return a % b, true
	}},
	{"udiv", func(a, b int32) (int32, bool) {
		if b == 0 {
			return 0, false
		}
		return int32(uint32(a) / uint32(b)), true
	}},
	{"urem", func(a, b int32) (int32, bool) {
		if b == 0 {
			return 0, false
		}
		return int32(uint32(a) % uint32(b)), true
	}},
	{"and", func(a, b int32) (int32, bool) { return a & b, true }},
	{"orr", func(a, b int32) (int32, bool) { return a | b, true }},
	{"eor", func(a, b int32) (int32, bool) { return a ^ b, true }},
	{"asr", shift(func(a int32, n uint) int32 { return a >> n })},
	{"lsr", shift(func(a int32, n uint) int32 { return int32(uint32(a) >> n) })},
	{"lsl", shift(func(a int32, n uint) int32 { return a << n })},
}

// shift only accepts amounts of 0 to 31.
func shift(fn func(a int32, n uint) int32) func(a, b int32) (int32, bool) {
	return func(a, b int32) (int32, bool) {
		if b < 0 || b > 31 {
			return 0, false
		}
		return fn(a, uint(b)), true
	}
}

func FuzzArithmetic(f *testing.F) {
	for n := range fuzzOps {
		f.Add(uint8(n), int32(0), int32(1))
		f.Add(uint8(n), int32(math.MinInt32), int32(31))
		f.Add(uint8(n), int32(-1), int32(math.MaxInt32))
		f.Add(uint8(n), int32(1234567), int32(-3))
	}

	f.Fuzz(func(t *testing.T, index uint8, left int32, right int32) {
		assert := assert.New(t)

		entry := fuzzOps[int(index)%len(fuzzOps)]
		expected, ok := entry.fn(left, right)
		if !ok {
			t.Skip()
		}

		emu := NewEmulator()
		doRun(t, emu,
			"main:",
			fmt.Sprintf("mov r0, #%d", left),
			fmt.Sprintf("mov r1, #%d", right),
			fmt.Sprintf("%v r0, r1", entry.op),
		)

		name := fmt.Sprintf("%v %d, %d", entry.op, left, right)
		assert.Equal(expected, emu.Register(r0), name)
		assert.Equal(right, emu.Register(r1), name)
	})
}
