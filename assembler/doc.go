// Package assembler lowers instructions to scoreboard command blocks.
//
// The output is a lazy stream of items: labels naming program points,
// complete command blocks, pending blocks that need the placed position of a
// label, and terminals that end a straight-line segment. One segment runs per
// tick. Branches power the label they go to, and every label powers itself off
// when it runs.
//
// Multi-step operations use the 32 bit lane entities for bitwise work, and the
// memory region controllers for loads and stores. Register branches go through
// an indirect jump table appended to the end of the stream.
package assembler
