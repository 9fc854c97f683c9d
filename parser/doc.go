// Package parser reads assembly source text into statements.
//
// Source lines hold labels, guards and one instruction. Equates (.equ),
// macros (.macro/.endm), character literals and $(...) expressions are
// expanded before an instruction is parsed.
package parser
