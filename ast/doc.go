// Package ast is the instruction model consumed by the assembler.
//
// Registers are scores on the control entity: general purpose registers are
// named rN, predicates pN, and special registers carry their own name. An
// instruction may be guarded by conditions on register values; it only takes
// effect when every condition holds.
package ast
