// Package factorgraph holds a collection of factors together with the
// variables they range over, and reads/writes the libDAI ".fg" text format.
//
// A Graph is immutable once built. Evidence is applied by deriving a new
// graph:
//
//	Clamp(label, state)        // zero inconsistent entries, keep the dimension
//	ClampReduce(label, state)  // slice every factor, drop the variable entirely
//
// ClampReduce keeps factors whose whole scope was clamped away as scalar
// factors so the evidence probability survives in the total mass.
//
// File format (one token per whitespace-separated field, '#' starts a
// comment line, blank lines are ignored):
//
//	<number of factors>
//
//	<number of variables in factor>
//	<labels...>
//	<cardinalities...>
//	<number of non-zero entries>
//	<flat index> <value>
//	...
//
// The flat index in the file is relative to the listed label order (first
// listed variable fastest); Parse permutes tables into label-sorted order.
package factorgraph
