// Package factor provides discrete variables, label-sorted variable sets and
// dense probability tables (factors) over them.
//
// A Var is an integer label plus a cardinality. A VarSet is an immutable,
// duplicate-free set of variables kept sorted by label, so two sets holding
// the same variables compare equal regardless of how they were built.
//
// A Factor maps every joint state of its VarSet to a non-negative float64.
// Tables are stored flat; the flat index of a joint state uses the variable
// with the LOWEST label as the fastest-changing digit:
//
//	idx = s0 + n0*(s1 + n1*(s2 + ...))
//
// where s_i is the state of the i-th variable of the set in label order and
// n_i its cardinality. CalcState and CalcLinearState convert between the two
// representations.
//
// Algebra:
//
//	Product(g)         // pointwise product over the union scope
//	Divide(g)          // pointwise quotient, 0/0 = 0 (HUGIN separators)
//	Marginal(keep)     // sum out everything not in keep
//	MaxMarginal(keep)  // maximize out everything not in keep
//	Slice(label, s)    // condition on label=s, dropping the dimension
//	Clamp(label, s)    // zero every entry with label≠s, keeping the dimension
//	Normalize()        // divide by the total mass
//
// Every operation returns a fresh Factor; inputs are never mutated, so
// factors may be shared freely between goroutines.
//
// State-space sizes are reported as *big.Int (VarSet.NrStates) because the
// product of cardinalities of a large cluster overflows int long before it is
// ever materialized. Operations that would allocate a table larger than
// MaxTableSize fail with ErrTooLarge instead of panicking.
package factor
