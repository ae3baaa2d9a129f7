// Package builder defines shared constants used by the constructors, keeping
// defaults and validation bounds in one place.
package builder

//-----------------------------------------------------------------------------
// Constructor Method Names
//   used to prefix errors with the constructor name for context.
//-----------------------------------------------------------------------------

const (
	// MethodChain is the canonical name for the Chain constructor.
	MethodChain = "Chain"
	// MethodCycle is the canonical name for the Cycle constructor.
	MethodCycle = "Cycle"
	// MethodStar is the canonical name for the Star constructor.
	MethodStar = "Star"
	// MethodGrid is the canonical name for the Grid constructor.
	MethodGrid = "Grid"
	// MethodComplete is the canonical name for the Complete constructor.
	MethodComplete = "Complete"
	// MethodTree is the canonical name for the Tree constructor.
	MethodTree = "Tree"
	// MethodRandomSparse is the canonical name for the RandomSparse constructor.
	MethodRandomSparse = "RandomSparse"
	// MethodRandomFactors is the canonical name for the RandomFactors constructor.
	MethodRandomFactors = "RandomFactors"
)

//-----------------------------------------------------------------------------
// Minimum Sizes
//-----------------------------------------------------------------------------

// MinChainVars is the smallest chain with at least one pairwise factor.
const MinChainVars = 2

// MinCycleVars is the smallest ring without repeated pairs.
const MinCycleVars = 3

// MinStarVars counts the center plus one leaf.
const MinStarVars = 2

// MinGridDim is the smallest row or column count.
const MinGridDim = 1

// MinVars applies to Complete, Tree and the random constructors.
const MinVars = 1

// MinArity is the smallest scope of a RandomFactors factor.
const MinArity = 1

//-----------------------------------------------------------------------------
// Defaults
//-----------------------------------------------------------------------------

// DefaultCardinality is the number of states per variable.
const DefaultCardinality = 2

// DefaultMinPotential and DefaultMaxPotential bound the entries drawn by the
// default RandomPotential. A positive floor keeps every configuration possible.
const (
	DefaultMinPotential = 0.05
	DefaultMaxPotential = 1.0
)

// MinProbability and MaxProbability bound edge probabilities.
const (
	MinProbability = 0.0
	MaxProbability = 1.0
)
