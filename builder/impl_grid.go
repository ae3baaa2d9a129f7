// SPDX-License-Identifier: MIT
// Package: vemap/builder
//
// impl_grid.go - Grid(rows, cols) constructor.
//
// Contract:
//   - rows >= MinGridDim and cols >= MinGridDim.
//   - Cell (r, c) is local index r*cols + c (row-major).
//   - For each cell emit Right (r, c+1) then Bottom (r+1, c) where present.
//
// Complexity: O(rows*cols) factors. Treewidth grows as min(rows, cols).

package builder

// Grid returns a Constructor that builds a rows×cols 4-neighborhood lattice.
func Grid(rows, cols int) Constructor {
	return func(acc *accumulator, cfg builderConfig) error {
		if err := validateMin(MethodGrid, "rows", rows, MinGridDim); err != nil {
			return err
		}
		if err := validateMin(MethodGrid, "cols", cols, MinGridDim); err != nil {
			return err
		}
		vars, err := acc.variables(MethodGrid, rows*cols, cfg)
		if err != nil {
			return err
		}

		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := vars[r*cols+c]
				if c+1 < cols {
					if err := acc.emit(MethodGrid, cfg, u, vars[r*cols+c+1]); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err := acc.emit(MethodGrid, cfg, u, vars[(r+1)*cols+c]); err != nil {
						return err
					}
				}
			}
		}

		return nil
	}
}
