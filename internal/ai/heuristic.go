package ai

// heuristic scores a non-terminal frontier node from the mover's side. A line
// holding only k mover symbols adds k*k, a line holding only k opponent
// symbols subtracts k*k, and mixed or empty lines count for nothing.
func (that *search) heuristic() int {
	score := 0

	for _, line := range that.lines {
		mine, theirs := 0, 0
		for _, idx := range line {
			switch that.cells[idx] {
			case that.mover:
				mine++
			case that.opponent:
				theirs++
			}
		}

		switch {
		case theirs == 0 && mine > 0:
			score += mine * mine
		case mine == 0 && theirs > 0:
			score -= theirs * theirs
		}
	}

	return score
}

// maxHeuristic bounds the absolute value heuristic can return.
func maxHeuristic(dimension int) int {
	return (2*dimension + 2) * dimension * dimension
}
