package ai

type boundFlag uint8

const (
	boundExact boundFlag = iota
	boundLower
	boundUpper
)

type tableEntry struct {
	score int
	flag  boundFlag
}

// transpositionTable memoizes node scores within a single search. A board
// fingerprint fixes the ply from the root, so entries never mix depths.
type transpositionTable map[string]tableEntry

// lookup returns a stored score when it settles the node for window (alpha, beta).
func (that transpositionTable) lookup(key string, alpha, beta int) (int, bool) {
	entry, ok := that[key]
	if !ok {
		return 0, false
	}

	switch entry.flag {
	case boundExact:
		return entry.score, true
	case boundLower:
		if entry.score >= beta {
			return entry.score, true
		}
	case boundUpper:
		if entry.score <= alpha {
			return entry.score, true
		}
	}

	return 0, false
}

func (that transpositionTable) store(key string, score, alpha, beta int) {
	flag := boundExact

	switch {
	case score <= alpha:
		flag = boundUpper
	case score >= beta:
		flag = boundLower
	}

	that[key] = tableEntry{score: score, flag: flag}
}
