package entity

// Outcome tags the variant held by a GameState.
type Outcome uint8

const (
	OutcomeInProgress Outcome = iota
	OutcomeWin
	OutcomeDraw
)

// GameState is one of InProgress, Win(Winner) or Draw.
// Winner is set only for OutcomeWin.
type GameState struct {
	Outcome Outcome `json:"outcome"`
	Winner  Symbol  `json:"winner,omitempty"`
}

func InProgress() GameState {
	return GameState{Outcome: OutcomeInProgress}
}

func Win(winner Symbol) GameState {
	return GameState{Outcome: OutcomeWin, Winner: winner}
}

func Draw() GameState {
	return GameState{Outcome: OutcomeDraw}
}

func (that GameState) IsTerminal() bool {
	return that.Outcome != OutcomeInProgress
}

func (that GameState) IsWin() bool {
	return that.Outcome == OutcomeWin
}

func (that GameState) IsDraw() bool {
	return that.Outcome == OutcomeDraw
}

func (that GameState) String() string {
	switch that.Outcome {
	case OutcomeWin:
		return "win(" + that.Winner.String() + ")"
	case OutcomeDraw:
		return "draw"
	default:
		return "in progress"
	}
}
