package model

// StateSnapshot is the outward-facing view of a room session. Word is nil
// for every recipient except the current drawer; Session.VisibleState is
// the only producer of these snapshots.
type StateSnapshot struct {
	Players         []Player `json:"players"`
	CurrentDrawer   ConnID   `json:"currentDrawer"`
	TimeLeft        int      `json:"timeLeft"`
	RoundDuration   int      `json:"roundDuration"`
	RoundInProgress bool     `json:"roundInProgress"`
	Word            *string  `json:"word"`
	CorrectGuessers []ConnID `json:"correctGuessers"`
}
