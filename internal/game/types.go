package game

// Phase of a session.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// Attempt is one valid guess and its score.
type Attempt struct {
	Round  int    `json:"round"`
	Guess  string `json:"guess"`
	Green  int    `json:"green"`
	Yellow int    `json:"yellow"`
}
