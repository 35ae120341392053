package game

import (
	"errors"

	"github.com/google/uuid"
)

var ErrSessionFinished = errors.New("session already finished")

// Session is a single game: one secret, the round counter and the attempts
// made so far. It is owned by one game loop and is not safe for concurrent use.
type Session struct {
	id     string
	digits int
	secret string

	phase   Phase
	round   int
	history []Attempt
}

// NewSession draws a secret of the given length from gen.
func NewSession(gen *Generator, digits int) (*Session, error) {
	secret, err := gen.Generate(digits)
	if err != nil {
		return nil, err
	}
	return newSessionWithSecret(uuid.NewString(), secret), nil
}

func newSessionWithSecret(id, secret string) *Session {
	return &Session{
		id:     id,
		digits: len(secret),
		secret: secret,
		phase:  PhasePlaying,
	}
}

func (s *Session) ID() string     { return s.id }
func (s *Session) Digits() int    { return s.digits }
func (s *Session) Round() int     { return s.round }
func (s *Session) Phase() Phase   { return s.phase }
func (s *Session) Finished() bool { return s.phase == PhaseFinished }

// Secret is revealed only once the session is finished.
func (s *Session) Secret() (string, bool) {
	if !s.Finished() {
		return "", false
	}
	return s.secret, true
}

// History returns a copy of the valid attempts in round order.
func (s *Session) History() []Attempt {
	return append([]Attempt(nil), s.history...)
}

// Submit evaluates guess. Only a Score advances the round counter; an
// all-green Score finishes the session.
func (s *Session) Submit(guess string) (Result, error) {
	if s.Finished() {
		return nil, ErrSessionFinished
	}

	res := Evaluate(guess, s.secret, s.digits)
	score, ok := res.(Score)
	if !ok {
		return res, nil
	}

	s.round++
	s.history = append(s.history, Attempt{
		Round:  s.round,
		Guess:  guess,
		Green:  score.Green,
		Yellow: score.Yellow,
	})
	if score.Green == s.digits {
		s.phase = PhaseFinished
	}
	return score, nil
}
