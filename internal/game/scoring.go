package game

// Score is the feedback for a structurally valid guess.
type Score struct {
	Green  int `json:"green"`
	Yellow int `json:"yellow"`
}

// Invalid is returned instead of a Score when the guess is malformed.
type Invalid struct {
	Kind InvalidKind `json:"kind"`
}

// Result is either Score or Invalid.
type Result interface {
	result()
}

func (Score) result()   {}
func (Invalid) result() {}

type InvalidKind int

const (
	WrongLength InvalidKind = iota + 1
	RepeatedDigit
	NonDigitCharacter
)

func (k InvalidKind) String() string {
	switch k {
	case WrongLength:
		return "wrong_length"
	case RepeatedDigit:
		return "repeated_digit"
	case NonDigitCharacter:
		return "non_digit_character"
	}
	return "unknown"
}

// Evaluate validates guess and scores it against secret.
// Checks run in order (length, repeats, alphabet) and the first failure wins.
//
// Counting yellows by plain membership is only sound because both the secret
// and a valid guess have unique digits, so the repeat check must stay.
func Evaluate(guess, secret string, n int) Result {
	g := []rune(guess)
	if len(g) != n {
		return Invalid{Kind: WrongLength}
	}

	seen := make(map[rune]struct{}, len(g))
	for _, r := range g {
		if _, dup := seen[r]; dup {
			return Invalid{Kind: RepeatedDigit}
		}
		seen[r] = struct{}{}
	}
	for _, r := range g {
		if r < '0' || r > '9' {
			return Invalid{Kind: NonDigitCharacter}
		}
	}

	var inSecret [10]bool
	for i := 0; i < len(secret); i++ {
		if c := secret[i]; c >= '0' && c <= '9' {
			inSecret[c-'0'] = true
		}
	}

	var s Score
	for i, r := range g {
		d := byte(r)
		if i < len(secret) && secret[i] == d {
			s.Green++
		} else if inSecret[d-'0'] {
			s.Yellow++
		}
	}
	return s
}
