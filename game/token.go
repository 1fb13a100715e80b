package game

// TokenColor is one of the four claimable colors. Each round maps to one
// color; rounds past red map to none.
type TokenColor string

const (
	ColorWhite  TokenColor = "white"
	ColorYellow TokenColor = "yellow"
	ColorOrange TokenColor = "orange"
	ColorRed    TokenColor = "red"
)

const (
	StarsPerColor = 6
	BoardSize     = 24 // 4 colors x 6 stars

	// FirstShowdownRound is the first round with no claimable color.
	FirstShowdownRound = 5
)

var tokenColors = []TokenColor{ColorWhite, ColorYellow, ColorOrange, ColorRed}

// Token is one claimable piece on the board. Owner is the session identity
// of the last player to claim it, empty while unowned.
type Token struct {
	Color TokenColor `json:"color"`
	Star  int        `json:"star"`
	Owner string     `json:"owner,omitempty"`
}

// NewTokenBoard builds the full 24-token board, color-major (white 1..6,
// yellow 1..6, orange 1..6, red 1..6), all unowned.
func NewTokenBoard() []Token {
	tokens := make([]Token, 0, BoardSize)
	for _, c := range tokenColors {
		for star := 1; star <= StarsPerColor; star++ {
			tokens = append(tokens, Token{Color: c, Star: star})
		}
	}
	return tokens
}

// RoundColor maps a round to its claimable color. The second return is
// false for rounds with no color, when no token can be claimed.
func RoundColor(round int) (TokenColor, bool) {
	if round < 1 || round > len(tokenColors) {
		return "", false
	}
	return tokenColors[round-1], true
}
