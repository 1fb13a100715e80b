package game

import (
	"math/rand"
)

const (
	DeckSize = 52
	HandSize = 2

	minRank = 2
	maxRank = 14 // ace high
)

// Suits in deck construction order.
var suits = []string{"H", "D", "C", "S"}

// Card is an immutable suit/rank pair.
type Card struct {
	Suit string `json:"suit"`
	Rank int    `json:"rank"`
}

// NewShuffledDeck builds the 52-card deck and returns it in a uniformly
// random order. Fisher-Yates via rand.Shuffle; a comparator-based random
// sort is biased and must not be used here.
func NewShuffledDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range suits {
		for r := minRank; r <= maxRank; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}

	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}
