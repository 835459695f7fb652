package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// layoutDeck builds a deck from the given piles and drops every unused card
// into the last tableau column, unless the layout already names it
func layoutDeck(t *testing.T, rules RuleSet, piles map[PileID][]CardID) *Deck {
	t.Helper()

	filler := TableauID(rules.TableauColumns - 1)
	used := make(map[CardID]bool)
	layout := make(map[PileID][]CardID, len(piles)+1)
	for pile, ids := range piles {
		layout[pile] = append([]CardID(nil), ids...)
		for _, id := range ids {
			used[id] = true
		}
	}
	if _, named := layout[filler]; !named {
		for _, id := range FullDeck() {
			if !used[id] {
				layout[filler] = append(layout[filler], id)
			}
		}
	}

	d, err := NewDeckFromPiles(rules, layout)
	require.NoError(t, err)
	return d
}

// completeFoundations lays out every foundation from Ace to King, minus the
// cards listed in except, which go to the caller's piles
func completeFoundations(except ...CardID) map[PileID][]CardID {
	skip := make(map[CardID]bool, len(except))
	for _, id := range except {
		skip[id] = true
	}
	layout := make(map[PileID][]CardID, NumFoundations)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			id := NewCardID(suit, rank)
			if skip[id] {
				break
			}
			layout[FoundationID(suit)] = append(layout[FoundationID(suit)], id)
		}
	}
	return layout
}

func ids(s ...string) []CardID {
	out := make([]CardID, len(s))
	for i, v := range s {
		out[i] = CardID(v)
	}
	return out
}
