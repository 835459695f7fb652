package engine

// Deals use the Microsoft FreeCell numbering, so game numbers match the
// classic deals: a linear congruential generator picks cards from a deck
// ordered AC AD AH AS 2C ... KS, and cards are dealt row by row.
const (
	dealMultiplier = 214013
	dealIncrement  = 2531011
	dealMask       = 0x7fffffff
)

// DealOrder returns the 52 cards in the order they are dealt for a game number
func DealOrder(seed int64) []CardID {
	cards := make([]int, NumCards)
	for i := range cards {
		cards[i] = NumCards - 1 - i
	}

	state := seed & dealMask
	for i := 0; i < NumCards; i++ {
		state = (state*dealMultiplier + dealIncrement) & dealMask
		r := state >> 16
		j := NumCards - 1 - int(r%int64(NumCards-i))
		cards[i], cards[j] = cards[j], cards[i]
	}

	ids := make([]CardID, NumCards)
	for i, c := range cards {
		ids[i] = NewCardID(Suits[c%NumSuits], Rank(c/NumSuits+1))
	}
	return ids
}

// Deal lays out a new deck for a game number: cards are dealt row by row
// across the tableau columns, free cells and foundations start empty
func Deal(rules RuleSet, seed int64) (*Deck, error) {
	if err := ValidateRuleSet(&rules); err != nil {
		return nil, err
	}

	layout := make(map[PileID][]CardID, rules.TableauColumns)
	for k, id := range DealOrder(seed) {
		col := TableauID(k % rules.TableauColumns)
		layout[col] = append(layout[col], id)
	}
	return NewDeckFromPiles(rules, layout)
}
