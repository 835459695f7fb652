package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capacityDeck has two empty free cells, one empty column (tableau-6) and a
// seven card run in tableau-0
func capacityDeck(t *testing.T) *Deck {
	return layoutDeck(t, StandardRuleSet(), map[PileID][]CardID{
		FreeCellID(0): ids("KH"),
		FreeCellID(1): ids("KD"),
		TableauID(0):  ids("9C", "8H", "7S", "6D", "5C", "4H", "3S"),
		TableauID(1):  ids("10D"),
		TableauID(2):  ids("9S"),
		TableauID(3):  ids("JC"),
		TableauID(4):  ids("JH"),
		TableauID(5):  ids("JS"),
	})
}

func TestMovableRun(t *testing.T) {
	d := capacityDeck(t)

	run, ok := MovableRun(d, "8H")
	require.True(t, ok)
	assert.Equal(t, ids("8H", "7S", "6D", "5C", "4H", "3S"), run)

	run, ok = MovableRun(d, "3S")
	require.True(t, ok)
	assert.Equal(t, ids("3S"), run)

	run, ok = MovableRun(d, "KH")
	require.True(t, ok, "a free cell card is a run of one")
	assert.Equal(t, ids("KH"), run)

	_, ok = MovableRun(d, "ZZ")
	assert.False(t, ok)
}

func TestMovableRunBrokenSequence(t *testing.T) {
	d := layoutDeck(t, StandardRuleSet(), map[PileID][]CardID{
		TableauID(0): ids("9C", "8H", "7H", "6S"),
		TableauID(1): ids("5D", "4D"),
	})

	_, ok := MovableRun(d, "9C")
	assert.False(t, ok, "same color break")
	_, ok = MovableRun(d, "8H")
	assert.False(t, ok)
	run, ok := MovableRun(d, "7H")
	require.True(t, ok)
	assert.Equal(t, ids("7H", "6S"), run)

	_, ok = MovableRun(d, "5D")
	assert.False(t, ok, "same color and same suit")
}

func TestMaxMovable(t *testing.T) {
	d := capacityDeck(t)

	assert.Equal(t, 6, MaxMovable(d, ""))
	assert.Equal(t, 6, MaxMovable(d, TableauID(1)))
	assert.Equal(t, 3, MaxMovable(d, TableauID(6)), "empty destination is not counted")
}

func TestCapacityBoundary(t *testing.T) {
	d := capacityDeck(t)

	// (1+2) * 2^1 = 6
	assert.Empty(t, FilterValidDropPiles(d, "9C", []PileID{TableauID(1)}), "run of 7 exceeds capacity")
	assert.Equal(t, []PileID{TableauID(2)}, FilterValidDropPiles(d, "8H", []PileID{TableauID(2)}), "run of 6 fits")

	assert.False(t, CanMoveCard(d, "9C"))
	assert.True(t, CanMoveCard(d, "8H"))

	// Moving into the empty column leaves (1+2) * 2^0 = 3
	assert.Empty(t, FilterValidDropPiles(d, "8H", []PileID{TableauID(6)}))
	assert.Equal(t, []PileID{TableauID(6)}, FilterValidDropPiles(d, "5C", []PileID{TableauID(6)}))
}

func TestCapacityWithNoRoom(t *testing.T) {
	d := layoutDeck(t, StandardRuleSet(), map[PileID][]CardID{
		FreeCellID(0): ids("KC"),
		FreeCellID(1): ids("KD"),
		FreeCellID(2): ids("KH"),
		FreeCellID(3): ids("KS"),
		TableauID(0):  ids("5S", "4H"),
		TableauID(1):  ids("5C"),
		TableauID(2):  ids("6H"),
		TableauID(3):  ids("QC"),
		TableauID(4):  ids("QD"),
		TableauID(5):  ids("QH"),
		TableauID(6):  ids("QS"),
	})

	assert.Equal(t, 1, MaxMovable(d, ""))
	assert.False(t, CanMoveCard(d, "5S"), "two card run with capacity 1")
	assert.Empty(t, FilterValidDropPiles(d, "5S", []PileID{TableauID(2)}))
	assert.Equal(t, []PileID{TableauID(1)}, FilterValidDropPiles(d, "4H", []PileID{TableauID(1)}))
}

func TestEmptyColumnExcludedFromCapacity(t *testing.T) {
	d := layoutDeck(t, StandardRuleSet(), map[PileID][]CardID{
		FreeCellID(0): ids("KC"),
		FreeCellID(1): ids("KD"),
		FreeCellID(2): ids("KH"),
		TableauID(0):  ids("7S", "6H", "5C"),
		TableauID(1):  ids("8D"),
		TableauID(3):  ids("QC"),
		TableauID(4):  ids("QD"),
		TableauID(5):  ids("QH"),
		TableauID(6):  ids("QS"),
	})

	// One empty cell and one empty column: 4 onto a card, 2 into the column
	assert.Equal(t, 4, MaxMovable(d, TableauID(1)))
	assert.Equal(t, 2, MaxMovable(d, TableauID(2)))

	assert.Empty(t, FilterValidDropPiles(d, "7S", []PileID{TableauID(2)}))
	assert.Equal(t, []PileID{TableauID(2)}, FilterValidDropPiles(d, "6H", []PileID{TableauID(2)}))
	assert.Equal(t, []PileID{TableauID(1)}, FilterValidDropPiles(d, "7S", []PileID{TableauID(1)}))
}

func TestEmptyColumnAcceptsAnyRank(t *testing.T) {
	d := capacityDeck(t)
	assert.Equal(t, []PileID{TableauID(6)}, FilterValidDropPiles(d, "JS", []PileID{TableauID(6)}))
	assert.Equal(t, []PileID{TableauID(6)}, FilterValidDropPiles(d, "4H", []PileID{TableauID(6)}))
}

func TestIllegalColorStack(t *testing.T) {
	d := layoutDeck(t, StandardRuleSet(), map[PileID][]CardID{
		TableauID(0): ids("5S"),
		TableauID(1): ids("4C"),
		TableauID(2): ids("4H"),
	})

	assert.Empty(t, FilterValidDropPiles(d, "4C", []PileID{TableauID(0)}))
	assert.Equal(t, []PileID{TableauID(0)}, FilterValidDropPiles(d, "4H", []PileID{TableauID(0)}))

	_, ok := PlanMove(d, "4C", TableauID(0))
	assert.False(t, ok)
}

func TestFreeCellAcceptance(t *testing.T) {
	d := capacityDeck(t)

	assert.Equal(t, []PileID{FreeCellID(2), FreeCellID(3)},
		FilterValidDropPiles(d, "3S", d.FreeCellIDs()))
	assert.Empty(t, FilterValidDropPiles(d, "4H", d.FreeCellIDs()), "free cells take single cards")
	assert.Empty(t, FilterValidDropPiles(d, "KH", []PileID{FreeCellID(0)}), "a card never drops on its own pile")
}

func TestFoundationAcceptance(t *testing.T) {
	d := layoutDeck(t, StandardRuleSet(), map[PileID][]CardID{
		FoundationID(Hearts): ids("AH", "2H"),
		TableauID(0):         ids("4S", "3H"),
		TableauID(1):         ids("AC"),
		TableauID(2):         ids("2C", "AD"),
	})

	assert.Equal(t, []PileID{FoundationID(Hearts)}, FilterValidDropPiles(d, "3H", d.FoundationIDs()))
	assert.Equal(t, []PileID{FoundationID(Clubs)}, FilterValidDropPiles(d, "AC", d.FoundationIDs()))
	assert.Equal(t, []PileID{FoundationID(Diamonds)}, FilterValidDropPiles(d, "AD", d.FoundationIDs()))
	assert.Empty(t, FilterValidDropPiles(d, "4S", d.FoundationIDs()), "runs never go to foundations")
	assert.Empty(t, FilterValidDropPiles(d, "2C", d.FoundationIDs()))
}

func TestFilterValidDropPilesPreservesOrder(t *testing.T) {
	d := capacityDeck(t)

	candidates := []PileID{FreeCellID(3), TableauID(6), FreeCellID(0), "nowhere", FreeCellID(2)}
	assert.Equal(t, []PileID{FreeCellID(3), TableauID(6), FreeCellID(2)},
		FilterValidDropPiles(d, "3S", candidates))

	got := FilterValidDropPiles(d, "9C", candidates)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCalculateNewPilePosition(t *testing.T) {
	d := capacityDeck(t)

	got := CalculateNewPilePosition(d, ids("8H", "7S"), TableauID(2))
	assert.Equal(t, []Placement{
		{Pile: TableauID(2), Position: 1},
		{Pile: TableauID(2), Position: 2},
	}, got)

	got = CalculateNewPilePosition(d, ids("3S"), TableauID(6))
	assert.Equal(t, []Placement{{Pile: TableauID(6), Position: 0}}, got)
}

func TestPlanMove(t *testing.T) {
	d := capacityDeck(t)

	seq, ok := PlanMove(d, "5C", TableauID(6))
	require.True(t, ok)
	assert.Equal(t, []Move{
		NewMove("5C", TableauID(0), 4, TableauID(6), 0),
		NewMove("4H", TableauID(0), 5, TableauID(6), 1),
		NewMove("3S", TableauID(0), 6, TableauID(6), 2),
	}, seq.Moves())
	assert.Equal(t, TableauID(0), seq.Source())
	assert.Equal(t, TableauID(6), seq.Destination())
}

func TestSnapTarget(t *testing.T) {
	d := layoutDeck(t, StandardRuleSet(), map[PileID][]CardID{
		FreeCellID(0): ids("AH"),
		TableauID(0):  ids("AS", "KD"),
	})

	dest, ok := SnapTarget(d, "AH")
	require.True(t, ok)
	assert.Equal(t, FoundationID(Hearts), dest)

	_, ok = SnapTarget(d, "AS")
	assert.False(t, ok, "only the top card snaps")
	_, ok = SnapTarget(d, "KD")
	assert.False(t, ok)
}

func TestFoundationSnapScenario(t *testing.T) {
	d := layoutDeck(t, StandardRuleSet(), map[PileID][]CardID{
		FreeCellID(0): ids("AH"),
	})

	targets := FilterValidDropPiles(d, "AH", d.FoundationIDs())
	require.Equal(t, []PileID{FoundationID(Hearts)}, targets)

	seq, ok := PlanMove(d, "AH", targets[0])
	require.True(t, ok)
	require.NoError(t, d.ExecuteMoveSequence(seq))

	assert.Equal(t, ids("AH"), d.piles[FoundationID(Hearts)].Cards)
	assert.True(t, d.piles[FreeCellID(0)].IsEmpty())
	require.NoError(t, d.Validate())
}

func TestLegalMovesAreExecutable(t *testing.T) {
	d, err := Deal(StandardRuleSet(), 1)
	require.NoError(t, err)

	moves := LegalMoves(d)
	require.NotEmpty(t, moves)
	for _, seq := range moves {
		cp := d.Clone()
		require.NoError(t, cp.ExecuteMoveSequence(seq), seq.String())
		require.NoError(t, cp.Validate(), seq.String())
	}
}

func TestQueriesDoNotMutate(t *testing.T) {
	d := capacityDeck(t)
	before := d.Placements()

	for i := 0; i < 2; i++ {
		run, ok := MovableRun(d, "8H")
		require.True(t, ok)
		assert.Len(t, run, 6)
		assert.Equal(t, 3, MaxMovable(d, TableauID(6)))
		assert.True(t, CanMoveCard(d, "7S"))
		assert.Equal(t, []PileID{TableauID(2)}, FilterValidDropPiles(d, "8H", d.TableauIDs()))
		assert.Equal(t, []Placement{{Pile: TableauID(1), Position: 1}}, CalculateNewPilePosition(d, ids("9S"), TableauID(1)))
		_, ok = PlanMove(d, "8H", TableauID(2))
		assert.True(t, ok)
		_ = LegalMoves(d)
	}

	assert.Equal(t, before, d.Placements())
	require.NoError(t, d.Validate())
}
