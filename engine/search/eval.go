package search

import "termversi/board"

// Evaluate scores b from the point of view of me. It sums three normalized
// differentials: disc count, corners held and mobility.
func Evaluate(b board.Board, me board.Cell, w Weights) float64 {
	opp := board.Opposite(me)

	material := ratio(b.Score(me), b.Score(opp))

	var myCorners, oppCorners int
	for _, c := range board.Corners {
		switch b.At(c) {
		case me:
			myCorners++
		case opp:
			oppCorners++
		}
	}
	corners := ratio(myCorners, oppCorners)

	mobility := ratio(len(b.LegalMoves(me)), len(b.LegalMoves(opp)))

	return w.Score*material + w.Corner*corners + w.Mobility*mobility
}

// ratio returns (mine-theirs)/(mine+theirs), or 0 when both are zero.
func ratio(mine, theirs int) float64 {
	if mine+theirs == 0 {
		return 0
	}
	return float64(mine-theirs) / float64(mine+theirs)
}
