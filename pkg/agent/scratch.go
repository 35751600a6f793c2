package agent

import "github.com/vctt94/daifugo/pkg/protocol"

// The strategy works directly on wire tables: rows 0-3 carry card
// presence per suit, [4][1]=2 is the joker. Scratch tables built here
// annotate those positions with group sizes or run lengths and are
// consumed by the selectors below.

const (
	minRank = 1
	maxRank = 13
)

func hasJoker(t *protocol.Table) bool {
	return t.At(protocol.RowJoker, 1) == 2
}

// copyCards copies rows 0-4 from src to dst, clearing dst's card rows
// first.
func copyCards(dst, src *protocol.Table) {
	for row := 0; row <= protocol.RowJoker; row++ {
		for col := 0; col < protocol.TableCols; col++ {
			dst.Set(row, col, int(src.At(row, col)))
		}
	}
}

// orCards merges the cards of src into dst.
func orCards(dst, src *protocol.Table) {
	for row := 0; row <= protocol.RowJoker; row++ {
		for col := 0; col < protocol.TableCols; col++ {
			if src.At(row, col) > 0 {
				dst.Set(row, col, int(src.At(row, col)))
			}
		}
	}
}

// diffCards removes the cards of src from dst.
func diffCards(dst, src *protocol.Table) {
	for row := 0; row <= protocol.RowJoker; row++ {
		for col := 0; col < protocol.TableCols; col++ {
			if src.At(row, col) > 0 {
				dst.Set(row, col, 0)
			}
		}
	}
}

// countCards counts occupied card cells.
func countCards(t *protocol.Table) int {
	n := 0
	for row := 0; row <= protocol.RowJoker; row++ {
		for col := 0; col < protocol.TableCols; col++ {
			if t.At(row, col) > 0 {
				n++
			}
		}
	}
	return n
}

// groupTable stores at every held position the count of its rank across
// the four suits, when that count is at least 2.
func groupTable(out, hand *protocol.Table) {
	out.Clear()
	for rank := minRank; rank <= maxRank; rank++ {
		count := 0
		for suit := 0; suit < 4; suit++ {
			if hand.At(suit, rank) == 1 {
				count++
			}
		}
		if count < 2 {
			continue
		}
		for suit := 0; suit < 4; suit++ {
			if hand.At(suit, rank) == 1 {
				out.Set(suit, rank, count)
			}
		}
	}
}

// jgroupTable is groupTable with the joker extending every rank by one.
func jgroupTable(out, hand *protocol.Table, joker bool) {
	out.Clear()
	if !joker {
		return
	}
	for rank := minRank; rank <= maxRank; rank++ {
		count := 1
		for suit := 0; suit < 4; suit++ {
			if hand.At(suit, rank) == 1 {
				count++
			}
		}
		if count < 2 {
			continue
		}
		for suit := 0; suit < 4; suit++ {
			if hand.At(suit, rank) == 1 {
				out.Set(suit, rank, count)
			}
		}
	}
}

// kaidanTable stores at every position of a same-suit run of length >= 3
// the length of the run extending upward from it.
func kaidanTable(out, hand *protocol.Table) {
	out.Clear()
	for suit := 0; suit < 4; suit++ {
		run := 0
		for rank := maxRank; rank >= minRank; rank-- {
			if hand.At(suit, rank) == 1 {
				run++
			} else {
				run = 0
			}
			if run >= 3 {
				out.Set(suit, rank, run)
			}
		}
	}
}

// jkaidanTable is kaidanTable allowing the joker to fill one gap.
func jkaidanTable(out, hand *protocol.Table, joker bool) {
	out.Clear()
	if !joker {
		return
	}
	for suit := 0; suit < 4; suit++ {
		run := 1
		noJokerRun := 0
		for rank := maxRank; rank >= 0; rank-- {
			if hand.At(suit, rank) == 1 {
				run++
				noJokerRun++
			} else {
				run = noJokerRun + 1
				noJokerRun = 0
			}
			if run > 2 {
				out.Set(suit, rank, run)
			}
		}
	}
}

// lowCards keeps only cards at ranks strictly below threshold.
func lowCards(out, in *protocol.Table, threshold int) {
	copyCards(out, in)
	for rank := threshold; rank < protocol.TableCols; rank++ {
		for suit := 0; suit < 4; suit++ {
			out.Set(suit, rank, 0)
		}
	}
}

// highCards keeps only cards at ranks strictly above threshold.
func highCards(out, in *protocol.Table, threshold int) {
	copyCards(out, in)
	for rank := 0; rank <= threshold && rank < protocol.TableCols; rank++ {
		for suit := 0; suit < 4; suit++ {
			out.Set(suit, rank, 0)
		}
	}
}

// nCards extracts the positions whose annotation equals n. Reports
// whether any were found.
func nCards(out, analysis *protocol.Table, n int) bool {
	out.Clear()
	found := false
	for suit := 0; suit < 4; suit++ {
		for rank := 0; rank < protocol.TableCols; rank++ {
			if int(analysis.At(suit, rank)) == n {
				out.Set(suit, rank, n)
				found = true
			}
		}
	}
	return found
}

// lockCards zeroes every suit row not in the mask (1<<suit bits).
func lockCards(t *protocol.Table, suitMask int) {
	for suit := 0; suit < 4; suit++ {
		if suitMask&(1<<suit) != 0 {
			continue
		}
		for rank := 0; rank < protocol.TableCols; rank++ {
			t.Set(suit, rank, 0)
		}
	}
}

// removeGroup keeps the cards of in that are not part of any group.
func removeGroup(out, in, group *protocol.Table) {
	for rank := 0; rank < protocol.TableCols; rank++ {
		for suit := 0; suit < 4; suit++ {
			if in.At(suit, rank) == 1 && group.At(suit, rank) == 0 {
				out.Set(suit, rank, 1)
			} else {
				out.Set(suit, rank, 0)
			}
		}
	}
}

// removeSequence keeps the cards of in that are not committed to a run.
func removeSequence(out, in, seq *protocol.Table) {
	for suit := 0; suit < 4; suit++ {
		for rank := 0; rank < protocol.TableCols; rank++ {
			switch {
			case seq.At(suit, rank) > 2:
				length := int(seq.At(suit, rank))
				for k := 0; k < length && rank+k < protocol.TableCols; k++ {
					out.Set(suit, rank+k, 0)
				}
				rank += length - 1
			case in.At(suit, rank) == 1:
				out.Set(suit, rank, 1)
			default:
				out.Set(suit, rank, 0)
			}
		}
	}
}

// lowSolo selects the weakest single, falling back to the standalone
// joker at the strongest column when allowed.
func lowSolo(out, hand *protocol.Table, useJoker bool) {
	out.Clear()
	for rank := minRank; rank <= maxRank; rank++ {
		for suit := 0; suit < 4; suit++ {
			if hand.At(suit, rank) == 1 {
				out.Set(suit, rank, 1)
				return
			}
		}
	}
	if useJoker {
		out.Set(0, 14, 2)
	}
}

// highSolo selects the strongest single; under revolution the standalone
// joker goes to the weakest column.
func highSolo(out, hand *protocol.Table, useJoker bool) {
	out.Clear()
	for rank := maxRank; rank >= minRank; rank-- {
		for suit := 0; suit < 4; suit++ {
			if hand.At(suit, rank) == 1 {
				out.Set(suit, rank, 1)
				return
			}
		}
	}
	if useJoker {
		out.Set(0, 0, 2)
	}
}

// lowGroup selects the lowest-ranked annotated group, completing a short
// one with the joker as a substitution when allowed by the lock mask.
func lowGroup(out, hand, group *protocol.Table, joker, locked bool, suitMask int) {
	out.Clear()
	selectGroup(out, hand, group, joker, locked, suitMask, false)
}

// highGroup selects the highest-ranked annotated group.
func highGroup(out, hand, group *protocol.Table, joker, locked bool, suitMask int) {
	out.Clear()
	selectGroup(out, hand, group, joker, locked, suitMask, true)
}

func selectGroup(out, hand, group *protocol.Table, joker, locked bool, suitMask int, highest bool) {
	rankFound, count, qty := -1, 0, 0
	ranks := make([]int, 0, maxRank)
	if highest {
		for r := maxRank; r >= minRank; r-- {
			ranks = append(ranks, r)
		}
	} else {
		for r := minRank; r <= maxRank; r++ {
			ranks = append(ranks, r)
		}
	}
	for _, rank := range ranks {
		for suit := 0; suit < 4; suit++ {
			if group.At(suit, rank) > 1 {
				out.Set(suit, rank, 1)
				count++
				qty = int(group.At(suit, rank))
			}
		}
		if count > 0 {
			rankFound = rank
			break
		}
	}
	if rankFound < 0 || !joker {
		return
	}
	// Fill the missing slot with the joker substituting that card.
	for suit := 0; suit < 4 && count < qty; suit++ {
		if hand.At(suit, rankFound) != 0 {
			continue
		}
		if locked && suitMask&(1<<suit) == 0 {
			continue
		}
		out.Set(suit, rankFound, 2)
		count++
	}
}

// lowSequence emits the run starting at the lowest annotated position,
// marking gap cells as joker substitutions.
func lowSequence(out, hand, seq *protocol.Table) {
	out.Clear()
	value, line, column := 0, 0, 0
	for col := 0; col < protocol.TableCols && value == 0; col++ {
		for suit := 0; suit < 4; suit++ {
			if int(seq.At(suit, col)) > value {
				value = int(seq.At(suit, col))
				line = suit
				column = col
			}
		}
	}
	emitSequence(out, hand, line, column, value)
}

// highSequence emits the run ending at the highest annotated position.
func highSequence(out, hand, seq *protocol.Table) {
	out.Clear()
	value, line, column := 0, 0, 0
	for col := protocol.TableCols - 1; col > 0 && value == 0; col-- {
		for suit := 0; suit < 4; suit++ {
			if seq.At(suit, col) == 0 || hand.At(suit, col) == 0 {
				continue
			}
			// Walk back to the start of the run ending here.
			for k := 0; col-k >= 0; k++ {
				if int(seq.At(suit, col-k)) >= value {
					value = int(seq.At(suit, col-k))
					line = suit
					column = col - k
				}
				if col-k-1 < 0 || seq.At(suit, col-k) > seq.At(suit, col-k-1) {
					break
				}
			}
		}
	}
	emitSequence(out, hand, line, column, value)
}

func emitSequence(out, hand *protocol.Table, suit, start, length int) {
	if length == 0 {
		return
	}
	for i := start; i < start+length && i < protocol.TableCols; i++ {
		if hand.At(suit, i) == 1 {
			out.Set(suit, i, 1)
		} else {
			out.Set(suit, i, 2)
		}
	}
}
