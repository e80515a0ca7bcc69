package entity

import "fmt"

// Cell is the content of one board square.
type Cell string

const (
	Empty Cell = ""
	MarkX Cell = "X"
	MarkO Cell = "O"
)

// BoardSize is the number of cells on the board.
const BoardSize = 9

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a 3x3 grid stored row by row. Indices outside [0,8] are a programming error
// and panic on access.
type Board [BoardSize]Cell

func (that *Board) Get(index int) Cell {
	return that[index]
}

func (that *Board) Set(index int, cell Cell) {
	that[index] = cell
}

// IsFull - reports whether no empty cell remains.
func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

// LegalMoves - returns the indices of all empty cells in ascending order.
func (that *Board) LegalMoves() []int {
	moves := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == Empty {
			moves = append(moves, i)
		}
	}

	return moves
}

// IsLegalMove - reports whether index is on the board and the cell there is empty.
func (that *Board) IsLegalMove(index int) bool {
	return index >= 0 && index < BoardSize && that[index] == Empty
}

func (that *Board) HasWon(mark Cell) bool {
	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}

	return false
}

// IsDraw - the board is full and neither side completed a line.
func (that *Board) IsDraw() bool {
	return that.IsFull() && !that.HasWon(MarkX) && !that.HasWon(MarkO)
}

// Outcome - classifies the board. A board where both marks completed a line cannot be
// reached through alternating turns, so it panics.
func (that *Board) Outcome() Outcome {
	wonX, wonO := that.HasWon(MarkX), that.HasWon(MarkO)

	switch {
	case wonX && wonO:
		panic(fmt.Sprintf("unreachable board, both marks won: %v", *that))
	case wonX:
		return WinX
	case wonO:
		return WinO
	case that.IsFull():
		return Draw
	default:
		return InProgress
	}
}

// NextMark - the side to move, given that X opens and turns alternate.
func (that *Board) NextMark() Cell {
	var x, o int
	for _, cell := range that {
		switch cell {
		case MarkX:
			x++
		case MarkO:
			o++
		}
	}

	if x > o {
		return MarkO
	}

	return MarkX
}
