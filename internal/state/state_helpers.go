package state

import (
	"go-snake/internal/snake"
)

func newBoard(width, height int) [][]snake.Cell {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	board := make([][]snake.Cell, height)
	for y := range board {
		board[y] = make([]snake.Cell, width)
	}
	return board
}

func (s State) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.Width && y < s.Height
}

// SetCell changes one board cell. Cells off the board are ignored.
func (s *State) SetCell(x, y int, c snake.Cell) {
	if !s.InBounds(x, y) {
		return
	}
	s.Board[y][x] = c
}

// CellAt returns the displayed cell, Free when off the board.
func (s State) CellAt(x, y int) snake.Cell {
	if !s.InBounds(x, y) {
		return snake.Free
	}
	return s.Board[y][x]
}

// Count returns how many board cells show c.
func (s State) Count(c snake.Cell) int {
	n := 0
	for _, row := range s.Board {
		for _, cell := range row {
			if cell == c {
				n++
			}
		}
	}
	return n
}

func (s State) IsPlaying() bool {
	return s.FSM.Current() == "playing"
}

func (s State) IsOver() bool {
	return s.Loss
}
