package model

import "fmt"

// RangeError reports a board access with an off-board square.
type RangeError struct {
	Square Square
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("square (%d,%d) is off the board", e.Square.File, e.Square.Rank)
}

// IllegalMoveError reports a move whose start square holds no piece.
type IllegalMoveError struct {
	From Square
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("no piece at %s to move", e.From)
}
