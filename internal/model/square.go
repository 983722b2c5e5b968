package model

import "fmt"

// Square is a board coordinate. File and Rank both run from 1 to 8,
// file 1 being the a-file and rank 1 being white's back rank.
type Square struct {
	File int `json:"file"`
	Rank int `json:"rank"`
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.File >= 1 && s.File <= 8 && s.Rank >= 1 && s.Rank <= 8
}

func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
	}
	return fmt.Sprintf("%c%d", 'a'+s.File-1, s.Rank)
}

func (s Square) fileNotation() string {
	return fmt.Sprintf("%c", 'a'+s.File-1)
}

// offset returns the square shifted by df files and dr ranks. The result
// may be off the board; callers check Valid before indexing with it.
func (s Square) offset(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}
