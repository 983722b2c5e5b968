package model

// PieceKind identifies one of the six chess piece types.
type PieceKind string

const (
	King   PieceKind = "king"
	Queen  PieceKind = "queen"
	Rook   PieceKind = "rook"
	Bishop PieceKind = "bishop"
	Knight PieceKind = "knight"
	Pawn   PieceKind = "pawn"
)

func (k PieceKind) notation() string {
	switch k {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

// Color is the side a piece or player belongs to.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Piece is a single piece on the board. Position is kept consistent with
// the board cell holding the piece by Board.Apply; nothing else moves it.
type Piece struct {
	Kind     PieceKind `json:"kind"`
	Color    Color     `json:"color"`
	Position Square    `json:"position"`
	HasMoved bool      `json:"hasMoved"`
}

// Clone returns an independent copy of the piece. The copy shares no
// state with the original.
func (p *Piece) Clone() *Piece {
	c := *p
	return &c
}
