package model

import "encoding/json"

// Board is the authoritative position: an 8x8 grid of piece slots plus
// cached references to each side's king. The grid is file-major and the
// public interface is 1-indexed; all indexing rejects off-board squares.
//
// The king references are an index over the grid, not a second source of
// truth. Every mutation path (SetPiece, Apply, construction, Copy, Clear)
// keeps them current, so they cannot go stale through the public API.
//
// A Board is not safe for concurrent use; callers that need speculative
// mutation work on a Copy.
type Board struct {
	grid      [8][8]*Piece
	whiteKing *Piece
	blackKing *Piece
}

// NewBoard returns a board set up in the standard starting position.
func NewBoard() *Board {
	b := &Board{}
	b.placeBackRanks([]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook})
	b.placePawns()
	return b
}

// NewChess960Board returns a board with pawns on their usual ranks and a
// randomized back rank produced by the Chess960 generator, mirrored for
// both sides. rnd is the randomness source; pass a seeded *math/rand.Rand
// for reproducible positions.
func NewChess960Board(rnd Rand) *Board {
	b := &Board{}
	b.placeBackRanks(chess960BackRank(rnd))
	b.placePawns()
	return b
}

func (b *Board) placeBackRanks(order []PieceKind) {
	for i, kind := range order {
		white := Square{File: i + 1, Rank: 1}
		black := Square{File: i + 1, Rank: 8}
		b.place(&Piece{Kind: kind, Color: White, Position: white})
		b.place(&Piece{Kind: kind, Color: Black, Position: black})
	}
}

func (b *Board) placePawns() {
	for file := 1; file <= 8; file++ {
		b.place(&Piece{Kind: Pawn, Color: White, Position: Square{File: file, Rank: 2}})
		b.place(&Piece{Kind: Pawn, Color: Black, Position: Square{File: file, Rank: 7}})
	}
}

func (b *Board) place(p *Piece) {
	b.setPiece(p.Position, p)
}

// PieceAt returns the piece on sq, or nil for an empty square. An
// off-board square is a RangeError, never a default value.
func (b *Board) PieceAt(sq Square) (*Piece, error) {
	if !sq.Valid() {
		return nil, &RangeError{Square: sq}
	}
	return b.grid[sq.File-1][sq.Rank-1], nil
}

// SetPiece puts p on sq, overwriting any occupant. p may be nil to empty
// the square. The cached king references follow the write: placing a
// king indexes it, and displacing or removing a tracked king drops it.
func (b *Board) SetPiece(sq Square, p *Piece) error {
	if !sq.Valid() {
		return &RangeError{Square: sq}
	}
	b.setPiece(sq, p)
	return nil
}

// setPiece assumes sq is valid.
func (b *Board) setPiece(sq Square, p *Piece) {
	prev := b.grid[sq.File-1][sq.Rank-1]
	if prev != nil {
		if prev == b.whiteKing {
			b.whiteKing = nil
		}
		if prev == b.blackKing {
			b.blackKing = nil
		}
	}
	b.grid[sq.File-1][sq.Rank-1] = p
	if p != nil && p.Kind == King {
		switch p.Color {
		case White:
			b.whiteKing = p
		case Black:
			b.blackKing = p
		}
	}
}

// at assumes sq is valid; move generation guards with sq.Valid itself.
func (b *Board) at(sq Square) *Piece {
	return b.grid[sq.File-1][sq.Rank-1]
}

// WhiteKing returns white's king, or nil if none is on the board.
func (b *Board) WhiteKing() *Piece { return b.whiteKing }

// BlackKing returns black's king, or nil if none is on the board.
func (b *Board) BlackKing() *Piece { return b.blackKing }

// KingOf returns the given side's king, or nil if none is on the board.
func (b *Board) KingOf(c Color) *Piece {
	if c == White {
		return b.whiteKing
	}
	return b.blackKing
}

// Apply executes one ply. The piece at mv.From moves to mv.To, capturing
// by overwrite, its HasMoved flag is set and its Position updated, and
// then the move's side effect runs against the mutated board: en passant
// clears the captured pawn's square, castling relocates the rook,
// promotion replaces the pawn with a new piece of the chosen kind.
//
// An empty From square is an IllegalMoveError and an off-board square a
// RangeError; both are detected before any grid write, so a failed Apply
// leaves the board untouched. There is no rollback after the first
// write: callers wanting to probe a move apply it to a Copy.
func (b *Board) Apply(mv Move) error {
	piece, err := b.PieceAt(mv.From)
	if err != nil {
		return err
	}
	if piece == nil {
		return &IllegalMoveError{From: mv.From}
	}
	if !mv.To.Valid() {
		return &RangeError{Square: mv.To}
	}
	if mv.Kind == MoveCastle {
		if !mv.RookFrom.Valid() {
			return &RangeError{Square: mv.RookFrom}
		}
		if !mv.RookTo.Valid() {
			return &RangeError{Square: mv.RookTo}
		}
	}

	b.setPiece(mv.From, nil)
	b.setPiece(mv.To, piece)
	piece.HasMoved = true
	piece.Position = mv.To

	switch mv.Kind {
	case MovePlain:
	case MoveEnPassant:
		// The captured pawn sits at neither endpoint; its square was
		// fixed when the move was built. Clear it unconditionally.
		if mv.Captured != nil && mv.Captured.Position.Valid() {
			b.setPiece(mv.Captured.Position, nil)
		}
	case MoveCastle:
		if rook := b.at(mv.RookFrom); rook != nil {
			b.setPiece(mv.RookFrom, nil)
			b.setPiece(mv.RookTo, rook)
			rook.HasMoved = true
			rook.Position = mv.RookTo
		}
	case MovePromotion:
		b.setPiece(mv.To, &Piece{
			Kind:     mv.Promotion,
			Color:    piece.Color,
			Position: mv.To,
			HasMoved: true,
		})
	}
	return nil
}

// Copy returns a deep copy of the board. Every piece is cloned, and the
// king references are re-derived by scanning the finished grid so they
// point at the copies, never at the originals.
func (b *Board) Copy() *Board {
	cp := &Board{}
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			if p := b.grid[f][r]; p != nil {
				cp.grid[f][r] = p.Clone()
			}
		}
	}
	cp.deriveKings()
	return cp
}

func (b *Board) deriveKings() {
	b.whiteKing, b.blackKing = nil, nil
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			p := b.grid[f][r]
			if p == nil || p.Kind != King {
				continue
			}
			switch p.Color {
			case White:
				b.whiteKing = p
			case Black:
				b.blackKing = p
			}
		}
	}
}

// Clear empties every square and drops both king references.
func (b *Board) Clear() {
	b.grid = [8][8]*Piece{}
	b.whiteKing = nil
	b.blackKing = nil
}

type boardJSON struct {
	Squares   [8][8]*Piece `json:"squares"`
	WhiteKing *Square      `json:"whiteKing"`
	BlackKing *Square      `json:"blackKing"`
}

// MarshalJSON serializes the grid file-major, files a through h, each
// holding ranks 1 through 8, with the king squares alongside.
func (b *Board) MarshalJSON() ([]byte, error) {
	out := boardJSON{Squares: b.grid}
	if b.whiteKing != nil {
		sq := b.whiteKing.Position
		out.WhiteKing = &sq
	}
	if b.blackKing != nil {
		sq := b.blackKing.Position
		out.BlackKing = &sq
	}
	return json.Marshal(out)
}
