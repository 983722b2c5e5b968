package model

import (
	"errors"
	"testing"
)

func snapshot(b *Board) [8][8]*Piece {
	var snap [8][8]*Piece
	for file := 1; file <= 8; file++ {
		for rank := 1; rank <= 8; rank++ {
			snap[file-1][rank-1] = b.at(Square{File: file, Rank: rank})
		}
	}
	return snap
}

func TestApplyRelocates(t *testing.T) {
	b := NewBoard()
	from := Square{File: 5, Rank: 2}
	to := Square{File: 5, Rank: 4}

	if err := b.Apply(NewMove(from, to)); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if p, _ := b.PieceAt(from); p != nil {
		t.Fatalf("start square %s still occupied", from)
	}
	moved, _ := b.PieceAt(to)
	if moved == nil {
		t.Fatalf("no piece on %s after move", to)
	}
	if !moved.HasMoved {
		t.Fatal("moved piece not flagged HasMoved")
	}
	if moved.Position != to {
		t.Fatalf("moved piece records position %s, want %s", moved.Position, to)
	}
}

func TestApplyCapturesByOverwrite(t *testing.T) {
	b := &Board{}
	from := Square{File: 4, Rank: 4}
	to := Square{File: 4, Rank: 5}
	attacker := &Piece{Kind: Rook, Color: White, Position: from}
	victim := &Piece{Kind: Knight, Color: Black, Position: to}
	b.SetPiece(from, attacker)
	b.SetPiece(to, victim)

	if err := b.Apply(NewMove(from, to)); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if p, _ := b.PieceAt(to); p != attacker {
		t.Fatalf("destination holds %+v, want the attacker", p)
	}
}

func TestApplyMissingStart(t *testing.T) {
	b := NewBoard()
	before := snapshot(b)

	from := Square{File: 5, Rank: 4}
	err := b.Apply(NewMove(from, Square{File: 5, Rank: 5}))
	var illegal *IllegalMoveError
	if !errors.As(err, &illegal) {
		t.Fatalf("Apply from empty square: error = %v, want IllegalMoveError", err)
	}
	if illegal.From != from {
		t.Fatalf("IllegalMoveError names %s, want %s", illegal.From, from)
	}
	if snapshot(b) != before {
		t.Fatal("board mutated by a failed Apply")
	}
}

func TestApplyOutOfRangeDestination(t *testing.T) {
	b := NewBoard()
	before := snapshot(b)

	err := b.Apply(NewMove(Square{File: 1, Rank: 2}, Square{File: 1, Rank: 9}))
	var rangeErr *RangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("error = %v, want RangeError", err)
	}
	if snapshot(b) != before {
		t.Fatal("board mutated by a failed Apply")
	}
}

func TestApplyEnPassantRemovesStoredPawn(t *testing.T) {
	b := &Board{}
	pawn := &Piece{Kind: Pawn, Color: White, Position: Square{File: 1, Rank: 2}}
	b.SetPiece(pawn.Position, pawn)
	mover := &Piece{Kind: Pawn, Color: Black, Position: Square{File: 5, Rank: 1}}
	b.SetPiece(mover.Position, mover)

	mv := NewEnPassantMove(Square{File: 5, Rank: 1}, Square{File: 7, Rank: 1}, pawn)
	if err := b.Apply(mv); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	occupant, _ := b.PieceAt(Square{File: 1, Rank: 2})
	if occupant == pawn {
		t.Fatal("captured pawn still on its square after en passant")
	}
}

func TestApplyCastleRelocatesRook(t *testing.T) {
	tests := []struct {
		name     string
		kingTo   Square
		rookFrom Square
		rookTo   Square
	}{
		{"kingside", Square{7, 1}, Square{8, 1}, Square{6, 1}},
		{"queenside", Square{3, 1}, Square{1, 1}, Square{4, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Board{}
			kingFrom := Square{File: 5, Rank: 1}
			king := &Piece{Kind: King, Color: White, Position: kingFrom}
			rook := &Piece{Kind: Rook, Color: White, Position: tt.rookFrom}
			b.SetPiece(kingFrom, king)
			b.SetPiece(tt.rookFrom, rook)

			mv := NewCastleMove(kingFrom, tt.kingTo, tt.rookFrom, tt.rookTo)
			if err := b.Apply(mv); err != nil {
				t.Fatalf("Apply: %v", err)
			}

			if p, _ := b.PieceAt(tt.kingTo); p != king {
				t.Fatalf("king not on %s after castle", tt.kingTo)
			}
			if p, _ := b.PieceAt(tt.rookFrom); p != nil {
				t.Fatalf("rook still on %s after castle", tt.rookFrom)
			}
			if p, _ := b.PieceAt(tt.rookTo); p != rook {
				t.Fatalf("rook not on %s after castle", tt.rookTo)
			}
			if !rook.HasMoved || rook.Position != tt.rookTo {
				t.Fatalf("rook state after castle: %+v", rook)
			}
			if b.WhiteKing() != king || b.WhiteKing().Position != tt.kingTo {
				t.Fatal("king reference stale after castle")
			}
		})
	}
}

func TestApplyPromotionReplacesPiece(t *testing.T) {
	b := &Board{}
	from := Square{File: 1, Rank: 7}
	to := Square{File: 1, Rank: 8}
	pawn := &Piece{Kind: Pawn, Color: White, Position: from, HasMoved: true}
	b.SetPiece(from, pawn)

	if err := b.Apply(NewPromotionMove(from, to, Queen)); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	promoted, _ := b.PieceAt(to)
	if promoted == nil {
		t.Fatalf("no piece on %s after promotion", to)
	}
	if promoted == pawn {
		t.Fatal("promotion mutated the pawn instead of replacing it")
	}
	if promoted.Kind != Queen || promoted.Color != White {
		t.Fatalf("promoted piece = %+v, want a white queen", promoted)
	}
	if promoted.Position != to || !promoted.HasMoved {
		t.Fatalf("promoted piece state: %+v", promoted)
	}
}

func TestApplyKingMoveUpdatesReference(t *testing.T) {
	b := NewBoard()
	// Vacate e2 so the king has somewhere to go.
	b.SetPiece(Square{File: 5, Rank: 2}, nil)

	from := Square{File: 5, Rank: 1}
	to := Square{File: 5, Rank: 2}
	if err := b.Apply(NewMove(from, to)); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if b.WhiteKing() == nil || b.WhiteKing().Position != to {
		t.Fatal("king reference did not follow the king")
	}
}

func TestPieceCloneIsIndependent(t *testing.T) {
	p := &Piece{Kind: Rook, Color: Black, Position: Square{File: 8, Rank: 8}}
	c := p.Clone()

	c.Position = Square{File: 1, Rank: 1}
	c.HasMoved = true

	if p.Position != (Square{File: 8, Rank: 8}) || p.HasMoved {
		t.Fatalf("mutating the clone changed the original: %+v", p)
	}
}
