package model

import (
	"math/rand"
	"testing"
)

func TestChess960BackRankLegality(t *testing.T) {
	for seed := int64(0); seed < 500; seed++ {
		rank := chess960BackRank(rand.New(rand.NewSource(seed)))
		if len(rank) != 8 {
			t.Fatalf("seed %d: rank has %d slots", seed, len(rank))
		}

		counts := map[PieceKind]int{}
		for _, kind := range rank {
			counts[kind]++
		}
		want := map[PieceKind]int{Rook: 2, Knight: 2, Bishop: 2, Queen: 1, King: 1}
		for kind, n := range want {
			if counts[kind] != n {
				t.Fatalf("seed %d: %d %s pieces, want %d (rank %v)", seed, counts[kind], kind, n, rank)
			}
		}

		bishops := []int{}
		rooks := []int{}
		kingFile := -1
		for file, kind := range rank {
			switch kind {
			case Bishop:
				bishops = append(bishops, file)
			case Rook:
				rooks = append(rooks, file)
			case King:
				kingFile = file
			}
		}
		if bishops[0]%2 == bishops[1]%2 {
			t.Fatalf("seed %d: bishops on same color squares (%v)", seed, rank)
		}
		if kingFile < rooks[0] || kingFile > rooks[1] {
			t.Fatalf("seed %d: king not between rooks (%v)", seed, rank)
		}
	}
}

func TestChess960BackRankDeterministic(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		first := chess960BackRank(rand.New(rand.NewSource(seed)))
		second := chess960BackRank(rand.New(rand.NewSource(seed)))
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("seed %d: generator not deterministic: %v vs %v", seed, first, second)
			}
		}
	}
}

func TestNewChess960Board(t *testing.T) {
	b := NewChess960Board(rand.New(rand.NewSource(42)))

	for file := 1; file <= 8; file++ {
		white, _ := b.PieceAt(Square{File: file, Rank: 1})
		black, _ := b.PieceAt(Square{File: file, Rank: 8})
		if white == nil || black == nil {
			t.Fatalf("back rank file %d not fully placed", file)
		}
		if white.Kind != black.Kind {
			t.Fatalf("back ranks not mirrored at file %d: %s vs %s", file, white.Kind, black.Kind)
		}
		if white.Color != White || black.Color != Black {
			t.Fatalf("back rank colors wrong at file %d", file)
		}

		if p, _ := b.PieceAt(Square{File: file, Rank: 2}); p == nil || p.Kind != Pawn || p.Color != White {
			t.Fatalf("no white pawn at file %d", file)
		}
		if p, _ := b.PieceAt(Square{File: file, Rank: 7}); p == nil || p.Kind != Pawn || p.Color != Black {
			t.Fatalf("no black pawn at file %d", file)
		}
	}

	wk, bk := b.WhiteKing(), b.BlackKing()
	if wk == nil || bk == nil {
		t.Fatal("king references not set during randomized construction")
	}
	if wk.Position.Rank != 1 || bk.Position.Rank != 8 {
		t.Fatalf("kings on ranks %d and %d, want 1 and 8", wk.Position.Rank, bk.Position.Rank)
	}
	if wk.Position.File != bk.Position.File {
		t.Fatal("kings not on mirrored files")
	}
}
