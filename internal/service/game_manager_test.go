package service

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/castlebridge/chess960-backend/internal/model"
)

func newTestManager() *GameManager {
	return NewGameManagerWithRand(rand.New(rand.NewSource(7)))
}

func TestCreateAndFetchGame(t *testing.T) {
	gm := newTestManager()

	if err := gm.CreateGame("g1", model.VariantStandard); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if err := gm.CreateGame("g1", model.VariantStandard); !errors.Is(err, ErrGameExists) {
		t.Fatalf("duplicate CreateGame: error = %v, want ErrGameExists", err)
	}

	state, err := gm.GetGameState("g1")
	if err != nil {
		t.Fatalf("GetGameState: %v", err)
	}
	if state.ToMove != model.White {
		t.Fatalf("new game ToMove = %s", state.ToMove)
	}

	if _, err := gm.GetGameState("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("unknown game: error = %v, want ErrGameNotFound", err)
	}
}

func TestCreateChess960Game(t *testing.T) {
	gm := newTestManager()

	if err := gm.CreateGame("g960", model.VariantChess960); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	state, err := gm.GetGameState("g960")
	if err != nil {
		t.Fatal(err)
	}
	if state.Variant != model.VariantChess960 {
		t.Fatalf("variant = %s", state.Variant)
	}
	if state.Board.WhiteKing() == nil || state.Board.BlackKing() == nil {
		t.Fatal("randomized board missing a king reference")
	}
}

func TestAddPlayerToGame(t *testing.T) {
	gm := newTestManager()
	if err := gm.CreateGame("g1", model.VariantStandard); err != nil {
		t.Fatal(err)
	}

	color, err := gm.AddPlayerToGame("g1", "alice")
	if err != nil || color != model.White {
		t.Fatalf("first join got (%s, %v)", color, err)
	}
	color, err = gm.AddPlayerToGame("g1", "bob")
	if err != nil || color != model.Black {
		t.Fatalf("second join got (%s, %v)", color, err)
	}
	if _, err := gm.AddPlayerToGame("g1", "carol"); !errors.Is(err, model.ErrGameFull) {
		t.Fatalf("third join: error = %v, want ErrGameFull", err)
	}
	if _, err := gm.AddPlayerToGame("missing", "dave"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("join unknown game: error = %v, want ErrGameNotFound", err)
	}
}

func TestMakeMoveThroughManager(t *testing.T) {
	gm := newTestManager()
	if err := gm.CreateGame("g1", model.VariantStandard); err != nil {
		t.Fatal(err)
	}

	move := model.WSMove{From: model.Square{File: 5, Rank: 2}, To: model.Square{File: 5, Rank: 4}}
	if err := gm.MakeMove("g1", "alice", move); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	state, err := gm.GetGameState("g1")
	if err != nil {
		t.Fatal(err)
	}
	if state.ToMove != model.Black {
		t.Fatalf("ToMove = %s after white's move", state.ToMove)
	}
	if err := gm.MakeMove("missing", "alice", move); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("move in unknown game: error = %v, want ErrGameNotFound", err)
	}
}
