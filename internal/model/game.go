package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/castlebridge/chess960-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// Variant selects the starting position for a new game.
type Variant string

const (
	VariantStandard Variant = "standard"
	VariantChess960 Variant = "chess960"
)

var (
	ErrGameFull    = errors.New("game is full")
	ErrNotYourTurn = errors.New("not your turn")
	ErrGameOver    = errors.New("game is over")
)

// GameConnections holds the websocket connections observing one game.
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

// Game owns a single game's authoritative state and its observers. The
// Board inside the state is mutated only under g.mu; move probing works
// on board copies.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       GameState
	connections *GameConnections
	whiteClock  *Clock
	blackClock  *Clock
}

type GameState struct {
	Sound           string         `json:"sound"`
	Variant         Variant        `json:"variant"`
	Board           *Board         `json:"board"`
	ToMove          Color          `json:"toMove"`
	MoveHistory     []MovePair     `json:"moveHistory"`
	CapturedPieces  CapturedPieces `json:"capturedPieces"`
	IsCheck         bool           `json:"isCheck"`
	EnPassantTarget *Square        `json:"enPassantTarget"`
	Resolve         *string        `json:"resolve"`
	Players         struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
	LastMove *SimpleMove `json:"lastMove"`
}

// CapturedPieces lists, per side, the pieces that side has taken.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func NewGame(id string, variant Variant, rnd Rand) *Game {
	return &Game{
		ID:          id,
		state:       newGameState(variant, rnd),
		connections: newGameConnections(),
		whiteClock:  NewClock(600 * time.Second),
		blackClock:  NewClock(600 * time.Second),
	}
}

func newGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

func newGameState(variant Variant, rnd Rand) GameState {
	board := NewBoard()
	if variant == VariantChess960 {
		board = NewChess960Board(rnd)
	}
	return GameState{
		Variant:        variant,
		Board:          board,
		ToMove:         White,
		MoveHistory:    make([]MovePair, 0),
		CapturedPieces: CapturedPieces{White: []Piece{}, Black: []Piece{}},
	}
}

func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Players.White.ID == "" {
		g.state.Players.White = ClientPlayer{ID: playerID, Color: White, TimeLeft: 6000}
		return White, nil
	}
	if g.state.Players.Black.ID == "" {
		g.state.Players.Black = ClientPlayer{ID: playerID, Color: Black, TimeLeft: 6000}
		return Black, nil
	}
	return "", ErrGameFull
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.isPlayerInGame(playerID)
}

func (g *Game) isPlayerInGame(playerID string) bool {
	if g.state.Players.White.ID != "" && g.state.Players.White.ID == playerID {
		return true
	}
	if g.state.Players.Black.ID != "" && g.state.Players.Black.ID == playerID {
		return true
	}
	return false
}

func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.ID == "" || g.state.Players.Black.ID == ""
}

// MakeMove validates and executes one ply for the side to move.
func (g *Game) MakeMove(move WSMove) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Resolve != nil {
		return ErrGameOver
	}
	piece, err := g.state.Board.PieceAt(move.From)
	if err != nil {
		return err
	}
	if piece == nil {
		return &IllegalMoveError{From: move.From}
	}
	if piece.Color != g.state.ToMove {
		return ErrNotYourTurn
	}
	if err := g.validateMove(piece, move); err != nil {
		return err
	}

	if g.state.ToMove == White {
		g.whiteClock.Stop()
	} else {
		g.blackClock.Stop()
	}

	if err := g.executeMove(piece, move); err != nil {
		return err
	}

	if g.state.Resolve == nil {
		if g.state.ToMove == White {
			g.whiteClock.Start()
		} else {
			g.blackClock.Start()
		}
	}
	g.state.Players.White.TimeLeft = int(g.whiteClock.TimeLeft().Milliseconds() / 100)
	g.state.Players.Black.TimeLeft = int(g.blackClock.TimeLeft().Milliseconds() / 100)

	return nil
}

// Resign ends the game in the opponent's favor.
func (g *Game) Resign(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isPlayerInGame(playerID) {
		return errors.New("player not in game")
	}
	if g.state.Resolve != nil {
		return ErrGameOver
	}
	result := "black_wins_resignation"
	if playerID == g.state.Players.Black.ID {
		result = "white_wins_resignation"
	}
	g.state.Resolve = &result
	g.whiteClock.Stop()
	g.blackClock.Stop()

	go g.broadcastState()
	return nil
}

func (g *Game) validateMove(piece *Piece, move WSMove) error {
	if !move.From.Valid() {
		return &RangeError{Square: move.From}
	}
	if !move.To.Valid() {
		return &RangeError{Square: move.To}
	}
	want := SimpleMove{From: move.From, To: move.To}
	for _, legal := range g.legalMovesForPiece(piece) {
		if legal == want {
			return nil
		}
	}
	return fmt.Errorf("move %s to %s is not legal", move.From, move.To)
}

// buildMove turns a validated request into the Move descriptor that
// Board.Apply consumes, closing over whatever auxiliary state the
// special kinds need. It inspects the board before the move is applied;
// Board cannot recover this context from the endpoints afterward.
func (g *Game) buildMove(piece *Piece, move WSMove) Move {
	if piece.Kind == King && abs(move.From.File-move.To.File) == 2 {
		rank := move.From.Rank
		if move.To.File == 3 {
			return NewCastleMove(move.From, move.To,
				Square{File: 1, Rank: rank}, Square{File: 4, Rank: rank})
		}
		return NewCastleMove(move.From, move.To,
			Square{File: 8, Rank: rank}, Square{File: 6, Rank: rank})
	}
	if piece.Kind == Pawn {
		if g.state.EnPassantTarget != nil && *g.state.EnPassantTarget == move.To {
			victim := g.state.Board.at(Square{File: move.To.File, Rank: move.From.Rank})
			return NewEnPassantMove(move.From, move.To, victim)
		}
		if move.To.Rank == 1 || move.To.Rank == 8 {
			promotion := move.Promotion
			if promotion == "" || promotion == Pawn || promotion == King {
				promotion = Queen
			}
			return NewPromotionMove(move.From, move.To, promotion)
		}
	}
	return NewMove(move.From, move.To)
}

func (g *Game) executeMove(piece *Piece, move WSMove) error {
	mv := g.buildMove(piece, move)
	ply := g.makePly(mv)

	if err := g.state.Board.Apply(mv); err != nil {
		return err
	}

	g.state.Sound = "move"
	if ply.CapturedPiece != nil {
		g.recordCapture(piece.Color, *ply.CapturedPiece)
		g.state.Sound = "capture"
	}

	// A double pawn step exposes the square behind the pawn to en
	// passant for one ply.
	g.state.EnPassantTarget = nil
	if piece.Kind == Pawn {
		switch move.To.Rank - move.From.Rank {
		case 2:
			target := Square{File: move.To.File, Rank: move.To.Rank - 1}
			g.state.EnPassantTarget = &target
		case -2:
			target := Square{File: move.To.File, Rank: move.To.Rank + 1}
			g.state.EnPassantTarget = &target
		}
	}

	if g.state.ToMove == White {
		g.state.MoveHistory = append(g.state.MoveHistory, MovePair{WhitePly: ply})
	} else if n := len(g.state.MoveHistory); n > 0 {
		g.state.MoveHistory[n-1].BlackPly = &ply
	} else {
		g.state.MoveHistory = append(g.state.MoveHistory, MovePair{BlackPly: &ply})
	}

	g.switchTurn()
	g.state.IsCheck = kingInCheck(g.state.Board, g.state.ToMove)
	if len(g.legalMovesForColor(g.state.ToMove)) == 0 {
		result := "stalemate"
		if g.state.IsCheck {
			result = "checkmate"
		}
		g.state.Resolve = &result
	}
	if g.state.IsCheck {
		g.state.Sound = "check"
	}
	g.state.LastMove = &SimpleMove{From: move.From, To: move.To}

	go g.broadcastState()

	return nil
}

func (g *Game) recordCapture(by Color, taken Piece) {
	switch by {
	case White:
		g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, taken)
	case Black:
		g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, taken)
	}
}

// makePly records the ply for history before the board mutates.
func (g *Game) makePly(mv Move) Ply {
	ply := Ply{
		Piece:    g.state.Board.at(mv.From),
		From:     mv.From,
		To:       mv.To,
		Notation: g.notation(mv),
	}
	switch mv.Kind {
	case MoveEnPassant:
		ply.CapturedPiece = mv.Captured
	case MoveCastle:
		ply.CastleRookMove = &CastleRookMove{From: mv.RookFrom, To: mv.RookTo}
	case MovePromotion:
		ply.Promotion = mv.Promotion
		ply.CapturedPiece = g.state.Board.at(mv.To)
	default:
		ply.CapturedPiece = g.state.Board.at(mv.To)
	}
	return ply
}

func (g *Game) notation(mv Move) string {
	if mv.Kind == MoveCastle {
		if mv.To.File == 3 {
			return "O-O-O"
		}
		return "O-O"
	}
	piece := g.state.Board.at(mv.From)
	prefix := piece.Kind.notation()
	capture := ""
	if g.state.Board.at(mv.To) != nil || mv.Kind == MoveEnPassant {
		capture = "x"
	}
	fileSpecifier := ""
	if piece.Kind == Pawn && mv.From.File != mv.To.File {
		fileSpecifier = mv.From.fileNotation()
	}
	suffix := mv.To.String()
	if mv.Kind == MovePromotion {
		suffix += "=" + mv.Promotion.notation()
	}
	return fmt.Sprintf("%s%s%s%s", prefix, fileSpecifier, capture, suffix)
}

func (g *Game) switchTurn() {
	if g.state.ToMove == White {
		g.state.ToMove = Black
	} else {
		g.state.ToMove = White
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	isAuthorized := g.isPlayerInGame(playerID) || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// Keep the healthy connection, reject the new one.
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()

	go g.broadcastState()
	return nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	delete(g.connections.connections, playerID)
}

func (g *Game) broadcastState() {
	g.mu.Lock()
	payload, err := json.Marshal(g.state)
	g.mu.Unlock()
	if err != nil {
		log.Printf("failed to marshal game state: %v", err)
		return
	}

	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()
	for playerID, conn := range g.connections.connections {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Printf("failed to send state to player %s: %v", playerID, err)
			delete(g.connections.connections, playerID)
		}
	}
}
