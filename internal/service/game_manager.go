package service

import (
	"encoding/json"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/castlebridge/chess960-backend/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameManager owns every live game plus the matchmaking queue. It also
// owns the process randomness source handed to Chess960 board setup, so
// tests can construct a manager around a seeded generator.
type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	rnd              model.Rand
	mu               sync.RWMutex
}

func NewGameManager() *GameManager {
	return NewGameManagerWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

func NewGameManagerWithRand(rnd model.Rand) *GameManager {
	gm := &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		rnd:              rnd,
	}

	go gm.processMatchmaking()

	return gm
}

func (gm *GameManager) CreateGame(gameID string, variant model.Variant) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	gm.games[gameID] = model.NewGame(gameID, variant, gm.rnd)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.WSMove) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.MakeMove(move)
}

func (gm *GameManager) Resign(gameID string, playerID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Resign(playerID)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID)
}

// RegisterMatchmakingChannel subscribes a queued player to match-found
// events. A second registration for the same player replaces the first.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel drops the subscription without closing
// the channel; its creator closes it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	delete(gm.matchingChannels, playerID)
}

func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if gm.queue.Size() < 2 {
			continue
		}
		player1, player2 := gm.queue.NextPair()

		gameID := uuid.New().String()
		gm.mu.Lock()
		game := model.NewGame(gameID, model.VariantStandard, gm.rnd)
		p1Color, err := game.AddPlayer(player1.ID)
		if err != nil {
			log.Printf("matchmaking: adding %s to game: %v", player1.ID, err)
			gm.mu.Unlock()
			continue
		}
		p2Color, err := game.AddPlayer(player2.ID)
		if err != nil {
			log.Printf("matchmaking: adding %s to game: %v", player2.ID, err)
			gm.mu.Unlock()
			continue
		}
		gm.games[gameID] = game

		gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
		gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
		gm.mu.Unlock()
	}
}

// notifyMatch is called with gm.mu held.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("matchmaking: marshal event: %v", err)
		return
	}
	select {
	case ch <- string(payload):
		delete(gm.matchingChannels, playerID)
		close(ch)
	default:
		log.Printf("matchmaking: player %s not listening", playerID)
	}
}
