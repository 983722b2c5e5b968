package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/castlebridge/chess960-backend/internal/model"
	"github.com/castlebridge/chess960-backend/internal/service"
	"github.com/castlebridge/chess960-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection runs the message loop for one game connection.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("failed to register connection: %v", err)
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Printf("handle error: %v", err)
			wsc.sendError(c, err.Error())
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID)
}

// HandleMatchmaking parks a queued player's connection until a match is
// found, then forwards the match event and closes.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)

	events := make(chan string, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, events)
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID)

	event, ok := <-events
	if !ok {
		// Replaced by a newer registration for the same player.
		c.Close()
		return
	}
	if err := c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeMatchFound,
		Payload: json.RawMessage(event),
	}); err != nil {
		log.Printf("failed to send match event to player %s: %v", playerID, err)
	}
	c.Close()
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypeResign:
		return wsc.gameService.HandleResign(gameID, playerID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, errorMsg string) {
	payload, _ := json.Marshal(errorMsg)
	c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: json.RawMessage(payload),
	})
}
