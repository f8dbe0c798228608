package services

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/cluedeck/trivia-backend/config"
	"github.com/cluedeck/trivia-backend/game"
	"github.com/cluedeck/trivia-backend/middleware"
	"github.com/cluedeck/trivia-backend/models"
	"github.com/cluedeck/trivia-backend/utils/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveEvent is what spectators receive after each committed play.
type liveEvent struct {
	GameID    uint   `json:"gameId"`
	Status    string `json:"status"`
	Score     int    `json:"score"`
	CardsUsed int    `json:"cardsUsed"`
	NextCard  *uint  `json:"nextCardId"`
}

type liveClient struct {
	conn *websocket.Conn
	send chan []byte
	hub  *LiveHub
	game uint
	once sync.Once
}

func (c *liveClient) close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

// The feed is one-way; reads only detect the peer going away.
func (c *liveClient) readPump() {
	defer c.hub.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *liveClient) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// LiveHub fans committed plays out to websocket spectators, keyed by game.
// It implements game.Notifier.
type LiveHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*liveClient]bool
}

// Live is the process-wide hub, set up in main.
var Live *LiveHub

func InitLiveHub() *LiveHub {
	Live = &LiveHub{clients: make(map[uint]map[*liveClient]bool)}
	return Live
}

func (h *LiveHub) add(c *liveClient) {
	h.mu.Lock()
	if h.clients[c.game] == nil {
		h.clients[c.game] = make(map[*liveClient]bool)
	}
	h.clients[c.game][c] = true
	h.mu.Unlock()

	go c.writePump()
	go c.readPump()
}

func (h *LiveHub) remove(c *liveClient) {
	h.mu.Lock()
	if peers, ok := h.clients[c.game]; ok {
		delete(peers, c)
		if len(peers) == 0 {
			delete(h.clients, c.game)
		}
	}
	h.mu.Unlock()
	c.close()
}

// GamePlayed broadcasts a committed play. Slow spectators get dropped rather
// than blocking the play path.
func (h *LiveHub) GamePlayed(res *game.PlayResult) {
	ev := liveEvent{
		GameID:    res.Game.ID,
		Status:    res.Game.Status,
		Score:     res.Game.Score,
		CardsUsed: len(res.Game.UsedCards),
	}
	if res.Card != nil {
		ev.NextCard = &res.Card.ID
	}

	msg, err := json.Marshal(ev)
	if err != nil {
		logger.Errorf("live feed marshal: %v", err)
		return
	}

	h.mu.RLock()
	var stale []*liveClient
	for c := range h.clients[res.Game.ID] {
		select {
		case c.send <- msg:
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		h.remove(c)
	}
}

// HandleGameWS upgrades GET /ws/games/:id into a live feed of that game.
// Only the owner or an admin may watch.
func HandleGameWS(c *gin.Context) {
	if Live == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "live feed not available"})
		return
	}

	gameID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid game id"})
		return
	}

	user := middleware.CurrentUser(c)
	var g models.Game
	if err := config.DB.First(&g, uint(gameID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Game not found"})
		return
	}
	if user == nil || (g.UserID != user.ID && !user.Admin) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("ws upgrade: %v", err)
		return
	}

	Live.add(&liveClient{
		conn: conn,
		send: make(chan []byte, 16),
		hub:  Live,
		game: uint(gameID),
	})
}
