package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cluedeck/trivia-backend/game"
	"github.com/cluedeck/trivia-backend/middleware"
	"github.com/cluedeck/trivia-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore serves a single game and a fixed next card.
type stubStore struct {
	game *models.Game
	next *models.Card
}

func (s *stubStore) WithGame(ctx context.Context, gameID uint, fn func(tx game.Store, g *models.Game) error) error {
	if s.game == nil || s.game.ID != gameID {
		return game.ErrGameNotFound
	}
	return fn(s, s.game)
}

func (s *stubStore) SaveGame(ctx context.Context, g *models.Game) error {
	s.game = g
	return nil
}

func (s *stubStore) RandomEligibleCard(ctx context.Context, categories []string, excluded []int64) (*models.Card, error) {
	if s.next == nil {
		return nil, nil
	}
	for _, id := range excluded {
		if int64(s.next.ID) == id {
			return nil, nil
		}
	}
	return s.next, nil
}

func playRouter(caller *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/api/games/:id/play", func(c *gin.Context) {
		c.Set(middleware.CurrentUserKey, caller)
	}, PlayGame)
	return r
}

func doPlay(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlayGameReturnsNextCard(t *testing.T) {
	caller := &models.User{ID: 7}
	store := &stubStore{
		game: &models.Game{ID: 10, UserID: 7, Status: models.StatusPlaying, Categories: []string{models.CategoryParty}, UsedCards: []int64{}},
		next: &models.Card{ID: 2, Clue: "clue", Answer: "answer", Category: models.CategoryParty},
	}
	Engine = game.NewEngine(store, nil)

	w := doPlay(playRouter(caller), "/api/games/10/play", `{"lastCardId":1,"scoreUpdate":0}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res game.PlayResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.False(t, res.Completed)
	require.NotNil(t, res.Card)
	assert.Equal(t, uint(2), res.Card.ID)
	assert.Equal(t, []int64{1}, []int64(res.Game.UsedCards))
}

func TestPlayGameCompletionBody(t *testing.T) {
	caller := &models.User{ID: 7}
	store := &stubStore{
		game: &models.Game{ID: 10, UserID: 7, Status: models.StatusPlaying, Categories: []string{models.CategoryParty}, UsedCards: []int64{}},
		next: nil, // deck exhausted after this play
	}
	Engine = game.NewEngine(store, nil)

	w := doPlay(playRouter(caller), "/api/games/10/play", `{"lastCardId":9}`)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Card      *models.Card `json:"card"`
		Completed bool         `json:"completed"`
		Game      models.Game  `json:"game"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Completed)
	assert.Nil(t, res.Card)
	assert.Equal(t, models.StatusCompleted, res.Game.Status)
}

func TestPlayGameStatusMapping(t *testing.T) {
	caller := &models.User{ID: 7}

	tests := []struct {
		name string
		game *models.Game
		path string
		body string
		want int
	}{
		{
			name: "missing game",
			game: &models.Game{ID: 11, UserID: 7, Status: models.StatusPlaying},
			path: "/api/games/10/play",
			body: `{"lastCardId":1}`,
			want: http.StatusNotFound,
		},
		{
			name: "foreign game",
			game: &models.Game{ID: 10, UserID: 99, Status: models.StatusPlaying},
			path: "/api/games/10/play",
			body: `{"lastCardId":1}`,
			want: http.StatusForbidden,
		},
		{
			name: "completed game",
			game: &models.Game{ID: 10, UserID: 7, Status: models.StatusCompleted},
			path: "/api/games/10/play",
			body: `{"lastCardId":1}`,
			want: http.StatusConflict,
		},
		{
			name: "duplicate card",
			game: &models.Game{ID: 10, UserID: 7, Status: models.StatusPlaying, UsedCards: []int64{1}},
			path: "/api/games/10/play",
			body: `{"lastCardId":1}`,
			want: http.StatusConflict,
		},
		{
			name: "missing lastCardId",
			game: &models.Game{ID: 10, UserID: 7, Status: models.StatusPlaying},
			path: "/api/games/10/play",
			body: `{"scoreUpdate":3}`,
			want: http.StatusBadRequest,
		},
		{
			name: "bad game id",
			game: &models.Game{ID: 10, UserID: 7, Status: models.StatusPlaying},
			path: "/api/games/nope/play",
			body: `{"lastCardId":1}`,
			want: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Engine = game.NewEngine(&stubStore{game: tt.game}, nil)
			w := doPlay(playRouter(caller), tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
