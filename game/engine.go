package game

import (
	"context"

	"github.com/cluedeck/trivia-backend/models"
	"github.com/cluedeck/trivia-backend/utils/logger"
)

// PlayRequest is the body of PUT /api/games/:id/play.
type PlayRequest struct {
	LastCardID  int64 `json:"lastCardId"`
	ScoreUpdate int   `json:"scoreUpdate"`
}

// PlayResult is what a recorded play produced: the updated game and the next
// card to show. Card is nil and Completed true when the deck ran out.
type PlayResult struct {
	Game      *models.Game `json:"game"`
	Card      *models.Card `json:"card"`
	Completed bool         `json:"completed"`
}

// Notifier receives committed plays, e.g. to fan them out to websocket
// spectators. Must not block.
type Notifier interface {
	GamePlayed(res *PlayResult)
}

// Engine owns the life cycle of a game session: it records plays, keeps
// score, draws the next card and completes the session when the deck is
// exhausted. All state lives in the Store; the engine itself is stateless
// and safe for concurrent use.
type Engine struct {
	store    Store
	notifier Notifier
}

// NewEngine returns an engine over store. notifier may be nil.
func NewEngine(store Store, notifier Notifier) *Engine {
	return &Engine{store: store, notifier: notifier}
}

// ApplyPlay records that callerID answered play.LastCardID in game gameID
// and draws the next card.
//
// Gates run before any mutation: the game must exist (ErrGameNotFound),
// belong to the caller (ErrNotOwner), still be playing (ErrGameCompleted)
// and the card must not have been played before (ErrCardUsed — duplicate
// submissions are rejected, not absorbed). The score delta only lands on
// interactive games and is unclamped, so negative totals are fine.
//
// The whole read-modify-write runs under a per-game row lock and a single
// transaction: if the save fails nothing is recorded and the caller may
// safely retry.
func (e *Engine) ApplyPlay(ctx context.Context, gameID, callerID uint, play PlayRequest) (*PlayResult, error) {
	if play.LastCardID <= 0 {
		return nil, ErrInvalidPlay
	}

	var result *PlayResult
	err := e.store.WithGame(ctx, gameID, func(tx Store, g *models.Game) error {
		if g.UserID != callerID {
			return ErrNotOwner
		}
		if g.Status == models.StatusCompleted {
			return ErrGameCompleted
		}
		if g.HasUsed(play.LastCardID) {
			return ErrCardUsed
		}

		g.UsedCards = append(g.UsedCards, play.LastCardID)
		if g.Interactive {
			g.Score += play.ScoreUpdate
		}

		next, err := tx.RandomEligibleCard(ctx, g.Categories, g.UsedCards)
		if err != nil {
			return err
		}
		if next == nil {
			// Deck exhausted: the one and only path to completed.
			g.Status = models.StatusCompleted
		}

		if err := tx.SaveGame(ctx, g); err != nil {
			return err
		}

		result = &PlayResult{Game: g, Card: next, Completed: next == nil}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Completed {
		logger.Infof("game %d completed after %d cards (score=%d)", gameID, len(result.Game.UsedCards), result.Game.Score)
	}
	if e.notifier != nil {
		e.notifier.GamePlayed(result)
	}
	return result, nil
}
