package game

import (
	"context"
	"errors"

	"github.com/cluedeck/trivia-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the persistence contract the engine plays against. The SQL
// implementation backs it with postgres; tests use an in-memory fake.
type Store interface {
	// WithGame loads the game and runs fn with its row locked for update.
	// Concurrent plays against the same game serialize here, so fn always
	// sees the latest usedCards/score/status. Returning an error from fn
	// rolls back everything written through tx.
	WithGame(ctx context.Context, gameID uint, fn func(tx Store, g *models.Game) error) error

	SaveGame(ctx context.Context, g *models.Game) error

	// RandomEligibleCard picks one card uniformly at random whose category
	// is in categories and whose id is not in excluded. Returns nil with no
	// error when no card qualifies.
	RandomEligibleCard(ctx context.Context, categories []string, excluded []int64) (*models.Card, error)
}

// SQLStore implements Store on a gorm connection.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) WithGame(ctx context.Context, gameID uint, fn func(tx Store, g *models.Game) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g models.Game
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&g, gameID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGameNotFound
		}
		if err != nil {
			return err
		}
		return fn(&SQLStore{db: tx}, &g)
	})
}

func (s *SQLStore) SaveGame(ctx context.Context, g *models.Game) error {
	return s.db.WithContext(ctx).Save(g).Error
}

func (s *SQLStore) RandomEligibleCard(ctx context.Context, categories []string, excluded []int64) (*models.Card, error) {
	q := s.db.WithContext(ctx).Where("category IN ?", categories)
	if len(excluded) > 0 {
		q = q.Where("id NOT IN ?", excluded)
	}

	var card models.Card
	err := q.Order("RANDOM()").First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}
