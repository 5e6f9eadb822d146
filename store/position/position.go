package position

import (
	"context"

	"defilend/core"
	"defilend/store/columns"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type positionStore struct {
	db *db.DB
}

// New new position store
func New(db *db.DB) core.IPositionStore {
	return &positionStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.UserPosition{})
		if err := tx.AutoMigrate(core.UserPosition{}).Error; err != nil {
			return err
		}

		return nil
	})
}

type positionUpdates struct {
	Amount    core.Amount `json:"amount"`
	TokenType string      `json:"token_type"`
	Version   int64       `json:"version"`
}

func (s *positionStore) Find(ctx context.Context, userID string) (*core.UserPosition, error) {
	var position core.UserPosition
	if err := s.db.View().Where("user_id = ?", userID).First(&position).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.UserPosition{}, nil
		}

		return nil, err
	}

	return &position, nil
}

// Save creates the position on version 0, otherwise updates it with an optimistic lock
func (s *positionStore) Save(ctx context.Context, tx *db.DB, position *core.UserPosition) error {
	version := position.Version
	if version == 0 {
		position.Version = 1
		if err := tx.Update().Create(position).Error; err != nil {
			position.Version = 0
			return err
		}

		return nil
	}

	updates := columns.Map(positionUpdates{
		Amount:    position.Amount,
		TokenType: position.TokenType,
		Version:   version + 1,
	})

	update := tx.Update().Model(core.UserPosition{}).Where("id = ? AND version = ?", position.ID, version).Updates(updates)
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	position.Version = version + 1
	return nil
}

func (s *positionStore) SumAmount(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := s.db.View().Model(core.UserPosition{}).Select("sum(amount)").Row().Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal, nil
}

func (s *positionStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.View().Model(core.UserPosition{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
