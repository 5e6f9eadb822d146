package pool

import (
	"context"

	"defilend/core"
	"defilend/store/columns"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

type poolStore struct {
	db *db.DB
}

// New new pool store
func New(db *db.DB) core.IPoolStore {
	return &poolStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Pool{})
		if err := tx.AutoMigrate(core.Pool{}).Error; err != nil {
			return err
		}

		return nil
	})
}

type poolUpdates struct {
	TotalSupplied core.Amount `json:"total_supplied"`
	TotalBorrowed core.Amount `json:"total_borrowed"`
	Version       int64       `json:"version"`
}

func (s *poolStore) Create(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	var existing core.Pool
	err := tx.Update().Where("id = ?", pool.ID).First(&existing).Error
	if err == nil {
		return core.ErrPoolAlreadyExists
	}

	if !store.IsErrNotFound(err) {
		return err
	}

	pool.Version = 1
	return tx.Update().Create(pool).Error
}

func (s *poolStore) Find(ctx context.Context, id string) (*core.Pool, error) {
	var pool core.Pool
	if err := s.db.View().Where("id = ?", id).First(&pool).Error; err != nil {
		if store.IsErrNotFound(err) {
			return &core.Pool{}, nil
		}

		return nil, err
	}

	return &pool, nil
}

func (s *poolStore) Update(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	version := pool.Version
	updates := columns.Map(poolUpdates{
		TotalSupplied: pool.TotalSupplied,
		TotalBorrowed: pool.TotalBorrowed,
		Version:       version + 1,
	})

	update := tx.Update().Model(core.Pool{}).Where("id = ? AND version = ?", pool.ID, version).Updates(updates)
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	pool.Version = version + 1
	return nil
}
