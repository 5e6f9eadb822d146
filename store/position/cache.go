package position

import (
	"context"
	"fmt"
	"time"

	"defilend/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache wraps the store with an LRU of persisted positions
func Cache(store core.IPositionStore, size int, exp time.Duration) core.IPositionStore {
	return &cachePositionStore{
		IPositionStore: store,
		cache:          gcache.New(size).LRU().Expiration(exp).Build(),
		sf:             &singleflight.Group{},
	}
}

type cachePositionStore struct {
	core.IPositionStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cachePositionStore) Find(ctx context.Context, userID string) (*core.UserPosition, error) {
	key := s.userKey(userID)
	if v, err := s.cache.Get(key); err == nil {
		if position, ok := v.(core.UserPosition); ok {
			return &position, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		position, err := s.IPositionStore.Find(ctx, userID)
		if err != nil {
			return nil, err
		}

		if position.Exists() {
			_ = s.cache.Set(key, *position)
		}

		return *position, nil
	})
	if err != nil {
		return nil, err
	}

	position := v.(core.UserPosition)
	return &position, nil
}

// Save drops the cached entry, only Find fills the cache
func (s *cachePositionStore) Save(ctx context.Context, tx *db.DB, position *core.UserPosition) error {
	s.cache.Remove(s.userKey(position.UserID))
	if err := s.IPositionStore.Save(ctx, tx, position); err != nil {
		return err
	}

	s.cache.Remove(s.userKey(position.UserID))
	return nil
}

// Evict drops the cached entry of the user, called once the saving db transaction ends
func (s *cachePositionStore) Evict(userID string) {
	s.cache.Remove(s.userKey(userID))
}

func (s *cachePositionStore) userKey(userID string) string {
	return fmt.Sprintf("position:user:%s", userID)
}
