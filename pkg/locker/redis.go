package locker

import (
	"context"
	"sync"
	"time"

	"defilend/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/uuid"
	"github.com/go-redis/redis"
)

const (
	redisKeyPrefix = "defilend:lock:"
	retryInterval  = 20 * time.Millisecond
)

// deletes the key only if it still holds our token
var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Redis locker shared by every api server using the same redis db.
// A lock expires after ttl if its holder dies.
func Redis(client *redis.Client, ttl time.Duration) core.Locker {
	return &redisLocker{
		client: client,
		ttl:    ttl,
	}
}

type redisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func (l *redisLocker) Lock(ctx context.Context, key string) (func(), error) {
	key = redisKeyPrefix + key
	token := uuid.New()

	for {
		ok, err := l.client.SetNX(key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}

		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := unlockScript.Run(l.client, []string{key}, token).Err(); err != nil {
				logger.FromContext(ctx).WithError(err).Errorln("locker: redis unlock", key)
			}
		})
	}, nil
}
