package cmd

import (
	"time"

	"defilend/core"
	"defilend/pkg/locker"
	"defilend/pkg/resthttp"
	"defilend/pkg/sysversion"
	"defilend/service/ledger"
	"defilend/store/memory"
	"defilend/store/pool"
	"defilend/store/position"
	"defilend/store/transaction"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/go-redis/redis"
	_ "github.com/jinzhu/gorm/dialects/postgres"
)

const (
	positionCacheSize = 1024
	positionCacheTTL  = time.Minute
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
}

func provideConfig() *core.Config {
	return &cfg
}

func provideLocker() core.Locker {
	if cfg.Redis.Addr == "" {
		return locker.Local()
	}

	ttl := time.Duration(cfg.Redis.LockTTL) * time.Second
	return locker.Redis(provideRedis(), ttl)
}

func provideAPIClient() *resthttp.Client {
	return resthttp.New(cfg.API.Endpoint)
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func providePoolStore(db *db.DB) core.IPoolStore {
	return pool.New(db)
}

func providePositionStore(db *db.DB) core.IPositionStore {
	return position.New(db)
}

func provideCachedPositionStore(store core.IPositionStore) core.IPositionStore {
	return position.Cache(store, positionCacheSize, positionCacheTTL)
}

func provideTransactionStore(db *db.DB) core.TransactionStore {
	return transaction.New(db)
}

// ------------------service------------------------------------

type stores struct {
	pools        core.IPoolStore
	positions    core.IPositionStore
	transactions core.TransactionStore
}

func provideLedgerService(tx ledger.Transactor, s stores, versions core.SysVersionStore) core.ILedgerService {
	return ledger.New(
		tx,
		s.pools,
		s.positions,
		s.transactions,
		provideLocker(),
		versions,
		ledger.WithPositionCache(provideCachedPositionStore(s.positions)),
	)
}

// provideLedger wires the ledger on postgres, or on process memory
// pinned to memoryVersion
func provideLedger(inMemory bool, memoryVersion int64) (core.ILedgerService, stores) {
	if inMemory {
		m := memory.New()
		s := stores{
			pools:        m.Pools(),
			positions:    m.Positions(),
			transactions: m.Transactions(),
		}

		return provideLedgerService(m, s, sysversion.Static(memoryVersion)), s
	}

	database := provideDatabase()
	s := stores{
		pools:        providePoolStore(database),
		positions:    providePositionStore(database),
		transactions: provideTransactionStore(database),
	}

	versions := sysversion.New(providePropertyStore(database))
	return provideLedgerService(database, s, versions), s
}
