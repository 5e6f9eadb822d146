package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config defilend config
type Config struct {
	App     App       `json:"app"`
	DB      db.Config `json:"db"`
	Redis   Redis     `json:"redis"`
	API     API       `json:"api"`
	Auditor Auditor   `json:"auditor"`
}

// App app config
type App struct {
	Location string `json:"location"`
	// Decimals of the deposited token, used by views only
	Decimals int32 `json:"decimals"`
}

// Redis redis config, an empty addr falls back to in-process locks
type Redis struct {
	Addr string `json:"addr"`
	DB   int    `json:"db"`
	// LockTTL seconds
	LockTTL int64 `json:"lock_ttl"`
}

// API api client config
type API struct {
	Endpoint string `json:"endpoint"`
}

// Auditor auditor worker config
type Auditor struct {
	// Spec cron spec, eg. "@every 1m"
	Spec string `json:"spec"`
}
