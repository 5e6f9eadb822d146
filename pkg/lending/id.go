package lending

import (
	"defilend/pkg/id"
)

const (
	poolSeed     = "lending_pool"
	positionSeed = "user_deposit"
)

// PoolID the deterministic id of the deployment's pool
func PoolID() string {
	return id.UUIDFromString(poolSeed)
}

// PositionID the deterministic id of a user's position
func PositionID(userID string) string {
	return id.UUIDFromString(positionSeed + ":" + userID)
}
