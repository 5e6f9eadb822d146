package sysversion

import (
	"context"

	"defilend/core"

	"github.com/fox-one/pkg/property"
)

const (
	SysVersionKey = "sysversion"

	// StrictVersion from this version on, borrows may not exceed supplies
	StrictVersion int64 = 1
)

func ReadSysVersion(ctx context.Context, property property.Store) (int64, error) {
	v, err := property.Get(ctx, SysVersionKey)
	if err != nil {
		return 0, err
	}
	return v.Int64(), nil
}

func SaveSysVersion(ctx context.Context, property property.Store, version int64) error {
	return property.Save(ctx, SysVersionKey, version)
}

// New sysversion reader backed by the property store
func New(property property.Store) core.SysVersionStore {
	return &store{property: property}
}

type store struct {
	property property.Store
}

func (s *store) ReadSysVersion(ctx context.Context) (int64, error) {
	return ReadSysVersion(ctx, s.property)
}

// Static a fixed version, for tests and tools without a database
type Static int64

func (v Static) ReadSysVersion(ctx context.Context) (int64, error) {
	return int64(v), nil
}
