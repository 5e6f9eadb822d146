package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	type updates struct {
		TotalBorrowed uint64 `json:"total_borrowed"`
		Version       int64  `json:"version"`
	}

	m := Map(updates{TotalBorrowed: 0, Version: 2})
	assert.Equal(t, map[string]interface{}{
		"total_borrowed": uint64(0),
		"version":        int64(2),
	}, m)
}
