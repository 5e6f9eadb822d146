// Package columns builds gorm update maps from structs.
//
// gorm skips zero fields when updating with a struct, which would silently
// drop a balance that reached zero. Maps are written as is.
package columns

import (
	"github.com/yiplee/structs"
)

// Map returns the struct fields keyed by their json tag
func Map(v interface{}) map[string]interface{} {
	s := structs.New(v)
	s.TagName = "json"
	return s.Map()
}
