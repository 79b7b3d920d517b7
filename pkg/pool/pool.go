// Package pool provides object pooling to reduce GC pressure when rendering
// many documents.
package pool

import (
	"strings"
	"sync"
)

// BuilderPool pools strings.Builder for serializer output
var BuilderPool = sync.Pool{
	New: func() interface{} {
		return new(strings.Builder)
	},
}

// StringSlicePool pools []string for row fields
var StringSlicePool = sync.Pool{
	New: func() interface{} {
		s := make([]string, 0, 8)
		return &s
	},
}

// GetBuilder gets an empty builder from pool
func GetBuilder() *strings.Builder {
	b := BuilderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

// PutBuilder returns a builder to pool
func PutBuilder(b *strings.Builder) {
	BuilderPool.Put(b)
}

// GetStrings gets an empty string slice from pool
func GetStrings() *[]string {
	s := StringSlicePool.Get().(*[]string)
	*s = (*s)[:0]
	return s
}

// PutStrings returns a string slice to pool
func PutStrings(s *[]string) {
	StringSlicePool.Put(s)
}
