package bufferpool

import (
	"BTreeDB/storage_engine/page"

	"github.com/dgraph-io/ristretto/v2"
)

// ############################################# BUFFER POOL #############################################

// BufferPool caches page images in memory in front of another page store.
// Writes go through to the store immediately, so there is never anything
// dirty to flush and Close only has to release the cache.
type BufferPool struct {
	store page.Store
	cache *ristretto.Cache[int32, []byte]
	// maxCost is the byte budget handed to ristretto
	maxCost int64
}

// Stats returns buffer pool statistics
type BufferPoolStats struct {
	Hits     uint64
	Misses   uint64
	HitRatio float64
	Capacity int64 // bytes
}
