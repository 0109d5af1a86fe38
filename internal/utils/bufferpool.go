// Package utils provides small utility helpers shared across the object-file
// parsing packages.
package utils

import "sync"

// 32 covers this repo's only pooled user, boundary.Checksum's 28-byte
// MemorySizes encoding, with a little headroom instead of the HDF5 reader's
// page-sized 4096 default.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, 0, 32)
	},
}

// GetBuffer returns a byte slice from the pool.
func GetBuffer(size int) []byte {
	buf := bufferPool.Get().([]byte)
	if cap(buf) < size {
		return make([]byte, size, size*2) // Increase capacity.
	}
	return buf[:size]
}

// ReleaseBuffer returns a buffer to the pool.
func ReleaseBuffer(buf []byte) {
	//nolint:staticcheck // SA6002: slice descriptor copy is acceptable for sync.Pool
	bufferPool.Put(buf[:0])
}
