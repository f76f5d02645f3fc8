package pool

import "sync"

// Slice pools for the scratch buffers used while aggregating sampling frames.
var (
	float64SlicePool = sync.Pool{
		New: func() any { return &[]float64{} },
	}
	intSlicePool = sync.Pool{
		New: func() any { return &[]int{} },
	}
)

// GetFloat64Slice retrieves and resizes a float64 slice from the pool.
//
// The returned slice has exactly size elements; its contents are unspecified.
// The caller must call the returned cleanup function to return the slice to the pool.
//
// Example:
//
//	frame, cleanup := pool.GetFloat64Slice(frameSize)
//	defer cleanup()
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { float64SlicePool.Put(ptr) }
}

// GetIntSlice retrieves and resizes an int slice from the pool.
//
// The returned slice has exactly size elements; its contents are unspecified.
// The caller must call the returned cleanup function to return the slice to the pool.
func GetIntSlice(size int) ([]int, func()) {
	ptr, _ := intSlicePool.Get().(*[]int)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { intSlicePool.Put(ptr) }
}
