package core

// Element is the sample constraint for the buffer helpers. Transform state
// lives in float64 time buffers and complex128 bin buffers.
type Element interface {
	~float64 | ~complex128
}

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen[T Element](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// Zero sets all values in buf to the zero value.
func Zero[T Element](buf []T) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto[T Element](dst, src []T) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst[:n], src[:n])
	return n
}

// RotateLeft rotates buf left by k positions, so buf[i] takes the value
// previously at buf[(i+k) mod len]. k may exceed the length.
func RotateLeft[T Element](buf []T, k int) {
	n := len(buf)
	if n == 0 {
		return
	}
	k %= n
	if k < 0 {
		k += n
	}
	if k == 0 {
		return
	}
	reverse(buf[:k])
	reverse(buf[k:])
	reverse(buf)
}

// ShiftLeft discards the first k values of buf, moves the remainder to the
// front, and zeroes the vacated tail. k >= len zeroes the whole buffer.
func ShiftLeft[T Element](buf []T, k int) {
	n := len(buf)
	if k <= 0 {
		return
	}
	if k >= n {
		Zero(buf)
		return
	}
	copy(buf, buf[k:])
	Zero(buf[n-k:])
}

// CopyFromRing copies a circular buffer into dst in logical order, treating
// ring[start] as the oldest element. dst and ring must have equal length.
func CopyFromRing[T Element](dst, ring []T, start int) {
	n := len(ring)
	if n == 0 || len(dst) != n {
		return
	}
	if start < 0 || start >= n {
		start = ((start % n) + n) % n
	}
	m := copy(dst, ring[start:])
	copy(dst[m:], ring[:start])
}

func reverse[T Element](buf []T) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
