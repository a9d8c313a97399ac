package arena

import "unsafe"

// unsafeBytesToString performs a zero-copy []byte->string conversion for
// zero-copy string tokens. Safe here because the arena guarantees the
// backing bytes are never mutated
// after allocation and are only invalidated by a whole-arena Reset, which
// callers are contractually required not to race against outstanding reads.
func unsafeBytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return *(*string)(unsafe.Pointer(&b))
}
