//go:build amd64

package scanner

import "golang.org/x/sys/cpu"

// useWordTier reports whether the 8-byte SWAR tier should be used over
// the plain byte loop. Unaligned 8-byte loads are always safe on amd64;
// the feature check skips the word tier on the rare CPU without even
// SSE4.2, falling back to the universally-correct scalar loop.
func useWordTier() bool {
	return cpu.X86.HasSSE42 || cpu.X86.HasAVX2
}
