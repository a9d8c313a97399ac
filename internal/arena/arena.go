// Package arena implements a monotonic bump allocator used to back-stop
// zero-copy string storage and bulk container allocation during parsing.
//
// Go's garbage collector means "allocate" here cannot hand back raw,
// unmanaged memory; instead each block is a plain heap-owned []byte and
// Reset drops the references to overflow
// blocks, letting the GC reclaim them. What the arena still buys a caller:
// O(1) bump allocation instead of many small allocations, and a single
// Reset() instead of tracking every sub-allocation for the GC to chase
// individually across a hot parse/reset loop.
package arena

const minBlockSize = 4096

// Arena is a linked sequence of fixed-capacity blocks plus a bump pointer
// into the current block. Allocations never move and are never freed
// individually; Reset releases every block after the first.
type Arena struct {
	blocks   [][]byte // blocks[0] is the initial block, reused across Reset
	external bool     // true if blocks[0] was supplied by the caller
	cur      int      // index into blocks of the block currently being filled
	off      int      // bump offset into blocks[cur]
	next     int      // size of the next block to allocate, doubles each grow
}

// New creates an arena whose initial block is heap-allocated with the
// given size, or minBlockSize if initialSize is smaller.
func New(initialSize int) *Arena {
	if initialSize < minBlockSize {
		initialSize = minBlockSize
	}
	a := &Arena{next: initialSize * 2}
	a.blocks = [][]byte{make([]byte, 0, initialSize)}
	return a
}

// NewWithBuffer creates an arena whose initial block is a caller-provided
// buffer (e.g. a stack-allocated array). The buffer is reused, not freed,
// on every Reset.
func NewWithBuffer(buf []byte) *Arena {
	a := &Arena{external: true}
	size := cap(buf)
	if size < minBlockSize {
		size = minBlockSize
	}
	a.next = size * 2
	a.blocks = [][]byte{buf[:0]}
	return a
}

func align(n, alignment int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}

// Allocate returns size bytes aligned to alignment, bumping the current
// block's pointer or growing a new block on overflow. alignment must be a
// power of two.
func (a *Arena) Allocate(size, alignment int) []byte {
	if alignment < 1 {
		alignment = 1
	}
	blk := a.blocks[a.cur]
	start := align(a.off, alignment)
	if start+size <= cap(blk) {
		a.off = start + size
		return blk[start : start+size : start+size]
	}
	a.grow(size, alignment)
	blk = a.blocks[a.cur]
	start = align(a.off, alignment)
	a.off = start + size
	return blk[start : start+size : start+size]
}

func (a *Arena) grow(size, alignment int) {
	want := a.next
	if room := size + alignment - 1; room > want {
		want = room
	}
	a.blocks = append(a.blocks, make([]byte, 0, want))
	a.cur = len(a.blocks) - 1
	a.off = 0
	a.next *= 2
}

// AllocBytes copies src into the arena and returns the arena-owned slice.
func (a *Arena) AllocBytes(src []byte) []byte {
	dst := a.Allocate(len(src), 1)
	copy(dst, src)
	return dst
}

// AllocString copies s into the arena and returns a string view over the
// arena-owned bytes. The returned string must not outlive a subsequent
// Reset of this arena.
func (a *Arena) AllocString(s string) string {
	dst := a.Allocate(len(s), 1)
	copy(dst, s)
	return unsafeBytesToString(dst)
}

// AllocStringFromBytes is AllocString's []byte-source counterpart: it
// copies src into the arena exactly once (the caller avoids the extra
// copy an intermediate string(src) conversion would add) and returns a
// string view over the arena-owned bytes.
func (a *Arena) AllocStringFromBytes(src []byte) string {
	dst := a.Allocate(len(src), 1)
	copy(dst, src)
	return unsafeBytesToString(dst)
}

// Reset rewinds the arena to its initial block, dropping references to
// every overflow block (the caller-provided initial block, if any, is
// reused rather than reallocated). Every pointer/string/slice previously
// returned by Allocate/AllocBytes/AllocString becomes invalid; the caller
// must not read from them after Reset.
func (a *Arena) Reset() {
	if a.external {
		a.blocks = a.blocks[:1]
		a.blocks[0] = a.blocks[0][:0]
	} else {
		initial := cap(a.blocks[0])
		a.blocks = [][]byte{make([]byte, 0, initial)}
	}
	a.cur = 0
	a.off = 0
}

// BytesUsed reports the bytes consumed across all blocks: the bump offset
// into the current block plus the full capacity of every earlier block,
// including any unused tail left behind when a new block was grown.
func (a *Arena) BytesUsed() int {
	total := 0
	for i, blk := range a.blocks {
		if i == a.cur {
			total += a.off
			continue
		}
		total += cap(blk)
	}
	return total
}

// Blocks reports the number of blocks currently held (1 + overflow count).
func (a *Arena) Blocks() int {
	return len(a.blocks)
}

// Capacity reports the total byte capacity across all blocks.
func (a *Arena) Capacity() int {
	total := 0
	for _, blk := range a.blocks {
		total += cap(blk)
	}
	return total
}
