package vjson

import "github.com/biggeezerdevelopment/velocijson/internal/arena"

// Arena is a monotonic bump allocator: O(1) amortized allocation, O(1)
// bulk reset, no per-allocation free. Passed explicitly to ParseOptions
// and to NewString call sites that want arena routing, rather than
// threaded through a thread-local context. Only strings (and, during a
// parse, object keys) are placed in the arena; Arrays and Objects are
// always heap-allocated.
type Arena = arena.Arena

// NewArena allocates an arena with a heap-owned initial block of
// initialSize bytes, or 4 KiB if initialSize is smaller.
var NewArena = arena.New

// NewArenaWithBuffer allocates an arena whose initial block is the
// caller-provided buffer (e.g. a stack array), reused across every Reset.
var NewArenaWithBuffer = arena.NewWithBuffer
