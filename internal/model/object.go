package model

// indexThreshold is the object size at or above which the lazy hash index
// is built; below it, Find is a linear scan.
const indexThreshold = 16

// entry is one (key, Value) pair in an Object's insertion-ordered vector.
type entry struct {
	key   string
	value Value
}

// Object is an insertion-ordered sequence of (key, Value) pairs with an
// optional lazy hash index for O(1) lookup above indexThreshold entries.
// Below the threshold, Find is a cache-friendly linear scan with no
// hashing at all.
type Object struct {
	entries []entry
	index   map[string]int // key -> index into entries; nil until built
	// lastVecPtr snapshots &entries[0] (as seen by the index builder) so
	// a later reallocation can be detected cheaply without walking the
	// whole index: Go slices have no other way to expose a reallocation.
	lastVecPtr *entry
}

// NewObjectValue allocates an empty Object.
func NewObjectValue() *Object {
	return &Object{}
}

// Len reports the number of entries.
func (o *Object) Len() int { return len(o.entries) }

func (o *Object) vecPtr() *entry {
	if len(o.entries) == 0 {
		return nil
	}
	return &o.entries[0]
}

// Find returns a pointer to the value for key, or (nil, false). Below
// indexThreshold entries, this is a linear scan; at or above, the index
// is built lazily on first call and consulted in O(1) thereafter.
func (o *Object) Find(key string) (*Value, bool) {
	if len(o.entries) < indexThreshold {
		for i := range o.entries {
			if o.entries[i].key == key {
				return &o.entries[i].value, true
			}
		}
		return nil, false
	}
	o.ensureIndex()
	idx, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return &o.entries[idx].value, true
}

func (o *Object) ensureIndex() {
	if o.index != nil && o.lastVecPtr == o.vecPtr() {
		return
	}
	o.index = make(map[string]int, len(o.entries))
	for i := range o.entries {
		o.index[o.entries[i].key] = i // last-wins, matching insertion order
	}
	o.lastVecPtr = o.vecPtr()
}

// Insert updates the value in place if key already exists, otherwise
// appends a new entry. The index, if built, is updated in O(1) when the
// entry vector did not reallocate; otherwise it is rebuilt lazily on the
// next Find.
func (o *Object) Insert(key string, v Value) {
	for i := range o.entries {
		if o.entries[i].key == key {
			o.entries[i].value = v
			return
		}
	}
	before := o.vecPtr()
	o.entries = append(o.entries, entry{key: key, value: v})
	if o.index != nil {
		if o.vecPtr() == before {
			o.index[key] = len(o.entries) - 1
		} else {
			o.index = nil // invalidated by reallocation; rebuilt lazily
		}
	}
}

// Erase removes the entry for key, if present, and reports whether it was
// found. Because every following entry shifts left by one, the index (if
// any) is invalidated and rebuilt lazily on the next Find.
func (o *Object) Erase(key string) bool {
	for i := range o.entries {
		if o.entries[i].key == key {
			o.entries = append(o.entries[:i], o.entries[i+1:]...)
			o.index = nil
			return true
		}
	}
	return false
}

// Set is Insert's mutable-indexing counterpart: it always returns a
// pointer to the (possibly newly-inserted Null) value, matching the
// spec's value[key] mutable-object semantics.
func (o *Object) Set(key string) *Value {
	if v, ok := o.Find(key); ok {
		return v
	}
	o.Insert(key, Null)
	v, _ := o.Find(key)
	return v
}

// Keys returns the entry keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.entries))
	for i := range o.entries {
		keys[i] = o.entries[i].key
	}
	return keys
}

// Range calls f for every (key, value) pair in insertion order, stopping
// early if f returns false.
func (o *Object) Range(f func(key string, v *Value) bool) {
	for i := range o.entries {
		if !f(o.entries[i].key, &o.entries[i].value) {
			return
		}
	}
}

// Equal implements structural equality: same key set, same values, order
// does not matter (object equality in JSON is not positional).
func (o *Object) Equal(other *Object) bool {
	if o == other {
		return true
	}
	if o == nil || other == nil || len(o.entries) != len(other.entries) {
		return false
	}
	for i := range o.entries {
		ov, ok := other.Find(o.entries[i].key)
		if !ok || !o.entries[i].value.Equal(ov) {
			return false
		}
	}
	return true
}

// AppendRaw appends an entry without the per-insert dedup scan Insert
// performs; used by the parser's bulk-build path, which defers duplicate
// collapsing to Finalize().
func (o *Object) AppendRaw(key string, v Value) {
	o.entries = append(o.entries, entry{key: key, value: v})
}

// Finalize implements post-parse duplicate-key resolution:
//   - size >= indexThreshold: build a last-wins index in one forward pass,
//     then, if duplicates were found, compact the entry vector so that
//     only each key's last occurrence remains.
//   - 2 <= size < indexThreshold: an O(n^2) reverse scan drops any entry
//     whose key reappears later.
// The default policy is last-value-wins; rejectDuplicates surfaces a
// DuplicateKey error at the first repeated key instead.
func (o *Object) Finalize(data []byte, offset int, rejectDuplicates bool) error {
	n := len(o.entries)
	if n < 2 {
		return nil
	}
	if rejectDuplicates {
		seen := make(map[string]bool, n)
		for i := range o.entries {
			k := o.entries[i].key
			if seen[k] {
				return newError(data, offset, DuplicateKey, "duplicate key: "+k)
			}
			seen[k] = true
		}
		return nil
	}
	if n >= indexThreshold {
		last := make(map[string]int, n)
		for i := range o.entries {
			last[o.entries[i].key] = i
		}
		if len(last) == n {
			return nil // no duplicates
		}
		// Keep only each key's last occurrence, dropping the earlier
		// duplicates.
		compact := make([]entry, 0, len(last))
		for i := range o.entries {
			if last[o.entries[i].key] == i {
				compact = append(compact, o.entries[i])
			}
		}
		o.entries = compact
		o.index = nil
		return nil
	}
	// 2 <= n < indexThreshold: O(n^2) scan dropping every entry whose key
	// reappears later.
	out := o.entries[:0]
	for i := range o.entries {
		dup := false
		for j := i + 1; j < len(o.entries); j++ {
			if o.entries[j].key == o.entries[i].key {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, o.entries[i])
		}
	}
	o.entries = out
	return nil
}
