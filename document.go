package vjson

import (
	"github.com/biggeezerdevelopment/velocijson/internal/arena"
	"github.com/biggeezerdevelopment/velocijson/internal/model"
	"github.com/biggeezerdevelopment/velocijson/internal/parser"
	"github.com/biggeezerdevelopment/velocijson/internal/serializer"
)

// ArenaDocument bundles an arena with the root Value parsed into it,
// giving callers a single object to Parse into and Reset between
// documents without re-allocating the arena's backing blocks. Go's GC
// means there is no thread-local arena context to activate; the same
// *arena.Arena is simply passed through ParseOptions on every call.
type ArenaDocument struct {
	arena *arena.Arena
	root  Value
	opts  ParseOptions
}

// NewArenaDocument allocates a document with its own arena of the given
// initial size, using opts as the base parse configuration (opts.Arena is
// overwritten with the document's own arena on every Parse/TryParse call).
func NewArenaDocument(initialSize int, opts ParseOptions) *ArenaDocument {
	return &ArenaDocument{
		arena: arena.New(initialSize),
		opts:  opts,
	}
}

// Parse replaces the document's root with the result of parsing data,
// returning a *vjson.Error on failure. Parse does not reset the arena: the
// new document's arena strings are bump-allocated after the previous ones,
// and Values from earlier parses stay readable until Reset.
func (d *ArenaDocument) Parse(data []byte) error {
	v, err := d.TryParse(data)
	if err != nil {
		return err
	}
	d.root = v
	return nil
}

// TryParse parses data against this document's arena without touching the
// current root, letting the caller inspect the error (or discard the
// result) before committing to Parse.
func (d *ArenaDocument) TryParse(data []byte) (Value, error) {
	opts := d.opts
	opts.Arena = d.arena
	return parser.Parse(data, opts)
}

// Root returns a pointer to the document's current root Value.
func (d *ArenaDocument) Root() *Value { return &d.root }

// Reset clears the root first (so no reference into the arena's storage
// survives) and then resets the arena itself, reusing its initial block.
func (d *ArenaDocument) Reset() {
	d.root = model.Null
	d.arena.Reset()
}

// Arena exposes the underlying arena, e.g. for BytesUsed/Capacity
// diagnostics.
func (d *ArenaDocument) Arena() *Arena { return d.arena }

// Serialize renders the document's current root per opts.
func (d *ArenaDocument) Serialize(opts SerializeOptions) ([]byte, error) {
	return serializer.Serialize(&d.root, opts)
}
