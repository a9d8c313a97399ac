package vjson

import "testing"

func TestArenaDocumentParseAndSerialize(t *testing.T) {
	doc := NewArenaDocument(4096, StrictOptions())
	if err := doc.Parse([]byte(`{"a":1,"b":[1,2,3]}`)); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	obj, err := doc.Root().AsObject()
	if err != nil {
		t.Fatalf("AsObject() error = %v", err)
	}
	if obj.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", obj.Len())
	}
	out, err := doc.Serialize(CompactOptions())
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if string(out) != `{"a":1,"b":[1,2,3]}` {
		t.Errorf("Serialize() = %q, want %q", out, `{"a":1,"b":[1,2,3]}`)
	}
}

func TestArenaDocumentResetClearsRootBeforeArena(t *testing.T) {
	doc := NewArenaDocument(4096, StrictOptions())
	long := `{"greeting":"hello world, this exceeds the inline sso capacity"}`
	if err := doc.Parse([]byte(long)); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	doc.Reset()
	if !doc.Root().IsNull() {
		t.Error("Root() after Reset() is not Null")
	}
	if doc.Arena().BytesUsed() != 0 {
		t.Errorf("Arena().BytesUsed() = %d after Reset(), want 0", doc.Arena().BytesUsed())
	}
}

func TestArenaDocumentReparseReusesArena(t *testing.T) {
	doc := NewArenaDocument(4096, StrictOptions())
	for i := 0; i < 1000; i++ {
		if err := doc.Parse([]byte(`{"type":"scan","bssid":"aa:bb:cc:dd:ee:ff","rssi":-42,"channel":36,"ssid":"Net_k"}`)); err != nil {
			t.Fatalf("iteration %d: Parse() error = %v", i, err)
		}
		doc.Reset()
	}
	if blocks := doc.Arena().Blocks(); blocks > 4 {
		t.Errorf("Arena().Blocks() = %d after 1000 parse/reset cycles, want a small stable count", blocks)
	}
}

func TestArenaDocumentTryParseLeavesRootUntouchedOnError(t *testing.T) {
	doc := NewArenaDocument(4096, StrictOptions())
	if err := doc.Parse([]byte(`{"a":1}`)); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, err := doc.TryParse([]byte(`not json`)); err == nil {
		t.Fatal("TryParse() on malformed input succeeded, want error")
	}
	obj, _ := doc.Root().AsObject()
	if obj.Len() != 1 {
		t.Error("TryParse() error mutated the committed root")
	}
}
