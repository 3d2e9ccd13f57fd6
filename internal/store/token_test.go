package store

import "testing"

func TestUUIDv7GeneratorUnique(t *testing.T) {
	gen := UUIDv7Generator{}

	a := gen.Generate()
	b := gen.Generate()

	if len(a) != 36 {
		t.Errorf("token length = %d, want 36", len(a))
	}
	if a == b {
		t.Error("consecutive tokens must differ")
	}
}

func TestFixedGeneratorOrder(t *testing.T) {
	gen := NewFixedGenerator("t1", "t2")

	if got := gen.Generate(); got != "t1" {
		t.Errorf("first token = %q, want t1", got)
	}
	if got := gen.Generate(); got != "t2" {
		t.Errorf("second token = %q, want t2", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on exhausted generator")
		}
	}()
	gen.Generate()
}
