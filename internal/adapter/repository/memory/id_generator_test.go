package memory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

func TestUUIDGenerator_Generate(t *testing.T) {
	gen := NewUUIDGenerator()

	first := gen.Generate()
	second := gen.Generate()

	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("expected a valid UUID, got %q: %v", first, err)
	}
	if first == second {
		t.Errorf("expected distinct ids, got %q twice", first)
	}
}

func TestULIDGenerator_Generate(t *testing.T) {
	gen := NewULIDGenerator()

	first := gen.Generate()
	second := gen.Generate()

	if _, err := ulid.Parse(first); err != nil {
		t.Fatalf("expected a valid ULID, got %q: %v", first, err)
	}
	if first == second {
		t.Errorf("expected distinct ids, got %q twice", first)
	}
}
