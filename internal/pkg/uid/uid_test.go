package uid

import (
	"testing"

	"github.com/google/uuid"
)

func TestSnowflake_Unique(t *testing.T) {
	t.Parallel()

	// Arrange
	gen, err := NewSnowflake(1)
	if err != nil {
		t.Fatalf("NewSnowflake() error = %v", err)
	}
	seen := make(map[int64]struct{}, 1000)

	// Act & Assert
	var prev int64
	for range 1000 {
		id := gen.Generate()
		if id <= prev {
			t.Fatalf("expected increasing ids, got %d after %d", id, prev)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = struct{}{}
		prev = id
	}
}

func TestNewSnowflake_InvalidNode(t *testing.T) {
	t.Parallel()

	if _, err := NewSnowflake(4096); err == nil {
		t.Fatalf("expected error for out of range node")
	}
}

func TestUUID_Version7(t *testing.T) {
	t.Parallel()

	var gen StringID = NewUUID()

	id, err := uuid.Parse(gen.Generate())
	if err != nil {
		t.Fatalf("uuid.Parse() error = %v", err)
	}
	if id.Version() != 7 {
		t.Fatalf("expected version 7, got %d", id.Version())
	}
	if gen.Generate() == gen.Generate() {
		t.Fatalf("expected distinct ids")
	}
}
