package postgres

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
)

func TestULIDGeneratorSortsWithinMillisecond(t *testing.T) {
	g := NewULIDGenerator()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	prev := ""
	for i := 0; i < 100; i++ {
		id := g.Generate()
		if _, err := ulid.Parse(id); err != nil {
			t.Fatalf("invalid ULID %q: %v", id, err)
		}
		if id <= prev {
			t.Fatalf("expected %q to sort after %q", id, prev)
		}
		prev = id
	}
}
