package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGen is the injected id-generation capability. The engine never mints ids
// on its own; tests supply a deterministic generator.
type IDGen interface {
	NewID() uuid.UUID
}

// RandomIDs generates random UUIDs and is the production default.
type RandomIDs struct{}

func (RandomIDs) NewID() uuid.UUID { return uuid.New() }

// SequentialIDs generates the ids 00000000-0000-0000-0000-000000000001,
// ...-000000000002 and so on. Intended for tests that need stable ids.
type SequentialIDs struct {
	mu sync.Mutex
	n  uint64
}

func NewSequentialIDs() *SequentialIDs { return &SequentialIDs{} }

func (g *SequentialIDs) NewID() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", g.n))
}
