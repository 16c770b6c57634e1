// Package memory provides map-backed implementations of the repository
// interfaces. They enforce the same unique constraints as the Mongo
// collections and exist so service tests can run without a database.
package memory

import (
	"fmt"
	"sync"
)

type idGen struct {
	mu   sync.Mutex
	next int
}

func (g *idGen) newID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%04d", g.next)
}
