package lesson

import (
	"context"
	"fmt"
	"sync"
)

// pages is an in-memory Fetcher keyed by URL.
type pages struct {
	mu     sync.Mutex
	bodies map[string]string
	hits   map[string]int
}

func newPages(bodies map[string]string) *pages {
	return &pages{bodies: bodies, hits: map[string]int{}}
}

func (p *pages) Get(_ context.Context, url string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.hits[url]++
	body, ok := p.bodies[url]
	if !ok {
		return "", fmt.Errorf("GET %s: 404 Not Found", url)
	}
	return body, nil
}
