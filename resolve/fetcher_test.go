package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// site is an in-memory Fetcher keyed by URL.
type site struct {
	mu     sync.Mutex
	bodies map[string]string
	hits   map[string]int
}

func newSite(bodies map[string]string) *site {
	return &site{bodies: bodies, hits: map[string]int{}}
}

func (s *site) Get(_ context.Context, url string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hits[url]++
	body, ok := s.bodies[url]
	if !ok {
		return "", fmt.Errorf("GET %s: 404 Not Found", url)
	}
	return body, nil
}

func (s *site) GetJSON(ctx context.Context, url string, v any) error {
	body, err := s.Get(ctx, url)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(body), v)
}
