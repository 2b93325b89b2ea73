package esptest

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"content-catalog/core/esp"
)

// Source is an in-memory esp.Source that records opens and closes.
type Source struct {
	Files    map[string][]byte
	OpenErr  map[string]error
	CloseErr error

	mu     sync.Mutex
	opened []string
	open   int
}

// NewSource returns a Source serving files.
func NewSource(files map[string][]byte) *Source {
	return &Source{Files: files, OpenErr: map[string]error{}}
}

// Open implements esp.Source.
func (s *Source) Open(ctx context.Context, name string) (esp.Container, error) {
	if err := s.OpenErr[name]; err != nil {
		return nil, err
	}
	data, ok := s.Files[name]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", name, os.ErrNotExist)
	}

	s.mu.Lock()
	s.opened = append(s.opened, name)
	s.open++
	s.mu.Unlock()

	return &trackedContainer{Reader: esp.NewBytesReader(data), src: s}, nil
}

// List implements esp.Source.
func (s *Source) List(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(s.Files))
	for name := range s.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Opened returns the names passed to successful Open calls, in order.
func (s *Source) Opened() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.opened...)
}

// OpenHandles returns the number of containers not yet closed.
func (s *Source) OpenHandles() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

type trackedContainer struct {
	*esp.Reader
	src    *Source
	closed bool
}

func (c *trackedContainer) Close() error {
	if !c.closed {
		c.closed = true
		c.src.mu.Lock()
		c.src.open--
		c.src.mu.Unlock()
	}
	_ = c.Reader.Close()
	return c.src.CloseErr
}
