package http_test

import (
	"context"

	"dds/internal/adapters/in/http/crud"
	"dds/internal/core/domain/model/kernel"
)

// memory is an in-memory service factory. It keeps insertion order and
// applies mutations on Commit.
type memory[E crud.Entity] struct {
	ids      []kernel.UUID
	entities map[kernel.UUID]E
	failWith error
}

func newMemory[E crud.Entity](entities ...E) *memory[E] {
	m := &memory[E]{entities: map[kernel.UUID]E{}}
	for _, e := range entities {
		m.put(e)
	}
	return m
}

func (m *memory[E]) put(e E) {
	if _, ok := m.entities[e.ID()]; !ok {
		m.ids = append(m.ids, e.ID())
	}
	m.entities[e.ID()] = e
}

func (m *memory[E]) Create() crud.Service[E] {
	return &memoryService[E]{memory: m}
}

type memoryService[E crud.Entity] struct {
	kernel.Notifiable

	memory  *memory[E]
	pending func()
}

func (s *memoryService[E]) QueryAll(context.Context) ([]E, error) {
	if s.memory.failWith != nil {
		return nil, s.memory.failWith
	}
	out := make([]E, 0, len(s.memory.ids))
	for _, id := range s.memory.ids {
		if e, ok := s.memory.entities[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memoryService[E]) Search(ctx context.Context, _ string) ([]E, error) {
	return s.QueryAll(ctx)
}

func (s *memoryService[E]) GetByID(_ context.Context, id kernel.UUID) (E, bool, error) {
	e, ok := s.memory.entities[id]
	return e, ok, s.memory.failWith
}

func (s *memoryService[E]) Add(_ context.Context, e E) error {
	s.Clear()
	s.pending = func() { s.memory.put(e) }
	return nil
}

func (s *memoryService[E]) Update(_ context.Context, e E) error {
	s.Clear()
	s.pending = func() { s.memory.put(e) }
	return nil
}

func (s *memoryService[E]) Delete(_ context.Context, id kernel.UUID) error {
	s.Clear()
	s.pending = func() { delete(s.memory.entities, id) }
	return nil
}

func (s *memoryService[E]) Commit(context.Context) error {
	if s.pending != nil {
		s.pending()
	}
	return nil
}
