package crud_test

import (
	"context"
	"slices"

	"dds/internal/adapters/in/http/crud"
	"dds/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// note is a minimal entity: title is required.
type note struct {
	kernel.Notifiable

	id    kernel.UUID
	title string
}

func newNote(id kernel.UUID, title string) *note {
	n := &note{id: id, title: title}
	if title == "" {
		n.AddNotification("requiredField", "value is required")
	}
	return n
}

func (n *note) ID() kernel.UUID {
	return n.id
}

type noteInput struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type noteView struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type noteMapper struct {
	err error
}

func (m noteMapper) ToEntity(vm noteInput) (*note, error) {
	if m.err != nil {
		return nil, m.err
	}
	id := kernel.NewUUID()
	if vm.ID != uuid.Nil {
		id, _ = kernel.UUIDFromGoogle(vm.ID)
	}
	return newNote(id, vm.Title), nil
}

func (m noteMapper) ToView(n *note) noteView {
	return noteView{ID: n.id.Bytes(), Title: n.title}
}

func reverseInsertion(views []noteView) []noteView {
	ordered := slices.Clone(views)
	slices.Reverse(ordered)
	return ordered
}

// store plays the persistence collaborator shared by every service instance.
type store struct {
	order []kernel.UUID
	notes map[kernel.UUID]*note

	// rejections applied by the next services
	rejectAdd    []kernel.Notification
	rejectUpdate []kernel.Notification
	rejectDelete []kernel.Notification

	getErr    error
	commitErr error

	created  int
	adds     int
	updates  int
	deletes  int
	commits  int
	searched []string
}

func newStore(titles ...string) *store {
	s := &store{notes: map[kernel.UUID]*note{}}
	for _, title := range titles {
		s.put(newNote(kernel.NewUUID(), title))
	}
	return s
}

func (s *store) put(n *note) {
	if _, ok := s.notes[n.id]; !ok {
		s.order = append(s.order, n.id)
	}
	s.notes[n.id] = n
}

func (s *store) all() []*note {
	out := make([]*note, 0, len(s.order))
	for _, id := range s.order {
		if n, ok := s.notes[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

func (s *store) Create() crud.Service[*note] {
	s.created++
	return &fakeService{store: s}
}

func (s *store) mutations() int {
	return s.adds + s.updates + s.deletes
}

type fakeService struct {
	kernel.Notifiable

	store   *store
	pending func()
}

func (f *fakeService) QueryAll(context.Context) ([]*note, error) {
	return f.store.all(), nil
}

func (f *fakeService) Search(_ context.Context, filter string) ([]*note, error) {
	f.store.searched = append(f.store.searched, filter)
	if filter == "" {
		return f.store.all(), nil
	}
	var out []*note
	for _, n := range f.store.all() {
		if n.title == filter {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeService) GetByID(ctx context.Context, id kernel.UUID) (*note, bool, error) {
	if f.store.getErr != nil {
		return nil, false, f.store.getErr
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	n, ok := f.store.notes[id]
	return n, ok, nil
}

func (f *fakeService) Add(_ context.Context, n *note) error {
	f.Clear()
	f.store.adds++
	f.AddNotifications(f.store.rejectAdd...)
	f.pending = func() { f.store.put(n) }
	return nil
}

func (f *fakeService) Update(_ context.Context, n *note) error {
	f.Clear()
	f.store.updates++
	f.AddNotifications(f.store.rejectUpdate...)
	f.pending = func() { f.store.put(n) }
	return nil
}

func (f *fakeService) Delete(_ context.Context, id kernel.UUID) error {
	f.Clear()
	f.store.deletes++
	f.AddNotifications(f.store.rejectDelete...)
	f.pending = func() { delete(f.store.notes, id) }
	return nil
}

func (f *fakeService) Commit(context.Context) error {
	f.store.commits++
	if f.store.commitErr != nil {
		return f.store.commitErr
	}
	if f.pending != nil {
		f.pending()
	}
	return nil
}
