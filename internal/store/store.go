// Package store owns the collection of shape records on a board and exposes
// the only legal mutation paths for them. Every mutation goes through the
// shape package's generator, so a record's vertices and bounds can never
// drift from its canonical parameters: rejected calls leave the store
// untouched, and queries hand out copies, never internal references.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gridboard/gridboard/backend-go/internal/geom"
	"github.com/gridboard/gridboard/backend-go/internal/shape"
	"github.com/gridboard/gridboard/backend-go/internal/typeid"
)

// ErrUnknownObject is returned for operations on an id not in the store.
var ErrUnknownObject = errors.New("unknown object id")

// Object is a stored shape record. Params is authoritative; Vertices and
// Bounds are derived from it on every mutation and must never be edited
// directly.
type Object struct {
	ID        string            `json:"id"`
	Kind      shape.Kind        `json:"kind"`
	Vertices  []geom.WorldPoint `json:"vertices"`
	Params    shape.Params      `json:"params"`
	Style     shape.Style       `json:"style"`
	Bounds    geom.Rect         `json:"bounds"`
	Visible   bool              `json:"visible"`
	CreatedAt time.Time         `json:"createdAt"`
}

func (o *Object) clone() Object {
	out := *o
	out.Vertices = make([]geom.WorldPoint, len(o.Vertices))
	copy(out.Vertices, o.Vertices)
	return out
}

// Store holds a board's objects in insertion (painter's) order.
// It is safe for concurrent use; the collaboration layer shares one store
// per board room.
type Store struct {
	mu      sync.RWMutex
	objects map[string]*Object
	order   []string
	now     func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		objects: make(map[string]*Object),
		now:     time.Now,
	}
}

// Create validates params, generates vertices and bounds, and inserts a new
// object. It returns the new object's id.
func (s *Store) Create(kind shape.Kind, params shape.Params, style shape.Style) (string, error) {
	params.Kind = kind
	if err := params.Validate(); err != nil {
		return "", err
	}

	vertices := shape.Generate(params)

	s.mu.Lock()
	defer s.mu.Unlock()

	obj := &Object{
		ID:        typeid.NewShapeID(),
		Kind:      kind,
		Vertices:  vertices,
		Params:    params,
		Style:     style,
		Bounds:    geom.BoundsOf(vertices),
		Visible:   true,
		CreatedAt: s.now(),
	}
	s.objects[obj.ID] = obj
	s.order = append(s.order, obj.ID)
	return obj.ID, nil
}

// Insert adds an object with a caller-supplied id, regenerating vertices and
// bounds from its parameters. It is used when replaying persisted or remote
// creations so ids survive the trip; persisted geometry is discarded and
// rebuilt here.
func (s *Store) Insert(id string, params shape.Params, style shape.Style, visible bool, createdAt time.Time) error {
	if err := params.Validate(); err != nil {
		return err
	}

	vertices := shape.Generate(params)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.objects[id]; exists {
		return fmt.Errorf("object %s already exists", id)
	}
	s.objects[id] = &Object{
		ID:        id,
		Kind:      params.Kind,
		Vertices:  vertices,
		Params:    params,
		Style:     style,
		Bounds:    geom.BoundsOf(vertices),
		Visible:   visible,
		CreatedAt: createdAt,
	}
	s.order = append(s.order, id)
	return nil
}

// UpdateByParams replaces an object's parameters and atomically regenerates
// its vertices and bounds.
func (s *Store) UpdateByParams(id string, params shape.Params) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, id)
	}

	params.Kind = obj.Kind
	if err := params.Validate(); err != nil {
		return err
	}

	obj.Params = params
	obj.Vertices = shape.Generate(params)
	obj.Bounds = geom.BoundsOf(obj.Vertices)
	return nil
}

// UpdateByVertexEdit applies a vertex-driven edit: the kind-specific exact
// inverse recovers new parameters, then vertices are regenerated from them.
// The stored vertex list is never patched in place.
func (s *Store) UpdateByVertexEdit(id string, vertexIndex int, next geom.WorldPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, id)
	}

	params, err := shape.DeriveVertexEdit(obj.Params, vertexIndex, next)
	if err != nil {
		return err
	}

	obj.Params = params
	obj.Vertices = shape.Generate(params)
	obj.Bounds = geom.BoundsOf(obj.Vertices)
	return nil
}

// Translate shifts an object by (dx, dy) as a single parameter-level
// translation; radius, width, and height are untouched.
func (s *Store) Translate(id string, dx, dy float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, id)
	}

	params := obj.Params.Translate(dx, dy)
	if err := params.Validate(); err != nil {
		return err
	}

	obj.Params = params
	obj.Vertices = shape.Generate(params)
	obj.Bounds = geom.BoundsOf(obj.Vertices)
	return nil
}

// SetStyle replaces an object's style.
func (s *Store) SetStyle(id string, style shape.Style) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, id)
	}
	obj.Style = style
	return nil
}

// SetVisible toggles an object's visibility flag.
func (s *Store) SetVisible(id string, visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, id)
	}
	obj.Visible = visible
	return nil
}

// Remove deletes an object.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, id)
	}
	delete(s.objects, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Clear removes every object.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = make(map[string]*Object)
	s.order = nil
}

// Get returns a copy of the object with the given id.
func (s *Store) Get(id string) (Object, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[id]
	if !ok {
		return Object{}, fmt.Errorf("%w: %s", ErrUnknownObject, id)
	}
	return obj.clone(), nil
}

// All returns copies of every object in painter's order.
func (s *Store) All() []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Object, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.objects[id].clone())
	}
	return out
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// QueryByBounds returns, in painter's order, the ids of visible objects
// whose cached bounds intersect the window. The test is conservative: a
// shape truly overlapping the window is never excluded.
func (s *Store) QueryByBounds(window geom.Rect) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for _, id := range s.order {
		obj := s.objects[id]
		if obj.Visible && obj.Bounds.Intersects(window) {
			ids = append(ids, id)
		}
	}
	return ids
}

// VisibleIn returns copies of the visible objects intersecting the window,
// in painter's order. Renderers consume this directly.
func (s *Store) VisibleIn(window geom.Rect) []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Object
	for _, id := range s.order {
		obj := s.objects[id]
		if obj.Visible && obj.Bounds.Intersects(window) {
			out = append(out, obj.clone())
		}
	}
	return out
}
