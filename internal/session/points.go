package session

import (
	"fmt"
	"sort"
	"time"

	"github.com/kwamena/ugrecover/internal/model"
)

// ListPoints returns all collection points ordered by ID, with their
// officer lists joined in.
func (s *Session) ListPoints() []model.CollectionPoint {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CollectionPoint, 0, len(s.points))
	for _, p := range s.points {
		out = append(out, s.copyPoint(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetPoint returns a collection point by ID.
func (s *Session) GetPoint(id int64) (model.CollectionPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.points[id]
	if !ok {
		return model.CollectionPoint{}, fmt.Errorf("point %d: %w", id, ErrPointNotFound)
	}
	return s.copyPoint(p), nil
}

// CreatePoint adds a new collection point and returns it.
func (s *Session) CreatePoint(p model.CollectionPoint) (model.CollectionPoint, error) {
	if p.Name == "" || p.Location == "" {
		return model.CollectionPoint{}, fmt.Errorf("%w: name and location required", model.ErrValidation)
	}
	if p.Capacity <= 0 {
		return model.CollectionPoint{}, fmt.Errorf("%w: capacity must be positive", model.ErrValidation)
	}
	if p.Status == "" {
		p.Status = model.PointStatusActive
	}
	if p.Status != model.PointStatusActive && p.Status != model.PointStatusInactive {
		return model.CollectionPoint{}, fmt.Errorf("%w: unknown status %q", model.ErrValidation, p.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextPointID
	s.nextPointID++
	p.CurrentItems = 0
	p.Officers = nil
	p.CreatedAt = time.Now()
	p.LastActivity = p.CreatedAt
	s.points[p.ID] = &p
	return s.copyPoint(&p), nil
}

// UpdatePoint updates a collection point's metadata. Shrinking capacity
// below the number of items currently held is refused.
func (s *Session) UpdatePoint(id int64, name, location, address, description, status string, capacity int) (model.CollectionPoint, error) {
	if name == "" || location == "" {
		return model.CollectionPoint{}, fmt.Errorf("%w: name and location required", model.ErrValidation)
	}
	if capacity <= 0 {
		return model.CollectionPoint{}, fmt.Errorf("%w: capacity must be positive", model.ErrValidation)
	}
	if status != model.PointStatusActive && status != model.PointStatusInactive {
		return model.CollectionPoint{}, fmt.Errorf("%w: unknown status %q", model.ErrValidation, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.points[id]
	if !ok {
		return model.CollectionPoint{}, fmt.Errorf("point %d: %w", id, ErrPointNotFound)
	}
	if capacity < p.CurrentItems {
		return model.CollectionPoint{}, fmt.Errorf("point %d holds %d items: %w", id, p.CurrentItems, ErrCapacityExceeded)
	}

	p.Name, p.Location, p.Address = name, location, address
	p.Description, p.Status = description, status
	p.Capacity = capacity
	p.LastActivity = time.Now()
	return s.copyPoint(p), nil
}

// DeletePoint removes a collection point. Every officer assigned to it is
// detached first, so no dangling assignment references remain. A point
// still holding items cannot be deleted.
func (s *Session) DeletePoint(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.points[id]
	if !ok {
		return fmt.Errorf("point %d: %w", id, ErrPointNotFound)
	}
	if p.CurrentItems > 0 {
		return fmt.Errorf("point %d: %w", id, ErrPointNotEmpty)
	}

	for _, o := range s.officers {
		if o.AssignedPointID != nil && *o.AssignedPointID == id {
			o.Assigned = false
			o.AssignedPointID = nil
		}
	}
	delete(s.points, id)
	return nil
}
