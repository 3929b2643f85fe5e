package session

import (
	"fmt"
	"sort"
	"time"

	"github.com/kwamena/ugrecover/internal/model"
)

// ListOfficers returns all officers ordered by ID, with assigned point
// names joined in.
func (s *Session) ListOfficers() []model.Officer {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Officer, 0, len(s.officers))
	for _, o := range s.officers {
		out = append(out, s.copyOfficer(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetOfficer returns an officer by ID.
func (s *Session) GetOfficer(id int64) (model.Officer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.officers[id]
	if !ok {
		return model.Officer{}, fmt.Errorf("officer %d: %w", id, ErrOfficerNotFound)
	}
	return s.copyOfficer(o), nil
}

// CreateOfficer adds a new, unassigned officer and returns it.
func (s *Session) CreateOfficer(o model.Officer) (model.Officer, error) {
	if o.Name == "" || o.Email == "" {
		return model.Officer{}, fmt.Errorf("%w: name and email required", model.ErrValidation)
	}
	if o.Status == "" {
		o.Status = model.OfficerStatusActive
	}
	if o.Status != model.OfficerStatusActive && o.Status != model.OfficerStatusInactive {
		return model.Officer{}, fmt.Errorf("%w: unknown status %q", model.ErrValidation, o.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o.ID = s.nextOfficerID
	s.nextOfficerID++
	o.Assigned = false
	o.AssignedPointID = nil
	o.AssignedPoint = ""
	if o.JoinDate.IsZero() {
		o.JoinDate = time.Now()
	}
	s.officers[o.ID] = &o
	return s.copyOfficer(&o), nil
}

// AssignOfficer links an officer to a collection point. An officer can be
// assigned to at most one point; assigning to an inactive point is refused.
// Both sides of the link become visible in the same critical section.
func (s *Session) AssignOfficer(officerID, pointID int64) (model.Officer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.officers[officerID]
	if !ok {
		return model.Officer{}, fmt.Errorf("officer %d: %w", officerID, ErrOfficerNotFound)
	}
	if o.Assigned {
		return model.Officer{}, fmt.Errorf("officer %d: %w", officerID, ErrAlreadyAssigned)
	}
	p, ok := s.points[pointID]
	if !ok {
		return model.Officer{}, fmt.Errorf("point %d: %w", pointID, ErrPointNotFound)
	}
	if p.Status != model.PointStatusActive {
		return model.Officer{}, fmt.Errorf("point %d: %w", pointID, ErrPointInactive)
	}

	o.Assigned = true
	o.AssignedPointID = &pointID
	p.LastActivity = time.Now()
	return s.copyOfficer(o), nil
}

// UnassignOfficer detaches an officer from its collection point.
func (s *Session) UnassignOfficer(officerID int64) (model.Officer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.officers[officerID]
	if !ok {
		return model.Officer{}, fmt.Errorf("officer %d: %w", officerID, ErrOfficerNotFound)
	}
	if !o.Assigned {
		return model.Officer{}, fmt.Errorf("officer %d: %w", officerID, ErrNotAssigned)
	}

	if p, ok := s.points[*o.AssignedPointID]; ok {
		p.LastActivity = time.Now()
	}
	o.Assigned = false
	o.AssignedPointID = nil
	return s.copyOfficer(o), nil
}

// DeleteOfficer removes an officer, detaching it from its collection point
// first if assigned.
func (s *Session) DeleteOfficer(officerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.officers[officerID]
	if !ok {
		return fmt.Errorf("officer %d: %w", officerID, ErrOfficerNotFound)
	}
	if o.AssignedPointID != nil {
		if p, ok := s.points[*o.AssignedPointID]; ok {
			p.LastActivity = time.Now()
		}
	}
	delete(s.officers, officerID)
	return nil
}
