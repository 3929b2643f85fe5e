// Package session holds the five domain collections for one authenticated
// session and enforces every cross-entity invariant on mutation. All data
// is in-memory: a session is populated at login and torn down at logout.
package session

import (
	"sort"
	"sync"

	"github.com/kwamena/ugrecover/internal/model"
)

// photo holds processed image bytes for one item.
type photo struct {
	Data  []byte
	Thumb []byte
	MIME  string
}

// Data is a full snapshot used to populate a session. It is what the seed
// generator produces and what a real backend would supply in its place.
type Data struct {
	Points     []model.CollectionPoint
	Officers   []model.Officer
	Categories []model.Category
	Items      []model.LostItem
	Claims     []model.ClaimRequest
}

// Session owns the five collections for the lifetime of one login.
// Collections are normalized: officer assignment is stored only on the
// officer record, and point/officer joins are computed on read. Every
// mutation runs under one lock, so no reader observes partial state.
type Session struct {
	mu sync.Mutex

	points     map[int64]*model.CollectionPoint
	officers   map[int64]*model.Officer
	categories map[int64]*model.Category
	items      map[int64]*model.LostItem
	claims     map[int64]*model.ClaimRequest
	photos     map[int64]photo

	nextPointID    int64
	nextOfficerID  int64
	nextCategoryID int64
	nextItemID     int64
	nextClaimID    int64
}

// New returns an empty session.
func New() *Session {
	s := &Session{}
	s.reset()
	return s
}

// Load replaces all five collections with the given snapshot. Calling it
// again resets the session; prior records are discarded wholesale.
func (s *Session) Load(data Data) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	for i := range data.Points {
		p := data.Points[i]
		p.Officers = nil
		s.points[p.ID] = &p
		s.nextPointID = max(s.nextPointID, p.ID+1)
	}
	for i := range data.Officers {
		o := data.Officers[i]
		o.AssignedPoint = ""
		o.Assigned = o.AssignedPointID != nil
		s.officers[o.ID] = &o
		s.nextOfficerID = max(s.nextOfficerID, o.ID+1)
	}
	for i := range data.Categories {
		c := data.Categories[i]
		s.categories[c.ID] = &c
		s.nextCategoryID = max(s.nextCategoryID, c.ID+1)
	}
	for i := range data.Items {
		it := data.Items[i]
		if len(it.Images) > 0 {
			it.MainImage = it.Images[0]
		}
		s.items[it.ID] = &it
		s.nextItemID = max(s.nextItemID, it.ID+1)
	}
	for i := range data.Claims {
		c := data.Claims[i]
		s.claims[c.ID] = &c
		s.nextClaimID = max(s.nextClaimID, c.ID+1)
	}
}

// Clear empties all collections. Called on logout.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Session) reset() {
	s.points = make(map[int64]*model.CollectionPoint)
	s.officers = make(map[int64]*model.Officer)
	s.categories = make(map[int64]*model.Category)
	s.items = make(map[int64]*model.LostItem)
	s.claims = make(map[int64]*model.ClaimRequest)
	s.photos = make(map[int64]photo)
	s.nextPointID, s.nextOfficerID, s.nextCategoryID = 1, 1, 1
	s.nextItemID, s.nextClaimID = 1, 1
}

// copyPoint returns a copy of p with its officer list joined in.
// Caller must hold s.mu.
func (s *Session) copyPoint(p *model.CollectionPoint) model.CollectionPoint {
	out := *p
	out.Officers = nil
	for _, o := range s.officers {
		if o.AssignedPointID != nil && *o.AssignedPointID == p.ID {
			out.Officers = append(out.Officers, s.copyOfficer(o))
		}
	}
	sort.Slice(out.Officers, func(i, j int) bool { return out.Officers[i].ID < out.Officers[j].ID })
	return out
}

// copyOfficer returns a copy of o with the assigned point name joined in.
// Caller must hold s.mu.
func (s *Session) copyOfficer(o *model.Officer) model.Officer {
	out := *o
	out.AssignedPoint = ""
	if o.AssignedPointID != nil {
		id := *o.AssignedPointID
		out.AssignedPointID = &id
		if p, ok := s.points[id]; ok {
			out.AssignedPoint = p.Name
		}
	}
	return out
}

func copyItem(it *model.LostItem) model.LostItem {
	out := *it
	out.Features = append([]string(nil), it.Features...)
	out.Images = append([]string(nil), it.Images...)
	return out
}

func copyClaim(c *model.ClaimRequest) model.ClaimRequest {
	out := *c
	out.Documents = append([]string(nil), c.Documents...)
	if c.ReviewedAt != nil {
		t := *c.ReviewedAt
		out.ReviewedAt = &t
	}
	if c.AppointmentDate != nil {
		t := *c.AppointmentDate
		out.AppointmentDate = &t
	}
	return out
}
