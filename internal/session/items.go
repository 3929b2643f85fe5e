package session

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kwamena/ugrecover/internal/expiry"
	"github.com/kwamena/ugrecover/internal/model"
)

// ListItems returns all lost items ordered by ID, annotated with their
// expiry countdown and urgency tier as of now.
func (s *Session) ListItems(now time.Time) []model.LostItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.LostItem, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, s.annotate(it, now))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetItem returns a lost item by ID, annotated as of now.
func (s *Session) GetItem(id int64, now time.Time) (model.LostItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		return model.LostItem{}, fmt.Errorf("item %d: %w", id, ErrItemNotFound)
	}
	return s.annotate(it, now), nil
}

// LogItem records a found item against a collection point. The point must
// be active and below capacity, and the category label must match a
// non-archived category. The first image becomes the main image.
func (s *Session) LogItem(it model.LostItem) (model.LostItem, error) {
	if it.Name == "" {
		return model.LostItem{}, fmt.Errorf("%w: name required", model.ErrValidation)
	}
	if it.RetentionDays <= 0 {
		return model.LostItem{}, fmt.Errorf("%w: retention period must be positive", model.ErrValidation)
	}
	if len(it.Images) == 0 {
		return model.LostItem{}, fmt.Errorf("%w: at least one image required", model.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.points[it.PointID]
	if !ok {
		return model.LostItem{}, fmt.Errorf("point %d: %w", it.PointID, ErrPointNotFound)
	}
	if p.Status != model.PointStatusActive {
		return model.LostItem{}, fmt.Errorf("point %d: %w", it.PointID, ErrPointInactive)
	}
	if p.CurrentItems >= p.Capacity {
		return model.LostItem{}, fmt.Errorf("point %d: %w", it.PointID, ErrCapacityExceeded)
	}
	cat := s.activeCategory(it.Category)
	if cat == nil {
		return model.LostItem{}, fmt.Errorf("%w: unknown category %q", model.ErrValidation, it.Category)
	}

	it.ID = s.nextItemID
	s.nextItemID++
	it.Category = cat.Name
	it.CheckpointOffice = p.Name
	it.Status = model.ItemStatusAvailable
	it.MainImage = it.Images[0]
	if it.KeyedInDate.IsZero() {
		it.KeyedInDate = time.Now()
	}
	if it.FoundDate.IsZero() {
		it.FoundDate = it.KeyedInDate
	}

	s.items[it.ID] = &it
	p.CurrentItems++
	p.LastActivity = time.Now()
	cat.ItemCount++

	return copyItem(&it), nil
}

// SetItemStatus transitions an item between statuses. Moving to claimed or
// expired releases the item from its collection point; claimed and expired
// are terminal.
func (s *Session) SetItemStatus(id int64, status string) (model.LostItem, error) {
	switch status {
	case model.ItemStatusAvailable, model.ItemStatusPending,
		model.ItemStatusClaimed, model.ItemStatusExpired:
	default:
		return model.LostItem{}, fmt.Errorf("%w: unknown status %q", model.ErrValidation, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		return model.LostItem{}, fmt.Errorf("item %d: %w", id, ErrItemNotFound)
	}
	if it.Status == model.ItemStatusClaimed || it.Status == model.ItemStatusExpired {
		return model.LostItem{}, fmt.Errorf("%w: item %d already %s", model.ErrConflict, id, it.Status)
	}

	if status == model.ItemStatusClaimed || status == model.ItemStatusExpired {
		s.releaseItem(it)
	}
	it.Status = status
	return copyItem(it), nil
}

// SweepExpired flips every held item whose retention window has lapsed as
// of now to expired, releasing it from its point. Returns the IDs swept.
func (s *Session) SweepExpired(now time.Time) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var swept []int64
	for _, it := range s.items {
		if it.Status != model.ItemStatusAvailable && it.Status != model.ItemStatusPending {
			continue
		}
		if expiry.Expired(expiry.DaysUntil(it.KeyedInDate, it.RetentionDays, now)) {
			s.releaseItem(it)
			it.Status = model.ItemStatusExpired
			swept = append(swept, it.ID)
		}
	}
	sort.Slice(swept, func(i, j int) bool { return swept[i] < swept[j] })
	return swept
}

// SetItemPhoto stores processed photo bytes for an item and makes the
// served photo URI the item's main image.
func (s *Session) SetItemPhoto(id int64, data, thumb []byte, mime string) (model.LostItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		return model.LostItem{}, fmt.Errorf("item %d: %w", id, ErrItemNotFound)
	}

	s.photos[id] = photo{Data: data, Thumb: thumb, MIME: mime}

	uri := fmt.Sprintf("/api/items/%d/image", id)
	if len(it.Images) == 0 || it.Images[0] != uri {
		it.Images = append([]string{uri}, it.Images...)
	}
	it.MainImage = it.Images[0]
	return copyItem(it), nil
}

// GetItemPhoto returns an item's photo bytes. thumb selects the card
// thumbnail instead of the full photo. Returns nil data when no photo has
// been uploaded.
func (s *Session) GetItemPhoto(id int64, thumb bool) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return nil, "", fmt.Errorf("item %d: %w", id, ErrItemNotFound)
	}
	p, ok := s.photos[id]
	if !ok {
		return nil, "", nil
	}
	if thumb {
		return p.Thumb, p.MIME, nil
	}
	return p.Data, p.MIME, nil
}

// releaseItem removes an item from its point's held count and from its
// category's live count. Caller must hold s.mu.
func (s *Session) releaseItem(it *model.LostItem) {
	if p, ok := s.points[it.PointID]; ok {
		if p.CurrentItems > 0 {
			p.CurrentItems--
		}
		p.LastActivity = time.Now()
	}
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, it.Category) && c.ItemCount > 0 {
			c.ItemCount--
			break
		}
	}
}

// annotate returns a copy of the item with expiry fields derived as of
// now. Caller must hold s.mu.
func (s *Session) annotate(it *model.LostItem, now time.Time) model.LostItem {
	out := copyItem(it)
	days := expiry.DaysUntil(it.KeyedInDate, it.RetentionDays, now)
	out.DaysUntilExpiry = days
	out.UrgencyTier = expiry.Tier(days)
	return out
}
