package session

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kwamena/ugrecover/internal/model"
)

// ListCategories returns all categories ordered by ID, archived ones
// included.
func (s *Session) ListCategories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetCategory returns a category by ID.
func (s *Session) GetCategory(id int64) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return model.Category{}, fmt.Errorf("category %d: %w", id, ErrCategoryNotFound)
	}
	return *c, nil
}

// CreateCategory adds a new category and returns it. Names must be unique
// among non-archived categories.
func (s *Session) CreateCategory(c model.Category) (model.Category, error) {
	if c.Name == "" {
		return model.Category{}, fmt.Errorf("%w: name required", model.ErrValidation)
	}
	if c.Icon == "" {
		c.Icon = model.IconOther
	}
	if !model.ValidIcon(c.Icon) {
		return model.Category{}, fmt.Errorf("%w: unknown icon %q", model.ErrValidation, c.Icon)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.Status == model.CategoryStatusActive && strings.EqualFold(existing.Name, c.Name) {
			return model.Category{}, fmt.Errorf("%w: category %q already exists", model.ErrConflict, c.Name)
		}
	}

	c.ID = s.nextCategoryID
	s.nextCategoryID++
	c.ItemCount = 0
	c.Status = model.CategoryStatusActive
	c.CreatedAt = time.Now()
	c.LastUpdated = c.CreatedAt
	s.categories[c.ID] = &c
	return c, nil
}

// UpdateCategory updates a category's metadata and stamps LastUpdated.
// Renames do not cascade to items already logged under the old name.
func (s *Session) UpdateCategory(id int64, name, description, color, icon string) (model.Category, error) {
	if name == "" {
		return model.Category{}, fmt.Errorf("%w: name required", model.ErrValidation)
	}
	if !model.ValidIcon(icon) {
		return model.Category{}, fmt.Errorf("%w: unknown icon %q", model.ErrValidation, icon)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return model.Category{}, fmt.Errorf("category %d: %w", id, ErrCategoryNotFound)
	}
	for _, existing := range s.categories {
		if existing.ID != id && existing.Status == model.CategoryStatusActive && strings.EqualFold(existing.Name, name) {
			return model.Category{}, fmt.Errorf("%w: category %q already exists", model.ErrConflict, name)
		}
	}

	c.Name, c.Description, c.Color, c.Icon = name, description, color, icon
	c.LastUpdated = time.Now()
	return *c, nil
}

// ArchiveCategory marks a category inactive and stamps LastUpdated.
// Categories are never physically deleted; items keep their label.
func (s *Session) ArchiveCategory(id int64) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return model.Category{}, fmt.Errorf("category %d: %w", id, ErrCategoryNotFound)
	}

	c.Status = model.CategoryStatusInactive
	c.LastUpdated = time.Now()
	return *c, nil
}

// activeCategory returns the non-archived category with the given name.
// Caller must hold s.mu.
func (s *Session) activeCategory(name string) *model.Category {
	for _, c := range s.categories {
		if c.Status == model.CategoryStatusActive && strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}
