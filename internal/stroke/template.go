package stroke

import "github.com/google/uuid"

// Template is a named reference gesture with a normalized path, used as a
// matching target. Templates are never mutated after construction.
type Template struct {
	ID   string         // Unique identifier for the template
	Name string         // Human-readable name; names may repeat for variants
	Path NormalizedPath // Canonical form produced by Normalize
}

// NewTemplate builds a template from a raw reference path, normalizing it
// once. Returns ErrDegeneratePath if the path cannot be normalized.
func NewTemplate(name string, path Path) (*Template, error) {
	normalized, err := Normalize(path)
	if err != nil {
		return nil, err
	}
	return &Template{
		ID:   uuid.New().String(),
		Name: name,
		Path: normalized,
	}, nil
}

// NewTemplateFromNormalized builds a template from an already-normalized
// path, such as one reloaded from storage. The path must contain exactly
// NumPoints points; a truncated stored path cannot be matched against.
func NewTemplateFromNormalized(id, name string, path NormalizedPath) (*Template, error) {
	if len(path) == 0 {
		return nil, ErrDegeneratePath
	}
	if len(path) != NumPoints {
		return nil, ErrInvalidPathLength
	}
	return &Template{ID: id, Name: name, Path: path}, nil
}

// TemplateSet holds the templates considered during matching, in
// insertion order so tie-breaks are reproducible. The set must not be
// mutated while a match is in progress; callers serialize access.
type TemplateSet struct {
	templates []*Template
}

// NewTemplateSet creates an empty TemplateSet.
func NewTemplateSet() *TemplateSet {
	return &TemplateSet{templates: make([]*Template, 0)}
}

// Add appends a template to the set.
func (s *TemplateSet) Add(t *Template) {
	if t == nil {
		return
	}
	s.templates = append(s.templates, t)
}

// Replace swaps in a new template for the existing one with the same ID,
// keeping its position in the set. Templates held by earlier matches stay
// untouched. A template with an unknown ID is ignored.
func (s *TemplateSet) Replace(t *Template) {
	for i, existing := range s.templates {
		if existing.ID == t.ID {
			s.templates[i] = t
			return
		}
	}
}

// Remove deletes the template with the given ID, preserving the order of
// the remaining templates.
func (s *TemplateSet) Remove(id string) {
	for i, t := range s.templates {
		if t.ID == id {
			s.templates = append(s.templates[:i], s.templates[i+1:]...)
			return
		}
	}
}

// Clear removes all templates from the set.
func (s *TemplateSet) Clear() {
	s.templates = s.templates[:0]
}

// Len returns the number of templates in the set.
func (s *TemplateSet) Len() int {
	return len(s.templates)
}

// Templates returns the templates in insertion order. The returned slice
// is shared; callers must not modify it.
func (s *TemplateSet) Templates() []*Template {
	return s.templates
}
