package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/raskell/unistroke/internal/stroke"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Template represents a gesture template stored in the database.
// Template names are not unique; several templates may share a name to
// act as variants of the same gesture.
type Template struct {
	ID        string
	Name      string
	Points    int
	Samples   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TemplateRepository provides CRUD operations for templates.
type TemplateRepository struct {
	db *sql.DB
}

// Templates returns the template repository for this store.
func (s *Store) Templates() *TemplateRepository {
	return &TemplateRepository{db: s.db}
}

// Create inserts a new template into the database.
func (r *TemplateRepository) Create(t *Template) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO templates (id, name, points, samples, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Points, t.Samples, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

// GetByID retrieves a template by its ID.
func (r *TemplateRepository) GetByID(id string) (*Template, error) {
	t := &Template{}

	err := r.db.QueryRow(
		`SELECT id, name, points, samples, created_at, updated_at
		 FROM templates WHERE id = ?`,
		id,
	).Scan(&t.ID, &t.Name, &t.Points, &t.Samples, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

// GetByName retrieves the oldest template with the given name.
func (r *TemplateRepository) GetByName(name string) (*Template, error) {
	t := &Template{}

	err := r.db.QueryRow(
		`SELECT id, name, points, samples, created_at, updated_at
		 FROM templates WHERE name = ? ORDER BY created_at LIMIT 1`,
		name,
	).Scan(&t.ID, &t.Name, &t.Points, &t.Samples, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

// List retrieves all templates in insertion order, so the matcher's
// tie-break stays reproducible across restarts.
func (r *TemplateRepository) List() ([]*Template, error) {
	rows, err := r.db.Query(
		`SELECT id, name, points, samples, created_at, updated_at
		 FROM templates ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*Template
	for rows.Next() {
		t := &Template{}
		err := rows.Scan(&t.ID, &t.Name, &t.Points, &t.Samples, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

// Update updates an existing template in the database.
func (r *TemplateRepository) Update(t *Template) error {
	t.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE templates SET name = ?, points = ?, samples = ?, updated_at = ?
		 WHERE id = ?`,
		t.Name, t.Points, t.Samples, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a template from the database by its ID.
func (r *TemplateRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// SavePath replaces the stored normalized path for a template.
// The points are written in sequence order inside a single transaction,
// and the point count on the template row is refreshed.
func (r *TemplateRepository) SavePath(templateID string, path []stroke.Point) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM template_points WHERE template_id = ?`, templateID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO template_points (template_id, sequence, x, y) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, pt := range path {
		if _, err := stmt.Exec(templateID, i, pt.X, pt.Y); err != nil {
			return err
		}
	}

	_, err = tx.Exec(`UPDATE templates SET points = ?, updated_at = ? WHERE id = ?`,
		len(path), time.Now(), templateID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetPath retrieves the stored normalized path for a template in
// sequence order.
func (r *TemplateRepository) GetPath(templateID string) ([]stroke.Point, error) {
	rows, err := r.db.Query(
		`SELECT x, y FROM template_points
		 WHERE template_id = ?
		 ORDER BY sequence`,
		templateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var path []stroke.Point
	for rows.Next() {
		var pt stroke.Point
		if err := rows.Scan(&pt.X, &pt.Y); err != nil {
			return nil, err
		}
		path = append(path, pt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return path, nil
}
