package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Templates table - stores template metadata
		`CREATE TABLE IF NOT EXISTS templates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			points INTEGER NOT NULL DEFAULT 0,
			samples INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Template points table - stores the normalized path of each
		// template so it can be reloaded without re-normalizing
		`CREATE TABLE IF NOT EXISTS template_points (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			template_id TEXT NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
			sequence INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL
		)`,

		// Template samples table - stores raw recorded strokes for training
		`CREATE TABLE IF NOT EXISTS template_samples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			template_id TEXT NOT NULL REFERENCES templates(id) ON DELETE CASCADE,
			sample_index INTEGER NOT NULL,
			data TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_template_points_template_id ON template_points(template_id)`,
		`CREATE INDEX IF NOT EXISTS idx_template_samples_template_id ON template_samples(template_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
