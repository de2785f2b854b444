// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: One exercise_logs table, unique per user, exercise and date.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exercise_logs (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		exercise_id TEXT NOT NULL,
		exercise_name TEXT NOT NULL DEFAULT '',
		day_type TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		weight REAL,
		completed INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, exercise_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_exercise_logs_user_date ON exercise_logs(user_id, date);
	CREATE INDEX IF NOT EXISTS idx_exercise_logs_exercise ON exercise_logs(exercise_id);
	`

	_, err := d.db.Exec(schema)
	return err
}
