package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory database exists per connection; pin the pool to one so
	// every caller sees the same database.
	if dataSourceName == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema.
func (db *DB) RunMigrations() error {
	migration := `
-- Users table (student and professor payloads share one row, selected by role)
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    nusp TEXT NOT NULL DEFAULT '',
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    role TEXT NOT NULL CHECK(role IN ('student', 'professor')),
    course TEXT,
    ideal_period INTEGER,
    faculty TEXT,
    department TEXT,
    resume_file_name TEXT,
    resume_content BLOB,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Projects table
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    professor_id TEXT NOT NULL,
    professor_name TEXT NOT NULL,
    faculty TEXT NOT NULL DEFAULT '',
    department TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL,
    area TEXT NOT NULL DEFAULT '',
    theme TEXT NOT NULL DEFAULT '',
    duration TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    keywords TEXT NOT NULL DEFAULT '[]',
    has_scholarship INTEGER NOT NULL DEFAULT 0,
    scholarship_details TEXT NOT NULL DEFAULT '',
    vacancies INTEGER NOT NULL CHECK(vacancies >= 0),
    posted_vacancies INTEGER NOT NULL,
    posted_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (professor_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_projects_professor ON projects(professor_id);

-- Applications table
CREATE TABLE IF NOT EXISTS applications (
    id TEXT PRIMARY KEY,
    student_id TEXT NOT NULL,
    project_id TEXT NOT NULL,
    professor_id TEXT NOT NULL,
    motivation TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('pending', 'selected', 'not_selected', 'accepted', 'declined')),
    viewed_by_student INTEGER NOT NULL DEFAULT 1,
    viewed_by_professor INTEGER NOT NULL DEFAULT 0,
    applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (student_id, project_id),
    FOREIGN KEY (student_id) REFERENCES users(id),
    FOREIGN KEY (project_id) REFERENCES projects(id)
);
CREATE INDEX IF NOT EXISTS idx_applications_student ON applications(student_id);
CREATE INDEX IF NOT EXISTS idx_applications_professor ON applications(professor_id);
CREATE INDEX IF NOT EXISTS idx_applications_status ON applications(status);

-- Activity feed
CREATE TABLE IF NOT EXISTS activity_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id TEXT NOT NULL,
    application_id TEXT,
    professor_id TEXT NOT NULL,
    actor_id TEXT NOT NULL,
    event_type TEXT NOT NULL,
    summary TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_activity_professor ON activity_log(professor_id);

-- Access tokens (issued on signup, mapped to user ids)
CREATE TABLE IF NOT EXISTS access_tokens (
    token_hash TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_tokens_user ON access_tokens(user_id);

-- Full-text search over listings (SQLite FTS5)
CREATE VIRTUAL TABLE IF NOT EXISTS projects_fts USING fts5(
    title,
    area,
    theme,
    keywords,
    description,
    content='projects',
    content_rowid='rowid'
);

-- Triggers to keep FTS index synchronized
CREATE TRIGGER IF NOT EXISTS projects_ai AFTER INSERT ON projects BEGIN
    INSERT INTO projects_fts(rowid, title, area, theme, keywords, description)
    VALUES (new.rowid, new.title, new.area, new.theme, new.keywords, new.description);
END;

CREATE TRIGGER IF NOT EXISTS projects_au AFTER UPDATE ON projects BEGIN
    INSERT INTO projects_fts(projects_fts, rowid, title, area, theme, keywords, description)
    VALUES('delete', old.rowid, old.title, old.area, old.theme, old.keywords, old.description);
    INSERT INTO projects_fts(rowid, title, area, theme, keywords, description)
    VALUES (new.rowid, new.title, new.area, new.theme, new.keywords, new.description);
END;
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
