package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Type returns the configured database backend, "sqlite" or "postgres"
func Type() string {
	if t := os.Getenv("DB_TYPE"); t != "" {
		return t
	}
	return "sqlite"
}

// Connect establishes the database connection and bootstraps the schema
func Connect() error {
	var err error

	if Type() == "postgres" {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
		DB, err = sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
	} else {
		dataDir := "data"
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}

		dbPath := filepath.Join(dataDir, "boilerbuddy.db")
		DB, err = sqlx.Connect("sqlite3", dbPath)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}

		if _, err := DB.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %v", err)
		}

		// SQLite doesn't support multiple writers
		DB.SetMaxOpenConns(1)
		DB.SetMaxIdleConns(1)
	}

	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if Type() == "postgres" {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS users (
			id %s,
			username TEXT UNIQUE NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			major TEXT NOT NULL DEFAULT '',
			graduation_year INTEGER NOT NULL DEFAULT 0,
			total_xp INTEGER NOT NULL DEFAULT 0,
			study_streak INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, serial),
		`
		CREATE TABLE IF NOT EXISTS topics (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			coverage TEXT NOT NULL DEFAULT '',
			frequency_estimate INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS user_progress (
			id %s,
			user_id INTEGER NOT NULL,
			topic_id TEXT NOT NULL,
			attempts INTEGER NOT NULL DEFAULT 0,
			correct INTEGER NOT NULL DEFAULT 0,
			mastery REAL NOT NULL DEFAULT 0.0,
			streak_correct INTEGER NOT NULL DEFAULT 0,
			streak_wrong INTEGER NOT NULL DEFAULT 0,
			easiness_factor REAL NOT NULL DEFAULT 2.5,
			interval_days INTEGER NOT NULL DEFAULT 0,
			review_count INTEGER NOT NULL DEFAULT 0,
			last_reviewed TIMESTAMP,
			next_review TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			UNIQUE(user_id, topic_id)
		)`, serial),
		`
		CREATE TABLE IF NOT EXISTS attempt_history (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			topic_id TEXT NOT NULL,
			correct BOOLEAN NOT NULL,
			mastery_at_time REAL NOT NULL DEFAULT 0.0,
			retention REAL NOT NULL DEFAULT 0.0,
			timestamp TIMESTAMP NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS achievements (
			id %s,
			name TEXT UNIQUE NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			badge_icon TEXT NOT NULL DEFAULT '',
			xp_reward INTEGER NOT NULL DEFAULT 0,
			requirement_type TEXT NOT NULL,
			requirement_value TEXT NOT NULL
		)`, serial),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS user_achievements (
			id %s,
			user_id INTEGER NOT NULL,
			achievement_id INTEGER NOT NULL,
			unlocked_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (achievement_id) REFERENCES achievements(id),
			UNIQUE(user_id, achievement_id)
		)`, serial),
		`
		CREATE TABLE IF NOT EXISTS activity_feed (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			event_type TEXT NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			xp_delta INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`
		CREATE TABLE IF NOT EXISTS challenges (
			id TEXT PRIMARY KEY,
			challenger_id INTEGER NOT NULL,
			opponent_id INTEGER NOT NULL,
			topic_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			challenger_score INTEGER,
			opponent_score INTEGER,
			winner_id INTEGER,
			created_at TIMESTAMP NOT NULL,
			expires_at TIMESTAMP NOT NULL,
			completed_at TIMESTAMP,
			FOREIGN KEY (challenger_id) REFERENCES users(id),
			FOREIGN KEY (opponent_id) REFERENCES users(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempt_history_user_topic ON attempt_history(user_id, topic_id, timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_feed_user ON activity_feed(user_id, created_at)`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %v", err)
		}
	}

	return seedAchievements()
}
