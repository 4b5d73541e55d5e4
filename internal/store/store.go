package store

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store holds the gorm handle and hands out repositories.
type Store struct {
	db *gorm.DB
}

// Open connects to the database named by dsn and runs auto-migration.
// Postgres DSNs ("postgres://...") get the postgres driver; anything else
// is treated as a SQLite path (":memory:" works for tests).
func Open(dsn string) (*Store, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(
		&Session{},
		&LessonPlan{},
		&LessonPlanActivity{},
		&LLMRequestEvent{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB exposes the underlying gorm handle for raw queries.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Sessions returns the session repository.
func (s *Store) Sessions() SessionRepo {
	return &sessionRepo{db: s.db}
}

// LessonPlans returns the lesson-plan repository.
func (s *Store) LessonPlans() LessonPlanRepo {
	return &lessonPlanRepo{db: s.db}
}

// LLMEvents returns the LLM request audit repository.
func (s *Store) LLMEvents() LLMEventRepo {
	return &llmEventRepo{db: s.db}
}
