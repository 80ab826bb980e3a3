package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fivver/internal/domain"
	"fivver/internal/logging"
	"fivver/internal/ports"
)

// SQLiteRepository implements ports.AttemptRepository using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.AttemptRepository = (*SQLiteRepository)(nil)

// gormLogger wraps the fivver logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv("FIVVER_DEBUG") == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository creates a new SQLiteRepository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	// Expand home directory if present
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database with WAL mode
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for concurrent access
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")

	if err := db.AutoMigrate(&AttemptModel{}); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return nil, fmt.Errorf("failed to migrate attempt schema: %w", err)
		}
	}

	return &SQLiteRepository{db: db}, nil
}

// Add inserts a new login attempt record.
func (r *SQLiteRepository) Add(ctx context.Context, attempt domain.LoginAttempt) error {
	model := toModel(attempt)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("attempt %s already exists", attempt.ID)
		}
		return fmt.Errorf("failed to add attempt: %w", err)
	}
	return nil
}

// Update rewrites an existing attempt record in place.
func (r *SQLiteRepository) Update(ctx context.Context, attempt domain.LoginAttempt) error {
	model := toModel(attempt)
	result := r.db.WithContext(ctx).Model(&AttemptModel{}).
		Where("id = ?", attempt.ID).
		Updates(map[string]any{
			"closed_at":    model.ClosedAt,
			"connected_at": model.ConnectedAt,
			"error":        model.Error,
			"outcome":      model.Outcome,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update attempt: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("attempt %s not found", attempt.ID)
	}
	return nil
}

// List returns up to limit attempts, most recent first. A non-positive
// limit returns everything.
func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]domain.LoginAttempt, error) {
	query := r.db.WithContext(ctx).Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []AttemptModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	attempts := make([]domain.LoginAttempt, 0, len(models))
	for _, model := range models {
		attempts = append(attempts, toDomain(model))
	}
	return attempts, nil
}

// Close closes the underlying database connection.
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

func toModel(attempt domain.LoginAttempt) AttemptModel {
	return AttemptModel{
		ClosedAt:    attempt.ClosedAt,
		ConnectedAt: attempt.ConnectedAt,
		Error:       attempt.Error,
		ID:          attempt.ID,
		Outcome:     string(attempt.Outcome),
		StartedAt:   attempt.StartedAt,
	}
}

func toDomain(model AttemptModel) domain.LoginAttempt {
	return domain.LoginAttempt{
		ClosedAt:    model.ClosedAt,
		ConnectedAt: model.ConnectedAt,
		Error:       model.Error,
		ID:          model.ID,
		Outcome:     domain.AttemptOutcome(model.Outcome),
		StartedAt:   model.StartedAt,
	}
}
