package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/magallanes/coursecatalog/internal/app/models"
	"github.com/magallanes/coursecatalog/internal/db"
	"github.com/magallanes/coursecatalog/internal/pkg/logger"
)

const courseRecordsTable = "course_records"

// insertBatchSize keeps each INSERT well below the Postgres bind parameter limit.
const insertBatchSize = 1000

const createCourseRecordsSQL = `
CREATE TABLE IF NOT EXISTS course_records (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	specialization TEXT NOT NULL,
	description TEXT NOT NULL,
	degree TEXT NOT NULL DEFAULT '',
	year TEXT NOT NULL,
	tags TEXT[] NOT NULL DEFAULT '{}',
	published BOOLEAN NOT NULL DEFAULT TRUE,
	imported_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// Transactor runs a function inside a database transaction
type Transactor interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// PostgresCourseSink writes course records into the course_records table.
type PostgresCourseSink struct {
	db Transactor
	sb squirrel.StatementBuilderType
}

// NewPostgresCourseSink creates a new PostgresCourseSink
func NewPostgresCourseSink(database Transactor) *PostgresCourseSink {
	return &PostgresCourseSink{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// InsertMany implements CourseSink. The table is created on first use and all
// batches commit together.
func (s *PostgresCourseSink) InsertMany(ctx context.Context, records []models.CourseRecord) error {
	if len(records) == 0 {
		return nil
	}

	return s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, createCourseRecordsSQL); err != nil {
			logger.Error().Err(err).Msg("Error ensuring course_records table")
			return fmt.Errorf("error creating %s table: %w", courseRecordsTable, err)
		}

		for start := 0; start < len(records); start += insertBatchSize {
			end := min(start+insertBatchSize, len(records))

			sql, args, err := s.buildInsert(records[start:end])
			if err != nil {
				logger.Error().Err(err).Msg("Error building insert course records SQL")
				return fmt.Errorf("failed to build insert course records query: %w", err)
			}

			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				logger.Error().Err(err).Int("batchStart", start).Msg("Error executing insert course records query")
				return fmt.Errorf("error inserting course records: %w", err)
			}
		}
		return nil
	})
}

func (s *PostgresCourseSink) buildInsert(records []models.CourseRecord) (string, []interface{}, error) {
	q := s.sb.Insert(courseRecordsTable).
		Columns("name", "specialization", "description", "degree", "year", "tags", "published")
	for _, r := range records {
		q = q.Values(r.Name, r.Specialization, r.Description, r.Degree, r.Year, r.Tags, r.Published)
	}
	return q.ToSql()
}
