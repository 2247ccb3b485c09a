package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/codernaccotax/quizdrill/internal/logger"
	"github.com/codernaccotax/quizdrill/internal/models"
	"github.com/codernaccotax/quizdrill/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type attemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *sql.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Insert(ctx context.Context, a models.Attempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("inserting attempt: quiz_id=%s, score=%d/%d", a.QuizID, a.Score, a.Total)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO attempts (quiz_id, quiz_title, score, total, accuracy_percent, difficulty, duration_seconds, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, a.QuizID, a.QuizTitle, a.Score, a.Total, a.AccuracyPercent, a.Difficulty, a.DurationSeconds, a.FinishedAt)
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get attempt id: %v", err)
		return 0, err
	}
	log.Debug("attempt inserted: id=%d", id)
	return id, nil
}

func (r *attemptRepository) List(ctx context.Context, filter models.AttemptFilter) ([]models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("listing attempts: quiz_id=%s", filter.QuizID)

	query := sqlBuilder.
		Select("id", "quiz_id", "quiz_title", "score", "total", "accuracy_percent", "difficulty", "duration_seconds", "finished_at").
		From("attempts")

	query = applyFilter(query, filter)

	// Safe ORDER BY with validation
	orderBy := "finished_at"
	if filter.OrderBy == "score" {
		orderBy = "score"
	}
	orderDir := "DESC"
	if filter.OrderDir == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build attempt query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		if err := rows.Scan(&a.ID, &a.QuizID, &a.QuizTitle, &a.Score, &a.Total, &a.AccuracyPercent, &a.Difficulty, &a.DurationSeconds, &a.FinishedAt); err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		attempts = append(attempts, a)
	}
	log.Debug("found %d attempts", len(attempts))
	return attempts, rows.Err()
}

func (r *attemptRepository) Count(ctx context.Context, filter models.AttemptFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	query := sqlBuilder.Select("COUNT(*)").From("attempts")
	query = applyFilter(query, filter)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build attempt count query: %v", err)
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count attempts: %v", err)
		return 0, err
	}
	return count, nil
}

func applyFilter(query squirrel.SelectBuilder, filter models.AttemptFilter) squirrel.SelectBuilder {
	if filter.QuizID != "" {
		query = query.Where(squirrel.Eq{"quiz_id": filter.QuizID})
	}
	return query
}
