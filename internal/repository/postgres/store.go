package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"taskgarden/internal/config"
	"taskgarden/internal/logger"
	"taskgarden/internal/models/task"
	"taskgarden/internal/models/user"
	"taskgarden/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const slowQuery = 100 * time.Millisecond

// pgUniqueViolation is the SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, cfg config.DatabaseConfig) (*Storage, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConnections)
	}
	if cfg.MinConnections > 0 {
		poolCfg.MinConns = int32(cfg.MinConnections)
	}
	if cfg.IdleTimeout > 0 {
		poolCfg.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	logger.Info("Repository: connected to PostgreSQL")
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: PostgreSQL connections closed")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: ping failed", err)
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// --- users ---

func (s *Storage) CreateUser(ctx context.Context, u *user.User) error {
	start := time.Now()

	query := `INSERT INTO users (username, email, password_hash)
			VALUES ($1, $2, $3)
			RETURNING id, created_at`

	err := s.pool.QueryRow(ctx, query, u.Username, u.Email, u.PasswordHash).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return repository.ErrDuplicate
		}
		logger.Error("Repository: create user failed", err)
		return fmt.Errorf("create user: %w", err)
	}

	warnIfSlow(start, "create user")
	return nil
}

func (s *Storage) GetUserByID(ctx context.Context, id int64) (*user.User, error) {
	return s.getUser(ctx, `WHERE id = $1`, id)
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	return s.getUser(ctx, `WHERE username = $1`, username)
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.getUser(ctx, `WHERE email = $1`, email)
}

func (s *Storage) getUser(ctx context.Context, where string, arg any) (*user.User, error) {
	start := time.Now()

	query := `SELECT id, username, email, password_hash, created_at FROM users ` + where

	u := &user.User{}
	err := s.pool.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		logger.Error("Repository: get user failed", err)
		return nil, fmt.Errorf("get user: %w", err)
	}

	warnIfSlow(start, "get user")
	return u, nil
}

// --- sessions ---

func (s *Storage) CreateSession(ctx context.Context, sess *user.Session) error {
	start := time.Now()

	query := `INSERT INTO sessions (token, user_id, created_at, expires_at)
			VALUES ($1, $2, $3, $4)`

	_, err := s.pool.Exec(ctx, query, sess.Token, sess.UserID, sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		logger.Error("Repository: create session failed", err)
		return fmt.Errorf("create session: %w", err)
	}

	warnIfSlow(start, "create session")
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token uuid.UUID) (*user.Session, error) {
	start := time.Now()

	query := `SELECT token, user_id, created_at, expires_at FROM sessions WHERE token = $1`

	sess := &user.Session{}
	err := s.pool.QueryRow(ctx, query, token).
		Scan(&sess.Token, &sess.UserID, &sess.CreatedAt, &sess.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		logger.Error("Repository: get session failed", err)
		return nil, fmt.Errorf("get session: %w", err)
	}

	warnIfSlow(start, "get session")
	return sess, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		logger.Error("Repository: delete session failed", err)
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Storage) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < $1`, now)
	if err != nil {
		logger.Error("Repository: delete expired sessions failed", err)
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// --- tasks ---

const taskColumns = `id, user_id, title, description, category, priority, status,
			created_at, updated_at, completed_at, due_date`

func (s *Storage) CreateTask(ctx context.Context, t *task.Task) error {
	start := time.Now()

	query := `INSERT INTO tasks
			(user_id, title, description, category, priority, status, completed_at, due_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at, updated_at`

	err := s.pool.QueryRow(ctx, query,
		t.UserID,
		t.Title,
		t.Description,
		t.Category,
		t.Priority,
		t.Status,
		t.CompletedAt,
		t.DueDate,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		logger.Error("Repository: create task failed", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("create task: %w", err)
	}

	warnIfSlow(start, "create task")
	return nil
}

func (s *Storage) GetTask(ctx context.Context, userID, taskID int64) (*task.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`

	t := &task.Task{}
	err := s.pool.QueryRow(ctx, query, taskID, userID).Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Category,
		&t.Priority,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.CompletedAt,
		&t.DueDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		logger.Error("Repository: get task failed", err)
		return nil, fmt.Errorf("get task: %w", err)
	}

	warnIfSlow(start, "get task")
	return t, nil
}

func (s *Storage) ListTasks(ctx context.Context, userID int64, filter repository.TaskFilter) ([]*task.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	args := []any{userID}

	if filter.Category != "" && filter.Category != "all" {
		args = append(args, filter.Category)
		query += ` AND category = $` + strconv.Itoa(len(args))
	}
	if filter.Status != "" && filter.Status != "all" {
		args = append(args, filter.Status)
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: list tasks failed", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}

	warnIfSlow(start, "list tasks")
	return tasks, nil
}

func (s *Storage) UpdateTask(ctx context.Context, t *task.Task) error {
	start := time.Now()

	query := `UPDATE tasks
			SET title = $1,
				description = $2,
				category = $3,
				priority = $4,
				status = $5,
				completed_at = $6,
				due_date = $7,
				updated_at = NOW()
			WHERE id = $8 AND user_id = $9
			RETURNING updated_at`

	err := s.pool.QueryRow(ctx, query,
		t.Title,
		t.Description,
		t.Category,
		t.Priority,
		t.Status,
		t.CompletedAt,
		t.DueDate,
		t.ID,
		t.UserID,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		logger.Error("Repository: update task failed", err)
		return fmt.Errorf("update task: %w", err)
	}

	warnIfSlow(start, "update task")
	return nil
}

func (s *Storage) DeleteTask(ctx context.Context, userID, taskID int64) error {
	start := time.Now()

	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
	if err != nil {
		logger.Error("Repository: delete task failed", err)
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	warnIfSlow(start, "delete task")
	return nil
}

func (s *Storage) RecentTasks(ctx context.Context, userID int64, limit int) ([]*task.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + ` FROM tasks
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2`

	rows, err := s.pool.Query(ctx, query, userID, limit)
	if err != nil {
		logger.Error("Repository: recent tasks failed", err)
		return nil, fmt.Errorf("recent tasks: %w", err)
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}

	warnIfSlow(start, "recent tasks")
	return tasks, nil
}

func (s *Storage) Statistics(ctx context.Context, userID int64, today time.Time) (repository.TaskStats, error) {
	start := time.Now()

	query := `SELECT
				COUNT(*),
				COUNT(*) FILTER (WHERE status = 'completed'),
				COUNT(*) FILTER (WHERE status = 'completed' AND completed_at::date = $2::date)
			FROM tasks
			WHERE user_id = $1`

	var stats repository.TaskStats
	err := s.pool.QueryRow(ctx, query, userID, today.Format(task.DateLayout)).
		Scan(&stats.Total, &stats.Completed, &stats.TodayCompleted)
	if err != nil {
		logger.Error("Repository: statistics failed", err)
		return repository.TaskStats{}, fmt.Errorf("statistics: %w", err)
	}

	warnIfSlow(start, "statistics")
	return stats, nil
}

func (s *Storage) CompletionsByDay(ctx context.Context, userID int64, from, to time.Time) (map[string]int, error) {
	start := time.Now()

	query := `SELECT completed_at::date AS day, COUNT(*)
			FROM tasks
			WHERE user_id = $1
				AND status = 'completed'
				AND completed_at::date >= $2::date
				AND completed_at::date <= $3::date
			GROUP BY day`

	rows, err := s.pool.Query(ctx, query, userID,
		from.Format(task.DateLayout), to.Format(task.DateLayout))
	if err != nil {
		logger.Error("Repository: completions by day failed", err)
		return nil, fmt.Errorf("completions by day: %w", err)
	}
	defer rows.Close()

	res := make(map[string]int)
	for rows.Next() {
		var day time.Time
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			logger.Warn("Repository: scan completion bucket failed", zap.Error(err))
			continue
		}
		res[day.Format(task.DateLayout)] = count
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: row iteration failed", err)
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	warnIfSlow(start, "completions by day")
	return res, nil
}

func scanTasks(rows pgx.Rows) ([]*task.Task, error) {
	tasks := []*task.Task{}
	for rows.Next() {
		t := &task.Task{}
		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Title,
			&t.Description,
			&t.Category,
			&t.Priority,
			&t.Status,
			&t.CreatedAt,
			&t.UpdatedAt,
			&t.CompletedAt,
			&t.DueDate,
		)
		if err != nil {
			logger.Warn("Repository: scan task failed", zap.Error(err))
			continue
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Repository: row iteration failed", err)
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return tasks, nil
}

func warnIfSlow(start time.Time, op string) {
	if elapsed := time.Since(start); elapsed > slowQuery {
		logger.Warn("Repository: slow query",
			zap.String("op", op),
			zap.Duration("ms", elapsed))
	}
}
