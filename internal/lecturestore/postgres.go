package lecturestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vteach/qa-backend/internal/domain/qamodel"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

// PostgresStore persists lecture transcripts. It implements
// qamodel.LectureStore.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *logger_i.Logger
}

func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{
		pool:   pool,
		logger: logger_i.NewLogger("lectureStore"),
	}, nil
}

// Initialize sets up the lectures table.
func (s *PostgresStore) Initialize(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS lectures (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL UNIQUE,
            content TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `)
	if err != nil {
		return fmt.Errorf("failed to create lectures table: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListLectures(ctx context.Context) ([]qamodel.Lecture, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT id, title, content, created_at, updated_at
        FROM lectures
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query lectures: %w", err)
	}
	defer rows.Close()

	var lectures []qamodel.Lecture
	for rows.Next() {
		var lec qamodel.Lecture
		if err := rows.Scan(&lec.Id, &lec.Title, &lec.Content, &lec.CreatedAt, &lec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lecture row: %w", err)
		}
		lectures = append(lectures, lec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lecture rows: %w", err)
	}
	return lectures, nil
}

func (s *PostgresStore) GetLecture(ctx context.Context, id int) (qamodel.Lecture, bool, error) {
	var lec qamodel.Lecture
	err := s.pool.QueryRow(ctx, `
        SELECT id, title, content, created_at, updated_at
        FROM lectures
        WHERE id = $1
    `, id).Scan(&lec.Id, &lec.Title, &lec.Content, &lec.CreatedAt, &lec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return lec, false, nil
		}
		return lec, false, fmt.Errorf("failed to query lecture %d: %w", id, err)
	}
	return lec, true, nil
}

// UpsertLecture inserts a lecture or, if a lecture with the same title
// already exists, replaces its content. Returns the lecture id.
func (s *PostgresStore) UpsertLecture(ctx context.Context, title, content string) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx, `
        INSERT INTO lectures (title, content)
        VALUES ($1, $2)
        ON CONFLICT (title) DO UPDATE
        SET content = EXCLUDED.content, updated_at = now()
        RETURNING id
    `, title, content).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert lecture %q: %w", title, err)
	}
	return id, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
