package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/namedeck/namedeck/internal/domain/model"
	"github.com/namedeck/namedeck/pkg/metrics"
)

//go:embed schema.sql
var schema string

// SQLiteStore implements Store on a sqlite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (and if needed initializes) the database at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) AddReviewer(ctx context.Context, name string) (model.Reviewer, error) {
	if _, err := s.ReviewerByName(ctx, name); err == nil {
		return model.Reviewer{}, fmt.Errorf("reviewer %q: %w", name, ErrDuplicateName)
	} else if !errors.Is(err, ErrNotFound) {
		return model.Reviewer{}, err
	}

	r := model.Reviewer{ID: uuid.New().String(), Name: name}
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO reviewers (id, name) VALUES (?, ?)", r.ID, r.Name,
	); err != nil {
		return model.Reviewer{}, fmt.Errorf("insert reviewer: %w", err)
	}
	return r, nil
}

func (s *SQLiteStore) ReviewerByID(ctx context.Context, id string) (model.Reviewer, error) {
	var r model.Reviewer
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name FROM reviewers WHERE id = ?", id,
	).Scan(&r.ID, &r.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reviewer{}, fmt.Errorf("reviewer %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Reviewer{}, fmt.Errorf("get reviewer: %w", err)
	}
	return r, nil
}

func (s *SQLiteStore) ReviewerByName(ctx context.Context, name string) (model.Reviewer, error) {
	var r model.Reviewer
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name FROM reviewers WHERE name = ?", name,
	).Scan(&r.ID, &r.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reviewer{}, fmt.Errorf("reviewer %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return model.Reviewer{}, fmt.Errorf("get reviewer: %w", err)
	}
	return r, nil
}

func (s *SQLiteStore) ListReviewers(ctx context.Context) ([]model.Reviewer, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM reviewers ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list reviewers: %w", err)
	}
	defer rows.Close()

	var reviewers []model.Reviewer
	for rows.Next() {
		var r model.Reviewer
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("scan reviewer: %w", err)
		}
		reviewers = append(reviewers, r)
	}
	return reviewers, rows.Err()
}

func (s *SQLiteStore) AddCandidate(ctx context.Context, c model.Candidate) (model.Candidate, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds())) }()

	if _, err := s.CandidateByName(ctx, c.Name); err == nil {
		return model.Candidate{}, fmt.Errorf("candidate %q: %w", c.Name, ErrDuplicateName)
	} else if !errors.Is(err, ErrNotFound) {
		return model.Candidate{}, err
	}

	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC()
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO candidates (id, name, gender, origin, meaning, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		c.ID, c.Name, c.Gender, c.Origin, c.Meaning, c.CreatedAt,
	); err != nil {
		return model.Candidate{}, fmt.Errorf("insert candidate: %w", err)
	}
	return c, nil
}

func (s *SQLiteStore) CandidateByID(ctx context.Context, id string) (model.Candidate, error) {
	return s.candidateWhere(ctx, "id = ?", id)
}

func (s *SQLiteStore) CandidateByName(ctx context.Context, name string) (model.Candidate, error) {
	return s.candidateWhere(ctx, "name = ?", name)
}

func (s *SQLiteStore) candidateWhere(ctx context.Context, where, arg string) (model.Candidate, error) {
	var c model.Candidate
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, gender, origin, meaning, created_at FROM candidates WHERE "+where, arg,
	).Scan(&c.ID, &c.Name, &c.Gender, &c.Origin, &c.Meaning, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Candidate{}, fmt.Errorf("candidate %s: %w", arg, ErrNotFound)
	}
	if err != nil {
		return model.Candidate{}, fmt.Errorf("get candidate: %w", err)
	}
	return c, nil
}

func (s *SQLiteStore) ListCandidates(ctx context.Context) ([]model.Candidate, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds())) }()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, gender, origin, meaning, created_at FROM candidates ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []model.Candidate
	for rows.Next() {
		var c model.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Gender, &c.Origin, &c.Meaning, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (s *SQLiteStore) CountCandidates(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM candidates").Scan(&n); err != nil {
		return 0, fmt.Errorf("count candidates: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) AppendSwipe(ctx context.Context, sw model.SwipeEvent) (model.SwipeEvent, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds())) }()

	sw.ID = uuid.New().String()
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO swipes (id, reviewer_id, candidate_id, decision, ts) VALUES (?, ?, ?, ?, ?)",
		sw.ID, sw.ReviewerID, sw.CandidateID, string(sw.Decision), sw.TS,
	); err != nil {
		return model.SwipeEvent{}, fmt.Errorf("insert swipe: %w", err)
	}
	return sw, nil
}

func (s *SQLiteStore) SwipesByReviewer(ctx context.Context, reviewerID string) ([]model.SwipeEvent, error) {
	return s.swipesWhere(ctx,
		"SELECT id, reviewer_id, candidate_id, decision, ts FROM swipes WHERE reviewer_id = ?", reviewerID)
}

func (s *SQLiteStore) AllSwipes(ctx context.Context) ([]model.SwipeEvent, error) {
	return s.swipesWhere(ctx,
		"SELECT id, reviewer_id, candidate_id, decision, ts FROM swipes")
}

func (s *SQLiteStore) swipesWhere(ctx context.Context, query string, args ...any) ([]model.SwipeEvent, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query swipes: %w", err)
	}
	defer rows.Close()

	var swipes []model.SwipeEvent
	for rows.Next() {
		var sw model.SwipeEvent
		var decision string
		if err := rows.Scan(&sw.ID, &sw.ReviewerID, &sw.CandidateID, &decision, &sw.TS); err != nil {
			return nil, fmt.Errorf("scan swipe: %w", err)
		}
		sw.Decision = model.Decision(decision)
		swipes = append(swipes, sw)
	}
	return swipes, rows.Err()
}

func (s *SQLiteStore) HasSwipe(ctx context.Context, reviewerID, candidateID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM swipes WHERE reviewer_id = ? AND candidate_id = ?",
		reviewerID, candidateID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check swipe: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) CountSwipes(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM swipes").Scan(&n); err != nil {
		return 0, fmt.Errorf("count swipes: %w", err)
	}
	return n, nil
}
