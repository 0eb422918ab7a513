package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pavannkulkarni/travel-companion-app/internal/models"
)

func validateMemory(m *models.Memory) error {
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidMemory)
	}
	if strings.TrimSpace(m.Image) == "" {
		return fmt.Errorf("%w: image is required", ErrInvalidMemory)
	}
	return nil
}

// CreateMemory publishes a memory with its tagged people.
func (s *Store) CreateMemory(ctx context.Context, memory *models.Memory) (*models.Memory, error) {
	memory.Title = strings.TrimSpace(memory.Title)
	if err := validateMemory(memory); err != nil {
		return nil, err
	}
	if memory.ID == "" {
		memory.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO memories (id, title, description, image, taken_at, location, likes, comments, is_liked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`, memory.ID, memory.Title, memory.Description, memory.Image, memory.TakenAt,
		memory.Location, memory.Likes, memory.Comments, memory.IsLiked).
		Scan(&memory.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert memory: %w", err)
	}

	for i, person := range memory.People {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO memory_people (memory_id, user_id, position)
			VALUES ($1, $2, $3)
		`, memory.ID, person.ID, i); err != nil {
			return nil, fmt.Errorf("insert memory person: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return memory, nil
}

// ListMemories returns the memories feed, newest first.
func (s *Store) ListMemories(ctx context.Context) ([]*models.Memory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, image, taken_at, location, likes, comments, is_liked, created_at
		FROM memories
		ORDER BY taken_at DESC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select memories: %w", err)
	}
	defer rows.Close()

	var memories []*models.Memory
	for rows.Next() {
		var m models.Memory
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Image, &m.TakenAt,
			&m.Location, &m.Likes, &m.Comments, &m.IsLiked, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan memory: %w", err)
		}
		memories = append(memories, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memories: %w", err)
	}

	for _, m := range memories {
		people, err := s.memoryPeople(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		m.People = people
	}

	return memories, nil
}

// GetMemory retrieves a single memory with its tagged people.
func (s *Store) GetMemory(ctx context.Context, id string) (*models.Memory, error) {
	var m models.Memory
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, image, taken_at, location, likes, comments, is_liked, created_at
		FROM memories
		WHERE id = $1
	`, id).Scan(&m.ID, &m.Title, &m.Description, &m.Image, &m.TakenAt,
		&m.Location, &m.Likes, &m.Comments, &m.IsLiked, &m.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select memory: %w", err)
	}

	people, err := s.memoryPeople(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.People = people

	return &m, nil
}

// ToggleMemoryLike flips the liked flag and adjusts the like counter.
func (s *Store) ToggleMemoryLike(ctx context.Context, id string) (*models.Memory, error) {
	var m models.Memory
	err := s.db.QueryRowContext(ctx, `
		UPDATE memories
		SET is_liked = NOT is_liked,
		    likes = likes + CASE WHEN is_liked THEN -1 ELSE 1 END
		WHERE id = $1
		RETURNING id, title, description, image, taken_at, location, likes, comments, is_liked, created_at
	`, id).Scan(&m.ID, &m.Title, &m.Description, &m.Image, &m.TakenAt,
		&m.Location, &m.Likes, &m.Comments, &m.IsLiked, &m.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMemoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("toggle memory like: %w", err)
	}

	people, err := s.memoryPeople(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.People = people

	return &m, nil
}

func (s *Store) memoryPeople(ctx context.Context, memoryID string) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.avatar, u.email, u.created_at
		FROM memory_people p
		JOIN users u ON u.id = p.user_id
		WHERE p.memory_id = $1
		ORDER BY p.position ASC
	`, memoryID)
	if err != nil {
		return nil, fmt.Errorf("select memory people: %w", err)
	}
	defer rows.Close()

	var people []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Avatar, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan memory person: %w", err)
		}
		people = append(people, u)
	}

	return people, rows.Err()
}
