// Package store provides Postgres persistence for trip groups, expenses,
// memories and the users they reference.
package store

import (
	"database/sql"
	"errors"
)

var (
	// ErrUserNotFound indicates an unknown user ID.
	ErrUserNotFound = errors.New("user not found")
	// ErrGroupNotFound indicates an unknown trip group ID.
	ErrGroupNotFound = errors.New("trip group not found")
	// ErrExpenseNotFound indicates an unknown expense ID.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrMemoryNotFound indicates an unknown memory ID.
	ErrMemoryNotFound = errors.New("memory not found")
	// ErrInvalidGroup signals a trip group that fails validation.
	ErrInvalidGroup = errors.New("invalid trip group")
	// ErrInvalidExpense signals an expense that fails validation.
	ErrInvalidExpense = errors.New("invalid expense")
	// ErrInvalidMemory signals a memory that fails validation.
	ErrInvalidMemory = errors.New("invalid memory")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}
