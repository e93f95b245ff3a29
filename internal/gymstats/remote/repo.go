package remote

import (
	_ "embed"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the DDL of the remote ledger tables.
//
//go:embed schema.sql
var Schema string

var (
	// ErrUnavailable is returned by every call when no remote endpoint is configured.
	ErrUnavailable         = errors.New("remote ledger unavailable")
	ErrSessionOwnedByOther = errors.New("session belongs to another user")
)

// Repo is the postgres backed remote ledger. Every call is scoped by user id.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}
