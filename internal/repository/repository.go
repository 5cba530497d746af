package repository

import (
	"database/sql"
	"time"
)

type Repository struct {
	Ideas IdeaRepository
}

func NewRepository(db *sql.DB, queryTimeout time.Duration) *Repository {
	return &Repository{
		Ideas: NewIdeaRepository(db, queryTimeout),
	}
}
