package repository

import (
	"database/sql"
	"fmt"

	"shopapi/internal/config"

	_ "github.com/lib/pq"
)

type Repositories struct {
	DB      *sql.DB
	User    UserRepository
	Product ProductRepository
	Cart    CartRepository
	Order   OrderRepository
}

func New(cfg *config.Config) (*Repositories, error) {
	db, err := sql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repositories{
		DB:      db,
		User:    NewUserRepo(db),
		Product: NewProductRepo(db),
		Cart:    NewCartRepo(db),
		Order:   NewOrderRepo(db),
	}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
