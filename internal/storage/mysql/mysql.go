package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"marmoraria-pro/internal/config"
)

type Storage struct {
	db *sql.DB
}

func New(cfg config.Config) (*Storage, error) {
	const op = "storage.mysql.New"

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=%v",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.ParseTime,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	storage := &Storage{db: db}
	if err := storage.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return storage, nil
}

func (s *Storage) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id VARCHAR(191) PRIMARY KEY,
			client_name VARCHAR(255) NOT NULL,
			client_email VARCHAR(255) NOT NULL DEFAULT '',
			client_phone VARCHAR(64) NOT NULL DEFAULT '',
			order_number VARCHAR(64) NOT NULL DEFAULT '',
			status VARCHAR(32) NOT NULL,
			received_date VARCHAR(10) NOT NULL DEFAULT '',
			measurement_date VARCHAR(10) NOT NULL DEFAULT '',
			deadline_date VARCHAR(10) NOT NULL DEFAULT '',
			finished_date VARCHAR(10) NOT NULL DEFAULT '',
			commission_percentage DOUBLE NOT NULL DEFAULT 0,
			notes TEXT,
			is_external TINYINT(1) NOT NULL DEFAULT 0,
			environments JSON NOT NULL,
			position INT NOT NULL AUTO_INCREMENT UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			name VARCHAR(64) PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}
