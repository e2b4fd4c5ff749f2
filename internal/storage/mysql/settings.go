package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const sheetURLKey = "sheet_url"

// GetSheetURL returns the configured published-CSV link, empty when no
// sheet was ever linked.
func (s *Storage) GetSheetURL(ctx context.Context) (string, error) {
	const op = "storage.mysql.GetSheetURL"

	var url string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE name = ?`, sheetURLKey).Scan(&url)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return url, nil
}

func (s *Storage) SaveSheetURL(ctx context.Context, url string) error {
	const op = "storage.mysql.SaveSheetURL"

	stmt := `INSERT INTO settings (name, value) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value)`
	if _, err := s.db.ExecContext(ctx, stmt, sheetURLKey, url); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ClearSheetConfiguration drops the sheet link and every synced project in
// one transaction, so the "Limpar" action is all-or-nothing.
func (s *Storage) ClearSheetConfiguration(ctx context.Context) error {
	const op = "storage.mysql.ClearSheetConfiguration"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	stmt := `INSERT INTO settings (name, value) VALUES (?, '')
		ON DUPLICATE KEY UPDATE value = ''`
	if _, err := tx.ExecContext(ctx, stmt, sheetURLKey); err != nil {
		return fmt.Errorf("%s: clear url: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE is_external = 1`); err != nil {
		return fmt.Errorf("%s: clear external: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
