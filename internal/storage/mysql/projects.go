package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"marmoraria-pro/internal/storage"
)

const projectColumns = `id, client_name, client_email, client_phone, order_number, status,
	received_date, measurement_date, deadline_date, finished_date,
	commission_percentage, notes, is_external, environments`

// GetProjects returns the whole collection in insertion order, which is the
// display order.
func (s *Storage) GetProjects(ctx context.Context) ([]*storage.Project, error) {
	const op = "storage.mysql.GetProjects"

	rows, err := s.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var projects []*storage.Project
	for rows.Next() {
		project, err := scanProject(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		projects = append(projects, project)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return projects, nil
}

func (s *Storage) GetProject(ctx context.Context, id string) (*storage.Project, error) {
	const op = "storage.mysql.GetProject"

	row := s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	project, err := scanProject(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrProjectNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return project, nil
}

// SaveProject inserts or replaces one project by id.
func (s *Storage) SaveProject(ctx context.Context, p *storage.Project) error {
	const op = "storage.mysql.SaveProject"

	if err := s.upsert(ctx, s.db, p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SaveProjects writes an imported batch in one transaction.
func (s *Storage) SaveProjects(ctx context.Context, projects []*storage.Project) error {
	const op = "storage.mysql.SaveProjects"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	for _, p := range projects {
		if err := s.upsert(ctx, tx, p); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteProject removes a manually entered project. Projects owned by the
// sheet sync are refused, they reappear on the next sync anyway.
func (s *Storage) DeleteProject(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteProject"

	// one statement, so a concurrent sync cannot re-create the id between
	// an external check and the delete
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND is_external = 0`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected > 0 {
		return nil
	}

	var isExternal bool
	err = s.db.QueryRowContext(ctx, `SELECT is_external FROM projects WHERE id = ?`, id).Scan(&isExternal)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrProjectNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if isExternal {
		return storage.ErrExternalProject
	}
	return storage.ErrProjectNotFound
}

// ReplaceExternalProjects swaps the whole external set atomically: every
// previously synced project goes away, manual ones are never touched.
func (s *Storage) ReplaceExternalProjects(ctx context.Context, projects []*storage.Project) error {
	const op = "storage.mysql.ReplaceExternalProjects"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE is_external = 1`); err != nil {
		return fmt.Errorf("%s: clear external: %w", op, err)
	}

	for _, p := range projects {
		p.IsExternal = true
		if err := s.upsert(ctx, tx, p); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Storage) upsert(ctx context.Context, db execer, p *storage.Project) error {
	environments, err := json.Marshal(p.Environments)
	if err != nil {
		return fmt.Errorf("marshal environments: %w", err)
	}

	stmt := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			client_name = VALUES(client_name),
			client_email = VALUES(client_email),
			client_phone = VALUES(client_phone),
			order_number = VALUES(order_number),
			status = VALUES(status),
			received_date = VALUES(received_date),
			measurement_date = VALUES(measurement_date),
			deadline_date = VALUES(deadline_date),
			finished_date = VALUES(finished_date),
			commission_percentage = VALUES(commission_percentage),
			notes = VALUES(notes),
			is_external = VALUES(is_external),
			environments = VALUES(environments)`

	_, err = db.ExecContext(ctx, stmt,
		p.ID, p.ClientName, p.ClientEmail, p.ClientPhone, p.OrderNumber, string(p.Status),
		p.ReceivedDate, p.MeasurementDate, p.DeadlineDate, p.FinishedDate,
		p.CommissionPercentage, p.Notes, p.IsExternal, environments,
	)
	return err
}

func scanProject(scan func(dest ...any) error) (*storage.Project, error) {
	var (
		p            storage.Project
		status       string
		notes        sql.NullString
		environments []byte
	)

	err := scan(&p.ID, &p.ClientName, &p.ClientEmail, &p.ClientPhone, &p.OrderNumber, &status,
		&p.ReceivedDate, &p.MeasurementDate, &p.DeadlineDate, &p.FinishedDate,
		&p.CommissionPercentage, &notes, &p.IsExternal, &environments)
	if err != nil {
		return nil, err
	}

	p.Status = storage.ProjectStatus(status)
	if notes.Valid {
		p.Notes = notes.String
	}
	if err := json.Unmarshal(environments, &p.Environments); err != nil {
		return nil, fmt.Errorf("unmarshal environments: %w", err)
	}

	return &p, nil
}
