package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cleared-dev/mayores/internal/model"
)

// timestampFormat sorts lexically in time order.
const timestampFormat = "2006-01-02T15:04:05.000000000Z"

// ReportStore saves and loads sub-program reports.
type ReportStore struct {
	db  *DB
	now func() time.Time
}

const reportColumns = `id, user_id, name, report_type, program_id, report_date,
	data, totals, metadata, created_at, updated_at`

// Save inserts r when it has no id and updates it otherwise. The user row is
// created on first use. The stored report is returned.
func (s *ReportStore) Save(ctx context.Context, r model.Report) (model.Report, error) {
	if r.UserID == "" {
		return model.Report{}, errors.New("saving report: user id is required")
	}
	if r.Name == "" {
		return model.Report{}, errors.New("saving report: name is required")
	}
	if r.ReportType == "" {
		r.ReportType = r.ProgramID.String()
	}
	if len(r.Data) == 0 {
		r.Data = json.RawMessage("[]")
	}

	now := s.clock().UTC()
	err := s.db.transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO users (id, created_at) VALUES (?, ?)`,
			r.UserID, now.Format(timestampFormat),
		); err != nil {
			return fmt.Errorf("ensuring user: %w", err)
		}

		if r.ID == 0 {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO reports (user_id, name, report_type, program_id, report_date,
					data, totals, metadata, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				r.UserID, r.Name, r.ReportType, int(r.ProgramID), r.Date.Format(model.DateFormat),
				string(r.Data), nullJSON(r.Totals), nullJSON(r.Metadata),
				now.Format(timestampFormat), now.Format(timestampFormat),
			)
			if err != nil {
				return fmt.Errorf("inserting report: %w", err)
			}
			id, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("reading report id: %w", err)
			}
			r.ID = id
			r.CreatedAt = now
			r.UpdatedAt = now
			return nil
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE reports SET name = ?, report_type = ?, program_id = ?, report_date = ?,
				data = ?, totals = ?, metadata = ?, updated_at = ?
			WHERE id = ? AND user_id = ?`,
			r.Name, r.ReportType, int(r.ProgramID), r.Date.Format(model.DateFormat),
			string(r.Data), nullJSON(r.Totals), nullJSON(r.Metadata),
			now.Format(timestampFormat), r.ID, r.UserID,
		)
		if err != nil {
			return fmt.Errorf("updating report %d: %w", r.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("updating report %d: %w", r.ID, err)
		}
		if n == 0 {
			return fmt.Errorf("updating report %d: %w", r.ID, ErrNotFound)
		}
		r.UpdatedAt = now
		return nil
	})
	if err != nil {
		return model.Report{}, err
	}
	return r, nil
}

// Get loads one report. A missing id yields ErrNotFound.
func (s *ReportStore) Get(ctx context.Context, id int64) (model.Report, error) {
	row := s.db.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE id = ?`, id)
	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Report{}, fmt.Errorf("report %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Report{}, fmt.Errorf("loading report %d: %w", id, err)
	}
	return r, nil
}

// List returns the user's reports, newest first.
func (s *ReportStore) List(ctx context.Context, userID string) ([]model.Report, error) {
	return s.query(ctx, `SELECT `+reportColumns+` FROM reports
		WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
}

// ListByProgram returns the user's reports of one sub-program, newest first.
func (s *ReportStore) ListByProgram(ctx context.Context, userID string, program model.ProgramID) ([]model.Report, error) {
	return s.query(ctx, `SELECT `+reportColumns+` FROM reports
		WHERE user_id = ? AND program_id = ? ORDER BY created_at DESC, id DESC`, userID, int(program))
}

// Delete removes a report. A missing id yields ErrNotFound.
func (s *ReportStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting report %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting report %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("report %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *ReportStore) query(ctx context.Context, query string, args ...any) ([]model.Report, error) {
	rows, err := s.db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var out []model.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	return out, nil
}

func (s *ReportStore) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(sc scanner) (model.Report, error) {
	var (
		r                model.Report
		program          int
		date, data       string
		totals, metadata sql.NullString
		created, updated string
	)
	if err := sc.Scan(&r.ID, &r.UserID, &r.Name, &r.ReportType, &program, &date,
		&data, &totals, &metadata, &created, &updated); err != nil {
		return model.Report{}, err
	}
	r.ProgramID = model.ProgramID(program)
	r.Data = json.RawMessage(data)
	if totals.Valid {
		r.Totals = json.RawMessage(totals.String)
	}
	if metadata.Valid {
		r.Metadata = json.RawMessage(metadata.String)
	}
	if d, err := time.Parse(model.DateFormat, date); err == nil {
		r.Date = d
	}
	if t, err := time.Parse(timestampFormat, created); err == nil {
		r.CreatedAt = t
	}
	if t, err := time.Parse(timestampFormat, updated); err == nil {
		r.UpdatedAt = t
	}
	return r, nil
}

func nullJSON(raw json.RawMessage) sql.NullString {
	if len(raw) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}
