package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Elgenzay/kava.elg.gg/internal/biz/domain"
	"github.com/Elgenzay/kava.elg.gg/internal/biz/repo"
)

const scheduleColumns = `location,
	sun1, mon1, tue1, wed1, thu1, fri1, sat1,
	sun2, mon2, tue2, wed2, thu2, fri2, sat2`

// scheduleRepo implements the schedule repository
type scheduleRepo struct {
	db             *sql.DB
	publicDataPath string
}

// NewScheduleRepo creates a schedule repository. publicDataPath points at
// the PublicData.json document served by the website.
func NewScheduleRepo(db *sql.DB, publicDataPath string) repo.ScheduleRepo {
	return &scheduleRepo{db: db, publicDataPath: publicDataPath}
}

// PublicData reads the public data document
func (r *scheduleRepo) PublicData(ctx context.Context) (*domain.PublicData, error) {
	raw, err := os.ReadFile(r.publicDataPath)
	if err != nil {
		return nil, err
	}
	var pub domain.PublicData
	if err := json.Unmarshal(raw, &pub); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.publicDataPath, err)
	}
	return &pub, nil
}

// ListRows returns all rows ordered by id
func (r *scheduleRepo) ListRows(ctx context.Context) ([]domain.ScheduleRow, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+scheduleColumns+` FROM schedule ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ScheduleRow
	for rows.Next() {
		var row domain.ScheduleRow
		dest := []any{&row.Location}
		for i := range row.Week1 {
			dest = append(dest, &row.Week1[i])
		}
		for i := range row.Week2 {
			dest = append(dest, &row.Week2[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// ReplaceRows truncates the table and inserts rows in one transaction
func (r *scheduleRepo) ReplaceRows(ctx context.Context, rows []domain.ScheduleRow) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule`); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO schedule (`+scheduleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		args := []any{row.Location}
		for _, cell := range row.Week1 {
			args = append(args, cell)
		}
		for _, cell := range row.Week2 {
			args = append(args, cell)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert schedule row %q: %w", row.Location, err)
		}
	}

	return tx.Commit()
}
