package team

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// SQLRepository implements Repository on database/sql via sqlx. It serves the
// sqlite and mysql backends; dialect differences are limited to the
// today-count date expression and placeholder style (handled by Rebind).
type SQLRepository struct {
	db     *sqlx.DB
	driver string
}

// NewSQLRepository creates a Repository backed by the given sqlx handle.
// driver is "sqlite" or "mysql".
func NewSQLRepository(db *sqlx.DB, driver string) Repository {
	return &SQLRepository{db: db, driver: driver}
}

// Insert stores a new team row with the explicit ID and CreatedAt set on t.
func (r *SQLRepository) Insert(ctx context.Context, t *Team) error {
	query := r.db.Rebind(`
		INSERT INTO teams (id, team_name, student1_name, student1_regno, student2_name, student2_regno, year, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.TeamName, t.Student1Name, t.Student1RegNo, t.Student2Name, t.Student2RegNo, t.Year, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}

	return nil
}

// GetByID retrieves a single team by its ID.
func (r *SQLRepository) GetByID(ctx context.Context, id int) (*Team, error) {
	var t Team
	err := r.db.GetContext(ctx, &t, r.db.Rebind(`SELECT `+teamColumns+` FROM teams WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return &t, nil
}

// GetByName retrieves a team by name, compared case-insensitively.
func (r *SQLRepository) GetByName(ctx context.Context, name string) (*Team, error) {
	var t Team
	query := r.db.Rebind(`SELECT ` + teamColumns + ` FROM teams WHERE LOWER(team_name) = LOWER(?)`)
	err := r.db.GetContext(ctx, &t, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team by name: %w", err)
	}

	return &t, nil
}

// FindByRegNo retrieves the team holding regno in either student slot.
func (r *SQLRepository) FindByRegNo(ctx context.Context, regno string) (*Team, error) {
	var t Team
	query := r.db.Rebind(`SELECT ` + teamColumns + ` FROM teams WHERE student1_regno = ? OR student2_regno = ?`)
	err := r.db.GetContext(ctx, &t, query, regno, regno)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team by regno: %w", err)
	}

	return &t, nil
}

// ListIDs returns all team IDs in ascending order.
func (r *SQLRepository) ListIDs(ctx context.Context) ([]int, error) {
	var ids []int
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM teams ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("listing team ids: %w", err)
	}
	return ids, nil
}

// List returns one page of teams matching the filter, newest first, plus the
// total count for the same filter.
func (r *SQLRepository) List(ctx context.Context, f Filter) ([]Team, int, error) {
	var conds []string
	var args []any

	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		conds = append(conds, `(LOWER(team_name) LIKE ? OR LOWER(student1_name) LIKE ? OR LOWER(student2_name) LIKE ? OR LOWER(student1_regno) LIKE ? OR LOWER(student2_regno) LIKE ?)`)
		args = append(args, pattern, pattern, pattern, pattern, pattern)
	}
	if f.Year != "" {
		conds = append(conds, `year = ?`)
		args = append(args, f.Year)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	countQuery := r.db.Rebind(`SELECT COUNT(*) FROM teams` + where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("counting teams: %w", err)
	}

	query := r.db.Rebind(`SELECT ` + teamColumns + ` FROM teams` + where + ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`)
	args = append(args, f.Limit, f.Offset)

	teams := []Team{}
	if err := r.db.SelectContext(ctx, &teams, query, args...); err != nil {
		return nil, 0, fmt.Errorf("listing teams: %w", err)
	}

	return teams, total, nil
}

// ListAll returns every team ordered by created_at descending.
func (r *SQLRepository) ListAll(ctx context.Context) ([]Team, error) {
	teams := []Team{}
	err := r.db.SelectContext(ctx, &teams, `SELECT `+teamColumns+` FROM teams ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	return teams, nil
}

// Delete removes a team by its ID.
func (r *SQLRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM teams WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted rows: %w", err)
	}
	if affected == 0 {
		return ErrTeamNotFound
	}

	return nil
}

// CountAll returns the total number of teams.
func (r *SQLRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM teams`); err != nil {
		return 0, fmt.Errorf("counting teams: %w", err)
	}
	return n, nil
}

// CountToday returns the number of teams created on the current calendar day.
func (r *SQLRepository) CountToday(ctx context.Context) (int, error) {
	var query string
	switch r.driver {
	case "mysql":
		query = `SELECT COUNT(*) FROM teams WHERE DATE(created_at) = CURDATE()`
	default:
		query = `SELECT COUNT(*) FROM teams WHERE date(created_at, 'localtime') = date('now', 'localtime')`
	}

	var n int
	if err := r.db.GetContext(ctx, &n, query); err != nil {
		return 0, fmt.Errorf("counting today's teams: %w", err)
	}
	return n, nil
}

// CountByYear returns per-year team counts for years present in the table.
func (r *SQLRepository) CountByYear(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT year, COUNT(*) FROM teams GROUP BY year`)
	if err != nil {
		return nil, fmt.Errorf("counting teams by year: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var year string
		var n int
		if err := rows.Scan(&year, &n); err != nil {
			return nil, fmt.Errorf("scanning year count: %w", err)
		}
		counts[year] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating year counts: %w", err)
	}

	return counts, nil
}

// Recent returns the n most recently created teams.
func (r *SQLRepository) Recent(ctx context.Context, n int) ([]Team, error) {
	teams := []Team{}
	query := r.db.Rebind(`SELECT ` + teamColumns + ` FROM teams ORDER BY created_at DESC, id DESC LIMIT ?`)
	if err := r.db.SelectContext(ctx, &teams, query, n); err != nil {
		return nil, fmt.Errorf("listing recent teams: %w", err)
	}
	return teams, nil
}
