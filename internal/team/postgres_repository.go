package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const teamColumns = "id, team_name, student1_name, student1_regno, student2_name, student2_regno, year, created_at"

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Repository backed by the given connection pool.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Insert stores a new team row with the explicit ID and CreatedAt set on t.
func (r *PostgresRepository) Insert(ctx context.Context, t *Team) error {
	query := `
		INSERT INTO teams (id, team_name, student1_name, student1_regno, student2_name, student2_regno, year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		t.ID, t.TeamName, t.Student1Name, t.Student1RegNo, t.Student2Name, t.Student2RegNo, t.Year, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting team: %w", err)
	}

	return nil
}

// GetByID retrieves a single team by its ID.
func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`

	var t Team
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.TeamName, &t.Student1Name, &t.Student1RegNo, &t.Student2Name, &t.Student2RegNo, &t.Year, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return &t, nil
}

// GetByName retrieves a team by name, compared case-insensitively.
func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE LOWER(team_name) = LOWER($1)`

	var t Team
	err := r.pool.QueryRow(ctx, query, name).Scan(
		&t.ID, &t.TeamName, &t.Student1Name, &t.Student1RegNo, &t.Student2Name, &t.Student2RegNo, &t.Year, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team by name: %w", err)
	}

	return &t, nil
}

// FindByRegNo retrieves the team holding regno in either student slot.
func (r *PostgresRepository) FindByRegNo(ctx context.Context, regno string) (*Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE student1_regno = $1 OR student2_regno = $1`

	var t Team
	err := r.pool.QueryRow(ctx, query, regno).Scan(
		&t.ID, &t.TeamName, &t.Student1Name, &t.Student1RegNo, &t.Student2Name, &t.Student2RegNo, &t.Year, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team by regno: %w", err)
	}

	return &t, nil
}

// ListIDs returns all team IDs in ascending order.
func (r *PostgresRepository) ListIDs(ctx context.Context) ([]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM teams ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing team ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning team id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team ids: %w", err)
	}

	return ids, nil
}

// List returns one page of teams matching the filter, newest first, plus the
// total count for the same filter.
func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]Team, int, error) {
	where := ""
	args := []any{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where += fmt.Sprintf(` AND (team_name ILIKE $%d OR student1_name ILIKE $%d OR student2_name ILIKE $%d OR student1_regno ILIKE $%d OR student2_regno ILIKE $%d)`,
			n, n, n, n, n)
	}
	if f.Year != "" {
		args = append(args, f.Year)
		where += fmt.Sprintf(` AND year = $%d`, len(args))
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM teams WHERE 1=1` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting teams: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := `SELECT ` + teamColumns + ` FROM teams WHERE 1=1` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	teams, err := scanTeams(rows)
	if err != nil {
		return nil, 0, err
	}

	return teams, total, nil
}

// ListAll returns every team ordered by created_at descending.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]Team, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	return scanTeams(rows)
}

// Delete removes a team by its ID.
func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting team: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTeamNotFound
	}

	return nil
}

// CountAll returns the total number of teams.
func (r *PostgresRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM teams`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting teams: %w", err)
	}
	return n, nil
}

// CountToday returns the number of teams created on the current calendar day.
func (r *PostgresRepository) CountToday(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM teams WHERE created_at::date = CURRENT_DATE`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting today's teams: %w", err)
	}
	return n, nil
}

// CountByYear returns per-year team counts for years present in the table.
func (r *PostgresRepository) CountByYear(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT year, COUNT(*) FROM teams GROUP BY year`)
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
func (r *PostgresRepository) Recent(ctx context.Context, n int) ([]Team, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY created_at DESC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("listing recent teams: %w", err)
	}
	defer rows.Close()

	return scanTeams(rows)
}

func scanTeams(rows pgx.Rows) ([]Team, error) {
	var teams []Team
	for rows.Next() {
		var t Team
		err := rows.Scan(&t.ID, &t.TeamName, &t.Student1Name, &t.Student1RegNo, &t.Student2Name, &t.Student2RegNo, &t.Year, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team rows: %w", err)
	}

	if teams == nil {
		teams = []Team{}
	}

	return teams, nil
}
