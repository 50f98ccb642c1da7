package team

import (
	"context"
	"errors"
)

// ErrTeamNotFound is returned when a team record is not found.
var ErrTeamNotFound = errors.New("team not found")

// Filter narrows a paginated listing. Search matches team_name and all four
// student name/regno columns case-insensitively; Year matches exactly.
type Filter struct {
	Search string
	Year   string
	Limit  int
	Offset int
}

// Repository provides operations on the teams table.
//
// Insert stores the row with the explicit ID and CreatedAt already set on the
// Team. Uniqueness violations at insert time are NOT mapped to domain errors:
// the admission checks run before Insert, so a constraint failure here is a
// concurrent-write race and is surfaced as a plain error.
type Repository interface {
	Insert(ctx context.Context, t *Team) error
	GetByID(ctx context.Context, id int) (*Team, error)
	// GetByName matches team_name case-insensitively.
	GetByName(ctx context.Context, name string) (*Team, error)
	// FindByRegNo matches regno against either student slot of any team.
	FindByRegNo(ctx context.Context, regno string) (*Team, error)
	// ListIDs returns all team IDs in ascending order.
	ListIDs(ctx context.Context) ([]int, error)
	// List returns one page ordered by created_at descending, plus the total
	// row count for the same filter.
	List(ctx context.Context, f Filter) ([]Team, int, error)
	// ListAll returns every team ordered by created_at descending.
	ListAll(ctx context.Context) ([]Team, error)
	Delete(ctx context.Context, id int) error
	CountAll(ctx context.Context) (int, error)
	// CountToday counts teams created on the current server-local calendar day.
	CountToday(ctx context.Context) (int, error)
	CountByYear(ctx context.Context) (map[string]int, error)
	// Recent returns the n most recently created teams.
	Recent(ctx context.Context, n int) ([]Team, error)
}
