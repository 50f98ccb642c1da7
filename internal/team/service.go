package team

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DuplicateTeamNameError is returned when the submitted team name is already
// taken.
type DuplicateTeamNameError struct {
	Name string
}

func (e *DuplicateTeamNameError) Error() string {
	return fmt.Sprintf("team name %q already exists", e.Name)
}

// DuplicateRegNoError is returned when a submitted registration number is
// already held by an existing team, in either student slot.
type DuplicateRegNoError struct {
	RegNo    string
	TeamName string
}

func (e *DuplicateRegNoError) Error() string {
	return fmt.Sprintf("registration number %s is already registered in team %q", e.RegNo, e.TeamName)
}

// ListQuery describes an admin listing request.
type ListQuery struct {
	Search string
	Year   string
	Page   int
	Limit  int
}

// Pagination describes the page metadata returned with a listing.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// RecentTeam is the name+timestamp projection used in stats.
type RecentTeam struct {
	TeamName  string    `json:"team_name"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats summarises the current registration state.
type Stats struct {
	TotalTeams         int            `json:"total_teams"`
	TodayRegistrations int            `json:"today_registrations"`
	YearWise           map[string]int `json:"year_wise"`
	Recent             []RecentTeam   `json:"recent_registrations"`
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	recentCount      = 5
)

// Service implements registration admission and the admin query surface on
// top of a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new team Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register admits and stores a new team. The checks run in order and
// short-circuit on the first failure: team name, then student 1's
// registration number, then student 2's. On admission the team receives the
// smallest unused positive ID and is inserted; t.ID and t.CreatedAt are set
// on return.
//
// The read-then-insert sequence is not atomic. A concurrent registration can
// slip between the checks and the insert; the table's UNIQUE constraints
// catch that, and the resulting error is returned as-is rather than mapped to
// a duplicate error.
func (s *Service) Register(ctx context.Context, t *Team) error {
	existing, err := s.repo.GetByName(ctx, t.TeamName)
	if err != nil && !errors.Is(err, ErrTeamNotFound) {
		return fmt.Errorf("checking team name: %w", err)
	}
	if existing != nil {
		return &DuplicateTeamNameError{Name: existing.TeamName}
	}

	for _, regno := range []string{t.Student1RegNo, t.Student2RegNo} {
		holder, err := s.repo.FindByRegNo(ctx, regno)
		if err != nil && !errors.Is(err, ErrTeamNotFound) {
			return fmt.Errorf("checking registration number: %w", err)
		}
		if holder != nil {
			return &DuplicateRegNoError{RegNo: regno, TeamName: holder.TeamName}
		}
	}

	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("listing team ids: %w", err)
	}

	t.ID = nextAvailableID(ids)
	t.CreatedAt = time.Now()

	if err := s.repo.Insert(ctx, t); err != nil {
		return err
	}

	slog.Info("new team registered", "team", t.TeamName, "id", t.ID)

	return nil
}

// nextAvailableID returns the smallest positive integer absent from ids,
// which must be sorted ascending. Deleted teams leave holes; those are reused
// so IDs stay dense.
func nextAvailableID(ids []int) int {
	next := 1
	for _, id := range ids {
		if id != next {
			break
		}
		next++
	}
	return next
}

// NameAvailable reports whether no team holds the given name. The comparison
// is case-insensitive, matching the admission check.
func (s *Service) NameAvailable(ctx context.Context, name string) (bool, error) {
	_, err := s.repo.GetByName(ctx, name)
	if errors.Is(err, ErrTeamNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking team name: %w", err)
	}
	return false, nil
}

// List returns one page of teams matching the query, newest first.
// Page and limit are clamped to sane values.
func (s *Service) List(ctx context.Context, q ListQuery) ([]Team, Pagination, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageLimit
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}

	teams, total, err := s.repo.List(ctx, Filter{
		Search: q.Search,
		Year:   q.Year,
		Limit:  q.Limit,
		Offset: (q.Page - 1) * q.Limit,
	})
	if err != nil {
		return nil, Pagination{}, err
	}

	totalPages := (total + q.Limit - 1) / q.Limit

	return teams, Pagination{
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: totalPages,
	}, nil
}

// Stats returns the registration summary. All four year buckets are always
// present, defaulting to zero.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	today, err := s.repo.CountToday(ctx)
	if err != nil {
		return nil, err
	}

	byYear, err := s.repo.CountByYear(ctx)
	if err != nil {
		return nil, err
	}

	yearWise := make(map[string]int, len(Years))
	for _, y := range Years {
		yearWise[y] = byYear[y]
	}

	recent, err := s.repo.Recent(ctx, recentCount)
	if err != nil {
		return nil, err
	}

	recentTeams := make([]RecentTeam, 0, len(recent))
	for _, t := range recent {
		recentTeams = append(recentTeams, RecentTeam{TeamName: t.TeamName, CreatedAt: t.CreatedAt})
	}

	return &Stats{
		TotalTeams:         total,
		TodayRegistrations: today,
		YearWise:           yearWise,
		Recent:             recentTeams,
	}, nil
}

// Delete removes a team by ID and returns its name for confirmation logging.
// Returns ErrTeamNotFound if no such team exists.
func (s *Service) Delete(ctx context.Context, id int) (string, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return "", err
	}

	slog.Info("team deleted", "team", t.TeamName, "id", id)

	return t.TeamName, nil
}

// All returns every team ordered by created_at descending, for export.
func (s *Service) All(ctx context.Context) ([]Team, error) {
	return s.repo.ListAll(ctx)
}
