package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arenax6/registration/internal/api/handler"
	"github.com/arenax6/registration/internal/team"
)

// memRepo is an in-memory team.Repository for handler tests.
type memRepo struct {
	teams    map[int]team.Team
	failWith error
}

func newMemRepo() *memRepo {
	return &memRepo{teams: make(map[int]team.Team)}
}

func (m *memRepo) Insert(ctx context.Context, t *team.Team) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.teams[t.ID] = *t
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id int) (*team.Team, error) {
	t, ok := m.teams[id]
	if !ok {
		return nil, team.ErrTeamNotFound
	}
	return &t, nil
}

func (m *memRepo) GetByName(ctx context.Context, name string) (*team.Team, error) {
	for _, t := range m.teams {
		if strings.EqualFold(t.TeamName, name) {
			return &t, nil
		}
	}
	return nil, team.ErrTeamNotFound
}

func (m *memRepo) FindByRegNo(ctx context.Context, regno string) (*team.Team, error) {
	for _, t := range m.teams {
		if t.Student1RegNo == regno || t.Student2RegNo == regno {
			return &t, nil
		}
	}
	return nil, team.ErrTeamNotFound
}

func (m *memRepo) ListIDs(ctx context.Context) ([]int, error) {
	ids := make([]int, 0, len(m.teams))
	for id := range m.teams {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (m *memRepo) sortedNewestFirst() []team.Team {
	teams := make([]team.Team, 0, len(m.teams))
	for _, t := range m.teams {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool {
		return teams[i].CreatedAt.After(teams[j].CreatedAt)
	})
	return teams
}

func (m *memRepo) List(ctx context.Context, f team.Filter) ([]team.Team, int, error) {
	var matched []team.Team
	for _, t := range m.sortedNewestFirst() {
		if f.Year != "" && t.Year != f.Year {
			continue
		}
		if f.Search != "" {
			needle := strings.ToLower(f.Search)
			haystack := strings.ToLower(strings.Join([]string{
				t.TeamName, t.Student1Name, t.Student2Name, t.Student1RegNo, t.Student2RegNo,
			}, "\x00"))
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		matched = append(matched, t)
	}

	total := len(matched)
	if f.Offset >= total {
		return []team.Team{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return matched[f.Offset:end], total, nil
}

func (m *memRepo) ListAll(ctx context.Context) ([]team.Team, error) {
	return m.sortedNewestFirst(), nil
}

func (m *memRepo) Delete(ctx context.Context, id int) error {
	if _, ok := m.teams[id]; !ok {
		return team.ErrTeamNotFound
	}
	delete(m.teams, id)
	return nil
}

func (m *memRepo) CountAll(ctx context.Context) (int, error) {
	return len(m.teams), nil
}

func (m *memRepo) CountToday(ctx context.Context) (int, error) {
	n := 0
	for _, t := range m.teams {
		if t.CreatedAt.Local().Format("2006-01-02") == time.Now().Format("2006-01-02") {
			n++
		}
	}
	return n, nil
}

func (m *memRepo) CountByYear(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, t := range m.teams {
		counts[t.Year]++
	}
	return counts, nil
}

func (m *memRepo) Recent(ctx context.Context, n int) ([]team.Team, error) {
	teams := m.sortedNewestFirst()
	if len(teams) > n {
		teams = teams[:n]
	}
	return teams, nil
}

// --- Helpers ---

func makeChiRequest(method, path string, body []byte, params map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req, w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err, "failed to parse response body")
	return body
}

func registrationBody(overrides map[string]string) []byte {
	fields := map[string]string{
		"team_name":      "Code Crusaders",
		"student1_name":  "Arun Kumar",
		"student1_regno": "21CSE001",
		"student2_name":  "Priya S",
		"student2_regno": "21CSE002",
		"year":           "3rd Year",
	}
	for k, v := range overrides {
		fields[k] = v
	}
	body, _ := json.Marshal(fields)
	return body
}

func seedTeam(repo *memRepo, id int, name, regno1, regno2, year string) {
	repo.teams[id] = team.Team{
		ID:            id,
		TeamName:      name,
		Student1Name:  "Seed A",
		Student1RegNo: regno1,
		Student2Name:  "Seed B",
		Student2RegNo: regno2,
		Year:          year,
		CreatedAt:     time.Now().Add(-time.Duration(id) * time.Minute),
	}
}

// ===== POST /register =====

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	h := handler.NewRegisterHandler(team.NewService(repo))

	req, w := makeChiRequest(http.MethodPost, "/register", registrationBody(nil), nil)
	h.Register(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["team_id"])
	assert.Equal(t, "Code Crusaders", body["team_name"])
}

func TestRegister_FillsGapLeftByDeletion(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	seedTeam(repo, 1, "Team One", "20A01", "20A02", "2nd Year")
	seedTeam(repo, 2, "Team Two", "20B01", "20B02", "2nd Year")
	seedTeam(repo, 4, "Team Four", "20C01", "20C02", "2nd Year")
	h := handler.NewRegisterHandler(team.NewService(repo))

	req, w := makeChiRequest(http.MethodPost, "/register", registrationBody(nil), nil)
	h.Register(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, float64(3), body["team_id"])
}

func TestRegister_InvalidJSON(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	h := handler.NewRegisterHandler(team.NewService(repo))

	req, w := makeChiRequest(http.MethodPost, "/register", []byte("{not json"), nil)
	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, false, body["success"])
}

func TestRegister_ValidationErrors(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	h := handler.NewRegisterHandler(team.NewService(repo))

	req, w := makeChiRequest(http.MethodPost, "/register",
		registrationBody(map[string]string{"team_name": "ab", "year": "6th Year"}), nil)
	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["message"])
	errs := body["errors"].([]interface{})
	assert.Len(t, errs, 2)
	assert.Empty(t, repo.teams, "validation failure must not insert")
}

func TestRegister_DuplicateTeamName(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	seedTeam(repo, 1, "Code Crusaders", "20A01", "20A02", "2nd Year")
	h := handler.NewRegisterHandler(team.NewService(repo))

	req, w := makeChiRequest(http.MethodPost, "/register", registrationBody(nil), nil)
	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Team name already exists. Please choose a different name.", body["message"])
}

func TestRegister_DuplicateTeamName_DifferentCase(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	seedTeam(repo, 1, "CODE CRUSADERS", "20A01", "20A02", "2nd Year")
	h := handler.NewRegisterHandler(team.NewService(repo))

	req, w := makeChiRequest(http.MethodPost, "/register", registrationBody(nil), nil)
	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_DuplicateRegNo_ReferencesHoldingTeam(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	seedTeam(repo, 1, "Pixel Pirates", "20A01", "21CSE001", "2nd Year")
	h := handler.NewRegisterHandler(team.NewService(repo))

	req, w := makeChiRequest(http.MethodPost, "/register", registrationBody(nil), nil)
	h.Register(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := parseBody(t, w)
	message := body["message"].(string)
	assert.Contains(t, message, "21CSE001")
	assert.Contains(t, message, "Pixel Pirates")
}

func TestRegister_StoreFailure_Returns500(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	repo.failWith = assert.AnError
	h := handler.NewRegisterHandler(team.NewService(repo))

	req, w := makeChiRequest(http.MethodPost, "/register", registrationBody(nil), nil)
	h.Register(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, false, body["success"])
}

// ===== GET /register/check-team-name/{name} =====

func TestCheckTeamName_Available(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	h := handler.NewRegisterHandler(team.NewService(repo))

	req, w := makeChiRequest(http.MethodGet, "/register/check-team-name/Free", nil,
		map[string]string{"name": "Free"})
	h.CheckTeamName(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, true, body["available"])
}

func TestCheckTeamName_Taken(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	seedTeam(repo, 1, "Code Crusaders", "20A01", "20A02", "2nd Year")
	h := handler.NewRegisterHandler(team.NewService(repo))

	req, w := makeChiRequest(http.MethodGet, "/register/check-team-name/Code%20Crusaders", nil,
		map[string]string{"name": "Code Crusaders"})
	h.CheckTeamName(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := parseBody(t, w)
	assert.Equal(t, false, body["available"])
}
