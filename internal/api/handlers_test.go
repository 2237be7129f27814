package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"example.com/signup/internal/directory"
	"example.com/signup/internal/domain"
	"example.com/signup/internal/events"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	staticDir := t.TempDir()
	page := "<html><body><h1>Mergington High School</h1></body></html>"
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte(page), 0o644))

	repo := directory.NewInMemoryRepository()
	service := domain.NewService(repo, events.NoopPublisher{}, zap.NewNop())
	handler := NewHandler(service, staticDir)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux
}

func doRequest(mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func listActivities(t *testing.T, mux *http.ServeMux) map[string]ActivityView {
	t.Helper()

	rr := doRequest(mux, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rr.Code)

	var activities map[string]ActivityView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &activities))
	return activities
}

func TestListActivities(t *testing.T) {
	mux := newTestMux(t)

	activities := listActivities(t, mux)
	require.NotEmpty(t, activities)

	chess, ok := activities["Chess Club"]
	require.True(t, ok)
	require.Equal(t, "Learn strategies and compete in chess tournaments", chess.Description)
	require.Equal(t, "Fridays, 3:30 PM - 5:00 PM", chess.Schedule)
	require.Equal(t, 12, chess.MaxParticipants)
	require.Contains(t, chess.Participants, "michael@mergington.edu")
}

func TestSignupSuccess(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(mux, http.MethodPost, "/activities/Chess%20Club/signup?email=newstudent@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "Signed up newstudent@mergington.edu for Chess Club", resp.Message)

	activities := listActivities(t, mux)
	require.Contains(t, activities["Chess Club"].Participants, "newstudent@mergington.edu")
}

func TestSignupActivityNotFound(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(mux, http.MethodPost, "/activities/NonExistent%20Activity/signup?email=student@mergington.edu")
	require.Equal(t, http.StatusNotFound, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "Activity not found", resp.Detail)
}

func TestSignupDuplicateRegistration(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(mux, http.MethodPost, "/activities/Chess%20Club/signup?email=michael@mergington.edu")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "Student already signed up for this activity", resp.Detail)

	activities := listActivities(t, mux)
	count := 0
	for _, participant := range activities["Chess Club"].Participants {
		if participant == "michael@mergington.edu" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestUnregisterSuccess(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(mux, http.MethodDelete, "/activities/Chess%20Club/unregister?email=michael@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "Unregistered michael@mergington.edu from Chess Club", resp.Message)

	activities := listActivities(t, mux)
	require.NotContains(t, activities["Chess Club"].Participants, "michael@mergington.edu")
}

func TestUnregisterActivityNotFound(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(mux, http.MethodDelete, "/activities/NonExistent%20Activity/unregister?email=student@mergington.edu")
	require.Equal(t, http.StatusNotFound, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "Activity not found", resp.Detail)
}

func TestUnregisterNotRegistered(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(mux, http.MethodDelete, "/activities/Chess%20Club/unregister?email=notregistered@mergington.edu")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "Student is not registered for this activity", resp.Detail)
}

func TestSignupThenUnregisterRoundTrip(t *testing.T) {
	mux := newTestMux(t)

	before := listActivities(t, mux)["Math Club"].Participants

	rr := doRequest(mux, http.MethodPost, "/activities/Math%20Club/signup?email=newstudent@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(mux, http.MethodDelete, "/activities/Math%20Club/unregister?email=newstudent@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code)

	after := listActivities(t, mux)["Math Club"].Participants
	require.Equal(t, before, after)
}

func TestSignupMissingEmail(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(mux, http.MethodPost, "/activities/Chess%20Club/signup")
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "missing email parameter", resp.Detail)
}

func TestRosterActionMethodNotAllowed(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(mux, http.MethodGet, "/activities/Chess%20Club/signup?email=x@mergington.edu")
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = doRequest(mux, http.MethodPost, "/activities/Chess%20Club/unregister?email=x@mergington.edu")
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestUnknownRosterAction(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(mux, http.MethodPost, "/activities/Chess%20Club/enroll?email=x@mergington.edu")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRootRedirectsToFrontEnd(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(mux, http.MethodGet, "/")
	require.Equal(t, http.StatusTemporaryRedirect, rr.Code)
	require.Equal(t, "/static/index.html", rr.Header().Get("Location"))

	rr = doRequest(mux, http.MethodGet, "/static/index.html")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Mergington High School")
}

func TestHealthz(t *testing.T) {
	mux := newTestMux(t)

	rr := doRequest(mux, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", rr.Body.String())
}
