//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/2beens/liftlog/internal/gymstats"
	"github.com/2beens/liftlog/internal/gymstats/workout"
	"github.com/2beens/liftlog/internal/middleware"
)

const testRoutinesJSON = `{"routines":[{"name":"1. Push","exercises":[
	{"id":"bench-press","name":"Bench Press","plannedSets":[
		{"kind":"TOP","repMin":6,"repMax":9},
		{"kind":"BOFF","repMin":12,"repMax":15}]}]}]}`

func (s *IntegrationTestSuite) issueToken(ctx context.Context) (string, string) {
	userID := gofakeit.New(0).UUID()
	token, err := s.authService.Issue(ctx, userID, time.Now())
	require.NoError(s.T(), err)
	return userID, token
}

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path, token, body string, expectedStatus int) []byte {
	var reqBody io.Reader
	if body != "" {
		reqBody = bytes.NewBufferString(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.Equal(s.T(), expectedStatus, resp.StatusCode, string(respBytes))

	return respBytes
}

func (s *IntegrationTestSuite) remoteCount(query, userID string) int {
	var count int
	require.NoError(s.T(), s.DB.QueryRow(query, userID).Scan(&count))
	return count
}

func (s *IntegrationTestSuite) TestGymstats_WorkoutIsPushedToRemote() {
	ctx := context.Background()
	userID, token := s.issueToken(ctx)

	s.doRequest(ctx, http.MethodPut, "/gymstats/routines", token, testRoutinesJSON, http.StatusOK)
	s.Eventually(func() bool {
		return s.remoteCount(`SELECT COUNT(*) FROM routine_templates WHERE user_id = $1`, userID) == 1
	}, 10*time.Second, 100*time.Millisecond)

	respBytes := s.doRequest(ctx, http.MethodPost, "/gymstats/workout/start", token, `{"routine":"1. Push"}`, http.StatusCreated)
	var state workout.State
	require.NoError(s.T(), json.Unmarshal(respBytes, &state))

	s.doRequest(ctx, http.MethodPost, "/gymstats/workout/sets", token, `{"reps":8,"weight":40}`, http.StatusCreated)
	s.Eventually(func() bool {
		return s.remoteCount(`SELECT COUNT(*) FROM set_logs WHERE user_id = $1`, userID) == 1
	}, 10*time.Second, 100*time.Millisecond)

	respBytes = s.doRequest(ctx, http.MethodGet, "/gymstats/sessions?sync=true", token, "", http.StatusOK)
	var list gymstats.SessionsListResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &list))
	s.Require().NotEmpty(list.Sessions)
	s.Equal(state.Session.SessionID, list.Sessions[0].SessionID)
	s.Equal(1, list.Sessions[0].KPIs.Sets)

	s.doRequest(ctx, http.MethodPost, "/gymstats/workout/finish", token, "", http.StatusOK)
}

func (s *IntegrationTestSuite) TestGymstats_FuzzyPriorFromRemote() {
	ctx := context.Background()
	userID, token := s.issueToken(ctx)

	_, err := s.DB.Exec(`
		INSERT INTO sessions (session_id, user_id, date_iso, workout_name, updated_at, payload)
		VALUES ($1, $2, $3, 'Old Push', $3, '{}')
	`, "old-"+userID, userID, time.Now().Add(-72*time.Hour))
	require.NoError(s.T(), err)
	_, err = s.DB.Exec(`
		INSERT INTO set_logs (session_id, user_id, exercise_id, exercise_version, exercise_name, kind, set_order, weight, reps, created_at)
		VALUES ($1, $2, 'Incline_Press', 1, 'Incline Press', 'TOP', 1, 37.5, 9, $3)
	`, "old-"+userID, userID, time.Now().Add(-72*time.Hour))
	require.NoError(s.T(), err)

	params := url.Values{}
	params.Set("exercise", "incline-press")
	params.Set("kind", "TOP")
	path := fmt.Sprintf("/gymstats/history/prior?%s", params.Encode())

	respBytes := s.doRequest(ctx, http.MethodGet, path, token, "", http.StatusOK)
	var prior struct {
		Found  bool     `json:"found"`
		Weight *float64 `json:"weight"`
		Reps   int      `json:"reps"`
		Fuzzy  bool     `json:"fuzzy"`
	}
	require.NoError(s.T(), json.Unmarshal(respBytes, &prior))
	s.True(prior.Found)
	s.True(prior.Fuzzy)
	s.Require().NotNil(prior.Weight)
	s.Equal(37.5, *prior.Weight)
	s.Equal(9, prior.Reps)

	// anonymous requests never reach the remote fallback
	respBytes = s.doRequest(ctx, http.MethodGet, path, "", "", http.StatusOK)
	s.JSONEq(`{"found":false}`, string(respBytes))
}

func (s *IntegrationTestSuite) TestGymstats_RevokedTokenRejected() {
	ctx := context.Background()
	_, token := s.issueToken(ctx)

	s.doRequest(ctx, http.MethodGet, "/gymstats/rest", token, "", http.StatusOK)

	revoked, err := s.authService.Revoke(ctx, token)
	require.NoError(s.T(), err)
	s.True(revoked)

	s.doRequest(ctx, http.MethodGet, "/gymstats/rest", token, "", http.StatusUnauthorized)
}
