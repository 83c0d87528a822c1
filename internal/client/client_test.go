package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/sustainlog/internal/constants"
	"github.com/julianstephens/sustainlog/internal/fakeapi"
	"github.com/julianstephens/sustainlog/internal/models"
)

func newTestClient(t *testing.T, seed ...models.Action) (*Client, *fakeapi.Server) {
	t.Helper()
	api := fakeapi.New(seed...)
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/api"), api
}

func TestList(t *testing.T) {
	c, api := newTestClient(t, models.Action{ID: 1, Action: "Compost", Date: "2024-02-02", Points: 5})

	actions, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Action{{ID: 1, Action: "Compost", Date: "2024-02-02", Points: 5}}, actions)

	req, ok := api.LastRequest(http.MethodGet)
	require.True(t, ok)
	assert.Equal(t, "/actions/", req.Path)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.NotEmpty(t, req.Header.Get(constants.RequestIDHeader))
}

func TestListEmptyCollection(t *testing.T) {
	c, _ := newTestClient(t)

	actions, err := c.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, actions)
	assert.Empty(t, actions)
}

func TestListMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL).List(context.Background())

	var serr *ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusOK, serr.StatusCode)
}

func TestCreate(t *testing.T) {
	c, api := newTestClient(t)

	err := c.Create(context.Background(), models.ActionInput{Action: "Recycling", Date: "2025-01-08", Points: 25})
	require.NoError(t, err)

	req, ok := api.LastRequest(http.MethodPost)
	require.True(t, ok)
	assert.Equal(t, "/actions/", req.Path)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"action":"Recycling","date":"2025-01-08","points":25}`, string(req.Body))

	stored := api.Actions()
	require.Len(t, stored, 1)
	assert.Equal(t, int64(1), stored[0].ID)
}

func TestCreateValidationError(t *testing.T) {
	c, _ := newTestClient(t)

	err := c.Create(context.Background(), models.ActionInput{Action: "", Date: "2025-01-09", Points: 10})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, http.StatusBadRequest, verr.StatusCode)
	msg, ok := verr.FieldError("action")
	require.True(t, ok)
	assert.Equal(t, "This field may not be blank.", msg)
}

func TestCreateNaNPointsRejectedByServer(t *testing.T) {
	c, api := newTestClient(t)

	err := c.Create(context.Background(), models.ActionInput{Action: "Walk", Date: "2025-01-09", Points: models.ParsePoints("many")})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	_, ok := verr.FieldError("points")
	assert.True(t, ok)

	req, _ := api.LastRequest(http.MethodPost)
	assert.JSONEq(t, `{"action":"Walk","date":"2025-01-09","points":null}`, string(req.Body))
}

func TestUpdatePartial(t *testing.T) {
	c, api := newTestClient(t, models.Action{ID: 1, Action: "Ride bike", Date: "2025-01-09", Points: 15})

	points := models.Points(20)
	err := c.Update(context.Background(), 1, models.ActionPatch{Points: &points})
	require.NoError(t, err)

	req, ok := api.LastRequest(http.MethodPatch)
	require.True(t, ok)
	assert.Equal(t, "/actions/1/", req.Path)
	assert.JSONEq(t, `{"points":20}`, string(req.Body))
	assert.Equal(t, []models.Action{{ID: 1, Action: "Ride bike", Date: "2025-01-09", Points: 20}}, api.Actions())
}

func TestUpdateMissingIDIsServerError(t *testing.T) {
	c, _ := newTestClient(t)

	action := "Ride bike"
	err := c.Update(context.Background(), 42, models.ActionPatch{Action: &action})

	var serr *ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
	assert.Contains(t, serr.Error(), "Not found")

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestRemove(t *testing.T) {
	c, api := newTestClient(t, models.Action{ID: 1, Action: "Ride bike", Date: "2025-01-09", Points: 15})

	require.NoError(t, c.Remove(context.Background(), 1))
	assert.Empty(t, api.Actions())

	actions, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestRemoveServerError(t *testing.T) {
	c, api := newTestClient(t, models.Action{ID: 1, Action: "Ride bike", Date: "2025-01-09", Points: 15})
	api.Fail(http.MethodDelete, http.StatusInternalServerError, "")

	err := c.Remove(context.Background(), 1)

	var serr *ServerError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusInternalServerError, serr.StatusCode)
	assert.Len(t, api.Actions(), 1)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).List(context.Background())

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "list actions", terr.Op)
}

func TestCancelledContext(t *testing.T) {
	c, api := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.List(ctx)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, api.Count(http.MethodGet))
}

func TestParseFieldErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[string][]string
	}{
		{
			name: "django field errors",
			body: `{"action": ["must not be blank"], "points": ["A valid integer is required."]}`,
			want: map[string][]string{"action": {"must not be blank"}, "points": {"A valid integer is required."}},
		},
		{
			name: "non-array values ignored",
			body: `{"error": "Not found", "action": ["bad"]}`,
			want: map[string][]string{"action": {"bad"}},
		},
		{name: "plain error object", body: `{"error": "Not found"}`},
		{name: "not json", body: `<html>oops</html>`},
		{name: "empty", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFieldErrors([]byte(tt.body)))
		})
	}
}

func TestRequestMetrics(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.List(context.Background())
	require.NoError(t, err)
	_, err = c.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.metrics.requests.WithLabelValues("200", "get")))
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestWithHTTPClient(t *testing.T) {
	api := fakeapi.New()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	var seen []string
	hc := &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		return http.DefaultTransport.RoundTrip(r)
	})}

	c := New(srv.URL+"/api", WithHTTPClient(hc))
	_, err := c.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"GET /api/actions/"}, seen)
	assert.Equal(t, float64(1), testutil.ToFloat64(c.metrics.requests.WithLabelValues("200", "get")))
	_, wrapped := hc.Transport.(roundTripperFunc)
	assert.True(t, wrapped, "caller's client must keep its own transport")
}

func TestWithRegistry(t *testing.T) {
	api := fakeapi.New()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	reg := prometheus.NewRegistry()
	c := New(srv.URL+"/api", WithRegistry(reg))

	_, err := c.List(context.Background())
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(reg, "sustainlog_client_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTransportErrorLabelsAreFixed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url)
	ctx := context.Background()
	action := "Compost"
	_, _ = c.List(ctx)
	_ = c.Create(ctx, models.ActionInput{Action: action, Date: "2024-02-02", Points: 5})
	_ = c.Update(ctx, 7, models.ActionPatch{Action: &action})
	_ = c.Update(ctx, 8, models.ActionPatch{Action: &action})
	err := c.Remove(ctx, 9)

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "delete action 9", terr.Op)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.metrics.failures.WithLabelValues("list")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.metrics.failures.WithLabelValues("create")))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.metrics.failures.WithLabelValues("update")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.metrics.failures.WithLabelValues("delete")))
	assert.Equal(t, 4, testutil.CollectAndCount(c.metrics.failures))
}

func TestValidationErrorMessage(t *testing.T) {
	verr := &ValidationError{
		Op:         "create action",
		StatusCode: http.StatusBadRequest,
		Fields:     map[string][]string{"date": {"bad date"}, "action": {"blank"}},
	}

	assert.Equal(t, []string{"action", "date"}, verr.FieldNames())
	assert.Equal(t, "create action: status 400: action: blank", verr.Error())

	data, err := json.Marshal(verr.Fields)
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":["blank"],"date":["bad date"]}`, string(data))
}
