package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteer-backend/internal/domain"
)

const (
	timeout = time.Second
	tick    = 5 * time.Millisecond
)

func newServer(t *testing.T, handler http.HandlerFunc) *HTTPTransport {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPTransport(srv.URL+"/", srv.Client())
}

func TestHTTPTransport_UnwrapsEnvelope(t *testing.T) {
	tr := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shifts", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("id"))
		w.Write([]byte(`{"data": {"id": 5, "title": "Beach cleanup", "organization_id": null, "organizations": null}}`))
	})

	shift, err := tr.GetShift(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, shift)
	assert.Equal(t, int32(5), shift.ID)
	assert.Nil(t, shift.Organizations)
}

func TestHTTPTransport_BareBodyAndNull(t *testing.T) {
	tr := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") == "999" {
			w.Write([]byte("null\n"))
			return
		}
		w.Write([]byte(`[{"id": 1, "name": "Food Bank", "total_volunteers": 3}]`))
	})

	orgs, err := tr.ListOrganizations(context.Background())
	require.NoError(t, err)
	want := []domain.Organization{{ID: 1, Name: "Food Bank", TotalVolunteers: 3}}
	if diff := cmp.Diff(want, orgs); diff != "" {
		t.Errorf("ListOrganizations() mismatch (-want +got):\n%s", diff)
	}

	org, err := tr.GetOrganization(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, org)
}

func TestHTTPTransport_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"ErrorField", http.StatusInternalServerError, `{"error": "relation \"shifts\" does not exist"}`, `relation "shifts" does not exist`},
		{"NoErrorField", http.StatusBadGateway, `{}`, "HTTP error! status: 502"},
		{"NotJSON", http.StatusBadGateway, `<html>bad gateway</html>`, "Network error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := tr.ListShifts(context.Background())
			var terr *domain.TransportError
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, tt.status, terr.StatusCode)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestHTTPTransport_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	tr := NewHTTPTransport(srv.URL, nil)

	_, err := tr.ListOrganizations(context.Background())
	var terr *domain.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Zero(t, terr.StatusCode)
	assert.NotNil(t, terr.Err)
}

func TestHTTPTransport_Register(t *testing.T) {
	tr := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"id": 100, "shift_id": 42, "user_id": 7, "status": "confirmed"}`))
	})

	reg, err := tr.RegisterForShift(context.Background(), 42, 7)
	require.NoError(t, err)
	assert.Equal(t, int32(100), reg.ID)
	assert.Equal(t, domain.RegistrationStatusConfirmed, reg.Status)
}

// countingTransport counts calls per method and blocks ListShifts until
// release is closed, when set.
type countingTransport struct {
	Transport
	shifts   atomic.Int32
	shift    atomic.Int32
	users    atomic.Int32
	release  chan struct{}
	register func(shiftID, userID int32) (*domain.ShiftRegistration, error)
}

func (t *countingTransport) ListShifts(ctx context.Context) ([]domain.ShiftWithOrganization, error) {
	t.shifts.Add(1)
	if t.release != nil {
		select {
		case <-t.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return []domain.ShiftWithOrganization{{Shift: domain.Shift{ID: 1}}}, nil
}

func (t *countingTransport) GetShift(ctx context.Context, id int32) (*domain.ShiftWithOrganization, error) {
	t.shift.Add(1)
	if id == 404 {
		return nil, nil
	}
	return &domain.ShiftWithOrganization{Shift: domain.Shift{ID: id}}, nil
}

func (t *countingTransport) GetUserProfile(ctx context.Context, userID int32) (*domain.User, error) {
	t.users.Add(1)
	return &domain.User{ID: userID}, nil
}

func (t *countingTransport) RegisterForShift(ctx context.Context, shiftID, userID int32) (*domain.ShiftRegistration, error) {
	return t.register(shiftID, userID)
}

func TestNew(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	c, err := New(Options{BaseURL: "http://localhost:8081"})
	require.NoError(t, err)
	assert.IsType(t, &HTTPTransport{}, c.transport)
}

func TestClient_CachesReads(t *testing.T) {
	tr := &countingTransport{}
	c, err := New(Options{Transport: tr})
	require.NoError(t, err)
	ctx := context.Background()

	for range 3 {
		_, err := c.GetShift(ctx, 5)
		require.NoError(t, err)
		shift, err := c.GetShift(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, shift)
	}
	assert.Equal(t, int32(2), tr.shift.Load())

	c.Purge()
	_, err = c.GetShift(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int32(3), tr.shift.Load())
}

func TestClient_CacheDisabled(t *testing.T) {
	tr := &countingTransport{}
	c, err := New(Options{Transport: tr, CacheSize: -1})
	require.NoError(t, err)

	c.GetUserProfile(context.Background(), 1)
	c.GetUserProfile(context.Background(), 1)
	assert.Equal(t, int32(2), tr.users.Load())
}

func TestClient_DeduplicatesConcurrentReads(t *testing.T) {
	tr := &countingTransport{release: make(chan struct{})}
	c, err := New(Options{Transport: tr})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			shifts, err := c.ListShifts(context.Background())
			assert.NoError(t, err)
			assert.Len(t, shifts, 1)
		}()
	}
	// Let the first fetch start before releasing it.
	require.Eventually(t, func() bool { return tr.shifts.Load() == 1 }, timeout, tick)
	time.Sleep(50 * time.Millisecond)
	close(tr.release)
	wg.Wait()

	assert.LessOrEqual(t, tr.shifts.Load(), int32(2))
}

func TestClient_SharedReadSurvivesCallerCancel(t *testing.T) {
	tr := &countingTransport{release: make(chan struct{})}
	c, err := New(Options{Transport: tr})
	require.NoError(t, err)

	ctx1, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := c.ListShifts(ctx1)
		first <- err
	}()
	require.Eventually(t, func() bool { return tr.shifts.Load() == 1 }, timeout, tick)

	type result struct {
		shifts []domain.ShiftWithOrganization
		err    error
	}
	second := make(chan result, 1)
	go func() {
		shifts, err := c.ListShifts(context.Background())
		second <- result{shifts, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	select {
	case err := <-first:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(timeout):
		t.Fatal("cancelled caller did not return")
	}

	close(tr.release)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		assert.Len(t, res.shifts, 1)
	case <-time.After(timeout):
		t.Fatal("second caller did not return")
	}
	assert.Equal(t, int32(1), tr.shifts.Load())
}

func TestClient_RegisterForShift(t *testing.T) {
	var calls int
	tr := &countingTransport{register: func(shiftID, userID int32) (*domain.ShiftRegistration, error) {
		calls++
		if shiftID == 13 {
			return nil, &domain.TransportError{StatusCode: 500, Message: "boom"}
		}
		return &domain.ShiftRegistration{ID: 100, ShiftID: &shiftID, UserID: &userID, Status: domain.RegistrationStatusConfirmed}, nil
	}}
	c, err := New(Options{Transport: tr})
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("MissingUserID", func(t *testing.T) {
		_, err := c.RegisterForShift(ctx, 42, 0)
		assert.True(t, domain.IsValidation(err))
		assert.Zero(t, calls)
	})

	t.Run("InvalidatesShiftAndUser", func(t *testing.T) {
		c.GetShift(ctx, 42)
		c.GetUserProfile(ctx, 7)
		require.Equal(t, int32(1), tr.shift.Load())

		reg, err := c.RegisterForShift(ctx, 42, 7)
		require.NoError(t, err)
		assert.Equal(t, int32(100), reg.ID)

		c.GetShift(ctx, 42)
		c.GetUserProfile(ctx, 7)
		assert.Equal(t, int32(2), tr.shift.Load())
		assert.Equal(t, int32(2), tr.users.Load())
	})

	t.Run("TransportError", func(t *testing.T) {
		_, err := c.RegisterForShift(ctx, 13, 7)
		var terr *domain.TransportError
		assert.True(t, errors.As(err, &terr))
	})
}
