package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteer-backend/internal/domain"
)

func run(t *testing.T, a *app, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a.out = &out
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestDirectoryCommands(t *testing.T) {
	var registerBody map[string]int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/organizations", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":1,"name":"Harbor Food Bank","rating":4.7}]}`))
	})
	mux.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&registerBody))
		w.Write([]byte(`{"id":10,"shift_id":42,"user_id":7,"status":"confirmed"}`))
	})
	mux.HandleFunc("/api/shifts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"connection refused"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	a := &app{}
	defer a.close()

	out, err := run(t, a, "", "--api", srv.URL, "orgs")
	require.NoError(t, err)
	var orgs []domain.Organization
	require.NoError(t, json.Unmarshal([]byte(out), &orgs))
	require.Len(t, orgs, 1)
	assert.Equal(t, "Harbor Food Bank", orgs[0].Name)

	out, err = run(t, a, "", "--api", srv.URL, "register", "42", "7")
	require.NoError(t, err)
	assert.Equal(t, map[string]int32{"shiftId": 42, "userId": 7}, registerBody)
	assert.Contains(t, out, `"status": "confirmed"`)

	_, err = run(t, a, "", "--api", srv.URL, "shifts")
	assert.EqualError(t, err, "connection refused")

	_, err = run(t, a, "", "--api", srv.URL, "shift", "abc")
	assert.EqualError(t, err, `invalid id "abc"`)
}

func TestShiftsAvailableSkipsFullShifts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shifts", r.URL.Path)
		w.Write([]byte(`[
			{"id":1,"title":"Sort donations","max_volunteers":2,"current_volunteers":2,"organizations":null},
			{"id":2,"title":"Reading buddies","max_volunteers":5,"current_volunteers":1,"organizations":null},
			{"id":3,"title":"Park cleanup","max_volunteers":null,"current_volunteers":40,"organizations":null}
		]`))
	}))
	defer srv.Close()

	a := &app{}
	defer a.close()

	out, err := run(t, a, "", "--api", srv.URL, "shifts", "--available")
	require.NoError(t, err)
	var shifts []domain.ShiftWithOrganization
	require.NoError(t, json.Unmarshal([]byte(out), &shifts))
	require.Len(t, shifts, 2)
	assert.Equal(t, int32(2), shifts[0].ID)
	assert.Equal(t, int32(3), shifts[1].ID)

	out, err = run(t, a, "", "--api", srv.URL, "shifts")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &shifts))
	assert.Len(t, shifts, 3)
}

const profileJSON = `{
  "fullName": "Jamie Rivera",
  "age": "29",
  "addressLine1": "12 Harbor Street",
  "zipCode": "94110",
  "email": "jamie@example.org",
  "phone": "(415) 555-0100",
  "emergencyContact": "Sam Rivera",
  "emergencyPhone": "+1 415 555 0101",
  "skills": ["cooking"],
  "interests": ["hunger"]
}`

func TestOnboardingCommands(t *testing.T) {
	a := &app{}
	defer a.close()
	store := filepath.Join(t.TempDir(), "local.db")

	out, err := run(t, a, "", "--store", store, "onboarding", "status")
	require.NoError(t, err)
	assert.JSONEq(t, `{"hasOnboarded":false,"userProfile":null}`, out)

	_, err = run(t, a, `{"fullName":"J"}`, "--store", store, "onboarding", "complete")
	assert.EqualError(t, err, "Name must be at least 2 characters")

	_, err = run(t, a, profileJSON, "--store", store, "onboarding", "complete")
	require.NoError(t, err)

	out, err = run(t, a, "", "--store", store, "onboarding", "update", "--zip-code", "94103", "--skills", "driving,tutoring")
	require.NoError(t, err)
	var profile domain.OnboardingProfile
	require.NoError(t, json.Unmarshal([]byte(out), &profile))
	assert.Equal(t, "94103", profile.ZipCode)
	assert.Equal(t, "Jamie Rivera", profile.FullName)
	assert.Equal(t, []string{"driving", "tutoring"}, profile.Skills)

	_, err = run(t, a, "", "--store", store, "onboarding", "reset")
	require.NoError(t, err)
	out, err = run(t, a, "", "--store", store, "onboarding", "status")
	require.NoError(t, err)
	assert.JSONEq(t, `{"hasOnboarded":false,"userProfile":null}`, out)
}
