package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"volunteer-backend/internal/domain"
	"volunteer-backend/internal/logger"
)

const networkErrorMessage = "Network error"

type idQuery struct {
	ID int32 `url:"id"`
}

type userQuery struct {
	UserID int32 `url:"userId"`
}

type registerBody struct {
	ShiftID int32 `json:"shiftId"`
	UserID  int32 `json:"userId"`
}

// HTTPTransport calls the API routes under BaseURL + "/api".
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport returns a transport for baseURL. A nil client gets a
// default with a 30 second timeout.
func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPTransport{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (t *HTTPTransport) url(path string, params any) (string, error) {
	u := t.baseURL + "/api" + path
	if params == nil {
		return u, nil
	}
	v, err := query.Values(params)
	if err != nil {
		return "", fmt.Errorf("failed to encode query: %w", err)
	}
	return u + "?" + v.Encode(), nil
}

func (t *HTTPTransport) do(ctx context.Context, method, path string, params, body, out any) error {
	target, err := t.url(path, params)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.ExternalServiceCall("API", method, "url", redact(target))
	resp, err := t.client.Do(req)
	if err != nil {
		logger.ExternalServiceResult("API", method, err)
		return &domain.TransportError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.TransportError{StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		terr := errorFromBody(resp.StatusCode, payload)
		logger.ExternalServiceResult("API", method, terr, "status", resp.StatusCode)
		return terr
	}
	logger.ExternalServiceResult("API", method, nil, "status", resp.StatusCode)

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(unwrapEnvelope(payload), out); err != nil {
		return &domain.TransportError{StatusCode: resp.StatusCode, Message: "failed to decode response: " + err.Error(), Err: err}
	}
	return nil
}

// errorFromBody builds the error for a non-2xx response: the body's error
// field, else "HTTP error! status: N", else "Network error" when the body is
// not JSON.
func errorFromBody(status int, payload []byte) *domain.TransportError {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return &domain.TransportError{StatusCode: status, Message: networkErrorMessage}
	}
	if body.Error == "" {
		return &domain.TransportError{StatusCode: status, Message: fmt.Sprintf("HTTP error! status: %d", status)}
	}
	return &domain.TransportError{StatusCode: status, Message: body.Error}
}

// unwrapEnvelope returns the value of a top-level {"data": ...} object, or
// payload unchanged when it is not one.
func unwrapEnvelope(payload []byte) []byte {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return payload
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return payload
	}
	data, ok := envelope["data"]
	if !ok {
		return payload
	}
	return data
}

func redact(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	return u.Redacted()
}

func (t *HTTPTransport) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	var orgs []domain.Organization
	if err := t.do(ctx, http.MethodGet, "/organizations", nil, nil, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (t *HTTPTransport) GetOrganization(ctx context.Context, id int32) (*domain.OrganizationDetail, error) {
	var org *domain.OrganizationDetail
	if err := t.do(ctx, http.MethodGet, "/organizations", idQuery{ID: id}, nil, &org); err != nil {
		return nil, err
	}
	return org, nil
}

func (t *HTTPTransport) ListShifts(ctx context.Context) ([]domain.ShiftWithOrganization, error) {
	var shifts []domain.ShiftWithOrganization
	if err := t.do(ctx, http.MethodGet, "/shifts", nil, nil, &shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

func (t *HTTPTransport) GetShift(ctx context.Context, id int32) (*domain.ShiftWithOrganization, error) {
	var shift *domain.ShiftWithOrganization
	if err := t.do(ctx, http.MethodGet, "/shifts", idQuery{ID: id}, nil, &shift); err != nil {
		return nil, err
	}
	return shift, nil
}

func (t *HTTPTransport) GetUserProfile(ctx context.Context, userID int32) (*domain.User, error) {
	var user *domain.User
	if err := t.do(ctx, http.MethodGet, "/users", idQuery{ID: userID}, nil, &user); err != nil {
		return nil, err
	}
	return user, nil
}

func (t *HTTPTransport) RegisterForShift(ctx context.Context, shiftID, userID int32) (*domain.ShiftRegistration, error) {
	var reg domain.ShiftRegistration
	if err := t.do(ctx, http.MethodPost, "/register", nil, registerBody{ShiftID: shiftID, UserID: userID}, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func (t *HTTPTransport) GetNotifications(ctx context.Context, userID int32) ([]domain.Notification, error) {
	var notes []domain.Notification
	if err := t.do(ctx, http.MethodGet, "/notifications", userQuery{UserID: userID}, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (t *HTTPTransport) MarkNotificationRead(ctx context.Context, userID, notificationID int32) error {
	path := fmt.Sprintf("/notifications/%d/read", notificationID)
	return t.do(ctx, http.MethodPost, path, userQuery{UserID: userID}, nil, nil)
}

func (t *HTTPTransport) ListAchievements(ctx context.Context, userID int32) ([]domain.AchievementProgress, error) {
	var progress []domain.AchievementProgress
	if err := t.do(ctx, http.MethodGet, "/achievements", userQuery{UserID: userID}, nil, &progress); err != nil {
		return nil, err
	}
	return progress, nil
}
