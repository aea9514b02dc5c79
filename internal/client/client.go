package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"volunteer-backend/internal/domain"
)

const defaultCacheSize = 128

// Options configures New. BaseURL selects the HTTP transport; without it a
// Transport must be given.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Transport  Transport
	// CacheSize bounds the read cache. Negative disables caching.
	CacheSize int
}

// Client reads the directory through an LRU cache and deduplicates
// concurrent identical reads. Cached values are shared; callers must not
// modify them.
type Client struct {
	transport Transport
	cache     *lru.Cache[string, any]
	group     singleflight.Group
}

func New(opts Options) (*Client, error) {
	transport := opts.Transport
	if opts.BaseURL != "" {
		transport = NewHTTPTransport(opts.BaseURL, opts.HTTPClient)
	}
	if transport == nil {
		return nil, errors.New("client: either BaseURL or Transport is required")
	}

	c := &Client{transport: transport}
	if opts.CacheSize >= 0 {
		size := opts.CacheSize
		if size == 0 {
			size = defaultCacheSize
		}
		cache, err := lru.New[string, any](size)
		if err != nil {
			return nil, fmt.Errorf("client: failed to create cache: %w", err)
		}
		c.cache = cache
	}
	return c, nil
}

func organizationKey(id int32) string { return fmt.Sprintf("organization:%d", id) }
func shiftKey(id int32) string        { return fmt.Sprintf("shift:%d", id) }
func userKey(id int32) string         { return fmt.Sprintf("user:%d", id) }

const (
	organizationsKey = "organizations"
	shiftsKey        = "shifts"
)

// cached returns the value under key, fetching it once across concurrent
// callers on a miss. Errors are never cached. The shared fetch runs detached
// from any single caller's cancellation; each caller stops waiting when its
// own ctx is done.
func cached[T any](ctx context.Context, c *Client, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			return v.(T), nil
		}
	}
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		v, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		if c.cache != nil {
			c.cache.Add(key, v)
		}
		return v, nil
	})
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func (c *Client) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	return cached(ctx, c, organizationsKey, c.transport.ListOrganizations)
}

// GetOrganization returns nil when no organization has the id.
func (c *Client) GetOrganization(ctx context.Context, id int32) (*domain.OrganizationDetail, error) {
	return cached(ctx, c, organizationKey(id), func(ctx context.Context) (*domain.OrganizationDetail, error) {
		return c.transport.GetOrganization(ctx, id)
	})
}

func (c *Client) ListShifts(ctx context.Context) ([]domain.ShiftWithOrganization, error) {
	return cached(ctx, c, shiftsKey, c.transport.ListShifts)
}

// GetShift returns nil when no shift has the id.
func (c *Client) GetShift(ctx context.Context, id int32) (*domain.ShiftWithOrganization, error) {
	return cached(ctx, c, shiftKey(id), func(ctx context.Context) (*domain.ShiftWithOrganization, error) {
		return c.transport.GetShift(ctx, id)
	})
}

func (c *Client) GetUserProfile(ctx context.Context, userID int32) (*domain.User, error) {
	return cached(ctx, c, userKey(userID), func(ctx context.Context) (*domain.User, error) {
		return c.transport.GetUserProfile(ctx, userID)
	})
}

// RegisterForShift validates the ids before touching the transport and, on
// success, drops the cached shift and user so their counters are re-read.
func (c *Client) RegisterForShift(ctx context.Context, shiftID, userID int32) (*domain.ShiftRegistration, error) {
	if shiftID == 0 || userID == 0 {
		return nil, domain.NewValidationError("shiftId", "Shift ID and User ID are required")
	}
	reg, err := c.transport.RegisterForShift(ctx, shiftID, userID)
	if err != nil {
		return nil, err
	}
	c.Invalidate(shiftKey(shiftID), userKey(userID))
	return reg, nil
}

func (c *Client) GetNotifications(ctx context.Context, userID int32) ([]domain.Notification, error) {
	return c.transport.GetNotifications(ctx, userID)
}

func (c *Client) MarkNotificationRead(ctx context.Context, userID, notificationID int32) error {
	return c.transport.MarkNotificationRead(ctx, userID, notificationID)
}

func (c *Client) ListAchievements(ctx context.Context, userID int32) ([]domain.AchievementProgress, error) {
	return c.transport.ListAchievements(ctx, userID)
}

// Invalidate drops the given cache keys.
func (c *Client) Invalidate(keys ...string) {
	if c.cache == nil {
		return
	}
	for _, k := range keys {
		c.cache.Remove(k)
	}
}

// Purge empties the cache.
func (c *Client) Purge() {
	if c.cache != nil {
		c.cache.Purge()
	}
}
