package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/weplanet/ecoquest/internal/config"
	"github.com/weplanet/ecoquest/internal/models"
	"github.com/weplanet/ecoquest/internal/util"
)

const maxErrorBody = 4 << 10

// Client talks to the mission backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = util.OrNop(l) }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) TodayMission(ctx context.Context, userID string) (models.Mission, error) {
	const op = "today mission"
	var dto missionDTO
	if err := c.do(ctx, op, http.MethodGet, "/mission/today", userID, nil, &dto); err != nil {
		return models.Mission{}, err
	}
	return dto.toModel(op)
}

func (c *Client) TodayStatus(ctx context.Context, userID string) (models.DailyLockStatus, error) {
	const op = "today status"
	var dto statusDTO
	path := "/mission/today-status?user_id=" + url.QueryEscape(userID)
	if err := c.do(ctx, op, http.MethodGet, path, "", nil, &dto); err != nil {
		return models.DailyLockStatus{}, err
	}
	if dto.LockedToday == nil {
		return models.DailyLockStatus{}, malformed(op, "lockedToday is required")
	}
	return models.DailyLockStatus{Date: dto.Date, Locked: *dto.LockedToday}, nil
}

// CompleteMission reports the mission as done. requestID is sent as an
// Idempotency-Key so a retried submit can be recognized server-side.
func (c *Client) CompleteMission(ctx context.Context, userID string, missionID int64, requestID string) (models.CompletionResult, error) {
	const op = "complete mission"
	var dto completeDTO
	headers := map[string]string{}
	if requestID != "" {
		headers["Idempotency-Key"] = requestID
	}
	path := "/mission/complete/" + strconv.FormatInt(missionID, 10)
	if err := c.do(ctx, op, http.MethodPost, path, userID, headers, &dto); err != nil {
		return models.CompletionResult{}, err
	}
	res := dto.toModel()
	if !res.OK {
		return res, ErrRejected
	}
	return res, nil
}

func (c *Client) Badges(ctx context.Context) ([]models.BadgeCatalogEntry, error) {
	const op = "badges"
	var dtos []badgeDTO
	if err := c.do(ctx, op, http.MethodGet, "/badge/badges", "", nil, &dtos); err != nil {
		return nil, err
	}
	if dtos == nil {
		return nil, malformed(op, "expected an array")
	}
	out := make([]models.BadgeCatalogEntry, 0, len(dtos))
	for _, d := range dtos {
		entry, err := d.toModel(op)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

func (c *Client) UserProgress(ctx context.Context, userID string) (models.UserProgress, error) {
	const op = "user progress"
	var dto progressDTO
	if err := c.do(ctx, op, http.MethodGet, "/badge/user-progress/"+url.PathEscape(userID), "", nil, &dto); err != nil {
		return models.UserProgress{}, err
	}
	return dto.toModel(op)
}

func (c *Client) ResetProgress(ctx context.Context, userID string) error {
	return c.do(ctx, "reset progress", http.MethodPost, "/reset-progress/"+url.PathEscape(userID), "", nil, nil)
}

func (c *Client) EcoSummary(ctx context.Context, userID string) (models.EcoSummary, error) {
	const op = "eco summary"
	var dto summaryDTO
	if err := c.do(ctx, op, http.MethodGet, "/ecoboard/summary/me", userID, nil, &dto); err != nil {
		return models.EcoSummary{}, err
	}
	return dto.toModel(op)
}

func (c *Client) do(ctx context.Context, op, method, path, userID string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	if userID != "" {
		req.Header.Set(config.UserIDHeader, userID)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("op", op), zap.String("path", path), zap.Error(err))
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	c.log.Debug("request done",
		zap.String("op", op),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Op: op, Status: resp.StatusCode, Body: string(body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return &TransportError{Op: op, Err: err}
		}
		return malformed(op, err.Error())
	}
	return nil
}
