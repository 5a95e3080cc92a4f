package suggest

import (
	"bitbucket.org/sotavant/whateveryonethinks-skill/internal/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"time"
)

//go:generate mockgen -destination=mock/suggest.go -package=mock . Suggester

// Suggester возвращает подсказки автодополнения для запроса. Порядок подсказок значим.
type Suggester interface {
	Suggest(ctx context.Context, query string) ([]string, error)
}

const (
	DefaultBaseURL = "https://suggestqueries.google.com"
	searchPath     = "/complete/search"
)

var (
	ErrBadStatus   = errors.New("suggest: unexpected response status")
	ErrBadResponse = errors.New("suggest: malformed response body")
)

type Config struct {
	BaseURL  string
	Language string
	Timeout  time.Duration
	// RPS ограничивает число исходящих запросов в секунду; 0 — без ограничения.
	RPS float64
}

// GoogleClient ходит в сервис подсказок Google (формат client=firefox).
type GoogleClient struct {
	http     *resty.Client
	limiter  *rate.Limiter
	language string
}

func NewGoogleClient(cfg Config) *GoogleClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}

	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}

	return &GoogleClient{
		http:     c,
		limiter:  rate.NewLimiter(limit, 1),
		language: cfg.Language,
	}
}

func (c *GoogleClient) Suggest(ctx context.Context, query string) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("suggest: wait for rate limiter: %w", err)
	}

	params := map[string]string{
		"client": "firefox",
		"ie":     "utf-8",
		"oe":     "utf-8",
		"q":      query,
	}
	if c.language != "" {
		params["hl"] = c.language
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(searchPath)
	if err != nil {
		return nil, fmt.Errorf("suggest: request %q: %w", query, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode())
	}

	suggestions, err := parseSuggestions(resp.Body())
	if err != nil {
		return nil, err
	}

	logger.Log.Debug("got suggestions",
		zap.String("query", query),
		zap.Int("count", len(suggestions)),
		zap.Duration("duration", resp.Time()),
	)
	return suggestions, nil
}

// parseSuggestions разбирает ответ вида ["запрос", ["подсказка 1", "подсказка 2"], ...].
func parseSuggestions(body []byte) ([]string, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(body, &parts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: expected at least 2 elements, got %d", ErrBadResponse, len(parts))
	}

	var suggestions []string
	if err := json.Unmarshal(parts[1], &suggestions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return suggestions, nil
}
