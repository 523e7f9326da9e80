package dragonball

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmcdole/zenkai/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Client talks to the Dragon Ball catalog API. Every call is a single
// attempt; callers decide what a failure means.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new catalog API client
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// doRequest performs a GET against the API and returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	start := time.Now()
	c.logger.Debug("api request", "request_id", requestID, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("api request failed", "request_id", requestID, "url", reqURL, "error", err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("api response",
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		c.logger.Error("api request error", "request_id", requestID, "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrUnexpectedResponse, resp.StatusCode)
	}

	return body, nil
}

// getPage fetches one page of a paginated endpoint
func getPage[T any](ctx context.Context, c *Client, path string, page, limit int) (*PageResponse[T], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var resp PageResponse[T]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnexpectedResponse, err)
	}
	return &resp, nil
}

// getOne fetches a single record by id
func getOne[T any](ctx context.Context, c *Client, path string, id int) (*T, error) {
	body, err := c.doRequest(ctx, fmt.Sprintf("%s/%d", path, id), nil)
	if err != nil {
		return nil, err
	}

	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnexpectedResponse, err)
	}
	return &item, nil
}

// GetCharacters returns one page of characters and the catalog size
func (c *Client) GetCharacters(ctx context.Context, page, limit int) ([]*domain.Character, int, error) {
	resp, err := getPage[Character](ctx, c, "/characters", page, limit)
	if err != nil {
		return nil, 0, err
	}
	return MapCharacters(resp.Items), resp.Meta.TotalItems, nil
}

// GetCharacter returns a single character
func (c *Client) GetCharacter(ctx context.Context, id int) (*domain.Character, error) {
	item, err := getOne[Character](ctx, c, "/characters", id)
	if err != nil {
		return nil, err
	}
	if item.ID == 0 && item.Name == "" {
		return nil, domain.ErrNotFound
	}
	return mapCharacter(*item), nil
}

// SearchCharacters matches characters by name. The endpoint answers with a
// raw array, though an {items: [...]} object is accepted too.
func (c *Client) SearchCharacters(ctx context.Context, name string) ([]*domain.Character, error) {
	query := url.Values{}
	query.Set("name", name)

	body, err := c.doRequest(ctx, "/characters", query)
	if err != nil {
		return nil, err
	}

	items, err := decodeList[Character](body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnexpectedResponse, err)
	}
	return MapCharacters(items), nil
}

// GetPlanets returns one page of planets and the catalog size
func (c *Client) GetPlanets(ctx context.Context, page, limit int) ([]*domain.Planet, int, error) {
	resp, err := getPage[Planet](ctx, c, "/planets", page, limit)
	if err != nil {
		return nil, 0, err
	}
	return MapPlanets(resp.Items), resp.Meta.TotalItems, nil
}

// GetPlanet returns a single planet
func (c *Client) GetPlanet(ctx context.Context, id int) (*domain.Planet, error) {
	item, err := getOne[Planet](ctx, c, "/planets", id)
	if err != nil {
		return nil, err
	}
	if item.ID == 0 && item.Name == "" {
		return nil, domain.ErrNotFound
	}
	return mapPlanet(*item), nil
}

// GetAllTransformations returns the whole transformations catalog.
// The endpoint is not paginated.
func (c *Client) GetAllTransformations(ctx context.Context) ([]*domain.Transformation, error) {
	body, err := c.doRequest(ctx, "/transformations", nil)
	if err != nil {
		return nil, err
	}

	items, err := decodeList[Transformation](body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnexpectedResponse, err)
	}
	return MapTransformations(items), nil
}

// GetTransformation returns a single transformation
func (c *Client) GetTransformation(ctx context.Context, id int) (*domain.Transformation, error) {
	item, err := getOne[Transformation](ctx, c, "/transformations", id)
	if err != nil {
		return nil, err
	}
	if item.ID == 0 && item.Name == "" {
		return nil, domain.ErrNotFound
	}
	return mapTransformation(*item), nil
}

var (
	_ domain.CharacterRepository      = (*Client)(nil)
	_ domain.PlanetRepository         = (*Client)(nil)
	_ domain.TransformationRepository = (*Client)(nil)
)
