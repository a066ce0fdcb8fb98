package net

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"helium-explorer/config"
	"helium-explorer/metrics"
	"helium-explorer/types"
)

const (
	GetBlockPath          = "/blocks/hash/{hash}"
	GetBlockByHeightPath  = "/blocks/{height}"
	GetNowHeightPath      = "/blocks/height"
	GetBlockTransactsPath = "/blocks/hash/{hash}/transactions"
)

var ErrNotFound = errors.New("not found")

// APIError is returned for any non-2xx answer of the upstream API.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("helium api %s responded %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

type blockResponse struct {
	Data types.Block `json:"data"`
}

type heightResponse struct {
	Data types.BlockHeight `json:"data"`
}

type transactionsResponse struct {
	Data   []*types.Transaction `json:"data"`
	Cursor string               `json:"cursor"`
}

type Client struct {
	rest   *resty.Client
	logger *zap.SugaredLogger
}

func New(cfg *config.NetConfig) *Client {
	rest := resty.New().
		SetBaseURL(cfg.ApiURL).
		SetTimeout(cfg.TimeoutDuration()).
		SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		rest.SetHeader("User-Agent", cfg.UserAgent)
	}
	rest.JSONMarshal = json.Marshal
	rest.JSONUnmarshal = json.Unmarshal

	c := &Client{
		rest:   rest,
		logger: zap.S().Named("[net]"),
	}
	rest.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		c.logger.Debugf("%s %s -> %d in %s", resp.Request.Method, resp.Request.URL, resp.StatusCode(), resp.Time())
		return nil
	})
	return c
}

func (c *Client) get(ctx context.Context, endpoint string, req *resty.Request, result interface{}, url string) error {
	resp, err := req.SetContext(ctx).SetResult(result).Get(url)
	if resp != nil {
		metrics.ObserveUpstream(endpoint, resp.StatusCode(), resp.Time())
	}
	if err != nil {
		return errors.Wrapf(err, "request %s", endpoint)
	}
	if resp.IsError() {
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}

func (c *Client) GetBlock(ctx context.Context, hash string) (*types.Block, error) {
	var result blockResponse
	req := c.rest.R().SetPathParam("hash", hash)
	if err := c.get(ctx, "block", req, &result, GetBlockPath); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

func (c *Client) GetBlockByHeight(ctx context.Context, height uint64) (*types.Block, error) {
	var result blockResponse
	req := c.rest.R().SetPathParam("height", strconv.FormatUint(height, 10))
	if err := c.get(ctx, "block_by_height", req, &result, GetBlockByHeightPath); err != nil {
		return nil, err
	}
	return &result.Data, nil
}

func (c *Client) GetNowHeight(ctx context.Context) (uint64, error) {
	var result heightResponse
	if err := c.get(ctx, "height", c.rest.R(), &result, GetNowHeightPath); err != nil {
		return 0, err
	}
	return result.Data.Height, nil
}

func (c *Client) getTransactions(ctx context.Context, hash, cursor string) (*transactionsResponse, error) {
	var result transactionsResponse
	req := c.rest.R().SetPathParam("hash", hash)
	if cursor != "" {
		req.SetQueryParam("cursor", cursor)
	}
	if err := c.get(ctx, "block_transactions", req, &result, GetBlockTransactsPath); err != nil {
		return nil, err
	}
	return &result, nil
}
