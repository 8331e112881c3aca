package store

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"neonmap/internal/apperr"
)

const mapsPath = "/mindmaps/maps/"

// HTTPClient talks to the mind map REST API.
type HTTPClient struct {
	base  string
	token string
	hc    *http.Client
	log   *zap.Logger
}

func NewHTTPClient(baseURL, token string, timeout time.Duration, log *zap.Logger) *HTTPClient {
	return &HTTPClient{
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		hc:    &http.Client{Timeout: timeout},
		log:   log,
	}
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) mapURL(id ID) string {
	if id == "" {
		return c.base + mapsPath
	}
	return c.base + mapsPath + url.PathEscape(id.String()) + "/"
}

// errorBody covers both this module's server and a Django REST backend.
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (c *HTTPClient) do(ctx context.Context, method, target string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return apperr.Internal(err, "encode request")
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return apperr.Internal(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("method", method), zap.String("url", target), zap.Error(err))
		return apperr.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Detail
		}
		c.log.Debug("request rejected",
			zap.String("method", method),
			zap.String("url", target),
			zap.Int("status", resp.StatusCode))
		return apperr.FromStatus(resp.StatusCode, msg)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Internal(err, "decode response")
	}
	return nil
}

func (c *HTTPClient) Load(ctx context.Context, id ID) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodGet, c.mapURL(id), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) Create(ctx context.Context, in NewRecord) (*Record, error) {
	if err := PrepareCreate(&in); err != nil {
		return nil, err
	}
	var rec Record
	if err := c.do(ctx, http.MethodPost, c.mapURL(""), in, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) Update(ctx context.Context, id ID, patch Patch) (*Record, error) {
	if err := PreparePatch(&patch); err != nil {
		return nil, err
	}
	var rec Record
	if err := c.do(ctx, http.MethodPatch, c.mapURL(id), patch, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *HTTPClient) Delete(ctx context.Context, id ID) error {
	return c.do(ctx, http.MethodDelete, c.mapURL(id), nil, nil)
}

// List accepts both a paginated {"results": [...]} body and a bare array.
func (c *HTTPClient) List(ctx context.Context, f Filter) ([]Summary, error) {
	target := c.mapURL("")
	if q := f.Query(); len(q) > 0 {
		target += "?" + q.Encode()
	}
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, target, nil, &raw); err != nil {
		return nil, err
	}
	recs, err := decodeList(raw)
	if err != nil {
		return nil, apperr.Internal(err, "decode list")
	}
	out := make([]Summary, len(recs))
	for i := range recs {
		out[i] = Summarize(&recs[i])
	}
	return out, nil
}

func decodeList(raw json.RawMessage) ([]Record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var recs []Record
	if raw[0] == '[' {
		err := json.Unmarshal(raw, &recs)
		return recs, err
	}
	var page struct {
		Results []Record `json:"results"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		return nil, errors.New("list response has no results")
	}
	return page.Results, nil
}
