package api

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"bumsfarm/internal/domain"
)

// DefaultBaseURL is the production game API host.
const DefaultBaseURL = "https://api.bums.bot"

const defaultTimeout = 30 * time.Second

// RequestError reports a non-2xx response, with the body kept for the log.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: status %d", e.Status)
}

// Options configures one identity's outbound client. The client is owned
// exclusively by that identity's loop and never shared.
type Options struct {
	BaseURL   string
	UserAgent string
	Proxy     string
	Timeout   time.Duration
	Logger    *zap.Logger
}

// Client speaks the game's REST dialect: bearer-token auth, a uniform
// {code, msg, data} envelope, and per-endpoint body encodings including the
// hand-rolled multipart framing the upstream requires.
type Client struct {
	http    *resty.Client
	baseURL string
	log     *zap.Logger
}

func New(opts Options) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := resty.New().
		SetTimeout(timeout).
		SetHeaders(map[string]string{
			"Accept":          "application/json, text/plain, */*",
			"Accept-Language": "en-US,en;q=0.9",
			"Origin":          "https://app.bums.bot",
			"Referer":         "https://app.bums.bot/",
		})
	if opts.UserAgent != "" {
		httpClient.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.Proxy != "" {
		httpClient.SetProxy(opts.Proxy)
	}

	return &Client{http: httpClient, baseURL: baseURL, log: logger}
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func (e envelope) ok() bool {
	return e.Code == 0 && e.Msg == "OK"
}

// formField is one key/value pair of a multipart-like form body. Order is
// preserved because the framing is part of the wire contract.
type formField struct {
	name  string
	value string
}

const boundaryAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomBoundaryToken() string {
	var b strings.Builder
	for i := 0; i < 16; i++ {
		b.WriteByte(boundaryAlphabet[rand.Intn(len(boundaryAlphabet))])
	}
	return b.String()
}

// encodeWebForm assembles the exact multipart framing the upstream API
// expects. This is deliberately not mime/multipart output: the server
// wants this byte-for-byte shape even for plain key/value payloads.
func encodeWebForm(fields []formField, boundaryToken string) (contentType, body string) {
	boundary := "------WebKitFormBoundary" + boundaryToken

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s\r\nContent-Disposition: form-data; name=%q\r\n\r\n%s", boundary, f.name, f.value))
	}

	body = strings.Join(parts, "\r\n") + "\r\n" + boundary + "--\r\n"
	contentType = "multipart/form-data; boundary=----WebKitFormBoundary" + boundaryToken
	return contentType, body
}

// do issues one request against the API host. A transport failure comes
// back wrapped; a non-2xx status comes back as *RequestError. The caller
// decodes the body.
func (c *Client) do(ctx context.Context, method, endpoint, token string, configure func(*resty.Request)) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if configure != nil {
		configure(req)
	}

	resp, err := req.Execute(method, c.baseURL+endpoint)
	if err != nil {
		return nil, fmt.Errorf("execute %s %s: %w", method, endpoint, err)
	}
	if !resp.IsSuccess() {
		return nil, &RequestError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}
	return resp.Body(), nil
}

// callEnvelope runs do and enforces the uniform success envelope.
func (c *Client) callEnvelope(ctx context.Context, method, endpoint, token string, configure func(*resty.Request)) (json.RawMessage, error) {
	body, err := c.do(ctx, method, endpoint, token, configure)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode response envelope: %w", err)
	}
	if !env.ok() {
		return nil, fmt.Errorf("%w: code %d msg %q", domain.ErrUnavailable, env.Code, env.Msg)
	}
	return env.Data, nil
}

func (c *Client) getEnvelope(ctx context.Context, endpoint, token string) (json.RawMessage, error) {
	return c.callEnvelope(ctx, http.MethodGet, endpoint, token, nil)
}

func (c *Client) postWebForm(ctx context.Context, endpoint, token string, fields ...formField) (json.RawMessage, error) {
	contentType, body := encodeWebForm(fields, randomBoundaryToken())
	return c.callEnvelope(ctx, http.MethodPost, endpoint, token, func(req *resty.Request) {
		req.SetHeader("Content-Type", contentType)
		req.SetBody(body)
	})
}

func (c *Client) postURLEncoded(ctx context.Context, endpoint, token string, form map[string]string) (json.RawMessage, error) {
	return c.callEnvelope(ctx, http.MethodPost, endpoint, token, func(req *resty.Request) {
		req.SetHeader("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
		req.SetFormData(form)
	})
}

// egressInfo is the ip-api.com response shape used by CheckEgress.
type egressInfo struct {
	Query   string `json:"query"`
	Country string `json:"country"`
}

// CheckEgress resolves the client's outward IP and country through the
// configured proxy, for the startup log line.
func (c *Client) CheckEgress(ctx context.Context) (ip, country string, err error) {
	resp, err := c.http.R().SetContext(ctx).Get("http://ip-api.com/json")
	if err != nil {
		return "", "", fmt.Errorf("check egress: %w", err)
	}
	if !resp.IsSuccess() {
		return "", "", &RequestError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	var info egressInfo
	if err := json.Unmarshal(resp.Body(), &info); err != nil {
		return "", "", fmt.Errorf("decode egress response: %w", err)
	}
	return info.Query, info.Country, nil
}
