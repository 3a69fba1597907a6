package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	TableLeads    = "leads"
	TableMessages = "mensagens"
)

var ErrNotConfigured = errors.New("supabase não configurado: SUPABASE_URL ou SUPABASE_KEY ausente")

// Client fala com a API REST (PostgREST) do projeto Supabase.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient com timeout zero deixa o http.Client sem timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

// Ping faz uma leitura mínima na tabela de leads.
func (c *Client) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("select", "id")
	q.Set("limit", "1")
	var rows []json.RawMessage
	return c.do(ctx, http.MethodGet, TableLeads, q, nil, &rows)
}

func (c *Client) do(ctx context.Context, method, table string, query url.Values, body interface{}, out interface{}) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("erro ao serializar payload supabase: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	c.setHeaders(req, method != http.MethodGet)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro na conexão com supabase: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta supabase: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(respBody, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("erro ao decodificar resposta supabase: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, wantsRepresentation bool) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if wantsRepresentation {
		req.Header.Set("Prefer", "return=representation")
	}
}
