// Package crmapi talks to the pipeline CRM REST API on behalf of a signed-in
// user. Every call forwards the user's access token.
package crmapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/xavierca1/dealflow/internal/entity"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a client for baseURL allowing reqPerSec requests per
// second with the given burst. A non-positive rate disables limiting.
func NewClient(baseURL string, reqPerSec float64, burst int) *Client {
	limit := rate.Inf
	if reqPerSec > 0 {
		limit = rate.Limit(reqPerSec)
	}
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(limit, burst),
	}
}

// Configured reports whether a base URL was given.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

func (c *Client) ListAllLeads(ctx context.Context, token string) ([]entity.Lead, error) {
	var leads []entity.Lead
	if err := c.do(ctx, token, http.MethodGet, "/leads/all", nil, &leads); err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

func (c *Client) CreateIndividualLead(ctx context.Context, token string, form entity.LeadForm) (*CreateLeadOutput, error) {
	var out CreateLeadOutput
	if err := c.do(ctx, token, http.MethodPost, "/leads/individual", form, &out); err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return &out, nil
}

func (c *Client) GetLeadDetails(ctx context.Context, token, leadID string) (*entity.LeadDetails, error) {
	var out entity.LeadDetails
	if err := c.do(ctx, token, http.MethodGet, "/leads/"+url.PathEscape(leadID)+"/details", nil, &out); err != nil {
		return nil, fmt.Errorf("lead details: %w", err)
	}
	return &out, nil
}

func (c *Client) ListRemarks(ctx context.Context, token, leadID string) ([]entity.Remark, error) {
	var out []entity.Remark
	if err := c.do(ctx, token, http.MethodGet, leadPath(leadID, "remarks"), nil, &out); err != nil {
		return nil, fmt.Errorf("list remarks: %w", err)
	}
	return out, nil
}

func (c *Client) AddRemark(ctx context.Context, token, leadID, remark string) (*entity.Remark, error) {
	var out entity.Remark
	if err := c.do(ctx, token, http.MethodPost, leadPath(leadID, "remarks"), remarkBody{Remark: remark}, &out); err != nil {
		return nil, fmt.Errorf("add remark: %w", err)
	}
	return &out, nil
}

func (c *Client) DeleteRemark(ctx context.Context, token, leadID, remarkID string) error {
	if err := c.do(ctx, token, http.MethodDelete, leadPath(leadID, "remarks")+"/"+url.PathEscape(remarkID), nil, nil); err != nil {
		return fmt.Errorf("delete remark: %w", err)
	}
	return nil
}

func (c *Client) ListActionables(ctx context.Context, token, leadID string) ([]entity.Actionable, error) {
	var out []entity.Actionable
	if err := c.do(ctx, token, http.MethodGet, leadPath(leadID, "actionables"), nil, &out); err != nil {
		return nil, fmt.Errorf("list actionables: %w", err)
	}
	return out, nil
}

func (c *Client) AddActionable(ctx context.Context, token, leadID, actionable string) (*entity.Actionable, error) {
	var out entity.Actionable
	if err := c.do(ctx, token, http.MethodPost, leadPath(leadID, "actionables"), actionableBody{Actionable: actionable}, &out); err != nil {
		return nil, fmt.Errorf("add actionable: %w", err)
	}
	return &out, nil
}

func (c *Client) DeleteActionable(ctx context.Context, token, leadID, actionableID string) error {
	if err := c.do(ctx, token, http.MethodDelete, leadPath(leadID, "actionables")+"/"+url.PathEscape(actionableID), nil, nil); err != nil {
		return fmt.Errorf("delete actionable: %w", err)
	}
	return nil
}

func (c *Client) ListScheduledInterventions(ctx context.Context, token string) ([]entity.Intervention, error) {
	var out []entity.Intervention
	if err := c.do(ctx, token, http.MethodGet, "/interventions/scheduled", nil, &out); err != nil {
		return nil, fmt.Errorf("list scheduled interventions: %w", err)
	}
	return out, nil
}

func (c *Client) UpdateIntervention(ctx context.Context, token string, id int64, upd InterventionUpdate) error {
	path := "/interventions/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, token, http.MethodPut, path, upd, nil); err != nil {
		return fmt.Errorf("update intervention %d: %w", id, err)
	}
	return nil
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]entity.User, error) {
	var out []entity.User
	if err := c.do(ctx, token, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func leadPath(leadID, sub string) string {
	return "/leads/" + url.PathEscape(leadID) + "/" + sub
}

func (c *Client) do(ctx context.Context, token, method, path string, in, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	c.addAuthHeaders(req, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &StatusError{Status: resp.StatusCode, Body: msg}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) addAuthHeaders(req *http.Request, token string) {
	if token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("x-supabase-access-token", token)
}
