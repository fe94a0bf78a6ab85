package crmapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/dealflow/internal/entity"
)

func TestListAllLeadsSendsTokenHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leads/all", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "tok-1", r.Header.Get("x-supabase-access-token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"id":1,"stage":"qualified","assignedTo":null,"company":{"name":"Acme","sector":"IT","sub_sector":"IT Services"}},
			{"id":"2","stage":"universe","assignedTo":"u-1","company":{"name":"Beta","sector":"IT","subSector":"IT"}}
		]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, 1)
	leads, err := c.ListAllLeads(context.Background(), "tok-1")

	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, entity.ID("1"), leads[0].ID)
	assert.Equal(t, "IT Services", leads[0].Company.SubSector)
	assert.False(t, leads[0].IsAssigned())
	assert.True(t, leads[1].IsAssigned())
}

func TestNon2xxBecomesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/leads/all" {
			http.Error(w, "token expired", http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, 1)

	_, err := c.ListAllLeads(context.Background(), "tok")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.Status)
	assert.Equal(t, "401: token expired", se.Error())

	_, err = c.ListUsers(context.Background(), "tok")
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Bad Gateway", se.Body)
}

func TestCreateIndividualLead(t *testing.T) {
	rev := 120.0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/leads/individual", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Acme", body["companyName"])
		assert.Equal(t, "partner-x", body["ChannelPartner"])
		assert.Equal(t, 120.0, body["revenueInrCr"])
		assert.NotContains(t, body, "ebitdaInrCr")

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"message":"Lead and company created successfully","lead":{"id":9,"stage":"universe","company":{"name":"Acme","sector":"IT"}}}`)
	}))
	defer srv.Close()

	out, err := NewClient(srv.URL, 0, 1).CreateIndividualLead(context.Background(), "tok", entity.LeadForm{
		CompanyName:    "Acme",
		Sector:         "IT",
		ChannelPartner: "partner-x",
		RevenueInrCr:   &rev,
	})

	require.NoError(t, err)
	assert.Equal(t, "Lead and company created successfully", out.Message)
	require.NotNil(t, out.Lead)
	assert.Equal(t, entity.ID("9"), out.Lead.ID)
}

func TestUpdateInterventionOmitsNilFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/interventions/17", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"status":"completed"}`, string(raw))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	status := entity.InterventionCompleted
	err := NewClient(srv.URL, 0, 1).UpdateIntervention(context.Background(), "tok", 17, InterventionUpdate{Status: &status})

	assert.NoError(t, err)
}

func TestRemarkAndActionablePaths(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodPost:
			_, _ = io.WriteString(w, `{"id":5}`)
		case http.MethodGet:
			_, _ = io.WriteString(w, `[]`)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, 1)
	ctx := context.Background()

	_, err := c.AddRemark(ctx, "tok", "L1", "spoke to CFO")
	require.NoError(t, err)
	require.NoError(t, c.DeleteRemark(ctx, "tok", "L1", "5"))
	_, err = c.ListActionables(ctx, "tok", "L1")
	require.NoError(t, err)
	require.NoError(t, c.DeleteActionable(ctx, "tok", "L1", "8"))

	assert.Equal(t, []string{
		"POST /leads/L1/remarks",
		"DELETE /leads/L1/remarks/5",
		"GET /leads/L1/actionables",
		"DELETE /leads/L1/actionables/8",
	}, seen)
}

func TestLimiterHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0.001, 1)
	_, err := c.ListUsers(context.Background(), "tok")
	require.NoError(t, err, "first call uses the burst")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.ListUsers(ctx, "tok")
	assert.Error(t, err)
}
