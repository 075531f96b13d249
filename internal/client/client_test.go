package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/firelane/safecover/internal/domain"
	"github.com/firelane/safecover/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoundTrip(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/safety-requests", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"uniqueId": "42"})
	}))
	defer srv.Close()

	rec := domain.NewRecord("12345", "DRDL", "Engineering")
	rec.SafetyCoverage = domain.CoverageRadiography
	rec.Declared = true
	rec.Fields[schema.FieldWorkCentre] = "LARC"

	id, err := New(srv.URL).Create(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "42", id)

	// The wire form is one flat object: identity and schema fields side by
	// side.
	assert.Equal(t, "12345", got["personnelNumber"])
	assert.Equal(t, "radiography", got["safetyCoverage"])
	assert.Equal(t, "LARC", got["workCentre"])
	assert.Equal(t, true, got["declared"])
}

func TestGetDecodesFlatRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/safety-requests/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"uniqueId": "42",
			"personnelNumber": "12345",
			"safetyCoverage": "integration",
			"directorate": "DRDL",
			"division": "Engineering",
			"declared": true,
			"integrationFacility": "Bay 3"
		}`))
	}))
	defer srv.Close()

	rec, err := New(srv.URL).Get(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", rec.UniqueID)
	assert.Equal(t, domain.CoverageIntegration, rec.SafetyCoverage)
	assert.Equal(t, "Bay 3", rec.Field(schema.FieldIntegrationFacility))
	assert.True(t, rec.Declared)
}

func TestDomainErrorUsesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "workCentre: This field is required"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Create(context.Background(), domain.NewRecord("1", "", ""))
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Equal(t, "workCentre: This field is required", domain.ErrorMessage(err))
}

func TestDomainErrorFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	err := New(srv.URL).Delete(context.Background(), "42")
	require.Error(t, err)
	assert.Equal(t, domain.EREMOTE, domain.ErrorCode(err))
	assert.Equal(t, "HTTP 418", domain.ErrorMessage(err))
}

func TestDomainErrorSurfacesServerMessageOn5xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message": "upstream store unavailable"}`))
	}))
	defer srv.Close()

	err := New(srv.URL).Delete(context.Background(), "42")
	require.Error(t, err)
	assert.Equal(t, "upstream store unavailable", domain.ErrorMessage(err))
}

func TestTransportErrorIsDistinguished(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := New(srv.URL).List(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.ETRANSPORT, domain.ErrorCode(err))
}

func TestNotFoundMapsToCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "safety request with ID \"99\" not found"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Get(context.Background(), "99")
	require.Error(t, err)
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/employees/login", r.URL.Path)
		var params domain.LoginParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		if params.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message": "invalid credentials"}`))
			return
		}
		json.NewEncoder(w).Encode(domain.EmployeeProfile{
			PersonnelNo: params.PersonnelNo,
			Name:        "S. Verma",
			Directorate: "DRDL",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)

	profile, err := c.Login(context.Background(), domain.LoginParams{PersonnelNo: "12345", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "S. Verma", profile.Name)

	_, err = c.Login(context.Background(), domain.LoginParams{PersonnelNo: "12345", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
	assert.Equal(t, "invalid credentials", domain.ErrorMessage(err))
}
