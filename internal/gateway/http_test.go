package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/fieldtrack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewHTTPClient(srv.URL, "secret", "device-1", 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_RequiresEndpointAndToken(t *testing.T) {
	_, err := NewHTTPClient("", "tok", "", time.Second)
	assert.True(t, errors.Is(err, ErrNotConfigured))

	_, err = NewHTTPClient("https://x.test", "", "", time.Second)
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestPing_OK(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "health", r.URL.Query().Get("action"))
		assert.Equal(t, "secret", r.URL.Query().Get("token"))
		_, _ = w.Write([]byte(`{"status":"ok","message":"up","timestamp":"2024-03-01T10:00:00Z"}`))
	})

	require.NoError(t, c.Ping(context.Background()))
}

func TestPing_AccessDeniedInBody(t *testing.T) {
	// Auth failures come back as HTTP 200 with an error string in the body.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"Access Denied: invalid token"}`))
	})

	err := c.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestPing_Non200IsUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})

	err := c.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestPing_TransportErrorIsUnavailable(t *testing.T) {
	c, err := NewHTTPClient("http://127.0.0.1:1", "secret", "", 200*time.Millisecond)
	require.NoError(t, err)

	err = c.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestFetchData_DecodesAndNormalizesDates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var env envelope
		require.NoError(t, json.Unmarshal(body, &env))
		assert.Equal(t, "GET_DATA", env.Action)
		assert.Equal(t, "secret", env.Token)

		_, _ = w.Write([]byte(`{
			"entidades":[{"id":"ENT001","nombre":"School A","tipo":"Institución Educativa","fechaVisitaGestion":"2024-02-10T00:00:00.000Z"}],
			"recolecciones":[{"id":"REC001","idEntidad":"ENT001","nombreEntidad":"School A","fechaRecoleccion":"2024-03-01T05:00:00.000Z"}],
			"detalles":[{"id":"DET001","idRecoleccion":"REC001","idEntidad":"ENT001","nombreEntidad":"School A","fechaRecoleccion":"2024-03-01","material":"Cartón","pesoKg":12.5}],
			"metrics":{"metaTrimestral":500,"totalRecolectado":120.5,"percentCumplimiento":24.1}
		}`))
	})

	snap, err := c.FetchData(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Entities, 1)
	assert.Equal(t, "2024-02-10", snap.Entities[0].VisitDate)
	assert.Equal(t, models.KindEducational, snap.Entities[0].Kind)

	require.Len(t, snap.Collections, 1)
	assert.Equal(t, "2024-03-01", snap.Collections[0].Date)

	require.Len(t, snap.Details, 1)
	assert.Equal(t, models.MaterialCardboard, snap.Details[0].Material)
	assert.Equal(t, 12.5, snap.Details[0].WeightKg)

	assert.Equal(t, 500.0, snap.Metrics.QuarterlyTarget)
	assert.Equal(t, 120.5, snap.Metrics.TotalCollected)
}

func TestPush_SendsEnvelopeAndReturnsAcks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/plain;charset=utf-8", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		var env struct {
			Action  string      `json:"action"`
			Token   string      `json:"token"`
			Device  string      `json:"device"`
			Payload wirePayload `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(body, &env))
		assert.Equal(t, "sync", env.Action)
		assert.Equal(t, "device-1", env.Device)
		require.Len(t, env.Payload.Entities, 1)
		assert.Equal(t, "ENT001", env.Payload.Entities[0].ID)
		require.Len(t, env.Payload.Details, 1)
		assert.True(t, bool(env.Payload.Details[0].Deleted))

		_, _ = w.Write([]byte(`{
			"success":true,
			"added":{"entidades":["ENT001"],"recolecciones":[],"detalles":["DET001"]},
			"logs":["1 entity upserted","1 detail removed"]
		}`))
	})

	res, err := c.Push(context.Background(), Batch{
		Entities: []models.Entity{{ID: "ENT001", Name: "School A", Kind: models.KindEducational}},
		Details:  []models.Detail{{ID: "DET001", CollectionID: "REC001", Deleted: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ENT001"}, res.Entities)
	assert.Empty(t, res.Collections)
	assert.Equal(t, []string{"DET001"}, res.Details)
	assert.Len(t, res.Logs, 2)
}

func TestPush_SuccessFalseIsRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"logs":["schema mismatch"]}`))
	})

	_, err := c.Push(context.Background(), Batch{Entities: []models.Entity{{ID: "ENT001"}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejected))
}

func TestPush_MalformedResponseIsRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>login page</html>`))
	})

	_, err := c.Push(context.Background(), Batch{Entities: []models.Entity{{ID: "ENT001"}}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejected))
}

func TestFlag01_Unmarshal(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{`1`, true, false},
		{`"1"`, true, false},
		{`true`, true, false},
		{`0`, false, false},
		{`"0"`, false, false},
		{`false`, false, false},
		{`null`, false, false},
		{`""`, false, false},
		{`"yes"`, false, true},
	}
	for _, tt := range tests {
		var f Flag01
		err := json.Unmarshal([]byte(tt.in), &f)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, bool(f), tt.in)
	}
}

func TestFlag01_MarshalAsDigit(t *testing.T) {
	b, err := json.Marshal(Flag01(true))
	require.NoError(t, err)
	assert.Equal(t, "1", string(b))

	b, err = json.Marshal(Flag01(false))
	require.NoError(t, err)
	assert.Equal(t, "0", string(b))
}

func TestBatch_Empty(t *testing.T) {
	assert.True(t, Batch{}.Empty())
	assert.False(t, Batch{Details: []models.Detail{{ID: "DET001"}}}.Empty())
}
