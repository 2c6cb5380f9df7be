package rest_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kongsi/inventory-client/internal/domain/apierror"
	"github.com/kongsi/inventory-client/internal/infrastructure/rest"
	"github.com/kongsi/inventory-client/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newClient(baseURL string) *rest.Client {
	return rest.NewClient(baseURL, 5*time.Second, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Respuestas 2xx
// ──────────────────────────────────────────────────────────────────────────────

func TestDo_DecodificaRespuesta2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"count":3}`))
	}))
	defer srv.Close()

	var out struct {
		OK    bool `json:"ok"`
		Count int  `json:"count"`
	}
	err := newClient(srv.URL).Do(context.Background(), rest.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/ping",
	}, &out)

	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, 3, out.Count)
}

func TestDo_EnviaHeadersQueryYBody(t *testing.T) {
	var gotPath, gotPage, gotAuth, gotContentType, gotRequestID string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPage = r.URL.Query().Get("page")
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	q := url.Values{}
	q.Set("page", "2")
	err := newClient(srv.URL).Do(context.Background(), rest.Request{
		Method:  http.MethodPost,
		Path:    "/api/v1/echo",
		Query:   q,
		Headers: map[string]string{"Authorization": "Bearer abc"},
		Body:    map[string]string{"name": "Wok Pan"},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/echo", gotPath)
	assert.Equal(t, "2", gotPage)
	assert.Equal(t, "Bearer abc", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.NotEmpty(t, gotRequestID, "cada petición debe llevar un X-Request-ID")
	assert.JSONEq(t, `{"name":"Wok Pan"}`, string(gotBody))
}

func TestDo_OutNilDescartaElCuerpo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ignored":true}`))
	}))
	defer srv.Close()

	err := newClient(srv.URL).Do(context.Background(), rest.Request{
		Method: http.MethodGet,
		Path:   "/",
	}, nil)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Respuestas de error
// ──────────────────────────────────────────────────────────────────────────────

func TestDo_No2xxDevuelveServerErrorNormalizado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"errors":[{"name":"error.insufficientPrivilege.canAddProduct","type":"general","message":"sin permiso"}]}`))
	}))
	defer srv.Close()

	err := newClient(srv.URL).Do(context.Background(), rest.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/inventory/add",
	}, nil)

	require.Error(t, err)
	var se *apierror.ServerError
	require.ErrorAs(t, err, &se, "toda respuesta no-2xx debe normalizarse a ServerError")
	assert.Equal(t, "error.insufficientPrivilege.canAddProduct", se.Name)
	assert.Equal(t, "general", se.Type)
	assert.Equal(t, "sin permiso", se.Message)
}

func TestDo_No2xxSinSobreDegradaAGeneral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream caído"))
	}))
	defer srv.Close()

	err := newClient(srv.URL).Do(context.Background(), rest.Request{
		Method: http.MethodGet,
		Path:   "/",
	}, nil)

	var se *apierror.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, apierror.NameGeneral, se.Name)
	assert.Equal(t, "upstream caído", se.Message)
}

func TestDo_FalloDeRedDegradaAGeneral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // servidor ya cerrado: la conexión debe fallar

	err := newClient(srv.URL).Do(context.Background(), rest.Request{
		Method: http.MethodGet,
		Path:   "/",
	}, nil)

	var se *apierror.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, apierror.NameGeneral, se.Name)
	assert.Equal(t, apierror.TypeGeneral, se.Type)
}

func TestDo_RespuestaNoDecodificableDegradaAGeneral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("esto no es JSON"))
	}))
	defer srv.Close()

	var out map[string]any
	err := newClient(srv.URL).Do(context.Background(), rest.Request{
		Method: http.MethodGet,
		Path:   "/",
	}, &out)

	var se *apierror.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, apierror.NameGeneral, se.Name)
}
