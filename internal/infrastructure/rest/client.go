// Package rest implementa el transporte HTTP compartido por todos los stores:
// ida y vuelta JSON, header Bearer, X-Request-ID y normalización del error.
// Usa net/http de la librería estándar de Go; no requiere un SDK de cliente.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kongsi/inventory-client/internal/domain/apierror"
	"github.com/kongsi/inventory-client/pkg/logger"
)

// HeaderProvider construye los headers de autenticación de una petición.
// El AuthStore entrega una implementación sobre su sesión vigente.
type HeaderProvider func() map[string]string

// Client transporte REST contra el backend de inventario.
// Sin reintentos, sin deduplicación y sin cancelación más allá del context del
// llamador: cada fallo transitorio se reporta una sola vez.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el transporte. timeout limita cada petición completa;
// cero desactiva el límite.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Request descripción de una petición al backend.
type Request struct {
	Method  string
	Path    string            // ej. /api/v1/inventory
	Query   url.Values        // opcional
	Headers map[string]string // opcional; típicamente el resultado de un HeaderProvider
	Body    any               // opcional; se serializa como JSON
}

// Do ejecuta la petición y decodifica la respuesta 2xx en out (si out no es nil).
// Cualquier respuesta no-2xx se devuelve como *apierror.ServerError normalizado;
// los fallos de red y de decodificación degradan a error general.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return apierror.General("serializar request: " + err.Error())
		}
		body = bytes.NewReader(raw)
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return apierror.General("construir request: " + err.Error())
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Warn().Str("request_id", requestID).Str("method", req.Method).
			Str("path", req.Path).Err(err).Msg("fallo de red")
		return apierror.General(err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apierror.General("leer respuesta: " + err.Error())
	}

	c.log.Debug().Str("request_id", requestID).Str("method", req.Method).
		Str("path", req.Path).Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).Msg("petición al backend")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apierror.Normalize(raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return apierror.General("decodificar respuesta: " + err.Error())
		}
	}
	return nil
}
