// Package apierror define el error normalizado {name, type, message} que
// comparten todos los stores, y la normalización del sobre de error del backend.
package apierror

import (
	"encoding/json"
	"errors"
	"strings"
)

const (
	// NameGeneral nombre del error sintetizado cuando el backend no clasifica el fallo.
	NameGeneral = "error.general"
	// TypeGeneral categoría gruesa para fallos no clasificados.
	TypeGeneral = "general"
	// TypeInput categoría de errores de validación de campos.
	TypeInput = "input"
	// PrefixInsufficientPrivilege prefijo de los errores de autorización que
	// obligan a vaciar la colección local afectada.
	PrefixInsufficientPrivilege = "error.insufficientPrivilege"
)

// ServerError error normalizado del backend.
// Name es una clave estilo i18n ("error.insufficientPrivilege.canAddProduct"),
// Type la categoría gruesa y Message un diagnóstico crudo que no se muestra
// directamente al usuario final.
type ServerError struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Error implementa error.
func (e *ServerError) Error() string {
	if e.Message == "" {
		return e.Name
	}
	return e.Name + ": " + e.Message
}

// General construye un error no clasificado con el mensaje dado.
func General(message string) *ServerError {
	return &ServerError{Name: NameGeneral, Type: TypeGeneral, Message: message}
}

// envelope sobre de error de cualquier respuesta no-2xx del backend.
type envelope struct {
	Errors  []ServerError `json:"errors"`
	Message string        `json:"message"`
}

// Normalize convierte el cuerpo de una respuesta fallida en un ServerError.
// Si el sobre trae un array errors no vacío se toma el PRIMER elemento (los
// demás se descartan); si no, se sintetiza un error general con el message del
// nivel superior. Un cuerpo no parseable también degrada a error general.
func Normalize(body []byte) *ServerError {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return General(strings.TrimSpace(string(body)))
	}
	if len(env.Errors) > 0 {
		first := env.Errors[0]
		return &ServerError{Name: first.Name, Type: first.Type, Message: first.Message}
	}
	return General(env.Message)
}

// HasInsufficientPrivilege reporta si err es un ServerError de autorización
// (prefijo error.insufficientPrivilege). Los stores que poseen una colección
// la vacían antes de propagar este error.
func HasInsufficientPrivilege(err error) bool {
	var se *ServerError
	if !errors.As(err, &se) {
		return false
	}
	return strings.HasPrefix(se.Name, PrefixInsufficientPrivilege)
}
