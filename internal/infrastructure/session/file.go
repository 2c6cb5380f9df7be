// Package session implementa el Persistor de sesión sobre un archivo JSON:
// carga al arranque, guardado en cada cambio, borrado en el logout.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kongsi/inventory-client/internal/application/store"
	"github.com/kongsi/inventory-client/internal/domain/entity"
)

// Verificar en tiempo de compilación que FileStore implementa store.Persistor.
var _ store.Persistor = (*FileStore)(nil)

// FileStore persistencia de sesión en un archivo JSON con permisos 0600
// (el archivo contiene el token de acceso).
type FileStore struct {
	path string
}

// NewFileStore construye el persistor sobre la ruta dada.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load lee la sesión persistida. Devuelve (nil, nil) si el archivo no existe.
func (f *FileStore) Load() (*entity.User, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("session: leer %s: %w", f.path, err)
	}
	var u entity.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("session: decodificar %s: %w", f.path, err)
	}
	return &u, nil
}

// Save escribe la sesión, creando el directorio si hace falta.
func (f *FileStore) Save(u *entity.User) error {
	raw, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return fmt.Errorf("session: serializar: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("session: crear directorio %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("session: escribir %s: %w", f.path, err)
	}
	return nil
}

// Clear elimina el archivo de sesión; que no exista no es un error.
func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: eliminar %s: %w", f.path, err)
	}
	return nil
}
