package session_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kongsi/inventory-client/internal/domain/entity"
	"github.com/kongsi/inventory-client/internal/infrastructure/session"
)

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	fs := session.NewFileStore(path)

	u := &entity.User{
		AccessToken: "tok-abc",
		Email:       "admin@kongsi.test",
		IsAdmin:     true,
		Permissions: entity.Permissions{CanViewProduct: true},
	}
	require.NoError(t, fs.Save(u), "Save debe crear el directorio intermedio")

	got, err := fs.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u, got)
}

func TestFileStore_LoadSinArchivo_DevuelveNil(t *testing.T) {
	fs := session.NewFileStore(filepath.Join(t.TempDir(), "no-existe.json"))

	got, err := fs.Load()
	require.NoError(t, err, "un archivo ausente no es un error")
	assert.Nil(t, got)
}

func TestFileStore_LoadArchivoCorrupto_DevuelveError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{corrupto"), 0o600))

	got, err := session.NewFileStore(path).Load()
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestFileStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	fs := session.NewFileStore(path)
	require.NoError(t, fs.Save(&entity.User{AccessToken: "tok"}))

	require.NoError(t, fs.Clear())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "Clear debe eliminar el archivo")

	assert.NoError(t, fs.Clear(), "borrar dos veces no es un error")
}

// El archivo contiene el token: debe quedar con permisos restrictivos.
func TestFileStore_PermisosDelArchivo(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permisos POSIX no aplican en windows")
	}
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, session.NewFileStore(path).Save(&entity.User{AccessToken: "tok"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
