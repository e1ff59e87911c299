package schema_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/librelogin/envoverlay/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("valid schema", func(t *testing.T) {
		path := writeSchema(t, `
keys:
  - path: mail.host
    comment: SMTP relay
    default: localhost
  - path: allowed-commands-while-unauthorized
    default: [login, register]
`)
		keys, err := schema.LoadFile(path)
		require.NoError(t, err)
		require.Len(t, keys, 2)
		assert.Equal(t, "mail.host", keys[0].Path())
		assert.Equal(t, "SMTP relay", keys[0].Comment())
		assert.Equal(t, "localhost", keys[0].Default())
		assert.Equal(t, "allowed-commands-while-unauthorized", keys[1].Path())
		assert.Equal(t, []any{"login", "register"}, keys[1].Default())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := schema.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeSchema(t, "keys: [")
		_, err := schema.LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("empty key list", func(t *testing.T) {
		path := writeSchema(t, "keys: []")
		_, err := schema.LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("entry without a path", func(t *testing.T) {
		path := writeSchema(t, "keys:\n  - comment: no path here\n")
		_, err := schema.LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("malformed path", func(t *testing.T) {
		path := writeSchema(t, "keys:\n  - path: \"mail..host\"\n")
		_, err := schema.LoadFile(path)
		assert.ErrorIs(t, err, schema.ErrInvalidKeyPath)
	})
}

func TestSaveFile(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "schema.yaml")
		in := []schema.Key{
			schema.NewKey("mail.host", "localhost", "SMTP relay"),
			schema.NewKey("debug", nil, ""),
		}

		require.NoError(t, schema.SaveFile(path, in))

		out, err := schema.LoadFile(path)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "mail.host", out[0].Path())
		assert.Equal(t, "localhost", out[0].Default())
		assert.Equal(t, "SMTP relay", out[0].Comment())
		assert.Equal(t, "debug", out[1].Path())
		assert.Nil(t, out[1].Default())
	})

	t.Run("overwrites an existing file", func(t *testing.T) {
		path := writeSchema(t, "keys:\n  - path: old.key\n")

		require.NoError(t, schema.SaveFile(path, []schema.Key{schema.NewKey("new.key", nil, "")}))

		out, err := schema.LoadFile(path)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "new.key", out[0].Path())
	})
}

func TestFileSource(t *testing.T) {
	t.Run("loads keys", func(t *testing.T) {
		path := writeSchema(t, "keys:\n  - path: mail.host\n")
		keys, err := schema.FileSource(path).Keys()
		require.NoError(t, err)
		require.Len(t, keys, 1)
		assert.Equal(t, "mail.host", keys[0].Path())
	})

	t.Run("propagates load failures", func(t *testing.T) {
		_, err := schema.FileSource(filepath.Join(t.TempDir(), "nope.yaml")).Keys()
		assert.Error(t, err)
	})
}
