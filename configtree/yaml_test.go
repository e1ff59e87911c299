package configtree_test

import (
	"testing"

	"github.com/librelogin/envoverlay/configtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromYAML(t *testing.T) {
	t.Run("loads nested mappings", func(t *testing.T) {
		tree, err := configtree.FromYAML([]byte(`
mail:
  host: localhost
  port: 25
debug: false
allowed-commands-while-unauthorized:
  - login
  - register
`))
		require.NoError(t, err)

		v, ok := tree.Get("mail", "host")
		require.True(t, ok)
		assert.Equal(t, "localhost", v)

		v, ok = tree.Get("mail", "port")
		require.True(t, ok)
		assert.Equal(t, 25, v)

		v, ok = tree.Get("debug")
		require.True(t, ok)
		assert.Equal(t, false, v)

		v, ok = tree.Get("allowed-commands-while-unauthorized")
		require.True(t, ok)
		assert.Equal(t, []any{"login", "register"}, v)
	})

	t.Run("empty document makes an empty tree", func(t *testing.T) {
		tree, err := configtree.FromYAML(nil)
		require.NoError(t, err)
		assert.Empty(t, tree.Map())
	})

	t.Run("rejects a non-mapping top level", func(t *testing.T) {
		_, err := configtree.FromYAML([]byte("- a\n- b\n"))
		assert.Error(t, err)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := configtree.FromYAML([]byte("mail: [\n"))
		assert.Error(t, err)
	})
}

func TestToYAML(t *testing.T) {
	t.Run("keeps document order across a round trip", func(t *testing.T) {
		src := `zeta: 1
mail:
    host: localhost
    port: 25
alpha: true
`
		tree, err := configtree.FromYAML([]byte(src))
		require.NoError(t, err)

		out, err := tree.ToYAML()
		require.NoError(t, err)
		assert.Equal(t, src, string(out))
	})

	t.Run("overrides keep their position", func(t *testing.T) {
		tree, err := configtree.FromYAML([]byte(`mail:
    host: localhost
    port: 25
debug: false
`))
		require.NoError(t, err)

		require.NoError(t, tree.Set([]string{"mail", "host"}, "smtp.example.com"))
		require.NoError(t, tree.Set([]string{"totp", "enabled"}, true))

		out, err := tree.ToYAML()
		require.NoError(t, err)
		assert.Equal(t, `mail:
    host: smtp.example.com
    port: 25
debug: false
totp:
    enabled: true
`, string(out))
	})

	t.Run("empty tree serializes to an empty mapping", func(t *testing.T) {
		out, err := configtree.New().ToYAML()
		require.NoError(t, err)
		assert.Equal(t, "{}\n", string(out))
	})

	t.Run("list values from overrides", func(t *testing.T) {
		tree := configtree.New()
		require.NoError(t, tree.Set([]string{"commands"}, []string{"login", "register"}))

		out, err := tree.ToYAML()
		require.NoError(t, err)
		assert.Equal(t, "commands:\n    - login\n    - register\n", string(out))
	})
}
