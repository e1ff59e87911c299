package configtree_test

import (
	"testing"

	"github.com/librelogin/envoverlay"
	"github.com/librelogin/envoverlay/configtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_SetGet(t *testing.T) {
	t.Run("stores values on nested paths", func(t *testing.T) {
		tree := configtree.New()

		require.NoError(t, tree.Set([]string{"mail", "host"}, "smtp.example.com"))
		require.NoError(t, tree.Set([]string{"mail", "port"}, 2525))
		require.NoError(t, tree.Set([]string{"debug"}, true))

		v, ok := tree.Get("mail", "host")
		require.True(t, ok)
		assert.Equal(t, "smtp.example.com", v)

		v, ok = tree.Get("mail", "port")
		require.True(t, ok)
		assert.Equal(t, 2525, v)

		v, ok = tree.Get("debug")
		require.True(t, ok)
		assert.Equal(t, true, v)
	})

	t.Run("last write wins", func(t *testing.T) {
		tree := configtree.New()

		require.NoError(t, tree.Set([]string{"debug"}, false))
		require.NoError(t, tree.Set([]string{"debug"}, true))

		v, ok := tree.Get("debug")
		require.True(t, ok)
		assert.Equal(t, true, v)
	})

	t.Run("sections report no value", func(t *testing.T) {
		tree := configtree.New()
		require.NoError(t, tree.Set([]string{"mail", "host"}, "x"))

		_, ok := tree.Get("mail")
		assert.False(t, ok)
		_, ok = tree.Get("missing")
		assert.False(t, ok)
	})

	t.Run("rejects empty paths", func(t *testing.T) {
		tree := configtree.New()
		err := tree.Set(nil, "x")
		assert.ErrorIs(t, err, envoverlay.ErrEmptyPath)
	})

	t.Run("rejects invalid segments without side effects", func(t *testing.T) {
		tree := configtree.New()

		err := tree.Set([]string{"mail", ""}, "x")
		assert.ErrorIs(t, err, envoverlay.ErrInvalidSegment)

		err = tree.Set([]string{"mail", "a.b"}, "x")
		assert.ErrorIs(t, err, envoverlay.ErrInvalidSegment)

		assert.Empty(t, tree.Map(), "a rejected write must not materialize sections")
	})

	t.Run("setting a value replaces the subtree", func(t *testing.T) {
		tree := configtree.New()
		require.NoError(t, tree.Set([]string{"mail", "host"}, "x"))

		require.NoError(t, tree.Set([]string{"mail"}, "flat"))

		v, ok := tree.Get("mail")
		require.True(t, ok)
		assert.Equal(t, "flat", v)
		_, ok = tree.Get("mail", "host")
		assert.False(t, ok)
	})

	t.Run("writing below a leaf turns it back into a section", func(t *testing.T) {
		tree := configtree.New()
		require.NoError(t, tree.Set([]string{"mail"}, "flat"))

		require.NoError(t, tree.Set([]string{"mail", "host"}, "x"))

		_, ok := tree.Get("mail")
		assert.False(t, ok)
		v, ok := tree.Get("mail", "host")
		require.True(t, ok)
		assert.Equal(t, "x", v)
	})
}

func TestTree_Node(t *testing.T) {
	tree := configtree.New()

	node, err := tree.Node("limits", "rate")
	require.NoError(t, err)

	node.Set(100)

	v, ok := tree.Get("limits", "rate")
	require.True(t, ok)
	assert.Equal(t, 100, v)
	assert.Equal(t, 100, node.Value())
}

func TestTree_Map(t *testing.T) {
	tree := configtree.New()
	require.NoError(t, tree.Set([]string{"mail", "host"}, "smtp.example.com"))
	require.NoError(t, tree.Set([]string{"mail", "port"}, 25))
	require.NoError(t, tree.Set([]string{"debug"}, true))

	assert.Equal(t, map[string]any{
		"mail": map[string]any{
			"host": "smtp.example.com",
			"port": 25,
		},
		"debug": true,
	}, tree.Map())
}

func TestIsValidSegment(t *testing.T) {
	tt := []struct {
		Name    string
		Segment string
		Want    bool
	}{
		{Name: "word", Segment: "mail", Want: true},
		{Name: "hyphenated", Segment: "allowed-commands", Want: true},
		{Name: "underscore", Segment: "api_token", Want: true},
		{Name: "digits", Segment: "v2", Want: true},
		{Name: "unicode", Segment: "почта", Want: true},
		{Name: "empty", Segment: "", Want: false},
		{Name: "dot", Segment: "a.b", Want: false},
		{Name: "space", Segment: "a b", Want: false},
		{Name: "tab", Segment: "a\tb", Want: false},
		{Name: "newline", Segment: "a\nb", Want: false},
		{Name: "control char", Segment: "a\x1fb", Want: false},
		{Name: "DEL", Segment: "a\x7fb", Want: false},
		{Name: "invalid utf8", Segment: string([]byte{'a', 0xff, 'b'}), Want: false},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Want, configtree.IsValidSegment(tc.Segment))
		})
	}
}
