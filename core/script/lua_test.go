package script_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"livery-audit/core/script"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
mission = {
	["theatre"] = "Caucasus",
	["version"] = 21,
	["ratio"] = 0.5,
	["dynamic"] = false,
	["coalition"] = {
		["blue"] = {
			[1] = { ["type"] = "F-16C_50", ["livery_id"] = "aggressor" },
		},
	},
}
`

func decode(t *testing.T, src string) *script.Tree {
	t.Helper()
	tree, err := script.Decode(context.Background(), strings.NewReader(src), "mission")
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

func TestDecode(t *testing.T) {
	tree := decode(t, sample)

	root, ok := script.AsTable(tree.Global("mission"))
	require.True(t, ok)

	theatre, err := root.Get("theatre")
	require.NoError(t, err)
	s, ok := script.AsString(theatre)
	assert.True(t, ok)
	assert.Equal(t, "Caucasus", s)

	version, err := root.Get("version")
	require.NoError(t, err)
	assert.Equal(t, script.Integer(21), version)

	ratio, err := root.Get("ratio")
	require.NoError(t, err)
	assert.Equal(t, script.Number(0.5), ratio)

	dynamic, err := root.Get("dynamic")
	require.NoError(t, err)
	assert.Equal(t, script.Bool(false), dynamic)

	missing, err := root.Get("nope")
	require.NoError(t, err)
	assert.Equal(t, script.KindNil, missing.Kind())

	assert.Equal(t, script.KindNil, tree.Global("warehouses").Kind())
}

func TestTable_Pairs(t *testing.T) {
	tree := decode(t, sample)
	root, _ := script.AsTable(tree.Global("mission"))

	var keys []string
	err := root.Pairs(func(k, v script.Value) error {
		name, err := script.KeyString(k)
		require.NoError(t, err)
		keys = append(keys, name)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"coalition", "dynamic", "ratio", "theatre", "version"}, keys)

	coalition, _ := root.Get("coalition")
	ct, _ := script.AsTable(coalition)
	blue, _ := ct.Get("blue")
	bt, _ := script.AsTable(blue)
	err = bt.Pairs(func(k, v script.Value) error {
		assert.Equal(t, script.Integer(1), k)
		assert.Equal(t, script.KindTable, v.Kind())
		return nil
	})
	assert.NoError(t, err)
}

func TestTable_Pairs_ScalarKeys(t *testing.T) {
	tree := decode(t, `mission = { [true] = 1, [1.5] = "half" }`)
	root, _ := script.AsTable(tree.Global("mission"))

	got := map[script.Value]script.Value{}
	err := root.Pairs(func(k, v script.Value) error {
		got[k] = v
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[script.Value]script.Value{
		script.Bool(true):  script.Integer(1),
		script.Number(1.5): script.String("half"),
	}, got)

	_, err = script.KeyString(script.Number(1.5))
	assert.ErrorIs(t, err, script.ErrUnsupportedKey)
}

func TestTable_Pairs_StopsOnError(t *testing.T) {
	tree := decode(t, `mission = { 1, 2, 3 }`)
	root, _ := script.AsTable(tree.Global("mission"))

	calls := 0
	err := root.Pairs(func(k, v script.Value) error {
		calls++
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, calls)
}

func TestDecode_Errors(t *testing.T) {
	t.Run("Syntax", func(t *testing.T) {
		_, err := script.Decode(context.Background(), strings.NewReader("mission = {"), "mission")
		assert.ErrorIs(t, err, script.ErrDecode)
	})

	t.Run("Runtime", func(t *testing.T) {
		_, err := script.Decode(context.Background(), strings.NewReader("mission = nothing.here"), "mission")
		assert.ErrorIs(t, err, script.ErrDecode)
	})

	t.Run("NoStandardLibrary", func(t *testing.T) {
		_, err := script.Decode(context.Background(), strings.NewReader(`os.remove("x")`), "mission")
		assert.ErrorIs(t, err, script.ErrDecode)
	})
}

func TestKeyString(t *testing.T) {
	s, err := script.KeyString(script.String("blue"))
	assert.NoError(t, err)
	assert.Equal(t, "blue", s)

	s, err = script.KeyString(script.Integer(12))
	assert.NoError(t, err)
	assert.Equal(t, "12", s)

	_, err = script.KeyString(script.Bool(true))
	assert.ErrorIs(t, err, script.ErrUnsupportedKey)
}
