// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Tests for spec parsing and validation

package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sony-level/lamport/internal/spec"
)

func TestParseContractSpecBareJSON(t *testing.T) {
	raw := `{"name": "My Token", "symbol": "MYT", "decimals": 6, "features": ["mintable", "transferable"]}`

	cs, err := spec.ParseContractSpec(raw)
	require.NoError(t, err)

	assert.Equal(t, "My Token", cs.Name)
	assert.Equal(t, "MYT", cs.Symbol)
	assert.Equal(t, 6, cs.Decimals)
	assert.True(t, cs.HasFeature(spec.FeatureMintable))
	assert.False(t, cs.HasFeature(spec.FeaturePausable))
}

func TestParseContractSpecFencedWithProse(t *testing.T) {
	raw := "Here is the spec you asked for:\n```json\n" +
		`{"name": "Fenced", "symbol": "FNC", "features": ["burnable"]}` +
		"\n```\nLet me know if you need changes."

	cs, err := spec.ParseContractSpec(raw)
	require.NoError(t, err)
	assert.Equal(t, "Fenced", cs.Name)
}

func TestParseContractSpecDefaultDecimals(t *testing.T) {
	cs, err := spec.ParseContractSpec(`{"name": "T", "symbol": "T", "features": []}`)
	require.NoError(t, err)
	assert.Equal(t, spec.DefaultDecimals, cs.Decimals)

	// An explicit zero stays zero.
	cs, err = spec.ParseContractSpec(`{"name": "T", "symbol": "T", "decimals": 0, "features": []}`)
	require.NoError(t, err)
	assert.Equal(t, 0, cs.Decimals)
}

func TestParseContractSpecRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"missing name":        `{"symbol": "X", "features": []}`,
		"symbol too long":     `{"name": "T", "symbol": "TOOLONGSYMBOL", "features": []}`,
		"decimals over range": `{"name": "T", "symbol": "T", "decimals": 12, "features": []}`,
		"unknown feature":     `{"name": "T", "symbol": "T", "features": ["teleportable"]}`,
		"no JSON at all":      `I could not produce a spec, sorry.`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := spec.ParseContractSpec(raw)
			assert.Error(t, err)
		})
	}
}

func TestExtractJSONObjectBalancing(t *testing.T) {
	// Braces inside strings must not affect depth tracking.
	raw := `prefix {"msg": "has a } inside", "nested": {"a": 1}} suffix`
	obj, err := spec.ExtractJSONObject(raw)
	require.NoError(t, err)
	assert.Equal(t, `{"msg": "has a } inside", "nested": {"a": 1}}`, obj)

	_, err = spec.ExtractJSONObject(`{"unbalanced": {`)
	assert.ErrorIs(t, err, spec.ErrNoJSON)
}

func TestParseFileSetShapes(t *testing.T) {
	wrapped := `{"files": {"Anchor.toml": "[provider]", "src/lib.rs": "code"}}`
	fs, err := spec.ParseFileSet(wrapped)
	require.NoError(t, err)
	assert.Len(t, fs, 2)
	assert.Equal(t, "[provider]", fs["Anchor.toml"])

	listed := `{"files": [{"path": "src/lib.rs", "content": "code"}]}`
	fs, err = spec.ParseFileSet(listed)
	require.NoError(t, err)
	assert.Equal(t, "code", fs["src/lib.rs"])

	bare := `{"Cargo.toml": "[package]"}`
	fs, err = spec.ParseFileSet(bare)
	require.NoError(t, err)
	assert.Equal(t, "[package]", fs["Cargo.toml"])

	_, err = spec.ParseFileSet("no json here")
	assert.ErrorIs(t, err, spec.ErrNoJSON)
}

func TestParsePatches(t *testing.T) {
	raw := `{"patches": [
        {"path": "src/lib.rs", "content": "fixed", "reason": "missing import"},
        {"path": "", "content": "dropped"}
    ], "analysis": "added the import"}`

	patches, err := spec.ParsePatches(raw)
	require.NoError(t, err)
	require.Len(t, patches, 1)
	assert.Equal(t, "src/lib.rs", patches[0].Path)
	assert.Equal(t, "fixed", patches[0].Content)
	assert.Equal(t, "missing import", patches[0].Reason)
}

func TestParsePatchesFileMapFallback(t *testing.T) {
	patches, err := spec.ParsePatches(`{"files": {"src/lib.rs": "fixed"}}`)
	require.NoError(t, err)
	require.Len(t, patches, 1)
	assert.Equal(t, "src/lib.rs", patches[0].Path)
}

func TestDeriveProjectName(t *testing.T) {
	assert.Equal(t, "my_token", spec.DeriveProjectName("My Token"))
	assert.Equal(t, "gold_2_coin", spec.DeriveProjectName("Gold-2 Coin!"))
	assert.Equal(t, "solana_contract", spec.DeriveProjectName("???"))
	assert.LessOrEqual(t, len(spec.DeriveProjectName("a very long token name that keeps going and going")), spec.MaxProjectNameLen)
}
