// Copyright (c) 2025 BVK Chaitanya

package hyperliquid

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/bvk/hlmigrate/hyperliquid/internal"

	"github.com/shopspring/decimal"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(s)
}

var spotMetaJSON = `{
  "universe": [
    {"name": "PURR/USDC", "tokens": [1, 0], "index": 0, "isCanonical": true},
    {"name": "@150", "tokens": [2, 0], "index": 150, "isCanonical": false}
  ],
  "tokens": [
    {"name": "USDC", "szDecimals": 8, "weiDecimals": 8, "index": 0, "tokenId": "0x6d1e7cde53ba9467b783cb7c530ce054", "isCanonical": true},
    {"name": "PURR", "szDecimals": 0, "weiDecimals": 5, "index": 1, "tokenId": "0xc1fb593aeffbeb02f85e0308e9956a90", "isCanonical": true},
    {"name": "HFUN", "szDecimals": 2, "weiDecimals": 8, "index": 2, "tokenId": "0xbaf265ef389da684513d98d68edf4eae", "isCanonical": false}
  ]
}`

func testMetadata(t *testing.T) *SpotMetadata {
	t.Helper()
	meta := new(internal.SpotMeta)
	if err := json.Unmarshal([]byte(spotMetaJSON), meta); err != nil {
		t.Fatal(err)
	}
	return NewSpotMetadata(meta)
}

func TestPairAssetID(t *testing.T) {
	m := testMetadata(t)

	id, err := m.PairAssetID("PURR/USDC")
	if err != nil {
		t.Fatal(err)
	}
	if id != 10000 {
		t.Errorf("PURR/USDC asset id: want 10000 got %d", id)
	}

	id, err = m.PairAssetID("@150")
	if err != nil {
		t.Fatal(err)
	}
	if id != 10150 {
		t.Errorf("@150 asset id: want 10150 got %d", id)
	}

	if _, err := m.PairAssetID("NOPE/USDC"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("absent pair: want os.ErrNotExist, got %v", err)
	}
}

func TestTokenDecimals(t *testing.T) {
	m := testMetadata(t)

	sz, wei, err := m.TokenDecimals("PURR")
	if err != nil {
		t.Fatal(err)
	}
	if sz != 0 || wei != 5 {
		t.Errorf("PURR decimals: want (0, 5) got (%d, %d)", sz, wei)
	}

	sz, wei, err = m.TokenDecimals("USDC")
	if err != nil {
		t.Fatal(err)
	}
	if sz != 8 || wei != 8 {
		t.Errorf("USDC decimals: want (8, 8) got (%d, %d)", sz, wei)
	}

	if _, _, err := m.TokenDecimals("NOPE"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("absent token: want os.ErrNotExist, got %v", err)
	}
}

func TestSpotMetaAndAssetCtxsDecoding(t *testing.T) {
	data := `[` + spotMetaJSON + `, [
	  {"coin": "PURR/USDC", "midPx": "0.1525", "markPx": "0.1524", "prevDayPx": "0.15", "dayNtlVlm": "1000", "circulatingSupply": "1", "totalSupply": "1", "dayBaseVlm": "10"},
	  {"coin": "@150", "midPx": null, "markPx": "2.5", "prevDayPx": "2.4", "dayNtlVlm": "0", "circulatingSupply": "1", "totalSupply": "1", "dayBaseVlm": "0"}
	]]`

	v := new(internal.SpotMetaAndAssetCtxs)
	if err := json.Unmarshal([]byte(data), v); err != nil {
		t.Fatal(err)
	}
	if len(v.Meta.Universe) != 2 || len(v.AssetCtxs) != 2 {
		t.Fatalf("want 2 pairs and 2 contexts, got %d and %d", len(v.Meta.Universe), len(v.AssetCtxs))
	}
	if v.AssetCtxs[0].MidPx == nil || !v.AssetCtxs[0].MidPx.Equal(decimalFromString(t, "0.1525")) {
		t.Errorf("first context mid price: want 0.1525 got %v", v.AssetCtxs[0].MidPx)
	}
	if v.AssetCtxs[1].MidPx != nil {
		t.Errorf("null mid price should decode to nil, got %v", v.AssetCtxs[1].MidPx)
	}
}
