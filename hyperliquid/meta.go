// Copyright (c) 2025 BVK Chaitanya

package hyperliquid

import (
	"context"
	"fmt"
	"os"

	"github.com/bvk/hlmigrate/hyperliquid/internal"
)

// Spot pair asset ids are the pair's universe index offset into the
// spot range.
const spotAssetIDOffset = 10000

// SpotMetadata is an immutable lookup table over one spotMeta
// snapshot. Asset precision does not change intra-run, so a single
// snapshot is fetched at start and resolved locally afterward.
type SpotMetadata struct {
	pairIndexMap map[string]int

	tokenMap map[string]*internal.SpotToken
}

func NewSpotMetadata(meta *internal.SpotMeta) *SpotMetadata {
	m := &SpotMetadata{
		pairIndexMap: make(map[string]int),
		tokenMap:     make(map[string]*internal.SpotToken),
	}
	for _, pair := range meta.Universe {
		m.pairIndexMap[pair.Name] = pair.Index
	}
	for _, token := range meta.Tokens {
		m.tokenMap[token.Name] = token
	}
	return m
}

// GetSpotMetadata fetches the spot metadata snapshot and builds the
// lookup table.
func (c *Client) GetSpotMetadata(ctx context.Context) (*SpotMetadata, error) {
	meta, err := c.GetSpotMeta(ctx)
	if err != nil {
		return nil, err
	}
	return NewSpotMetadata(meta), nil
}

// PairAssetID returns the asset id used to place orders on the named
// spot pair.
func (m *SpotMetadata) PairAssetID(pair string) (int64, error) {
	index, ok := m.pairIndexMap[pair]
	if !ok {
		return 0, fmt.Errorf("pair %q is not listed in spot metadata: %w", pair, os.ErrNotExist)
	}
	return spotAssetIDOffset + int64(index), nil
}

// TokenDecimals returns the order size precision and the on-chain
// precision for the named token.
func (m *SpotMetadata) TokenDecimals(token string) (szDecimals, weiDecimals int, err error) {
	t, ok := m.tokenMap[token]
	if !ok {
		return 0, 0, fmt.Errorf("token %q is not listed in spot metadata: %w", token, os.ErrNotExist)
	}
	return t.SzDecimals, t.WeiDecimals, nil
}
