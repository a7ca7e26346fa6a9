// Copyright (c) 2025 BVK Chaitanya

package hyperliquid

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

var (
	MainnetURL = url.URL{
		Scheme: "https",
		Host:   "api.hyperliquid.xyz",
	}

	TestnetURL = url.URL{
		Scheme: "https",
		Host:   "api.hyperliquid-testnet.xyz",
	}
)

// Signature chain ids for user-signed actions: Arbitrum One for
// mainnet and Arbitrum Sepolia for testnet.
const (
	MainnetSignatureChainID = "0xa4b1"
	TestnetSignatureChainID = "0x66eee"
)

type Options struct {
	// RestURL points to the API server. Defaults to the mainnet URL.
	RestURL *url.URL

	// Timeout to use for the HTTP requests.
	HttpClientTimeout time.Duration

	// SignatureChainID overrides the EVM chain id signed into
	// user-signed actions. Defaults based on RestURL.
	SignatureChainID string
}

func (v *Options) setDefaults() {
	if v.RestURL == nil {
		u := MainnetURL
		v.RestURL = &u
	}
	if v.HttpClientTimeout == 0 {
		v.HttpClientTimeout = 20 * time.Second
	}
	if len(v.SignatureChainID) == 0 {
		if v.isTestnet() {
			v.SignatureChainID = TestnetSignatureChainID
		} else {
			v.SignatureChainID = MainnetSignatureChainID
		}
	}
}

func (v *Options) isTestnet() bool {
	return v.RestURL != nil && strings.HasSuffix(v.RestURL.Host, "-testnet.xyz")
}

// hyperliquidChain returns the chain name signed into user-signed
// actions.
func (v *Options) hyperliquidChain() string {
	if v.isTestnet() {
		return "Testnet"
	}
	return "Mainnet"
}

// Check validates the options.
func (v *Options) Check() error {
	if v.RestURL.Scheme != "https" && v.RestURL.Scheme != "http" {
		return fmt.Errorf("rest url scheme %q is not supported", v.RestURL.Scheme)
	}
	if len(v.SignatureChainID) != 0 && !strings.HasPrefix(v.SignatureChainID, "0x") {
		return fmt.Errorf("signature chain id must be a 0x-prefixed hex value")
	}
	return nil
}
