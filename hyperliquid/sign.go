// Copyright (c) 2025 BVK Chaitanya

package hyperliquid

import (
	"crypto/ecdsa"
	"encoding/binary"
	"fmt"

	"github.com/bvk/hlmigrate/hyperliquid/internal"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/vmihailenco/msgpack/v5"
)

// actionHash computes the connection id of an L1 action: the keccak256
// of the action's msgpack encoding followed by the big-endian nonce and
// a zero byte marking the absent vault address.
func actionHash(action any, nonce uint64) (common.Hash, error) {
	data, err := msgpack.Marshal(action)
	if err != nil {
		return common.Hash{}, fmt.Errorf("could not msgpack-encode action: %w", err)
	}
	var tail [9]byte
	binary.BigEndian.PutUint64(tail[:8], nonce)
	data = append(data, tail[:]...)
	return crypto.Keccak256Hash(data), nil
}

// signL1Action signs an order-style action. The action hash becomes the
// connection id of a phantom agent which is signed under the fixed
// Exchange domain with chain id 1337; the source field distinguishes
// mainnet ("a") from testnet ("b").
func signL1Action(key *ecdsa.PrivateKey, action any, nonce uint64, isTestnet bool) (*internal.Signature, error) {
	hash, err := actionHash(action, nonce)
	if err != nil {
		return nil, err
	}
	source := "a"
	if isTestnet {
		source = "b"
	}

	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Agent": {
				{Name: "source", Type: "string"},
				{Name: "connectionId", Type: "bytes32"},
			},
		},
		PrimaryType: "Agent",
		Domain: apitypes.TypedDataDomain{
			Name:              "Exchange",
			Version:           "1",
			ChainId:           math.NewHexOrDecimal256(1337),
			VerifyingContract: common.Address{}.Hex(),
		},
		Message: map[string]any{
			"source":       source,
			"connectionId": hexutil.Encode(hash[:]),
		},
	}
	return signTypedData(key, &typedData)
}

// signUsdClassTransfer signs a spot-to-perps transfer under the
// HyperliquidSignTransaction domain of the configured signature chain.
func signUsdClassTransfer(key *ecdsa.PrivateKey, action *internal.UsdClassTransferAction) (*internal.Signature, error) {
	fields := []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "toPerp", Type: "bool"},
		{Name: "nonce", Type: "uint64"},
	}
	message := map[string]any{
		"hyperliquidChain": action.HyperliquidChain,
		"amount":           action.Amount,
		"toPerp":           action.ToPerp,
		"nonce":            math.NewHexOrDecimal256(int64(action.Nonce)),
	}
	return signUserAction(key, action.SignatureChainID, "HyperliquidTransaction:UsdClassTransfer", fields, message)
}

// signWithdraw signs a bridge withdrawal request.
func signWithdraw(key *ecdsa.PrivateKey, action *internal.WithdrawAction) (*internal.Signature, error) {
	fields := []apitypes.Type{
		{Name: "hyperliquidChain", Type: "string"},
		{Name: "destination", Type: "string"},
		{Name: "amount", Type: "string"},
		{Name: "time", Type: "uint64"},
	}
	message := map[string]any{
		"hyperliquidChain": action.HyperliquidChain,
		"destination":      action.Destination,
		"amount":           action.Amount,
		"time":             math.NewHexOrDecimal256(int64(action.Time)),
	}
	return signUserAction(key, action.SignatureChainID, "HyperliquidTransaction:Withdraw", fields, message)
}

func signUserAction(key *ecdsa.PrivateKey, signatureChainID, primaryType string, fields []apitypes.Type, message map[string]any) (*internal.Signature, error) {
	chainID, err := hexutil.DecodeBig(signatureChainID)
	if err != nil {
		return nil, fmt.Errorf("could not decode signature chain id %q: %w", signatureChainID, err)
	}

	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			primaryType: fields,
		},
		PrimaryType: primaryType,
		Domain: apitypes.TypedDataDomain{
			Name:              "HyperliquidSignTransaction",
			Version:           "1",
			ChainId:           (*math.HexOrDecimal256)(chainID),
			VerifyingContract: common.Address{}.Hex(),
		},
		Message: message,
	}
	return signTypedData(key, &typedData)
}

func signTypedData(key *ecdsa.PrivateKey, typedData *apitypes.TypedData) (*internal.Signature, error) {
	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return nil, fmt.Errorf("could not hash typed data domain: %w", err)
	}
	messageHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return nil, fmt.Errorf("could not hash typed data message: %w", err)
	}

	raw := []byte("\x19\x01")
	raw = append(raw, domainSeparator...)
	raw = append(raw, messageHash...)
	hash := crypto.Keccak256Hash(raw)

	sig, err := crypto.Sign(hash.Bytes(), key)
	if err != nil {
		return nil, fmt.Errorf("could not sign typed data hash: %w", err)
	}
	return &internal.Signature{
		R: hexutil.Encode(sig[:32]),
		S: hexutil.Encode(sig[32:64]),
		V: int(sig[64]) + 27,
	}, nil
}
