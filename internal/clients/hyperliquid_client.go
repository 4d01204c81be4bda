package clients

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	hyperliquid "github.com/sonirico/go-hyperliquid"
)

// HyperliquidClient wraps the Hyperliquid SDK for candle retrieval. The SDK
// requires a signing identity even on read paths, so the client derives the
// account address from the private key and keeps the exchange handle private.
type HyperliquidClient struct {
	exchange *hyperliquid.Exchange
}

// NewHyperliquidClient derives the account address from the hex-encoded
// private key (with or without a 0x prefix) and connects to baseURL.
func NewHyperliquidClient(privateKeyHex, baseURL string) (*HyperliquidClient, error) {
	key := privateKeyHex
	if len(key) >= 2 && (key[:2] == "0x" || key[:2] == "0X") {
		key = key[2:]
	}

	privateKey, err := crypto.HexToECDSA(key)
	if err != nil {
		return nil, err
	}

	pub, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("error casting public key to ECDSA")
	}
	accountAddr := crypto.PubkeyToAddress(*pub).Hex()

	// meta and spot meta are fetched lazily by the SDK
	ex := hyperliquid.NewExchange(
		context.Background(),
		privateKey,
		baseURL,
		nil,
		"",
		accountAddr,
		nil,
	)

	return &HyperliquidClient{exchange: ex}, nil
}

// Info returns the market data surface of the connected exchange.
func (c *HyperliquidClient) Info() *hyperliquid.Info { return c.exchange.Info() }
