// Package domain defines core data structures used throughout the analysis engine.
package domain

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Asset tradable asset identified by base symbol and quote currency.
type Asset struct {
	// Symbol base asset symbol.
	Symbol string `json:"symbol"`
	// Quote quote currency symbol.
	Quote string `json:"quote"`
}

// AssetFromString parses the "BASE_QUOTE" config form.
func AssetFromString(s string) (Asset, error) {
	base, quote, ok := strings.Cut(strings.TrimSpace(s), "_")
	if !ok || base == "" || quote == "" {
		return Asset{}, errors.Errorf("invalid asset %q, expected BASE_QUOTE", s)
	}

	return Asset{
		Symbol: strings.ToUpper(base),
		Quote:  strings.ToUpper(quote),
	}, nil
}

// String returns the string representation.
func (a Asset) String() string {
	return fmt.Sprintf("%s_%s", a.Symbol, a.Quote)
}

// Ticker returns the concatenated exchange symbol representation.
func (a Asset) Ticker() string {
	return fmt.Sprintf("%s%s", a.Symbol, a.Quote)
}
