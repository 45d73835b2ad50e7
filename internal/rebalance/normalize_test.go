package rebalance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"uppercase passthrough", "XIC", "XIC"},
		{"lowercase", "xic", "XIC"},
		{"toronto suffix", "XIC.TO", "XIC"},
		{"lowercase with suffix", "xic.to", "XIC"},
		{"venture suffix", "abc.v", "ABC"},
		{"cse suffix", "NUMI.CN", "NUMI"},
		{"neo suffix", "CASH.NE", "CASH"},
		{"tsx token", "XIU.TSX", "XIU"},
		{"nyse token", "BRK.NYSE", "BRK"},
		{"nasdaq token", "AAPL.NASDAQ", "AAPL"},
		{"unknown suffix kept", "RY.UK", "RY.UK"},
		{"only one suffix stripped", "XEQT.TO.TO", "XEQT.TO"},
		{"whitespace trimmed", " vfv.to ", "VFV"},
		{"bare suffix not emptied", ".TO", ".TO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTicker(tt.input))
		})
	}
}

func TestNormalizeTickerIdempotent(t *testing.T) {
	for _, symbol := range []string{"XIC.TO", "xic.to", "VFV", "RY.UK", "AAPL.NASDAQ"} {
		once := NormalizeTicker(symbol)
		assert.Equal(t, once, NormalizeTicker(once), "normalize must be idempotent for %q", symbol)
	}
}

func TestNormalizeTickerMatchesAcrossExchanges(t *testing.T) {
	assert.Equal(t, NormalizeTicker("XIC.TO"), NormalizeTicker("xic.to"))
	assert.Equal(t, "XIC", NormalizeTicker("XIC.TO"))
}
