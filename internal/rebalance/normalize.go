package rebalance

import "strings"

// exchangeSuffixes is the allow-list of exchange suffix tokens stripped during
// ticker normalization. At most one trailing suffix is removed.
var exchangeSuffixes = []string{".TO", ".V", ".CN", ".NE", ".TSX", ".NYSE", ".NASDAQ"}

// NormalizeTicker uppercases a symbol and strips one trailing exchange suffix
// from the allow-list. Two tickers match iff their normalized forms are equal,
// so "xic.to" and "XIC" refer to the same holding.
func NormalizeTicker(symbol string) string {
	normalized := strings.ToUpper(strings.TrimSpace(symbol))
	for _, suffix := range exchangeSuffixes {
		if strings.HasSuffix(normalized, suffix) && len(normalized) > len(suffix) {
			return normalized[:len(normalized)-len(suffix)]
		}
	}
	return normalized
}
