package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
)

// Round2 rounds to 2 decimal places. Monetary amounts accumulate at full
// float precision; rounding happens only at presentation boundaries.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatMoney renders an amount the way receipts and error messages show it.
func FormatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", Round2(v))
}

// FormatBytes renders a byte count as a human-readable size (1MB = 1024*1024).
func FormatBytes(n int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
	)

	switch {
	case n >= mb:
		return trimTrailingZero(float64(n)/mb) + "MB"
	case n >= kb:
		return trimTrailingZero(float64(n)/kb) + "KB"
	default:
		return fmt.Sprintf("%dB", n)
	}
}

func trimTrailingZero(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	if s[len(s)-2:] == ".0" {
		return s[:len(s)-2]
	}
	return s
}

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func WriteJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
