package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const historyTokenPrefix = "history"

// EncodeMultiFieldToken creates an opaque token from any number of string fields.
func EncodeMultiFieldToken(fields ...string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(fields, "|")))
}

// DecodeMultiFieldToken decodes a token into exactly want fields.
func DecodeMultiFieldToken(token string, want int) ([]string, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.Split(string(decodedBytes), "|")
	if len(parts) != want {
		return nil, fmt.Errorf("invalid pagination token format (want %d fields, got %d)", want, len(parts))
	}
	return parts, nil
}

// EncodeHistoryToken returns the cursor pointing after historyID.
func EncodeHistoryToken(historyID string) string {
	return EncodeMultiFieldToken(historyTokenPrefix, historyID)
}

// DecodeHistoryToken returns the history ID a cursor points after.
func DecodeHistoryToken(token string) (string, error) {
	parts, err := DecodeMultiFieldToken(token, 2)
	if err != nil {
		return "", err
	}
	if parts[0] != historyTokenPrefix || parts[1] == "" {
		return "", fmt.Errorf("invalid pagination token format (not a history cursor)")
	}
	return parts[1], nil
}
