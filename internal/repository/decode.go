package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// loadSequence fetches a document and splits it into its array elements.
// Null elements are dropped.
func loadSequence(ctx context.Context, store DocumentStore, key string, logger *zap.Logger) ([]json.RawMessage, error) {
	payload, found, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !found || len(bytes.TrimSpace(payload)) == 0 {
		return nil, nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(payload, &elements); err != nil {
		logger.Warn("document is not a sequence, reading it as empty", zap.String("key", key), zap.Error(err))
		return nil, nil
	}

	out := elements[:0]
	for _, raw := range elements {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		out = append(out, raw)
	}
	return out, nil
}

// flexNumber decodes JSON numbers and numeric strings. Anything else,
// including NaN and infinities, decodes as 0.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	*n = 0

	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return nil
	}

	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	*n = flexNumber(f)
	return nil
}

// flexString decodes strings as-is and renders numbers and booleans as text.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	*s = ""

	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = flexString(v)
	case float64:
		*s = flexString(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		*s = flexString(strconv.FormatBool(v))
	}
	return nil
}
