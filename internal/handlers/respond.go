package handlers

import (
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// decodeBody reads a JSON object into a T field by field. Bodies are read permissively: a missing or
// malformed body, or a field of the wrong type, leaves the zero value and the caller applies defaults.
func decodeBody[T any](r *http.Request, logger *zap.Logger, op string) T {
	var dst T

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		logger.Debug("failed to read request body", zap.String("op", op), zap.Error(err))
		return dst
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return dst
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		logger.Debug("request body ignored", zap.String("op", op), zap.Error(err))
		return dst
	}

	for key, raw := range fields {
		name, err := json.Marshal(key)
		if err != nil {
			continue
		}
		field := make([]byte, 0, len(name)+len(raw)+3)
		field = append(field, '{')
		field = append(field, name...)
		field = append(field, ':')
		field = append(field, raw...)
		field = append(field, '}')

		// check against a scratch value first so a bad field never touches dst
		var scratch T
		if err := json.Unmarshal(field, &scratch); err != nil {
			logger.Debug("request field ignored", zap.String("op", op), zap.String("field", key), zap.Error(err))
			continue
		}
		_ = json.Unmarshal(field, &dst)
	}

	return dst
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *zap.Logger, op string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.String("op", op), zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string, logger *zap.Logger, op string) {
	writeJSON(w, status, map[string]string{"error": message}, logger, op)
}

// int64Value accepts an integral JSON number or a numeric string; anything else is 0.
func int64Value(v any) int64 {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || n < math.MinInt64 || n >= math.MaxInt64 {
			return 0
		}
		return int64(n)
	case string:
		i, _ := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i
	default:
		return 0
	}
}
