package platform

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
)

// decodeLoose fills out from a loosely typed map. Fields that cannot be
// converted keep their zero value; the rest are still decoded.
func decodeLoose(raw map[string]any, out any) {
	if raw == nil {
		return
	}
	if err := mapstructure.WeakDecode(raw, out); err != nil {
		slog.Debug("platform: partial comment decode", "error", err)
	}
}

// firstNonEmpty returns the first non-blank value, or fallback.
func firstNonEmpty(fallback string, vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return fallback
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// path walks nested maps, e.g. path(body, "data", "comments").
func path(m map[string]any, keys ...string) any {
	var cur any = m
	for _, k := range keys {
		mm, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = mm[k]
	}
	return cur
}

// list returns v as a slice, or nil when it is anything else.
func list(v any) []any {
	if v == nil {
		return nil
	}
	s, err := cast.ToSliceE(v)
	if err != nil {
		return nil
	}
	return s
}

// unixToRFC3339 renders a unix-seconds value (number or numeric string).
// Unparseable input yields the epoch.
func unixToRFC3339(v any) string {
	if n, ok := v.(json.Number); ok {
		v = n.String()
	}
	sec, err := cast.ToInt64E(v)
	if err != nil {
		sec = 0
	}
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

// apiError extracts {"error":{"message":...}} style failures that some
// platforms return alongside a 2xx status.
func apiError(body map[string]any) string {
	msg := cast.ToString(path(body, "error", "message"))
	return strings.TrimSpace(msg)
}
