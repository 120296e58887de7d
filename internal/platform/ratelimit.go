package platform

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// graphUsage is the X-App-Usage header of the Graph API. Values are
// percentages of the app quota already consumed.
type graphUsage struct {
	CallCount    int `json:"call_count"`
	TotalCPUTime int `json:"total_cputime"`
	TotalTime    int `json:"total_time"`
}

// remainingQuota reports remaining request quota when the response carries
// it, or nil. Informational only.
func remainingQuota(h http.Header) *int {
	if v := strings.TrimSpace(h.Get("X-RateLimit-Remaining")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			n := int(f)
			return &n
		}
	}
	if v := strings.TrimSpace(h.Get("X-App-Usage")); v != "" {
		var u graphUsage
		if err := json.Unmarshal([]byte(v), &u); err == nil {
			used := max(u.CallCount, u.TotalCPUTime, u.TotalTime)
			n := max(100-used, 0)
			return &n
		}
	}
	return nil
}
