// Package export writes comments and winners as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"giveaway-picker/internal/model"
)

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// ParseFormat accepts "csv" or "json" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or json)", s)
	}
}

var commentHeader = []string{"id", "username", "text", "timestamp", "likes", "verified"}

func commentRow(c model.Comment) []string {
	return []string{c.ID, c.Username, c.Text, c.Timestamp, strconv.Itoa(c.Likes), strconv.FormatBool(c.Verified)}
}

// Comments writes top-level comments. Replies are only kept in JSON.
func Comments(w io.Writer, f Format, comments []model.Comment) error {
	if f == JSON {
		return writeJSON(w, comments)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(commentHeader); err != nil {
		return err
	}
	for _, c := range comments {
		if err := cw.Write(commentRow(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Winners writes winners with their draw position as the last column.
func Winners(w io.Writer, f Format, winners []model.Winner) error {
	if f == JSON {
		return writeJSON(w, winners)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(append(append([]string{}, commentHeader...), "position")); err != nil {
		return err
	}
	for _, wn := range winners {
		if err := cw.Write(append(commentRow(wn.Comment), strconv.Itoa(wn.Position))); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
