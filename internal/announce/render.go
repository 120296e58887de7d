// Package announce renders giveaway results as Markdown posts and publishes
// them to a Quaily channel.
package announce

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"giveaway-picker/internal/model"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the post metadata the Quaily API accepts.
type Frontmatter struct {
	Title    string   `yaml:"title"`
	Slug     string   `yaml:"slug"`
	Datetime string   `yaml:"datetime"`
	Summary  string   `yaml:"summary,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
}

// Data feeds the body template.
type Data struct {
	Record     model.GiveawayRecord
	Intro      string
	Postscript string
}

//go:embed announcement.tmpl
var announcementTpl string

var compiled = template.Must(template.New("announcement").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(announcementTpl))

// ExpandVars substitutes {.CurrentDate} (YYYY-MM-DD, UTC) and {.Platform}.
func ExpandVars(s, platform string, now time.Time) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	out := strings.ReplaceAll(s, "{.CurrentDate}", now.UTC().Format("2006-01-02"))
	return strings.ReplaceAll(out, "{.Platform}", platform)
}

// Slug is stable per record so republishing the same draw is idempotent.
func Slug(rec model.GiveawayRecord) string {
	id := strings.TrimPrefix(rec.ID, "giveaway_")
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("giveaway-%s-%s-%s", rec.Platform, rec.CreatedAt.UTC().Format("20060102"), id)
}

// Render produces the full Markdown document, frontmatter included.
func Render(fm Frontmatter, d Data) (string, error) {
	head, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(head)
	buf.WriteString("---\n\n")
	if err := compiled.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FrontmatterFor builds default metadata for a record.
func FrontmatterFor(rec model.GiveawayRecord, title string) Frontmatter {
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	return Frontmatter{
		Title:    ExpandVars(title, rec.Platform, created),
		Slug:     Slug(rec),
		Datetime: created.UTC().Format("2006-01-02 15:04"),
		Summary:  fmt.Sprintf("%d winner(s) drawn from %d %s comments.", len(rec.Winners), rec.CommentsAnalyzed, rec.Platform),
		Tags:     []string{"giveaway", rec.Platform},
	}
}
