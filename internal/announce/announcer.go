package announce

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"giveaway-picker/internal/export"
	"giveaway-picker/internal/model"
)

// IntroWriter writes the opening paragraph. Implemented by ai.OpenAIClient.
type IntroWriter interface {
	WriteAnnouncement(ctx context.Context, rec model.GiveawayRecord, language string) (string, error)
}

// Announcer renders records and, when a client is configured, publishes them.
type Announcer struct {
	Client   *Client     // optional
	Intro    IntroWriter // optional
	Channel  string
	Title    string
	Language string
}

// Render builds the Markdown announcement for rec. An AI failure only drops
// the intro.
func (a *Announcer) Render(ctx context.Context, rec model.GiveawayRecord, postscript string) (string, error) {
	var intro string
	if a.Intro != nil {
		s, err := a.Intro.WriteAnnouncement(ctx, rec, a.Language)
		if err != nil {
			slog.Warn("announce: intro generation failed", "record", rec.ID, "error", err)
		} else {
			intro = s
		}
	}
	return Render(FrontmatterFor(rec, a.Title), Data{Record: rec, Intro: intro, Postscript: postscript})
}

// WriteFile renders rec into dir/<slug>.md and returns the path.
func (a *Announcer) WriteFile(ctx context.Context, rec model.GiveawayRecord, dir string) (string, error) {
	md, err := a.Render(ctx, rec, "")
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, Slug(rec)+".md")
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Publish renders and publishes rec. With attachCSV the winners are uploaded
// as a CSV and linked at the end of the post.
func (a *Announcer) Publish(ctx context.Context, rec model.GiveawayRecord, attachCSV bool) (string, error) {
	if a.Client == nil || strings.TrimSpace(a.Channel) == "" {
		return "", errors.New("announce: quaily client and channel are required to publish")
	}
	var postscript string
	if attachCSV {
		var buf bytes.Buffer
		if err := export.Winners(&buf, export.CSV, rec.Winners); err != nil {
			return "", err
		}
		url, err := a.Client.UploadAttachment(ctx, Slug(rec)+".csv", &buf)
		if err != nil {
			return "", fmt.Errorf("upload winners csv: %w", err)
		}
		postscript = fmt.Sprintf("[Download the winners list (CSV)](%s)", url)
	}
	md, err := a.Render(ctx, rec, postscript)
	if err != nil {
		return "", err
	}
	doc, err := Parse(strings.NewReader(md))
	if err != nil {
		return "", err
	}
	id, err := PublishDocument(ctx, a.Client, doc, a.Channel)
	if err != nil {
		return "", err
	}
	slog.Info("announce: published", "record", rec.ID, "channel", a.Channel, "post_id", id)
	return id, nil
}
