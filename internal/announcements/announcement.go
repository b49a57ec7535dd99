package announcements

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	ErrInvalidAnnouncement = errors.New("announcement needs a title (max 200) and content (max 10000)")

	validate = validator.New(validator.WithRequiredStructEnabled())

	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// Announcement is a gym-wide notice. Content is markdown as authored,
// HTML is derived on read and never stored.
type Announcement struct {
	ID        int64     `json:"id"`
	GymID     int64     `json:"gym_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	HTML      string    `json:"html"`
	CreatedAt time.Time `json:"created_at"`
}

type Draft struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=10000"`
}

func (d Draft) Normalize() (Draft, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Content = strings.TrimSpace(d.Content)
	if err := validate.Struct(d); err != nil {
		return d, fmt.Errorf("%w: %s", ErrInvalidAnnouncement, err)
	}
	return d, nil
}

// RenderMarkdown converts markdown to HTML safe to inject into the portal.
func RenderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return string(sanitizer.SanitizeBytes(buf.Bytes())), nil
}
