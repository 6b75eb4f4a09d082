package domain

import (
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Asset status values. Only approved assets are visible in listings when
// moderation is enabled.
const (
	StatusApproved = "approved"
	StatusPending  = "pending"
)

// DefaultAuthor is used when an example does not name its author
const DefaultAuthor = "Anonymous"

// Asset is a single directory entry: a config snippet, script or agent example
type Asset struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Code        string   `json:"code"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
	File        string   `json:"file,omitempty"`
}

// DeriveID builds the collection-wide id from category and filename
// "MCP", "GitHub-MCP.json" -> "mcp-github-mcp"
func DeriveID(category, filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	stem = strings.ToLower(strings.TrimSpace(stem))
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return stem
	}
	return category + "-" + stem
}

// IsApproved reports whether the asset passed moderation.
// Assets without an explicit status come from the indexer and count as approved.
func (a *Asset) IsApproved() bool {
	return a.Status == "" || a.Status == StatusApproved
}

// CreatedTime parses CreatedAt, returning the zero time if it is missing or malformed
func (a *Asset) CreatedTime() time.Time {
	return parseTimestamp(a.CreatedAt)
}

// HasTag checks if the asset carries a tag (case insensitive)
func (a *Asset) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// TagsString returns tags as a comma-separated string
func (a *Asset) TagsString() string {
	if len(a.Tags) == 0 {
		return "-"
	}
	return strings.Join(a.Tags, ", ")
}

// DisplayDate returns a human-readable creation date
func (a *Asset) DisplayDate() string {
	t := a.CreatedTime()
	if t.IsZero() {
		if a.CreatedAt == "" {
			return "-"
		}
		return a.CreatedAt
	}
	return t.Format("Jan 02, 2006")
}

// Matches reports whether query is a case-insensitive substring of the
// title, description, author, category or any tag.
func (a *Asset) Matches(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Description), q) ||
		strings.Contains(strings.ToLower(a.Author), q) ||
		strings.Contains(strings.ToLower(a.Category), q) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// SortByCreatedDesc orders assets newest first. Ties keep their input order.
func SortByCreatedDesc(assets []Asset) {
	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].CreatedTime().After(assets[j].CreatedTime())
	})
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatTimestamp renders t in the artifact's ISO-8601 form
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
