package domain

import (
	"path/filepath"
	"strings"

	"github.com/kamal-hamza/adir/pkg/metadata"
)

// AssetFromContent builds an Asset from a raw example file.
// JSON files carrying a "code" field are read as asset records; every other
// file is split into front matter and body. Missing fields get defaults:
// title falls back to the id, author to DefaultAuthor, category to the
// directory the file was found in.
func AssetFromContent(file ExampleFile, content string) (Asset, []string) {
	var doc metadata.Document
	if strings.EqualFold(filepath.Ext(file.Name), ".json") {
		if record, ok := metadata.ParseRecord(content); ok {
			doc = record
		} else {
			doc = metadata.Parse(content)
		}
	} else {
		doc = metadata.Parse(content)
	}

	id := DeriveID(file.Category, file.Name)

	created := doc.String("createdAt", doc.String("date", ""))
	if created == "" && !file.ModTime.IsZero() {
		created = FormatTimestamp(file.ModTime)
	}

	asset := Asset{
		ID:          id,
		Title:       doc.String("title", id),
		Author:      doc.String("author", DefaultAuthor),
		Category:    doc.String("category", file.Category),
		Description: doc.String("description", ""),
		Code:        doc.Body,
		Tags:        doc.Strings("tags"),
		Status:      doc.String("status", StatusApproved),
		CreatedAt:   created,
		UpdatedAt:   doc.String("updatedAt", created),
		File:        file.Name,
	}

	return asset, doc.Warnings
}
