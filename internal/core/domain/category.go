package domain

import "strings"

// Category describes one navigable section of the directory
type Category struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// DefaultCategories is the built-in category set, in display order
func DefaultCategories() []Category {
	return []Category{
		{ID: "skills", Name: "Skills", Description: "Reusable skills and prompt recipes"},
		{ID: "mcp", Name: "MCP Servers", Description: "Model Context Protocol servers for extending AI capabilities"},
		{ID: "sdk", Name: "SDK Examples", Description: "Programs built on the agent SDK"},
		{ID: "microagents", Name: "Microagents", Description: "Specialized AI agents for specific tasks and workflows"},
		{ID: "scripts", Name: "Scripts", Description: "Automation scripts and utilities"},
	}
}

// CategorySlug maps a display name to its slug.
// Unknown names are lowercased with whitespace collapsed to hyphens.
func CategorySlug(categories []Category, name string) string {
	for _, c := range categories {
		if c.Name == name {
			return c.ID
		}
	}
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// CategoryFromSlug maps a slug back to its display name, or returns the slug
func CategoryFromSlug(categories []Category, slug string) string {
	for _, c := range categories {
		if c.ID == slug {
			return c.Name
		}
	}
	return slug
}

// IsKnownCategory checks slug against the configured categories
func IsKnownCategory(categories []Category, slug string) bool {
	for _, c := range categories {
		if c.ID == slug {
			return true
		}
	}
	return false
}
