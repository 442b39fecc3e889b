package domain

import (
	"regexp"
	"strings"
	"time"
)

type JobStatus string

const (
	JobStatusActive   JobStatus = "active"
	JobStatusArchived JobStatus = "archived"
)

type Job struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Status       JobStatus `json:"status"`
	Tags         []string  `json:"tags"`
	DisplayOrder int       `json:"order"`
	CreatedAt    time.Time `json:"createdAt"`
}

var slugSpaces = regexp.MustCompile(`\s+`)

// Slugify derives a URL slug from a job title: lowercased, whitespace runs
// collapsed to single dashes.
func Slugify(title string) string {
	return slugSpaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
}
