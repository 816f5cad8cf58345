package models

import "time"

// SourceCommit is a single commit returned by the upstream source.
type SourceCommit struct {
	SHA        string    `json:"sha"`
	Message    string    `json:"message"`
	AuthorDate time.Time `json:"author_date"`
}

// LatestAuthorDate returns the newest author date among commits, or the zero
// time for an empty slice.
func LatestAuthorDate(commits []SourceCommit) time.Time {
	var latest time.Time
	for _, c := range commits {
		if c.AuthorDate.After(latest) {
			latest = c.AuthorDate
		}
	}
	return latest
}
