package models

import (
	"hash/fnv"
	"time"
)

// SourceRepository is a repository as listed by the upstream source.
type SourceRepository struct {
	Name         string    `json:"name"`
	URL          string    `json:"html_url"`
	LastModified time.Time `json:"updated_at"`
}

// SyncedRepo is the normalized per-repository activity snapshot written by a
// sync cycle. The JSON names are consumed by the frontend.
type SyncedRepo struct {
	ID             int       `json:"id"`
	RepositoryName string    `json:"repositoryName"`
	RepositoryURL  string    `json:"repositoryUrl"`
	CommitCount    int       `json:"commitCount"`
	LastUpdated    time.Time `json:"lastUpdated"`
	PeriodStart    time.Time `json:"periodStart"`
	PeriodEnd      time.Time `json:"periodEnd"`
}

// StableID derives a deterministic id from a repository name so that
// repeated syncs replace rather than duplicate a record.
// Distinct names may collide; callers treat the id as a display key only.
func StableID(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(h.Sum32())
}
