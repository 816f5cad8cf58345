package utils

import (
	"strings"
	"unicode/utf8"
)

// minMessageLength is the trimmed length, in characters, at or below which a
// message is noise.
const minMessageLength = 5

var (
	noiseSubstrings = []string{"Merge pull request", "Merge branch", "Pull request", "PR #"}
	noisePrefixes   = []string{"Merge "}
)

// FirstLine returns the first line of a commit message, trimmed.
func FirstLine(message string) string {
	if i := strings.IndexAny(message, "\r\n"); i >= 0 {
		message = message[:i]
	}
	return strings.TrimSpace(message)
}

// IsNoiseMessage reports whether a commit message is merge or pull-request
// boilerplate, or too short to be worth showing. Matching is case-sensitive.
func IsNoiseMessage(message string) bool {
	for _, s := range noiseSubstrings {
		if strings.Contains(message, s) {
			return true
		}
	}
	for _, p := range noisePrefixes {
		if strings.HasPrefix(message, p) {
			return true
		}
	}
	return utf8.RuneCountInString(strings.TrimSpace(message)) <= minMessageLength
}

// FilterNoise returns the messages that are not noise, keeping order.
// A non-positive limit keeps everything.
func FilterNoise(messages []string, limit int) []string {
	out := make([]string, 0, len(messages))
	for _, m := range messages {
		if IsNoiseMessage(m) {
			continue
		}
		out = append(out, m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// GitHubRepoURL builds the canonical web URL for owner/repo.
func GitHubRepoURL(owner, repo string) string {
	return "https://github.com/" + owner + "/" + repo
}
