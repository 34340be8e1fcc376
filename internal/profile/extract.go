// Package profile fetches a public TikTok profile page and extracts numeric
// stats out of its semi-structured text. The page layout is not contractually
// guaranteed, so extraction is a tolerant marker scan, not a strict parse.
package profile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Stat field markers as they appear in the page's embedded state blob.
const (
	markerFollowers = `"followerCount":`
	markerFollowing = `"followingCount":`
	markerLikes     = `"heartCount":`
	markerVideos    = `"videoCount":`
)

// Stats holds the extracted profile numbers. MarkersFound counts how many of
// the four field markers were present; zero means the page carried no stats at
// all and the zeros are a degenerate result rather than a real empty profile.
type Stats struct {
	Followers      int
	Following      int
	Likes          int
	Videos         int
	EngagementRate float64
	MarkersFound   int
}

// ExtractionError reports a marker that was present but whose value could not
// be coerced to an integer. Absent markers are tolerated as zero; garbage
// values are not.
type ExtractionError struct {
	Field string
	Value string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("field %s has non-numeric value %q", e.Field, e.Value)
}

// Extract scans the raw page for the four stat markers and derives the
// engagement rate. It is deterministic and total over any input: a marker-free
// page yields all zeros, never an error.
func Extract(raw string) (*Stats, error) {
	stats := &Stats{}

	fields := []struct {
		marker string
		name   string
		dest   *int
	}{
		{markerFollowers, "followerCount", &stats.Followers},
		{markerFollowing, "followingCount", &stats.Following},
		{markerLikes, "heartCount", &stats.Likes},
		{markerVideos, "videoCount", &stats.Videos},
	}

	for _, f := range fields {
		value, found := scanValue(raw, f.marker)
		if !found {
			continue
		}
		stats.MarkersFound++

		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return nil, &ExtractionError{Field: f.name, Value: value}
		}
		*f.dest = n
	}

	stats.EngagementRate = engagementRate(stats.Likes, stats.Followers)
	return stats, nil
}

// scanValue finds the marker and returns the run of characters up to the next
// delimiter. A comma is the expected delimiter; a closing brace or end of text
// terminates the last field of an object.
func scanValue(raw, marker string) (string, bool) {
	idx := strings.Index(raw, marker)
	if idx < 0 {
		return "", false
	}

	rest := raw[idx+len(marker):]
	end := strings.IndexAny(rest, ",}")
	if end < 0 {
		end = len(rest)
	}
	return rest[:end], true
}

// engagementRate is likes over followers as a percentage, rounded to two
// decimals. Zero followers means rate zero, by policy rather than arithmetic.
func engagementRate(likes, followers int) float64 {
	if followers <= 0 {
		return 0
	}
	rate := float64(likes) / float64(followers) * 100
	return math.Round(rate*100) / 100
}
