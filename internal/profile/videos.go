package profile

import (
	"sort"
	"strconv"
	"strings"
)

const (
	markerDesc  = `"desc":"`
	markerPlays = `"playCount":`
)

// VideoStat is one video's title and view count, scraped best-effort from the
// page's item list.
type VideoStat struct {
	Title string
	Views int
}

// ExtractTopVideos scans the raw page for video descriptions paired with play
// counts and returns up to limit entries sorted by views, highest first.
// Unparseable entries are skipped; the result may be empty. This data only
// decorates the report, so nothing here is ever an error.
func ExtractTopVideos(raw string, limit int) []VideoStat {
	var videos []VideoStat

	rest := raw
	for {
		idx := strings.Index(rest, markerDesc)
		if idx < 0 {
			break
		}
		rest = rest[idx+len(markerDesc):]

		end := scanStringEnd(rest)
		if end < 0 {
			break
		}
		title := unescape(rest[:end])
		rest = rest[end:]

		playIdx := strings.Index(rest, markerPlays)
		if playIdx < 0 {
			break
		}
		// A play count belonging to this video sits close behind its
		// description; a distant match belongs to something else.
		if playIdx > 2048 {
			continue
		}
		value, _ := scanValue(rest[playIdx:], markerPlays)
		views, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || views < 0 {
			continue
		}

		if title != "" {
			videos = append(videos, VideoStat{Title: title, Views: views})
		}
	}

	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].Views > videos[j].Views
	})

	if limit > 0 && len(videos) > limit {
		videos = videos[:limit]
	}
	return videos
}

// scanStringEnd returns the index of the closing unescaped quote.
func scanStringEnd(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

func unescape(s string) string {
	replacer := strings.NewReplacer(`\"`, `"`, `\\`, `\`, `\/`, `/`, `\n`, " ", `\t`, " ")
	return strings.TrimSpace(replacer.Replace(s))
}
