package analysis

import (
	"strings"
	"testing"

	"github.com/tikscope/tikscope/internal/profile"
	"github.com/tikscope/tikscope/internal/recommend"
)

var testEntryAr = recommend.Entry{
	Name:     "Yemen",
	Lang:     "ar",
	Hours:    []string{"14:00–16:00", "20:00–22:00"},
	Hashtags: []string{"#اليمن", "#foryou"},
}

var testEntryEn = recommend.Entry{
	Name:     "United States",
	Lang:     "en",
	Hours:    []string{"06:00–09:00"},
	Hashtags: []string{"#fyp", "#viral"},
}

func TestBuildReport_Arabic(t *testing.T) {
	stats := &profile.Stats{
		Followers:      1000,
		Following:      50,
		Likes:          250,
		Videos:         12,
		EngagementRate: 25.0,
		MarkersFound:   4,
	}

	report := BuildReport("alice", stats, testEntryAr, "2", nil)

	for _, want := range []string{
		"@alice", "1000", "250", "12", "25%",
		"14:00–16:00", "20:00–22:00", "#اليمن", "#foryou",
		"تحليل حساب TikTok",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	if !strings.Contains(report, "2") {
		t.Errorf("report missing remaining attempts line:\n%s", report)
	}
}

func TestBuildReport_English(t *testing.T) {
	stats := &profile.Stats{Followers: 3, Likes: 1, EngagementRate: 33.33}

	report := BuildReport("bob", stats, testEntryEn, VIPRemaining, nil)

	for _, want := range []string{
		"@bob", "33.33%", "TikTok Profile Report",
		"06:00–09:00", "#fyp", "∞",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestBuildReport_TopVideosSection(t *testing.T) {
	stats := &profile.Stats{Followers: 10, Likes: 5, EngagementRate: 50}
	videos := []profile.VideoStat{
		{Title: "viral one", Views: 9000},
		{Title: strings.Repeat("x", 60), Views: 100},
	}

	report := BuildReport("alice", stats, testEntryEn, "1", videos)

	if !strings.Contains(report, "viral one | 9000") {
		t.Errorf("report missing top video line:\n%s", report)
	}
	if strings.Contains(report, strings.Repeat("x", 31)) {
		t.Errorf("long video title was not truncated:\n%s", report)
	}
}

func TestBuildReport_EscapesHTML(t *testing.T) {
	stats := &profile.Stats{}
	report := BuildReport("a<b>&c", stats, testEntryEn, "3", nil)

	if strings.Contains(report, "a<b>&c") {
		t.Errorf("username was not HTML-escaped:\n%s", report)
	}
	if !strings.Contains(report, "a&lt;b&gt;&amp;c") {
		t.Errorf("escaped username missing:\n%s", report)
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{25.0, "25"},
		{33.33, "33.33"},
		{0, "0"},
		{12.5, "12.5"},
	}

	for _, tt := range tests {
		if got := formatRate(tt.rate); got != tt.want {
			t.Errorf("formatRate(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}
