package profile

import (
	"errors"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name           string
		raw            string
		wantFollowers  int
		wantFollowing  int
		wantLikes      int
		wantVideos     int
		wantEngagement float64
		wantMarkers    int
	}{
		{
			name:           "all fields present",
			raw:            `{"followerCount":1000,"followingCount":50,"heartCount":250,"videoCount":12,`,
			wantFollowers:  1000,
			wantFollowing:  50,
			wantLikes:      250,
			wantVideos:     12,
			wantEngagement: 25.0,
			wantMarkers:    4,
		},
		{
			name:           "missing markers default to zero",
			raw:            `{"followerCount":1000,"heartCount":250,`,
			wantFollowers:  1000,
			wantFollowing:  0,
			wantLikes:      250,
			wantVideos:     0,
			wantEngagement: 25.0,
			wantMarkers:    2,
		},
		{
			name:           "all markers absent is a degenerate success",
			raw:            `<html><body>nothing here</body></html>`,
			wantFollowers:  0,
			wantFollowing:  0,
			wantLikes:      0,
			wantVideos:     0,
			wantEngagement: 0,
			wantMarkers:    0,
		},
		{
			name:           "zero followers yields zero rate",
			raw:            `{"followerCount":0,"heartCount":500,`,
			wantFollowers:  0,
			wantLikes:      500,
			wantEngagement: 0,
			wantMarkers:    2,
		},
		{
			name:           "last field closed by brace",
			raw:            `{"followerCount":200,"videoCount":7}`,
			wantFollowers:  200,
			wantVideos:     7,
			wantEngagement: 0,
			wantMarkers:    2,
		},
		{
			name:           "engagement rounds to two decimals",
			raw:            `{"followerCount":3,"heartCount":1,`,
			wantFollowers:  3,
			wantLikes:      1,
			wantEngagement: 33.33,
			wantMarkers:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := Extract(tt.raw)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if stats.Followers != tt.wantFollowers {
				t.Errorf("Followers = %d, want %d", stats.Followers, tt.wantFollowers)
			}
			if stats.Following != tt.wantFollowing {
				t.Errorf("Following = %d, want %d", stats.Following, tt.wantFollowing)
			}
			if stats.Likes != tt.wantLikes {
				t.Errorf("Likes = %d, want %d", stats.Likes, tt.wantLikes)
			}
			if stats.Videos != tt.wantVideos {
				t.Errorf("Videos = %d, want %d", stats.Videos, tt.wantVideos)
			}
			if stats.EngagementRate != tt.wantEngagement {
				t.Errorf("EngagementRate = %v, want %v", stats.EngagementRate, tt.wantEngagement)
			}
			if stats.MarkersFound != tt.wantMarkers {
				t.Errorf("MarkersFound = %d, want %d", stats.MarkersFound, tt.wantMarkers)
			}
		})
	}
}

func TestExtract_NonNumericValue(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantField string
	}{
		{
			name:      "garbage follower count",
			raw:       `{"followerCount":"lots",`,
			wantField: "followerCount",
		},
		{
			name:      "empty value",
			raw:       `{"heartCount":,`,
			wantField: "heartCount",
		},
		{
			name:      "negative count",
			raw:       `{"videoCount":-3,`,
			wantField: "videoCount",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.raw)
			if err == nil {
				t.Fatal("Extract() error = nil, want ExtractionError")
			}
			var extractionErr *ExtractionError
			if !errors.As(err, &extractionErr) {
				t.Fatalf("Extract() error type = %T, want *ExtractionError", err)
			}
			if extractionErr.Field != tt.wantField {
				t.Errorf("ExtractionError.Field = %q, want %q", extractionErr.Field, tt.wantField)
			}
		})
	}
}

func TestExtract_Deterministic(t *testing.T) {
	raw := `{"followerCount":1000,"heartCount":250,`
	first, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Extract(raw)
		if err != nil {
			t.Fatalf("Extract() error = %v on run %d", err, i)
		}
		if *again != *first {
			t.Fatalf("Extract() run %d = %+v, want %+v", i, again, first)
		}
	}
}

func TestExtractTopVideos(t *testing.T) {
	raw := `{"itemList":[` +
		`{"desc":"first clip","stats":{"playCount":100,"diggCount":5}},` +
		`{"desc":"viral one","stats":{"playCount":9000,"diggCount":800}},` +
		`{"desc":"middle","stats":{"playCount":450,"diggCount":20}},` +
		`{"desc":"flop","stats":{"playCount":3,"diggCount":0}}]}`

	videos := ExtractTopVideos(raw, 3)
	if len(videos) != 3 {
		t.Fatalf("ExtractTopVideos() returned %d videos, want 3", len(videos))
	}
	if videos[0].Title != "viral one" || videos[0].Views != 9000 {
		t.Errorf("top video = %+v, want viral one/9000", videos[0])
	}
	if videos[1].Title != "middle" || videos[1].Views != 450 {
		t.Errorf("second video = %+v, want middle/450", videos[1])
	}
	if videos[2].Title != "first clip" || videos[2].Views != 100 {
		t.Errorf("third video = %+v, want first clip/100", videos[2])
	}
}

func TestExtractTopVideos_NoVideos(t *testing.T) {
	videos := ExtractTopVideos(`<html>no items</html>`, 3)
	if len(videos) != 0 {
		t.Errorf("ExtractTopVideos() = %v, want empty", videos)
	}
}

func TestExtractTopVideos_EscapedQuotesInTitle(t *testing.T) {
	raw := `{"desc":"say \"hi\" now","stats":{"playCount":42}}`
	videos := ExtractTopVideos(raw, 3)
	if len(videos) != 1 {
		t.Fatalf("ExtractTopVideos() returned %d videos, want 1", len(videos))
	}
	if videos[0].Title != `say "hi" now` {
		t.Errorf("title = %q, want %q", videos[0].Title, `say "hi" now`)
	}
	if videos[0].Views != 42 {
		t.Errorf("views = %d, want 42", videos[0].Views)
	}
}
