package telegram

import (
	"testing"

	"github.com/tikscope/tikscope/internal/analysis"
)

func TestUserID(t *testing.T) {
	tests := []struct {
		chatID int64
		want   string
	}{
		{12345, "12345"},
		{-1001234567890, "-1001234567890"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := userID(tt.chatID); got != tt.want {
			t.Errorf("userID(%d) = %q, want %q", tt.chatID, got, tt.want)
		}
	}
}

func TestParseChatID(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		want   int64
		wantOK bool
	}{
		{"valid id", "12345", 12345, true},
		{"negative group id", "-100500", -100500, true},
		{"not a number", "alice", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseChatID(tt.userID)
			if ok != tt.wantOK {
				t.Fatalf("parseChatID(%q) ok = %v, want %v", tt.userID, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("parseChatID(%q) = %d, want %d", tt.userID, got, tt.want)
			}
		})
	}
}

func TestBuildKeyboard(t *testing.T) {
	buttons := []analysis.Button{
		{Label: "Yemen", Data: "an|v1|alice|Yemen"},
		{Label: "Egypt", Data: "an|v1|alice|Egypt"},
		{Label: "Iraq", Data: "an|v1|alice|Iraq"},
	}

	keyboard := buildKeyboard(buttons)

	if len(keyboard.InlineKeyboard) != 2 {
		t.Fatalf("keyboard rows = %d, want 2", len(keyboard.InlineKeyboard))
	}
	if len(keyboard.InlineKeyboard[0]) != 2 {
		t.Errorf("first row = %d buttons, want 2", len(keyboard.InlineKeyboard[0]))
	}
	if len(keyboard.InlineKeyboard[1]) != 1 {
		t.Errorf("second row = %d buttons, want 1", len(keyboard.InlineKeyboard[1]))
	}

	first := keyboard.InlineKeyboard[0][0]
	if first.Text != "Yemen" {
		t.Errorf("first button label = %q, want Yemen", first.Text)
	}
	if first.CallbackData == nil || *first.CallbackData != "an|v1|alice|Yemen" {
		t.Errorf("first button payload = %v, want an|v1|alice|Yemen", first.CallbackData)
	}
}
