package analysis

import (
	"errors"
	"testing"
)

func TestEncodeDecodeSelection(t *testing.T) {
	tests := []struct {
		name     string
		username string
		country  string
	}{
		{"plain", "alice", "Yemen"},
		{"country with spaces", "bob", "Saudi Arabia"},
		{"username with delimiter", "weird|name", "Egypt"},
		{"unicode username", "مستخدم", "Kuwait"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := EncodeSelection(tt.username, tt.country)

			if !IsSelectionPayload(payload) {
				t.Fatalf("IsSelectionPayload(%q) = false", payload)
			}

			username, country, err := DecodeSelection(payload)
			if err != nil {
				t.Fatalf("DecodeSelection(%q) error = %v", payload, err)
			}
			if username != tt.username {
				t.Errorf("username = %q, want %q", username, tt.username)
			}
			if country != tt.country {
				t.Errorf("country = %q, want %q", country, tt.country)
			}
		})
	}
}

func TestDecodeSelection_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty", ""},
		{"legacy raw pipe format", "alice|Yemen"},
		{"wrong tag", "xx|v1|alice|Yemen"},
		{"wrong version", "an|v2|alice|Yemen"},
		{"missing country", "an|v1|alice"},
		{"empty username", "an|v1||Yemen"},
		{"empty country", "an|v1|alice|"},
		{"extra field", "an|v1|alice|Yemen|extra"},
		{"bad escape", "an|v1|%zz|Yemen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeSelection(tt.payload)
			if err == nil {
				t.Fatalf("DecodeSelection(%q) error = nil, want ErrPayloadMalformed", tt.payload)
			}
			if !errors.Is(err, ErrPayloadMalformed) {
				t.Errorf("DecodeSelection(%q) error = %v, want ErrPayloadMalformed", tt.payload, err)
			}
		})
	}
}

func TestIsSelectionPayload(t *testing.T) {
	if IsSelectionPayload("coffee_1") {
		t.Error("IsSelectionPayload(coffee_1) = true, want false")
	}
	if !IsSelectionPayload("an|v1|alice|Yemen") {
		t.Error("IsSelectionPayload(an|v1|alice|Yemen) = false, want true")
	}
}
