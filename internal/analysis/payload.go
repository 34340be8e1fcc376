package analysis

import (
	"fmt"
	"net/url"
	"strings"
)

// The selection payload is the only state carried between the country prompt
// and the button click, so it must be self-describing: a tag, a version, then
// the username and country, each query-escaped so neither can smuggle the
// delimiter.
const (
	payloadTag     = "an"
	payloadVersion = "v1"
	payloadSep     = "|"
)

// EncodeSelection packs a pending analysis into a callback payload.
func EncodeSelection(username, country string) string {
	return strings.Join([]string{
		payloadTag,
		payloadVersion,
		url.QueryEscape(username),
		url.QueryEscape(country),
	}, payloadSep)
}

// IsSelectionPayload reports whether a callback payload belongs to this
// pipeline, for routing. It implies nothing about validity.
func IsSelectionPayload(payload string) bool {
	return strings.HasPrefix(payload, payloadTag+payloadSep)
}

// DecodeSelection strictly parses a selection payload. Anything that is not
// exactly a known tag, a known version, a non-empty username and a non-empty
// country is ErrPayloadMalformed; the payload arrives from the outside and is
// never trusted blindly.
func DecodeSelection(payload string) (username, country string, err error) {
	parts := strings.Split(payload, payloadSep)
	if len(parts) != 4 {
		return "", "", fmt.Errorf("%w: expected 4 fields, got %d", ErrPayloadMalformed, len(parts))
	}
	if parts[0] != payloadTag {
		return "", "", fmt.Errorf("%w: unknown tag %q", ErrPayloadMalformed, parts[0])
	}
	if parts[1] != payloadVersion {
		return "", "", fmt.Errorf("%w: unknown version %q", ErrPayloadMalformed, parts[1])
	}

	username, uerr := url.QueryUnescape(parts[2])
	if uerr != nil || username == "" {
		return "", "", fmt.Errorf("%w: bad username field", ErrPayloadMalformed)
	}
	country, cerr := url.QueryUnescape(parts[3])
	if cerr != nil || country == "" {
		return "", "", fmt.Errorf("%w: bad country field", ErrPayloadMalformed)
	}

	return username, country, nil
}
