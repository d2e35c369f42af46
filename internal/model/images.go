package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ImageList decodes the image field sent by clients. Older clients send the list as a
// JSON-encoded string, a single data URI, or a comma-separated string; all of them
// normalize to an ordered list of sources.
type ImageList []string

// UnmarshalJSON accepts a JSON array of strings or a string in any of the legacy encodings
func (l *ImageList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*l = nil
		return nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("images: %w", err)
		}
		*l = compact(items)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("images must be a list or a string: %w", err)
	}
	*l = ParseImages(raw)
	return nil
}

// ParseImages decodes a legacy single-field image value
func ParseImages(raw string) ImageList {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ImageList{}
	}

	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		return compact(items)
	}
	if json.Valid([]byte(raw)) {
		// valid JSON that is not a list is kept whole
		return ImageList{raw}
	}
	if strings.HasPrefix(raw, "data:image") {
		// data URIs contain commas of their own
		return ImageList{raw}
	}
	return compact(strings.Split(raw, ","))
}

func compact(items []string) ImageList {
	out := make(ImageList, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// legacyImageField renders images the way older clients read image_url: a JSON-encoded
// array inside a string.
func legacyImageField(images []string) string {
	if images == nil {
		images = []string{}
	}
	encoded, err := json.Marshal(images)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}
