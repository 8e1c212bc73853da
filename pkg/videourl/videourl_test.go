package videourl

import "testing"

func TestYouTubeEmbed_RecognizedShapes(t *testing.T) {
	const want = "https://www.youtube.com/embed/dQw4w9WgXcQ"

	cases := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ",
		"https://www.youtube.com/u/a/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ",
	}
	for _, raw := range cases {
		if got := YouTubeEmbed(raw); got != want {
			t.Errorf("YouTubeEmbed(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestYouTubeEmbed_Rejected(t *testing.T) {
	cases := []string{
		"",
		"not a url",
		"https://example.com/video/123",
		"https://youtu.be/short",                 // id too short
		"https://youtu.be/waytoolongvideoid123",  // id too long
		"https://www.youtube.com/watch?v=",       // empty id
	}
	for _, raw := range cases {
		if got := YouTubeEmbed(raw); got != "" {
			t.Errorf("YouTubeEmbed(%q) = %q, want empty", raw, got)
		}
	}
}
