// Package videourl normalizes raw video links into their embeddable form.
package videourl

import "regexp"

// idPattern captures the video id from the YouTube URL shapes we accept:
// youtu.be/<id>, /v/<id>, /u/<x>/<id>, /embed/<id>, watch?v=<id> and
// &v=<id>, with arbitrary trailing query parameters.
var idPattern = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*)`)

// youtubeIDLen is the fixed length of a YouTube video identifier.
const youtubeIDLen = 11

// YouTubeEmbed maps a raw YouTube link to its embeddable URL, or returns
// "" when no valid video id can be extracted. It never panics; any parse
// anomaly yields "".
func YouTubeEmbed(raw string) string {
	if raw == "" {
		return ""
	}

	m := idPattern.FindStringSubmatch(raw)
	if m == nil || len(m[2]) != youtubeIDLen {
		return ""
	}
	return "https://www.youtube.com/embed/" + m[2]
}
