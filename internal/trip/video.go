package trip

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	youTubeID = regexp.MustCompile(`^[A-Za-z0-9_-]{6,}$`)
	vimeoID   = regexp.MustCompile(`^[0-9]+$`)
)

// VideoEmbed turns a YouTube or Vimeo page link into the host's player URL.
// ok is false for any other link, which the page plays with a plain video tag.
func VideoEmbed(raw string) (embed string, ok bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch host {
	case "youtube.com", "m.youtube.com", "youtube-nocookie.com":
		id := u.Query().Get("v")
		if id == "" && len(segments) == 2 && (segments[0] == "embed" || segments[0] == "shorts" || segments[0] == "live") {
			id = segments[1]
		}
		return youTubePlayer(id)
	case "youtu.be":
		if len(segments) == 1 {
			return youTubePlayer(segments[0])
		}
	case "vimeo.com", "player.vimeo.com":
		if n := len(segments); n > 0 && vimeoID.MatchString(segments[n-1]) {
			return "https://player.vimeo.com/video/" + segments[n-1], true
		}
	}
	return "", false
}

func youTubePlayer(id string) (string, bool) {
	if !youTubeID.MatchString(id) {
		return "", false
	}
	return "https://www.youtube.com/embed/" + id, true
}
