package vimeo

import (
	"regexp"
	"strings"

	"github.com/vhls-cli/vhls/util"
)

var (
	bareID  = regexp.MustCompile(`^\d+$`)
	videoID = regexp.MustCompile(`^(?:https?://)?(?:www\.)?(?:player\.vimeo\.com/video/|vimeo\.com/(?:[^?#]*/)?)(?P<id>\d+)(?:[/?#].*)?$`)
)

// ExtractVideoID returns the numeric video id from a bare id or a vimeo.com /
// player.vimeo.com URL.
func ExtractVideoID(input string) (string, bool) {
	in := strings.TrimSpace(input)
	if bareID.MatchString(in) {
		return in, true
	}
	if id, ok := util.ReGroups(videoID, in)["id"]; ok {
		return id, true
	}
	return "", false
}
