package vimeo

import (
	"context"
	"net/http"

	"github.com/samber/lo"
)

type apiFile struct {
	Quality string `json:"quality"`
	Link    string `json:"link"`
}

type apiPicture struct {
	Width int    `json:"width"`
	Link  string `json:"link"`
}

type apiVideo struct {
	Play struct {
		HLS struct {
			Link string `json:"link"`
		} `json:"hls"`
	} `json:"play"`
	Files    []apiFile `json:"files"`
	Pictures struct {
		BaseLink string       `json:"base_link"`
		Sizes    []apiPicture `json:"sizes"`
	} `json:"pictures"`
}

// Video queries the authenticated API. Only the owner's token sees the
// playback links of private videos.
func (c *Client) Video(ctx context.Context, id, token string) (Stream, error) {
	header := http.Header{}
	header.Set("Authorization", "bearer "+token)
	header.Set("Accept", "application/vnd.vimeo.*+json;version=3.4")

	var video apiVideo
	rawURL := c.api + "/videos/" + id + "?fields=play,files,pictures"
	if err := c.getJSON(ctx, c.public, "api", rawURL, header, &video); err != nil {
		return Stream{}, err
	}

	stream := Stream{
		HLSURL:    video.hlsURL(),
		PosterURL: video.poster(),
	}
	if stream.HLSURL == "" {
		return stream, ErrNoStream
	}
	return stream, nil
}

func (v *apiVideo) hlsURL() string {
	if v.Play.HLS.Link != "" {
		return v.Play.HLS.Link
	}
	file, _ := lo.Find(v.Files, func(f apiFile) bool {
		return f.Quality == "hls" && f.Link != ""
	})
	return file.Link
}

func (v *apiVideo) poster() string {
	if len(v.Pictures.Sizes) == 0 {
		return v.Pictures.BaseLink
	}
	widest := lo.MaxBy(v.Pictures.Sizes, func(a, b apiPicture) bool {
		return a.Width > b.Width
	})
	if widest.Link == "" {
		return v.Pictures.BaseLink
	}
	return widest.Link
}
