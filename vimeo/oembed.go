package vimeo

import (
	"context"
	"net/url"

	"github.com/vhls-cli/vhls/log"
)

type oembedResponse struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// OEmbedPoster fetches the public thumbnail of a video. It needs no
// credential and works for any video whose metadata is public.
func (c *Client) OEmbedPoster(ctx context.Context, id string) (string, error) {
	if c.posters != nil {
		if poster, ok := c.posters.Get(id).Get(); ok {
			return poster, nil
		}
	}

	params := url.Values{}
	params.Set("url", "https://vimeo.com/"+id)
	params.Set("width", "1920")

	var resp oembedResponse
	if err := c.getJSON(ctx, c.public, "oembed", c.oembed+"?"+params.Encode(), nil, &resp); err != nil {
		return "", err
	}

	if resp.ThumbnailURL == "" {
		return "", nil
	}

	if c.posters != nil {
		if err := c.posters.Set(id, resp.ThumbnailURL); err != nil {
			log.Warnf("poster cache: %v", err)
		}
	}

	return resp.ThumbnailURL, nil
}
