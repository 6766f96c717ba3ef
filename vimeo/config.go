package vimeo

import (
	"context"
	"net/http"
	"sort"
	"strconv"
)

type playerConfig struct {
	Request struct {
		Files struct {
			HLS struct {
				DefaultCDN string `json:"default_cdn"`
				CDNs       map[string]struct {
					URL string `json:"url"`
				} `json:"cdns"`
			} `json:"hls"`
		} `json:"files"`
	} `json:"request"`
	Video struct {
		Thumbs map[string]string `json:"thumbs"`
	} `json:"video"`
}

// PlayerConfig fetches the embeddable player configuration of a video. The
// endpoint enforces the video's embed privacy, so the configured Referer
// decides whether it answers.
func (c *Client) PlayerConfig(ctx context.Context, id string) (Stream, error) {
	header := http.Header{}
	if c.referer != "" {
		header.Set("Referer", c.referer)
	}

	var cfg playerConfig
	if err := c.getJSON(ctx, c.scrape, "player config", c.player+"/"+id+"/config", header, &cfg); err != nil {
		return Stream{}, err
	}

	stream := Stream{
		HLSURL:    cfg.hlsURL(),
		PosterURL: largestThumb(cfg.Video.Thumbs),
	}
	if stream.HLSURL == "" && stream.PosterURL == "" {
		return stream, ErrNoStream
	}
	return stream, nil
}

func (cfg *playerConfig) hlsURL() string {
	hls := cfg.Request.Files.HLS
	if cdn, ok := hls.CDNs[hls.DefaultCDN]; ok && cdn.URL != "" {
		return cdn.URL
	}

	names := make([]string, 0, len(hls.CDNs))
	for name := range hls.CDNs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if u := hls.CDNs[name].URL; u != "" {
			return u
		}
	}
	return ""
}

// largestThumb picks the widest numeric size, falling back to "base".
func largestThumb(thumbs map[string]string) string {
	best, bestWidth := "", -1
	for size, u := range thumbs {
		width, err := strconv.Atoi(size)
		if err != nil || u == "" {
			continue
		}
		if width > bestWidth {
			best, bestWidth = u, width
		}
	}
	if best == "" {
		return thumbs["base"]
	}
	return best
}
