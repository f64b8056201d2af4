// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package videourl canonicalises proof-of-completion video links submitted
with a record.

Only a fixed whitelist of hosts is accepted; every host canonicalises to
a single URL shape so that two links pointing at the same video always
compare equal, which is what the record uniqueness invariant
(spec.md §3.2.5) depends on.
*/
package videourl

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
)

// Canonicalise parses raw and rewrites it into the canonical form for its
// host, or returns an [apperr.AppError] if the host is unsupported or the
// URL doesn't match the shape that host expects.
func Canonicalise(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return "", apperr.MalformedVideoUrl()
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", apperr.MalformedVideoUrl()
	}

	if parsed.User != nil {
		return "", apperr.MalformedVideoUrl()
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")

	switch host {
	case "youtube.com", "m.youtube.com":
		return canonicaliseYoutube(parsed)
	case "youtu.be":
		return canonicaliseYoutubeShort(parsed)
	case "twitch.tv":
		return canonicaliseTwitch(parsed)
	case "everyplay.com":
		return canonicaliseFixedPrefix(parsed, "videos", "https://www.everyplay.com/videos/%s", "https://www.everyplay.com/videos/{id}")
	case "vimeo.com":
		return canonicaliseSingleSegment(parsed, "vimeo.com", "https://vimeo.com/%s")
	case "bilibili.com":
		return canonicaliseFixedPrefix(parsed, "video", "https://www.bilibili.com/video/%s", "https://www.bilibili.com/video/{id}")
	default:
		return "", apperr.UnsupportedVideoHost(host)
	}
}

func canonicaliseYoutube(parsed *url.URL) (string, error) {
	id := parsed.Query().Get("v")
	if len(id) < 11 {
		return "", apperr.InvalidUrlFormat("https://www.youtube.com/watch?v={11-character-id}")
	}
	return "https://www.youtube.com/watch?v=" + id[:11], nil
}

func canonicaliseYoutubeShort(parsed *url.URL) (string, error) {
	segment := firstPathSegment(parsed)
	if segment == "" {
		return "", apperr.InvalidUrlFormat("https://youtu.be/{id}")
	}
	return "https://www.youtube.com/watch?v=" + segment, nil
}

func canonicaliseTwitch(parsed *url.URL) (string, error) {
	segments := pathSegments(parsed)

	// /videos/{id}
	if len(segments) == 2 && segments[0] == "videos" {
		return "https://www.twitch.tv/videos/" + segments[1], nil
	}

	// /{channel}/v/{id}
	if len(segments) == 3 && segments[1] == "v" {
		return "https://www.twitch.tv/videos/" + segments[2], nil
	}

	return "", apperr.InvalidUrlFormat("https://www.twitch.tv/videos/{id} or https://www.twitch.tv/{channel}/v/{id}")
}

// canonicaliseFixedPrefix handles hosts whose path is a literal prefix
// segment followed by the id, e.g. Everyplay's /videos/{id} or
// Bilibili's /video/{id} — the prefix itself is never the id.
func canonicaliseFixedPrefix(parsed *url.URL, prefix, format, expected string) (string, error) {
	segments := pathSegments(parsed)
	if len(segments) != 2 || segments[0] != prefix {
		return "", apperr.InvalidUrlFormat(expected)
	}
	return fmt.Sprintf(format, segments[1]), nil
}

func canonicaliseSingleSegment(parsed *url.URL, host, format string) (string, error) {
	segment := firstPathSegment(parsed)
	if segment == "" {
		return "", apperr.InvalidUrlFormat("https://" + host + "/{id}")
	}
	return fmt.Sprintf(format, segment), nil
}

func firstPathSegment(parsed *url.URL) string {
	segments := pathSegments(parsed)
	if len(segments) == 0 {
		return ""
	}
	return segments[0]
}

func pathSegments(parsed *url.URL) []string {
	trimmed := strings.Trim(parsed.Path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
