package actionlog

import (
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent turns a User-Agent header into a short label such as
// "Chrome on macOS".
func ParseUserAgent(ua string) string {
	ua = strings.TrimSpace(ua)
	if ua == "" {
		return "Unknown Device"
	}

	parsed := useragent.New(ua)
	browser, _ := parsed.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}
	return browser + " on " + osLabel(parsed)
}

func osLabel(ua *useragent.UserAgent) string {
	platform := ua.Platform()
	switch platform {
	case "iPhone", "iPad", "iPod":
		return platform
	}

	os := ua.OS()
	switch {
	case os == "":
		return "Unknown OS"
	case strings.Contains(os, "Mac OS X"):
		return "macOS"
	case strings.HasPrefix(os, "Windows"):
		return os
	case strings.HasPrefix(os, "Android"):
		return os
	case strings.HasPrefix(os, "Linux"):
		return "Linux"
	}
	return os
}
