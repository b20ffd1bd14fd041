package generator

import (
	"path"
	"strconv"
	"strings"
)

func postOutputPath(slug string) string {
	return path.Join("posts", slug, "index.html")
}

func postRoute(slug string) string {
	return "/posts/" + slug + "/"
}

func listingOutputPath(number int) string {
	if number <= 1 {
		return "index.html"
	}
	return path.Join("page", strconv.Itoa(number), "index.html")
}

func listingRoute(number int) string {
	if number <= 1 {
		return "/"
	}
	return "/page/" + strconv.Itoa(number) + "/"
}

func absoluteURL(base, route string) string {
	targetBase := baseURLWithFallback(base)
	normalized := strings.TrimSpace(route)
	if normalized == "" {
		return targetBase
	}
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	return targetBase + normalized
}

func baseURLWithFallback(base string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmed == "" {
		return "http://localhost"
	}
	return trimmed
}
