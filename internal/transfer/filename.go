package transfer

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

const (
	// fallback when the URL yields nothing usable, e.g. a signed blob-storage
	// URL whose path segment is an opaque token
	defaultFilename = "update-package.bin"

	maxFilenameLength = 100
)

var dispositionRe = regexp.MustCompile(`filename="([^"]+)"`)

// DeriveFilename picks the local filename for a download URL: a "filename"
// query parameter first, then a filename token inside a
// response-content-disposition style parameter, then the last path segment.
// Overlong or empty segments fall back to a fixed default.
func DeriveFilename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return defaultFilename
	}
	q := u.Query()

	if name := q.Get("filename"); name != "" {
		return sanitize(name)
	}
	if cd := q.Get("response-content-disposition"); cd != "" {
		if m := dispositionRe.FindStringSubmatch(cd); m != nil {
			return sanitize(m[1])
		}
	}

	base := path.Base(u.Path)
	if base == "/" || base == "." {
		base = ""
	}
	return sanitize(base)
}

func sanitize(name string) string {
	name = path.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == "/" || len(name) >= maxFilenameLength {
		return defaultFilename
	}
	return name
}
