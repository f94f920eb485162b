package marketplace

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/billshinji/Vsix-Downloader/internal/model"
)

// Gallery endpoint constants
const (
	GalleryHost = "marketplace.visualstudio.com"

	targetPlatformParam = "targetPlatform"
)

// PackageExtension is the file extension of a packaged extension archive
const PackageExtension = ".vsix"

// DownloadURL builds the gallery download URL for the requested package.
// Each path segment and the query value are percent-encoded individually:
// a slash inside an input stays inside its segment as %2F, and a dot-dot
// input stays a literal segment instead of collapsing its neighbor.
func DownloadURL(req model.DownloadRequest) string {
	segments := []string{
		"_apis", "public", "gallery",
		"publishers", req.Publisher,
		"vsextensions", req.Extension,
		req.Version, "vspackage",
	}

	escaped := make([]string, len(segments))
	for i, seg := range segments {
		escaped[i] = url.PathEscape(seg)
	}

	u := &url.URL{
		Scheme:  "https",
		Host:    GalleryHost,
		Path:    "/" + strings.Join(segments, "/"),
		RawPath: "/" + strings.Join(escaped, "/"),
	}

	if req.TargetPlatform != "" {
		q := url.Values{}
		q.Set(targetPlatformParam, req.TargetPlatform)
		u.RawQuery = q.Encode()
	}

	return u.String()
}

// PackageFilename derives the destination filename for the requested
// package: {publisher}.{extension}-{version}[@{platform}].vsix. Inputs are
// used as-is; callers supply path-safe identifiers.
func PackageFilename(req model.DownloadRequest) string {
	name := fmt.Sprintf("%s.%s-%s", req.Publisher, req.Extension, req.Version)
	if req.TargetPlatform != "" {
		name += "@" + req.TargetPlatform
	}
	return name + PackageExtension
}
