package model

// DownloadRequest identifies a single marketplace package build to download.
// Publisher, Extension and Version must be non-empty; the presentation layer
// (form or CLI flags) enforces that before a request reaches the fetcher.
type DownloadRequest struct {
	Publisher string // namespace owning the extension, e.g. "ms-vscode"
	Extension string // extension name, e.g. "cpptools"
	Version   string // exact version string, e.g. "1.20.5"

	// TargetPlatform selects a platform-specific build (e.g. "darwin-arm64").
	// Empty means the universal package.
	TargetPlatform string
}
