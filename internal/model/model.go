package model

import "time"

// ReleaseAsset is one downloadable file attached to a release.
type ReleaseAsset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
}

// ReleaseDescriptor is the registry's view of the latest release.
// Immutable once fetched, never persisted.
type ReleaseDescriptor struct {
	TagName     string         `json:"tag_name"`
	Name        string         `json:"name"`
	Body        string         `json:"body"`
	Prerelease  bool           `json:"prerelease"`
	PublishedAt time.Time      `json:"published_at"`
	Assets      []ReleaseAsset `json:"assets"`
}

// UpdateInfo is derived once per successful check and superseded by the next.
type UpdateInfo struct {
	Version        string    `json:"version"`
	CurrentVersion string    `json:"currentVersion"`
	ReleaseDate    time.Time `json:"releaseDate"`
	ReleaseNotes   string    `json:"releaseNotes"`
	DownloadURL    string    `json:"downloadUrl"`
	Mandatory      bool      `json:"mandatory"`
}

// UpdateProgress is recomputed on every received chunk. BytesPerSecond is a
// smoothed rate resampled on a fixed wall-clock interval, not an
// instantaneous derivative.
type UpdateProgress struct {
	Percent        int   `json:"percent"`
	Transferred    int64 `json:"transferred"`
	Total          int64 `json:"total"`
	BytesPerSecond int64 `json:"bytesPerSecond"`
}
