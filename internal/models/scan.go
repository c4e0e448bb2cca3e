package models

import "time"

// LinkVisit records one probed internal link: the normalized URL, how long
// the request took and what status came back. Err is set when the probe
// itself failed, in which case StatusCode is zero.
type LinkVisit struct {
	URL        string        `json:"url"`
	StatusCode int           `json:"status_code"`
	Elapsed    time.Duration `json:"elapsed"`
	Err        string        `json:"error,omitempty"`
}

// ScanResult contains everything a single-page scan produced. Visits keeps
// the order links were encountered on the page; duplicate anchors stay
// duplicates.
type ScanResult struct {
	Seed      string      `json:"seed"`
	Host      string      `json:"host"`
	Title     string      `json:"title,omitempty"`
	ScannedAt time.Time   `json:"scanned_at"`
	Visits    []LinkVisit `json:"visits"`
	Rejected  int         `json:"rejected"`
}
