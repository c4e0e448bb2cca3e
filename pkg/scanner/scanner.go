package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"linkscan/internal/models"
	"linkscan/pkg/classifier"
	"linkscan/pkg/extractor"
	"linkscan/pkg/fetcher"
)

// Progress receives scan events as they happen, so a caller can render each
// link while later ones are still being probed. Either method may be a no-op.
type Progress interface {
	// PageScanned fires once, after the seed page has been fetched and its
	// anchors classified, before any link is probed.
	PageScanned(res *models.ScanResult, internal []string)
	// LinkVisited fires once per internal link, in encounter order.
	LinkVisited(v models.LinkVisit)
}

// Scanner runs a single-page internal-link scan: one seed fetch, one pass
// over its anchors, one probe per internal link. No recursion, no revisit
// tracking; the result accumulator lives in Scan and nowhere else.
type Scanner struct {
	fetcher  *fetcher.Fetcher
	progress Progress
}

// New creates a Scanner. progress may be nil.
func New(f *fetcher.Fetcher, progress Progress) *Scanner {
	return &Scanner{fetcher: f, progress: progress}
}

// Scan fetches the seed page, classifies its anchors against the seed's
// hostname and probes every internal link for timing and status. A probe
// failure is recorded on its visit and the scan continues; only an invalid
// seed URL or a failed seed fetch ends the run.
func (s *Scanner) Scan(ctx context.Context, seedURL string) (*models.ScanResult, error) {
	cls, err := classifier.New(seedURL)
	if err != nil {
		return nil, err
	}

	page, err := s.fetcher.Fetch(ctx, seedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch seed page: %w", err)
	}
	if page.StatusCode < 200 || page.StatusCode >= 300 {
		// Non-2xx seed pages still get parsed; error pages carry links too
		log.Warn().Str("url", seedURL).Int("status", page.StatusCode).Msg("Seed page returned non-2xx status")
	}
	log.Info().
		Str("url", seedURL).
		Int("status", page.StatusCode).
		Dur("elapsed", page.Elapsed).
		Msg("Fetched seed page")

	anchors, err := extractor.Extract(page.Body)
	if err != nil {
		return nil, fmt.Errorf("parse seed page: %w", err)
	}
	internal := cls.ClassifyAll(anchors)
	log.Debug().
		Int("anchors", len(anchors)).
		Int("internal", len(internal)).
		Str("host", cls.Host()).
		Msg("Classified anchors")

	result := &models.ScanResult{
		Seed:      seedURL,
		Host:      cls.Host(),
		Title:     extractor.Title(page.Body),
		ScannedAt: time.Now(),
		Rejected:  len(anchors) - len(internal),
	}
	if s.progress != nil {
		s.progress.PageScanned(result, internal)
	}

	for _, link := range internal {
		visit := models.LinkVisit{URL: link}
		res, err := s.fetcher.Probe(ctx, link)
		if err != nil {
			visit.Err = err.Error()
			log.Warn().Str("url", link).Err(err).Msg("Probe failed")
		} else {
			visit.StatusCode = res.StatusCode
			visit.Elapsed = res.Elapsed
		}
		result.Visits = append(result.Visits, visit)
		if s.progress != nil {
			s.progress.LinkVisited(visit)
		}
	}

	return result, nil
}
