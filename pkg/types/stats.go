// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Statistics is the dashboard's summary snapshot, computed by the backend at
// call time.
type Statistics struct {
	TotalCount          int64   `json:"totalCount" yaml:"total_count"`
	NormalCount         int64   `json:"normalCount" yaml:"normal_count"`
	GoodAnomalyCount    int64   `json:"goodAnomalyCount" yaml:"good_anomaly_count"`
	BadAnomalyCount     int64   `json:"badAnomalyCount" yaml:"bad_anomaly_count"`
	AvgReadCount        float64 `json:"avgReadCount" yaml:"avg_read_count"`
	AvgInteractionCount float64 `json:"avgInteractionCount" yaml:"avg_interaction_count"`
}

// AnomalyCount returns the number of articles in either anomaly category.
func (s Statistics) AnomalyCount() int64 {
	return s.GoodAnomalyCount + s.BadAnomalyCount
}

// Validate checks that the counts are non-negative and partition the total.
func (s Statistics) Validate() error {
	if s.TotalCount < 0 || s.NormalCount < 0 || s.GoodAnomalyCount < 0 || s.BadAnomalyCount < 0 {
		return fmt.Errorf("negative count in statistics")
	}
	if sum := s.NormalCount + s.GoodAnomalyCount + s.BadAnomalyCount; sum != s.TotalCount {
		return fmt.Errorf("status counts sum to %d, totalCount is %d", sum, s.TotalCount)
	}
	return nil
}

// PlatformStats breaks the article set down by source platform and crawl state.
type PlatformStats struct {
	TotalArticles int64 `json:"totalArticles" yaml:"total_articles"`

	// PlatformDistribution maps a platform display name to its article count.
	PlatformDistribution map[string]int64 `json:"platformDistribution" yaml:"platform_distribution"`

	// CrawlStatusDistribution maps a crawl status (SUCCESS, FAILED, PENDING) to its count.
	CrawlStatusDistribution map[string]int64 `json:"crawlStatusDistribution" yaml:"crawl_status_distribution"`

	SupportedPlatforms []string `json:"supportedPlatforms" yaml:"supported_platforms"`
}

// Validate checks that counts are non-negative and that every article is
// attributed to exactly one platform.
func (p PlatformStats) Validate() error {
	if p.TotalArticles < 0 {
		return fmt.Errorf("totalArticles is negative (%d)", p.TotalArticles)
	}
	var sum int64
	for name, n := range p.PlatformDistribution {
		if n < 0 {
			return fmt.Errorf("platform %q has negative count %d", name, n)
		}
		sum += n
	}
	if len(p.PlatformDistribution) > 0 && sum != p.TotalArticles {
		return fmt.Errorf("platform counts sum to %d, totalArticles is %d", sum, p.TotalArticles)
	}
	for status, n := range p.CrawlStatusDistribution {
		if n < 0 {
			return fmt.Errorf("crawl status %q has negative count %d", status, n)
		}
	}
	return nil
}
