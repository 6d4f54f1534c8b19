// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// AnomalyLevel grades one metric's deviation. The backend derives it from the
// z-score and percentile; the client never recomputes it.
type AnomalyLevel string

const (
	LevelSevere   AnomalyLevel = "SEVERE"
	LevelModerate AnomalyLevel = "MODERATE"
	LevelMild     AnomalyLevel = "MILD"
	LevelNormal   AnomalyLevel = "NORMAL"
)

// Valid reports whether l is one of the four known levels.
func (l AnomalyLevel) Valid() bool {
	switch l {
	case LevelSevere, LevelModerate, LevelMild, LevelNormal:
		return true
	}
	return false
}

// AnomalyAnalysisResult is the deviation finding for a single metric.
type AnomalyAnalysisResult struct {
	// Metric names the measured counter (e.g. "readCount7d").
	Metric string `json:"metric" yaml:"metric"`

	Value      float64 `json:"value" yaml:"value"`
	Mean       float64 `json:"mean" yaml:"mean"`
	StdDev     float64 `json:"stdDev" yaml:"std_dev"`
	ZScore     float64 `json:"zScore" yaml:"z_score"`
	Percentile float64 `json:"percentile" yaml:"percentile"`

	// Deviation is the backend's human-readable description of the offset.
	Deviation string `json:"deviation" yaml:"deviation"`

	Level AnomalyLevel `json:"level" yaml:"level"`

	// Weight is the metric's share of the overall score, when the backend reports it.
	Weight *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// AnomalyAnalysisReport aggregates the per-metric results for one article.
type AnomalyAnalysisReport struct {
	// Results holds one entry per metric, in backend order.
	Results       []AnomalyAnalysisResult `json:"results" yaml:"results"`
	OverallStatus string                  `json:"overallStatus" yaml:"overall_status"`
	OverallScore  float64                 `json:"overallScore" yaml:"overall_score"`
}

// Validate checks that every result carries a metric name and a known level.
func (r AnomalyAnalysisReport) Validate() error {
	for i, res := range r.Results {
		if res.Metric == "" {
			return fmt.Errorf("results[%d]: metric is required", i)
		}
		if !res.Level.Valid() {
			return fmt.Errorf("results[%d] (%s): unknown level %q", i, res.Metric, res.Level)
		}
	}
	return nil
}

// TitleAnalysis is the backend's heuristic breakdown of a headline.
type TitleAnalysis struct {
	Length            int     `json:"length" yaml:"length"`
	HasEmotionalWords bool    `json:"hasEmotionalWords" yaml:"has_emotional_words"`
	HasSpecificNumber bool    `json:"hasSpecificNumber" yaml:"has_specific_number"`
	HasQuestion       bool    `json:"hasQuestion" yaml:"has_question"`
	HasCallToAction   bool    `json:"hasCallToAction" yaml:"has_call_to_action"`
	KeywordCount      int     `json:"keywordCount" yaml:"keyword_count"`
	QualityScore      float64 `json:"qualityScore" yaml:"quality_score"`
}

// ArticleDetailResponse is the composite view-model behind the article page.
type ArticleDetailResponse struct {
	Article       *ArticleData          `json:"article" yaml:"article"`
	AnomalyReport AnomalyAnalysisReport `json:"anomalyReport" yaml:"anomaly_report"`
	TitleAnalysis TitleAnalysis         `json:"titleAnalysis" yaml:"title_analysis"`

	// BenchmarkArticles is the backend-selected comparison set.
	BenchmarkArticles []ArticleData `json:"benchmarkArticles" yaml:"benchmark_articles"`

	// BrandAverages maps a metric name to the brand's average for it.
	BrandAverages map[string]float64 `json:"brandAverages" yaml:"brand_averages"`
}

// Validate checks that the detail describes the article with the given ID
// and that benchmarks share its brand. A single invalid sub-object fails the
// whole response.
func (d ArticleDetailResponse) Validate(id int64) error {
	if d.Article == nil {
		return fmt.Errorf("article is required")
	}
	if d.Article.ID == nil {
		return fmt.Errorf("article.id is required")
	}
	if *d.Article.ID != id {
		return fmt.Errorf("article.id is %d, requested %d", *d.Article.ID, id)
	}
	if err := d.Article.Validate(); err != nil {
		return fmt.Errorf("article: %w", err)
	}
	if err := d.AnomalyReport.Validate(); err != nil {
		return fmt.Errorf("anomalyReport: %w", err)
	}
	brand := strings.TrimSpace(d.Article.Brand)
	for i, b := range d.BenchmarkArticles {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("benchmarkArticles[%d]: %w", i, err)
		}
		// Benchmarks are drawn from the article's own brand.
		if brand != "" && strings.TrimSpace(b.Brand) != brand {
			return fmt.Errorf("benchmarkArticles[%d]: brand %q, article brand is %q", i, b.Brand, d.Article.Brand)
		}
	}
	return nil
}
