// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data contracts exchanged with the analysis backend:
// articles, anomaly reports, title heuristics, dashboard statistics, the
// pagination envelope, and the client/server configuration.
//
// Every record is decoded from a backend response and treated as immutable.
// Validate methods enforce the canonical contract at the decoding boundary so
// that ambiguous nulls are rejected instead of propagated.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// AnomalyStatus is the backend-assigned category of an article's metrics.
type AnomalyStatus string

const (
	StatusNormal      AnomalyStatus = "NORMAL"
	StatusGoodAnomaly AnomalyStatus = "GOOD_ANOMALY"
	StatusBadAnomaly  AnomalyStatus = "BAD_ANOMALY"
)

// AnomalyStatuses lists the statuses the backend assigns, in display order.
var AnomalyStatuses = []AnomalyStatus{StatusNormal, StatusGoodAnomaly, StatusBadAnomaly}

// Valid reports whether s is one of the known statuses.
func (s AnomalyStatus) Valid() bool {
	return slices.Contains(AnomalyStatuses, s)
}

// ParseAnomalyStatus accepts a status name in any case.
func ParseAnomalyStatus(s string) (AnomalyStatus, error) {
	st := AnomalyStatus(strings.ToUpper(strings.TrimSpace(s)))
	if st.Valid() {
		return st, nil
	}
	names := make([]string, len(AnomalyStatuses))
	for i, v := range AnomalyStatuses {
		names[i] = string(v)
	}
	return "", fmt.Errorf("unknown status %q (want one of %s)", s, strings.Join(names, ", "))
}

// IsAnomaly reports whether s denotes a deviation in either direction.
func (s AnomalyStatus) IsAnomaly() bool {
	return s == StatusGoodAnomaly || s == StatusBadAnomaly
}

// Platform is the source channel of an article, used as a filter dimension.
type Platform string

const (
	PlatformDewu        Platform = "dewu"
	PlatformXiaohongshu Platform = "xhs"
	PlatformUnknown     Platform = "unknown"
)

// ParsePlatform maps a platform code or alias to a Platform. Matching is
// case-insensitive; unrecognised values return an error.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dewu", "得物":
		return PlatformDewu, nil
	case "xhs", "xiaohongshu", "小红书":
		return PlatformXiaohongshu, nil
	case "unknown":
		return PlatformUnknown, nil
	}
	return "", fmt.Errorf("unknown platform %q (want dewu, xhs, or unknown)", s)
}

// localTimeLayout is the zone-less layout the backend serialises timestamps in.
const localTimeLayout = "2006-01-02T15:04:05"

// LocalTime is a timestamp in the backend's zone-less ISO layout. JSON null
// and the empty string decode to the zero value.
type LocalTime struct {
	time.Time
}

// UnmarshalJSON accepts the backend layout, fractional seconds, and RFC 3339.
func (t *LocalTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding timestamp: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{localTimeLayout, "2006-01-02T15:04:05.999999999", time.RFC3339Nano} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

// MarshalJSON writes the backend layout, or null for the zero value.
func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(localTimeLayout))
}

// MarshalYAML writes the backend layout, or null for the zero value.
func (t LocalTime) MarshalYAML() (any, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Format(localTimeLayout), nil
}

// ArticleData is one ingested content item with its engagement counters and
// the backend's anomaly verdict.
type ArticleData struct {
	// ID is assigned by the backend once the article is persisted.
	ID *int64 `json:"id,omitempty" yaml:"id,omitempty"`

	// DataID is the external unique key from the uploaded spreadsheet.
	DataID string `json:"dataId" yaml:"data_id"`

	// Title is the article headline. Required.
	Title string `json:"title" yaml:"title"`

	// Brand is the brand the article promotes.
	Brand string `json:"brand" yaml:"brand"`

	PublishTime LocalTime `json:"publishTime" yaml:"publish_time"`
	ArticleLink string    `json:"articleLink" yaml:"article_link"`
	ContentType string    `json:"contentType" yaml:"content_type"`
	PostType    string    `json:"postType" yaml:"post_type"`

	// MaterialSource is the raw source column the backend identifies Platform from.
	MaterialSource string   `json:"materialSource,omitempty" yaml:"material_source,omitempty"`
	Platform       Platform `json:"platform,omitempty" yaml:"platform,omitempty"`
	StyleInfo      string   `json:"styleInfo,omitempty" yaml:"style_info,omitempty"`

	ReadCount7d         int64  `json:"readCount7d" yaml:"read_count_7d"`
	ReadCount14d        int64  `json:"readCount14d" yaml:"read_count_14d"`
	InteractionCount7d  int64  `json:"interactionCount7d" yaml:"interaction_count_7d"`
	InteractionCount14d int64  `json:"interactionCount14d" yaml:"interaction_count_14d"`
	ShareCount7d        int64  `json:"shareCount7d" yaml:"share_count_7d"`
	ShareCount14d       int64  `json:"shareCount14d" yaml:"share_count_14d"`
	ProductVisit7d      *int64 `json:"productVisit7d,omitempty" yaml:"product_visit_7d,omitempty"`
	ProductVisitCount   int64  `json:"productVisitCount" yaml:"product_visit_count"`
	ProductWant7d       *int64 `json:"productWant7d,omitempty" yaml:"product_want_7d,omitempty"`
	ProductWant14d      *int64 `json:"productWant14d,omitempty" yaml:"product_want_14d,omitempty"`

	// AnomalyStatus is empty until the backend has analysed the article.
	AnomalyStatus AnomalyStatus `json:"anomalyStatus" yaml:"anomaly_status"`

	// AnomalyDetails is the backend's JSON-encoded per-metric analysis.
	AnomalyDetails string `json:"anomalyDetails,omitempty" yaml:"anomaly_details,omitempty"`

	// AnomalyScore is the composite anomaly score (0-100).
	AnomalyScore *float64 `json:"anomalyScore,omitempty" yaml:"anomaly_score,omitempty"`

	Content                 string `json:"content,omitempty" yaml:"content,omitempty"`
	TitleAnalysis           string `json:"titleAnalysis,omitempty" yaml:"title_analysis,omitempty"`
	ContentAnalysis         string `json:"contentAnalysis,omitempty" yaml:"content_analysis,omitempty"`
	CrawlStatus             string `json:"crawlStatus,omitempty" yaml:"crawl_status,omitempty"`
	CrawlError              string `json:"crawlError,omitempty" yaml:"crawl_error,omitempty"`
	OptimizationSuggestions string `json:"optimizationSuggestions,omitempty" yaml:"optimization_suggestions,omitempty"`
	AISuggestions           string `json:"aiSuggestions,omitempty" yaml:"ai_suggestions,omitempty"`
	ImagesInfo              string `json:"imagesInfo,omitempty" yaml:"images_info,omitempty"`
	ImagesDownloaded        *bool  `json:"imagesDownloaded,omitempty" yaml:"images_downloaded,omitempty"`
	LocalImagesPath         string `json:"localImagesPath,omitempty" yaml:"local_images_path,omitempty"`

	CreatedAt LocalTime `json:"createdAt" yaml:"created_at"`
	UpdatedAt LocalTime `json:"updatedAt" yaml:"updated_at"`
}

// Validate checks the canonical article contract: the external key and title
// are present, counters are non-negative, and the status is known or unset.
func (a ArticleData) Validate() error {
	if strings.TrimSpace(a.DataID) == "" {
		return fmt.Errorf("dataId is required")
	}
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("article %s: title is required", a.DataID)
	}
	if a.AnomalyStatus != "" && !a.AnomalyStatus.Valid() {
		return fmt.Errorf("article %s: unknown anomalyStatus %q", a.DataID, a.AnomalyStatus)
	}

	counters := []struct {
		name  string
		value int64
	}{
		{"readCount7d", a.ReadCount7d},
		{"readCount14d", a.ReadCount14d},
		{"interactionCount7d", a.InteractionCount7d},
		{"interactionCount14d", a.InteractionCount14d},
		{"shareCount7d", a.ShareCount7d},
		{"shareCount14d", a.ShareCount14d},
		{"productVisitCount", a.ProductVisitCount},
	}
	for _, c := range counters {
		if c.value < 0 {
			return fmt.Errorf("article %s: %s is negative (%d)", a.DataID, c.name, c.value)
		}
	}
	for name, p := range map[string]*int64{
		"productVisit7d": a.ProductVisit7d,
		"productWant7d":  a.ProductWant7d,
		"productWant14d": a.ProductWant14d,
	} {
		if p != nil && *p < 0 {
			return fmt.Errorf("article %s: %s is negative (%d)", a.DataID, name, *p)
		}
	}
	return nil
}

// IDValue returns the persisted ID, or 0 when the article has none.
func (a ArticleData) IDValue() int64 {
	if a.ID == nil {
		return 0
	}
	return *a.ID
}

// ValidateArticles validates each article and reports the first failure with its index.
func ValidateArticles(articles []ArticleData) error {
	for i, a := range articles {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("articles[%d]: %w", i, err)
		}
	}
	return nil
}
