// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/anomaly-console/internal/archive"
	"github.com/pdiddy/anomaly-console/internal/router"
	"github.com/pdiddy/anomaly-console/pkg/types"
)

func sampleArticles() []types.ArticleData {
	id1, id2 := int64(1), int64(2)
	return []types.ArticleData{
		{ID: &id1, DataID: "d-1", Title: "Spring sneakers", Brand: "acme", Platform: types.PlatformDewu,
			ReadCount7d: 1200, AnomalyStatus: types.StatusGoodAnomaly},
		{ID: &id2, DataID: "d-2", Title: "一个很长的中文标题用于测试列宽是否按显示宽度对齐而不是按字节计算", Brand: "acme",
			Platform: types.PlatformXiaohongshu, ReadCount7d: 3, AnomalyStatus: types.StatusBadAnomaly},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": Table, "TABLE": Table, "json": JSON, " yaml ": YAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestArticleTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Table, sampleArticles()))
	out := buf.String()

	assert.Contains(t, out, "Spring sneakers")
	assert.Contains(t, out, "GOOD_ANOMALY")
	assert.Contains(t, out, "BAD_ANOMALY")
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "2 articles")
	assert.NotContains(t, out, "\x1b[", "styles must be dropped for non-terminal writers")
}

func TestEmptyArticleTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Table, []types.ArticleData{}))
	assert.Equal(t, "No articles found.\n", buf.String())
}

func TestPadUsesDisplayWidth(t *testing.T) {
	assert.Equal(t, "ab  ", pad("ab", 4))
	assert.Equal(t, "中文", pad("中文", 4))
	assert.Equal(t, "中...", pad("中文字", 5))
	assert.Equal(t, "a b ", pad("a\n b", 4))
}

func TestStatisticsTable(t *testing.T) {
	var buf bytes.Buffer
	st := &types.Statistics{TotalCount: 4, NormalCount: 2, GoodAnomalyCount: 1, BadAnomalyCount: 1}
	require.NoError(t, Render(&buf, Table, st))
	assert.Contains(t, buf.String(), "50.0%")
}

func TestPlatformTableSortsByCount(t *testing.T) {
	var buf bytes.Buffer
	ps := &types.PlatformStats{
		TotalArticles:        5,
		PlatformDistribution: map[string]int64{"得物": 1, "小红书": 4},
	}
	require.NoError(t, Render(&buf, Table, ps))
	out := buf.String()
	assert.Less(t, strings.Index(out, "小红书"), strings.Index(out, "得物"))
}

func TestDetailTable(t *testing.T) {
	id := int64(42)
	d := &types.ArticleDetailResponse{
		Article: &types.ArticleData{ID: &id, DataID: "d-42", Title: "t", AnomalyStatus: types.StatusBadAnomaly},
		AnomalyReport: types.AnomalyAnalysisReport{
			OverallStatus: "BAD_ANOMALY",
			OverallScore:  87.5,
			Results: []types.AnomalyAnalysisResult{
				{Metric: "readCount7d", Value: 3, Mean: 1000, ZScore: -2.9, Percentile: 1, Level: types.LevelSevere},
			},
		},
		TitleAnalysis: types.TitleAnalysis{Length: 1, HasQuestion: true},
		BrandAverages: map[string]float64{"readCount7d": 1000},
	}
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Table, d))
	out := buf.String()
	assert.Contains(t, out, "d-42")
	assert.Contains(t, out, "score 87.5")
	assert.Contains(t, out, "SEVERE")
	assert.Contains(t, out, "has question")
	assert.Contains(t, out, "Brand averages")
	assert.Regexp(t, `Page\s+/article/42\n`, out)
}

func TestArticleFieldsOmitPageWithoutID(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Table, &types.ArticleData{DataID: "d-1", Title: "t"}))
	assert.NotContains(t, buf.String(), "/article/")
}

func TestRoutesAndMatch(t *testing.T) {
	table := router.Default()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Table, table.Routes()))
	assert.Contains(t, buf.String(), "/article/{id}")
	assert.Contains(t, buf.String(), "GET,HEAD,POST")

	buf.Reset()
	require.NoError(t, Render(&buf, Table, table.Resolve("/article/42")))
	assert.Contains(t, buf.String(), "id=42")
	assert.Contains(t, buf.String(), "ArticleDetail")
}

func TestSnapshotTable(t *testing.T) {
	var buf bytes.Buffer
	sums := []archive.Summary{{
		ID:           "0123456789abcdef",
		TakenAt:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ArticleCount: 3,
		AnomalyCount: 2,
		Note:         "weekly",
	}}
	require.NoError(t, Render(&buf, Table, sums))
	out := buf.String()
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "weekly")
}

func TestJSONAndYAML(t *testing.T) {
	articles := sampleArticles()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, JSON, articles))
	var decoded []types.ArticleData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "d-1", decoded[0].DataID)

	buf.Reset()
	require.NoError(t, Render(&buf, YAML, articles))
	var generic []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &generic))
	require.Len(t, generic, 2)
	assert.Equal(t, "d-2", generic[1]["data_id"])
	assert.Equal(t, "BAD_ANOMALY", generic[1]["anomaly_status"])
}

func TestTableRejectsUnknownType(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, Table, struct{}{}))
}
