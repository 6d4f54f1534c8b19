// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedPages(t *testing.T) {
	tests := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 7, 15},
		{5, 0, 0},
		{-1, 10, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpectedPages(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestPageResponseValidate(t *testing.T) {
	three := []int{1, 2, 3}
	tests := []struct {
		name    string
		page    PageResponse[int]
		wantErr bool
	}{
		{"consistent", PageResponse[int]{Content: three, TotalElements: 21, TotalPages: 7, PageSize: 3}, false},
		{"empty", PageResponse[int]{Content: []int{}, PageSize: 20}, false},
		{"content exceeds page size", PageResponse[int]{Content: three, TotalElements: 3, TotalPages: 2, PageSize: 2}, true},
		{"total pages wrong", PageResponse[int]{Content: three, TotalElements: 21, TotalPages: 8, PageSize: 3}, true},
		{"negative total", PageResponse[int]{TotalElements: -1, PageSize: 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.page.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPageResponseHasNext(t *testing.T) {
	assert.True(t, PageResponse[int]{CurrentPage: 0, TotalPages: 2}.HasNext())
	assert.False(t, PageResponse[int]{CurrentPage: 1, TotalPages: 2}.HasNext())
	assert.False(t, PageResponse[int]{}.HasNext())
}

func TestPageQueryValues(t *testing.T) {
	v := PageQuery{Page: 0, Size: 20}.Values()
	assert.Equal(t, "0", v.Get("page"))
	assert.Equal(t, "20", v.Get("size"))
	assert.False(t, v.Has("platform"))
	assert.False(t, v.Has("status"))

	v = PageQuery{Page: 2, Size: 5, Platform: "xhs", Status: "NORMAL"}.Values()
	assert.Equal(t, "xhs", v.Get("platform"))
	assert.Equal(t, "NORMAL", v.Get("status"))

	assert.Error(t, PageQuery{Page: -1, Size: 5}.Validate())
	assert.Error(t, PageQuery{Page: 0, Size: 0}.Validate())
}

func TestStatisticsValidate(t *testing.T) {
	ok := Statistics{TotalCount: 10, NormalCount: 7, GoodAnomalyCount: 2, BadAnomalyCount: 1}
	require.NoError(t, ok.Validate())
	assert.Equal(t, int64(3), ok.AnomalyCount())

	bad := ok
	bad.TotalCount = 11
	assert.Error(t, bad.Validate())

	neg := ok
	neg.NormalCount, neg.GoodAnomalyCount = 10, -1
	assert.Error(t, neg.Validate())
}

func TestPlatformStatsValidate(t *testing.T) {
	ps := PlatformStats{TotalArticles: 5, PlatformDistribution: map[string]int64{"得物": 2, "小红书": 3}}
	assert.NoError(t, ps.Validate())

	ps.TotalArticles = 6
	assert.Error(t, ps.Validate())

	assert.NoError(t, PlatformStats{TotalArticles: 4}.Validate(), "an empty distribution is not checked")
}

func TestParsePlatform(t *testing.T) {
	for in, want := range map[string]Platform{
		"dewu": PlatformDewu, "得物": PlatformDewu,
		"XHS": PlatformXiaohongshu, "xiaohongshu": PlatformXiaohongshu, "小红书": PlatformXiaohongshu,
		" unknown ": PlatformUnknown,
	} {
		got, err := ParsePlatform(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParsePlatform("weibo")
	assert.Error(t, err)
}

func TestParseAnomalyStatus(t *testing.T) {
	st, err := ParseAnomalyStatus(" bad_anomaly ")
	require.NoError(t, err)
	assert.Equal(t, StatusBadAnomaly, st)

	_, err = ParseAnomalyStatus("WEIRD")
	assert.EqualError(t, err, `unknown status "WEIRD" (want one of NORMAL, GOOD_ANOMALY, BAD_ANOMALY)`)

	for _, s := range AnomalyStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, AnomalyStatus("normal").Valid())
}

func TestLocalTimeJSON(t *testing.T) {
	var v struct {
		At LocalTime `json:"at"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"at":"2024-03-05T08:09:10"}`), &v))
	assert.Equal(t, time.Date(2024, 3, 5, 8, 9, 10, 0, time.UTC), v.At.Time)

	require.NoError(t, json.Unmarshal([]byte(`{"at":"2024-03-05T08:09:10.123"}`), &v))
	assert.Equal(t, 123*int(time.Millisecond), v.At.Nanosecond())

	require.NoError(t, json.Unmarshal([]byte(`{"at":null}`), &v))
	assert.True(t, v.At.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"at":"yesterday"}`), &v))

	v.At = LocalTime{time.Date(2024, 3, 5, 8, 9, 10, 0, time.UTC)}
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2024-03-05T08:09:10"}`, string(out))
}

func TestArticleValidate(t *testing.T) {
	base := ArticleData{DataID: "D-1", Title: "t"}
	require.NoError(t, base.Validate())

	noTitle := base
	noTitle.Title = "  "
	assert.Error(t, noTitle.Validate())

	badStatus := base
	badStatus.AnomalyStatus = "WEIRD"
	assert.Error(t, badStatus.Validate())

	negative := base
	negative.ShareCount14d = -1
	assert.Error(t, negative.Validate())

	want := int64(-2)
	negPtr := base
	negPtr.ProductWant7d = &want
	assert.Error(t, negPtr.Validate())

	err := ValidateArticles([]ArticleData{base, noTitle})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "articles[1]")
}

func TestArticleDetailValidate(t *testing.T) {
	id := int64(9)
	article := &ArticleData{ID: &id, DataID: "D-9", Title: "t", Brand: "Acme"}

	d := ArticleDetailResponse{
		Article:           article,
		BenchmarkArticles: []ArticleData{{DataID: "B-1", Title: "b", Brand: "Acme"}},
	}
	require.NoError(t, d.Validate(9))
	assert.Error(t, d.Validate(10), "id mismatch")

	d.BenchmarkArticles[0].Brand = "Other"
	assert.Error(t, d.Validate(9), "benchmark from another brand")

	assert.Error(t, ArticleDetailResponse{}.Validate(9), "missing article")
}

func TestClientConfigValidate(t *testing.T) {
	c := ClientConfig{}.WithDefaults()
	require.NoError(t, c.Validate())
	assert.Equal(t, DefaultTimeout, c.Timeout)
	assert.Equal(t, DefaultUploadTimeout, c.UploadTimeout)

	for _, base := range []string{"/api", "localhost:8080", "ftp://host/api", "http:///api"} {
		c := ClientConfig{BaseURL: base}.WithDefaults()
		assert.Error(t, c.Validate(), base)
	}

	neg := ClientConfig{UploadTimeout: -time.Second}.WithDefaults()
	assert.Error(t, neg.Validate())
}
