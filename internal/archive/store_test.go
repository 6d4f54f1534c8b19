// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/anomaly-console/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "archive")
	store, err := Open(types.ArchiveConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func article(id int64, dataID string, status types.AnomalyStatus) types.ArticleData {
	return types.ArticleData{
		ID:            &id,
		DataID:        dataID,
		Title:         "title " + dataID,
		Brand:         "acme",
		ReadCount7d:   100 * id,
		AnomalyStatus: status,
		PublishTime:   types.LocalTime{Time: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)},
	}
}

func snapshot(note string) Snapshot {
	return Snapshot{
		BaseURL: "http://backend/api",
		Note:    note,
		Statistics: types.Statistics{
			TotalCount:       3,
			NormalCount:      1,
			GoodAnomalyCount: 1,
			BadAnomalyCount:  1,
			AvgReadCount:     200,
		},
		Articles: []types.ArticleData{
			article(1, "d-1", types.StatusNormal),
			article(2, "d-2", types.StatusGoodAnomaly),
			article(3, "d-3", types.StatusBadAnomaly),
		},
	}
}

// --- tests ---

func TestOpenCreatesDatabase(t *testing.T) {
	_, dir := testStore(t)
	if _, err := os.Stat(filepath.Join(dir, dbFile)); err != nil {
		t.Fatalf("database file missing: %v", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		s, err := Open(types.ArchiveConfig{Dir: dir})
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		s.Close()
	}
}

func TestSaveAndGet(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	old := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = old })

	sum, err := store.Save(ctx, snapshot("before purge"))
	if err != nil {
		t.Fatal(err)
	}
	if sum.ID == "" {
		t.Fatal("expected generated ID")
	}
	if sum.ArticleCount != 3 || sum.AnomalyCount != 2 || sum.TotalCount != 3 {
		t.Errorf("summary = %+v", sum)
	}
	if !sum.TakenAt.Equal(fixed) {
		t.Errorf("TakenAt = %v, want %v", sum.TakenAt, fixed)
	}

	got, err := store.Get(ctx, sum.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Note != "before purge" || got.BaseURL != "http://backend/api" {
		t.Errorf("got %+v", got)
	}
	if got.Statistics != snapshot("").Statistics {
		t.Errorf("statistics = %+v", got.Statistics)
	}
	if len(got.Articles) != 3 {
		t.Fatalf("articles = %d, want 3", len(got.Articles))
	}
	for i, want := range []string{"d-1", "d-2", "d-3"} {
		if got.Articles[i].DataID != want {
			t.Errorf("articles[%d] = %s, want %s", i, got.Articles[i].DataID, want)
		}
	}
	if got.Articles[1].AnomalyStatus != types.StatusGoodAnomaly {
		t.Errorf("status = %s", got.Articles[1].AnomalyStatus)
	}
	if got.Articles[2].IDValue() != 3 {
		t.Errorf("id = %d", got.Articles[2].IDValue())
	}
	if !got.Articles[0].PublishTime.Equal(time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("publish time = %v", got.Articles[0].PublishTime)
	}
}

func TestGetByPrefix(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	snap := snapshot("")
	snap.ID = "abc123"
	if _, err := store.Save(ctx, snap); err != nil {
		t.Fatal(err)
	}
	snap.ID = "abd456"
	if _, err := store.Save(ctx, snap); err != nil {
		t.Fatal(err)
	}

	got, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "abc123" {
		t.Errorf("ID = %s", got.ID)
	}

	if _, err := store.Get(ctx, "ab"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("ambiguous prefix: err = %v", err)
	}
	if _, err := store.Get(ctx, "zzz"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("missing: err = %v", err)
	}
	if _, err := store.Get(ctx, "a%"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("wildcard must be literal: err = %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, note := range []string{"first", "second", "third"} {
		snap := snapshot(note)
		snap.TakenAt = base.Add(time.Duration(i) * time.Hour)
		if _, err := store.Save(ctx, snap); err != nil {
			t.Fatal(err)
		}
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].Note != "third" || all[2].Note != "first" {
		t.Errorf("order = %s, %s, %s", all[0].Note, all[1].Note, all[2].Note)
	}

	limited, err := store.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limited len = %d, want 2", len(limited))
	}
}

func TestListEmpty(t *testing.T) {
	store, _ := testStore(t)
	all, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if all == nil || len(all) != 0 {
		t.Errorf("List = %#v, want empty non-nil slice", all)
	}
}

func TestSaveRejectsInconsistentStatistics(t *testing.T) {
	store, _ := testStore(t)
	snap := snapshot("")
	snap.Statistics.TotalCount = 10
	if _, err := store.Save(context.Background(), snap); err == nil {
		t.Fatal("expected error for counts that do not sum to total")
	}
}

func TestDeleteCascades(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	sum, err := store.Save(ctx, snapshot(""))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, sum.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, sum.ID); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("Get after delete: err = %v", err)
	}

	var n int
	if err := store.db.QueryRow(`SELECT count(*) FROM snapshot_articles`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("orphaned articles: %d", n)
	}
	if err := store.Delete(ctx, sum.ID); !errors.Is(err, ErrSnapshotNotFound) {
		t.Errorf("second delete: err = %v", err)
	}
}
