package app

import (
	"context"
	"errors"
	"testing"
	"time"

	catalog "StrategyGame/internal/catalog/domain"
	catalogmemory "StrategyGame/internal/catalog/infra/persistence/memory"
	citymemory "StrategyGame/internal/city/infra/persistence/memory"
)

func newResearchCatalog() *catalogmemory.CatalogRepo {
	cat := catalogmemory.NewCatalogRepo()
	cat.Research["ironworking"] = catalog.Research{
		ID:               "ironworking",
		Name:             "炼铁",
		Price:            map[catalog.ResourceID]int{"gold": 40},
		BaseResearchTime: 100,
	}
	return cat
}

func TestStartResearch_耗时随已有等级增长(t *testing.T) {
	repo := citymemory.NewCityRepo()
	c := newTestCity("c1", map[catalog.ResourceID]int{"gold": 100})
	c.Contents.Researches["ironworking"] = 1
	_ = repo.InsertCity(context.Background(), c)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := NewResearchService(repo, newResearchCatalog(), newTestWorlds(), newTestLocker(repo, clock), clock, nopLogger{})

	entry, err := svc.StartResearch(context.Background(), "c1", "ironworking")

	if err != nil {
		t.Fatalf("err = %v", err)
	}
	// 已有 1 级：耗时 100 * (1+1) = 200 秒；价格不随等级变化。
	if !entry.ReadyAt.Equal(now.Add(200 * time.Second)) {
		t.Fatalf("ready_at = %v, want +200s", entry.ReadyAt)
	}
	if entry.Cost["gold"] != 40 {
		t.Fatalf("cost = %+v, want gold 40", entry.Cost)
	}
	stored, _ := repo.GetCity(context.Background(), "c1")
	if stored.Contents.ResourceStorage["gold"] != 60 {
		t.Fatalf("gold = %d, want 60", stored.Contents.ResourceStorage["gold"])
	}
}

func TestCancelResearch_退款并移除条目(t *testing.T) {
	repo := citymemory.NewCityRepo()
	_ = repo.InsertCity(context.Background(), newTestCity("c1", map[catalog.ResourceID]int{"gold": 100}))
	svc := NewResearchService(repo, newResearchCatalog(), newTestWorlds(), newTestLocker(repo, time.Now), time.Now, nopLogger{})

	entry, err := svc.StartResearch(context.Background(), "c1", "ironworking")
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}

	if err := svc.CancelResearch(context.Background(), "c1", entry.EntryID); err != nil {
		t.Fatalf("err = %v", err)
	}
	c, _ := repo.GetCity(context.Background(), "c1")
	if c.Contents.ResourceStorage["gold"] != 100 || len(c.Contents.ResearchQueue) != 0 {
		t.Fatalf("state = %+v, want refunded", c.Contents)
	}
}

func TestStartResearch_研究不存在返回目录缺失(t *testing.T) {
	repo := citymemory.NewCityRepo()
	svc := NewResearchService(repo, newResearchCatalog(), newTestWorlds(), newTestLocker(repo, time.Now), time.Now, nopLogger{})

	_, err := svc.StartResearch(context.Background(), "c1", "alchemy")

	if !errors.Is(err, ErrCatalogNotFound) {
		t.Fatalf("err = %v, want ErrCatalogNotFound", err)
	}
}
