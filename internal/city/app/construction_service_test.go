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

func newBuildingCatalog() *catalogmemory.CatalogRepo {
	cat := catalogmemory.NewCatalogRepo()
	cat.Buildings["sawmill"] = catalog.Building{
		ID:   "sawmill",
		Name: "伐木场",
		Type: catalog.BuildingTypeResource,
		Blueprint: catalog.BuildingBlueprint{
			BaseConstructionTime:    60,
			TimeMultiplierPerLevel:  1,
			Price:                   map[catalog.ResourceID]int{"wood": 50},
			PriceMultiplierPerLevel: 2,
		},
		ProducesResource: "wood",
	}
	return cat
}

func TestStartConstruction_按当前等级计价计时(t *testing.T) {
	repo := citymemory.NewCityRepo()
	c := newTestCity("c1", map[catalog.ResourceID]int{"wood": 500})
	c.Contents.Buildings["sawmill"] = 2
	_ = repo.InsertCity(context.Background(), c)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := NewConstructionService(repo, newBuildingCatalog(), newTestWorlds(), newTestLocker(repo, clock), clock, nopLogger{})

	entry, err := svc.StartConstruction(context.Background(), "c1", "sawmill")

	if err != nil {
		t.Fatalf("err = %v", err)
	}
	// 2 级升 3 级：价格 50 * 2^2 = 200，耗时 60 * (2+1) = 180 秒。
	if entry.Cost["wood"] != 200 {
		t.Fatalf("cost = %+v, want wood 200", entry.Cost)
	}
	if !entry.ReadyAt.Equal(now.Add(180 * time.Second)) {
		t.Fatalf("ready_at = %v, want +180s", entry.ReadyAt)
	}
	stored, _ := repo.GetCity(context.Background(), "c1")
	if stored.Contents.ResourceStorage["wood"] != 300 {
		t.Fatalf("wood = %d, want 300", stored.Contents.ResourceStorage["wood"])
	}
}

func TestStartConstruction_余额不足不产生部分效果(t *testing.T) {
	repo := citymemory.NewCityRepo()
	_ = repo.InsertCity(context.Background(), newTestCity("c1", map[catalog.ResourceID]int{"wood": 10}))
	svc := NewConstructionService(repo, newBuildingCatalog(), newTestWorlds(), newTestLocker(repo, time.Now), time.Now, nopLogger{})

	_, err := svc.StartConstruction(context.Background(), "c1", "sawmill")

	if !errors.Is(err, ErrInsufficientResources) {
		t.Fatalf("err = %v, want ErrInsufficientResources", err)
	}
	c, _ := repo.GetCity(context.Background(), "c1")
	if c.Contents.ResourceStorage["wood"] != 10 || len(c.Contents.ConstructionQueue) != 0 {
		t.Fatalf("state mutated: %+v", c.Contents)
	}
}

func TestCancelConstruction_退回入队价(t *testing.T) {
	repo := citymemory.NewCityRepo()
	_ = repo.InsertCity(context.Background(), newTestCity("c1", map[catalog.ResourceID]int{"wood": 100}))
	svc := NewConstructionService(repo, newBuildingCatalog(), newTestWorlds(), newTestLocker(repo, time.Now), time.Now, nopLogger{})

	entry, err := svc.StartConstruction(context.Background(), "c1", "sawmill")
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}

	if err := svc.CancelConstruction(context.Background(), "c1", entry.EntryID); err != nil {
		t.Fatalf("err = %v", err)
	}
	c, _ := repo.GetCity(context.Background(), "c1")
	if c.Contents.ResourceStorage["wood"] != 100 || len(c.Contents.ConstructionQueue) != 0 {
		t.Fatalf("state = %+v, want refunded and empty queue", c.Contents)
	}
}

func TestDestroyBuilding_移除建筑不退款(t *testing.T) {
	repo := citymemory.NewCityRepo()
	c := newTestCity("c1", map[catalog.ResourceID]int{"wood": 10})
	c.Contents.Buildings["sawmill"] = 3
	_ = repo.InsertCity(context.Background(), c)
	svc := NewConstructionService(repo, newBuildingCatalog(), newTestWorlds(), newTestLocker(repo, time.Now), time.Now, nopLogger{})

	if err := svc.DestroyBuilding(context.Background(), "c1", "sawmill"); err != nil {
		t.Fatalf("err = %v", err)
	}
	stored, _ := repo.GetCity(context.Background(), "c1")
	if _, ok := stored.Contents.Buildings["sawmill"]; ok {
		t.Fatal("building still present")
	}
	if stored.Contents.ResourceStorage["wood"] != 10 {
		t.Fatalf("wood = %d, want unchanged", stored.Contents.ResourceStorage["wood"])
	}
}

func TestDestroyBuilding_建筑不存在返回业务错误(t *testing.T) {
	repo := citymemory.NewCityRepo()
	_ = repo.InsertCity(context.Background(), newTestCity("c1", nil))
	svc := NewConstructionService(repo, newBuildingCatalog(), newTestWorlds(), newTestLocker(repo, time.Now), time.Now, nopLogger{})

	err := svc.DestroyBuilding(context.Background(), "c1", "sawmill")

	if !errors.Is(err, ErrBuildingNotPresent) {
		t.Fatalf("err = %v, want ErrBuildingNotPresent", err)
	}
}
