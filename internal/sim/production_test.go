package sim

import (
	"testing"

	catalog "StrategyGame/internal/catalog/domain"
	citydomain "StrategyGame/internal/city/domain"
	world "StrategyGame/internal/world/domain"
)

func resourceBuildings() []catalog.Building {
	return []catalog.Building{
		{ID: "sawmill", Type: catalog.BuildingTypeResource, ProducesResource: "wood"},
		{ID: "quarry", Type: catalog.BuildingTypeResource, ProducesResource: "stone"},
	}
}

func TestCalculateCityProduction_产量按等级幂次增长(t *testing.T) {
	contents := citydomain.NewCityContents()
	contents.Buildings["sawmill"] = 3
	settings := world.WorldSettings{
		ResourceBaseProductionRate:     10,
		ResourceProductionGrowthFactor: 1.5,
	}

	got := CalculateCityProduction(resourceBuildings(), contents, settings)

	// 3 级：10 * 1.5^2 = 22.5，向下取整 22。
	if got["wood"] != 22 {
		t.Fatalf("wood = %d, want 22", got["wood"])
	}
	if _, ok := got["stone"]; ok {
		t.Fatalf("stone 没有建筑却有产量: %+v", got)
	}
}

func TestCalculateCityProduction_没有资源建筑返回空(t *testing.T) {
	got := CalculateCityProduction(resourceBuildings(), citydomain.NewCityContents(), world.WorldSettings{
		ResourceBaseProductionRate:     10,
		ResourceProductionGrowthFactor: 1.5,
	})

	if len(got) != 0 {
		t.Fatalf("got = %+v, want empty", got)
	}
}

func TestCalculateCityProduction_零级建筑不产出(t *testing.T) {
	contents := citydomain.NewCityContents()
	contents.Buildings["sawmill"] = 0
	contents.Buildings["quarry"] = 1

	got := CalculateCityProduction(resourceBuildings(), contents, world.WorldSettings{
		ResourceBaseProductionRate:     10,
		ResourceProductionGrowthFactor: 1.5,
	})

	if _, ok := got["wood"]; ok {
		t.Fatalf("零级建筑有产量: %+v", got)
	}
	if got["stone"] != 10 {
		t.Fatalf("stone = %d, want 10", got["stone"])
	}
}

func TestCalculateCityProduction_同资源多建筑产量累加(t *testing.T) {
	buildings := []catalog.Building{
		{ID: "sawmill", Type: catalog.BuildingTypeResource, ProducesResource: "wood"},
		{ID: "lumber_camp", Type: catalog.BuildingTypeResource, ProducesResource: "wood"},
	}
	contents := citydomain.NewCityContents()
	contents.Buildings["sawmill"] = 1
	contents.Buildings["lumber_camp"] = 2

	got := CalculateCityProduction(buildings, contents, world.WorldSettings{
		ResourceBaseProductionRate:     10,
		ResourceProductionGrowthFactor: 2,
	})

	// 1 级产 10，2 级产 20，合计 30。
	if got["wood"] != 30 {
		t.Fatalf("wood = %d, want 30", got["wood"])
	}
}
