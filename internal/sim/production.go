package sim

import (
	"math"

	catalog "StrategyGame/internal/catalog/domain"
	citydomain "StrategyGame/internal/city/domain"
	world "StrategyGame/internal/world/domain"
)

// CalculateCityProduction 计算一次 tick 内城市的资源产量。
// 纯函数：对城内每座等级 L>=1 的资源建筑，产量 = int(基础产量 * 增长因子^(L-1))，
// 按产出资源聚合；没有资源建筑的城市返回空 map。
func CalculateCityProduction(resourceBuildings []catalog.Building, contents citydomain.CityContents, settings world.WorldSettings) map[catalog.ResourceID]int {
	out := make(map[catalog.ResourceID]int)
	base := float64(settings.ResourceBaseProductionRate)
	growth := settings.ResourceProductionGrowthFactor
	if growth <= 0 {
		growth = 1
	}
	for _, b := range resourceBuildings {
		level := contents.BuildingLevel(b.ID)
		if level < 1 || b.ProducesResource == "" {
			continue
		}
		amount := int(base * math.Pow(growth, float64(level-1)))
		if amount <= 0 {
			continue
		}
		out[b.ProducesResource] += amount
	}
	return out
}
