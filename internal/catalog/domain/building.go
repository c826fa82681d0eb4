package domain

type BuildingID string
type ResourceID string
type ResearchID string

type BuildingType int8

const (
	BuildingTypeGeneric BuildingType = iota
	BuildingTypeResource              // 产出资源的建筑
	BuildingTypeMilitary              // 训练单位的建筑
)

// BuildingBlueprint 描述建造耗时与造价随等级的变化。
// 实际耗时 = BaseConstructionTime * (当前等级+1) * TimeMultiplierPerLevel * 世界建造速度。
type BuildingBlueprint struct {
	BaseConstructionTime    float64 // 秒
	TimeMultiplierPerLevel  float64
	Price                   map[ResourceID]int
	PriceMultiplierPerLevel float64
}

// PriceAtLevel 返回从 level 升到 level+1 的造价（按等级做幂次放大，向下取整）。
func (b BuildingBlueprint) PriceAtLevel(level int) map[ResourceID]int {
	mul := 1.0
	factor := b.PriceMultiplierPerLevel
	if factor <= 0 {
		factor = 1
	}
	for i := 0; i < level; i++ {
		mul *= factor
	}
	out := make(map[ResourceID]int, len(b.Price))
	for id, amount := range b.Price {
		out[id] = int(float64(amount) * mul)
	}
	return out
}

type Building struct {
	ID        BuildingID
	Name      string
	Type      BuildingType
	Blueprint BuildingBlueprint
	FactionID FactionID
	// ProducesResource 仅对 BuildingTypeResource 有意义：该建筑产出哪种资源。
	ProducesResource ResourceID
}

type Resource struct {
	ID   ResourceID
	Name string
}

type Research struct {
	ID               ResearchID
	Name             string
	Price            map[ResourceID]int
	BaseResearchTime float64 // 秒
}

type Faction struct {
	ID   FactionID
	Name string
}
