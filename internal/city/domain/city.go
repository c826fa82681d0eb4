package domain

import (
	"time"

	catalog "StrategyGame/internal/catalog/domain"
	world "StrategyGame/internal/world/domain"
)

type CityID string

// City 是模拟核心的互斥单元：任何对资源/军队/队列的修改都必须持有该城市的租约锁。
type City struct {
	ID       CityID
	PlayerID string // 为空表示无主定居点
	Name     string
	WorldID  world.WorldID
	SectorID world.SectorID
	X        int
	Y        int
	FactionID catalog.FactionID

	Contents CityContents

	// 租约锁字段：仅当 LockExpiration 在未来时锁有效，与 LockToken 一起被条件更新原子设置。
	LockToken      string
	LockExpiration time.Time
}

// CityContents 由所属城市独占持有。
type CityContents struct {
	Armies          []CityArmy
	ResourceStorage map[catalog.ResourceID]int
	Buildings       map[catalog.BuildingID]int
	Researches      map[catalog.ResearchID]int

	TrainingQueue     []QueueEntry
	ConstructionQueue []QueueEntry
	ResearchQueue     []QueueEntry
}

func NewCityContents() CityContents {
	return CityContents{
		ResourceStorage: make(map[catalog.ResourceID]int),
		Buildings:       make(map[catalog.BuildingID]int),
		Researches:      make(map[catalog.ResearchID]int),
	}
}

func (c CityContents) BuildingLevel(id catalog.BuildingID) int {
	return c.Buildings[id]
}

func (c CityContents) ResearchLevel(id catalog.ResearchID) int {
	return c.Researches[id]
}

// CreditResources 入账：不存在则插入，存在则累加。永不失败。
func (c *CityContents) CreditResources(amounts map[catalog.ResourceID]int) {
	if c.ResourceStorage == nil {
		c.ResourceStorage = make(map[catalog.ResourceID]int, len(amounts))
	}
	for id, amount := range amounts {
		c.ResourceStorage[id] += amount
	}
}

// DebitResources 出账。调用方必须先校验余额充足（锁内校验才是权威的）。
func (c *CityContents) DebitResources(amounts map[catalog.ResourceID]int) {
	for id, amount := range amounts {
		c.ResourceStorage[id] -= amount
	}
}

// Clone 深拷贝，用于模拟文档存储的读写快照语义。
func (c CityContents) Clone() CityContents {
	out := CityContents{
		Armies:            append([]CityArmy(nil), c.Armies...),
		ResourceStorage:   cloneAmountMap(c.ResourceStorage),
		Buildings:         cloneLevelMap(c.Buildings),
		Researches:        cloneResearchMap(c.Researches),
		TrainingQueue:     append([]QueueEntry(nil), c.TrainingQueue...),
		ConstructionQueue: append([]QueueEntry(nil), c.ConstructionQueue...),
		ResearchQueue:     append([]QueueEntry(nil), c.ResearchQueue...),
	}
	return out
}

func cloneAmountMap(in map[catalog.ResourceID]int) map[catalog.ResourceID]int {
	out := make(map[catalog.ResourceID]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneLevelMap(in map[catalog.BuildingID]int) map[catalog.BuildingID]int {
	out := make(map[catalog.BuildingID]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneResearchMap(in map[catalog.ResearchID]int) map[catalog.ResearchID]int {
	out := make(map[catalog.ResearchID]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
