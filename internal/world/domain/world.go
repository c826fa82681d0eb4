package domain

type WorldID string
type SectorID string

// WorldSettings 是单个世界的调速参数。
// 每轮 tick 开始时整体读取并按值传入各计算函数，禁止缓存为进程级全局状态。
type WorldSettings struct {
	Name        string
	Description string

	TickRateMillis int // 世界内资源 tick 间隔

	ResourceBaseProductionRate     int     // 资源建筑 1 级基础产量
	ResourceProductionGrowthFactor float64 // 每级产量指数增长因子

	// 速度均为耗时乘数：1.0 为基准，越小越快。
	UnitTrainingSpeed float64
	ConstructionSpeed float64
	ResearchSpeed     float64

	MaxSectorColumns int
	MaxSectorRows    int
	SectorSize       int
}

// Normalize 把未配置的速度类字段回填为基准值。
func (s *WorldSettings) Normalize() {
	if s.ResourceProductionGrowthFactor <= 0 {
		s.ResourceProductionGrowthFactor = 1
	}
	if s.UnitTrainingSpeed <= 0 {
		s.UnitTrainingSpeed = 1
	}
	if s.ConstructionSpeed <= 0 {
		s.ConstructionSpeed = 1
	}
	if s.ResearchSpeed <= 0 {
		s.ResearchSpeed = 1
	}
}

type World struct {
	ID       WorldID
	Name     string
	Settings WorldSettings
}
