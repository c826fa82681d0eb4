package domain

type UnitID string
type FactionID string

// DamageType 是三向克制伤害类型：Rock 克 Scissors，Scissors 克 Paper，Paper 克 Rock。
type DamageType int8

const (
	DamageRock DamageType = iota
	DamagePaper
	DamageScissors
)

// Beats 返回 t 是否严格克制 other。
func (t DamageType) Beats(other DamageType) bool {
	switch t {
	case DamageRock:
		return other == DamageScissors
	case DamageScissors:
		return other == DamagePaper
	case DamagePaper:
		return other == DamageRock
	}
	return false
}

type Damage struct {
	Type   DamageType
	Amount int // 单个单位每轮造成的伤害
}

// MilitaryUnit 是兵种目录项，只由管理端维护，模拟核心只读。
type MilitaryUnit struct {
	ID            UnitID
	Name          string
	Population    int
	Price         map[ResourceID]int // 单个单位训练价格
	HP            int
	Damage        Damage
	MovementSpeed int // 每 tick 移动格数
	ProducedAt    BuildingID
	TrainingTime  int // 单位训练基础耗时（秒）
	FactionID     FactionID
}
