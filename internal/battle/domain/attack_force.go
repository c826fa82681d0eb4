package domain

import (
	"time"

	city "StrategyGame/internal/city/domain"
)

type ForceID string

// AttackForce 是已脱离出发城市、在途或已到达的进攻部队。
// 由外部（出兵流程）创建；战斗扫描认领后即被消费，不会二次结算。
type AttackForce struct {
	ID                ForceID
	OriginCityID      city.CityID
	DestinationCityID city.CityID
	Units             []city.CityArmy
	ArrivesAt         time.Time
}

// Arrived 返回该部队是否已到达。
func (f AttackForce) Arrived(now time.Time) bool {
	return !f.ArrivesAt.After(now)
}
