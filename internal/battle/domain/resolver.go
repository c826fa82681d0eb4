package domain

import (
	"time"

	catalog "StrategyGame/internal/catalog/domain"
	city "StrategyGame/internal/city/domain"
)

type Winner string

const (
	WinnerAttacker Winner = "Attacker"
	WinnerDefender Winner = "Defender"
)

type RemainingUnit struct {
	UnitID    catalog.UnitID
	UnitName  string
	Remaining int
}

type BattleResult struct {
	Winner         Winner
	Survivors      []city.CityArmy
	RemainingUnits []RemainingUnit
	ResolvedAt     time.Time
	Rounds         int
}

// maxRounds 防御目录数据异常（例如全员零伤害）导致的死循环。
const maxRounds = 1000

// Resolve 对两支军队快照做多轮三向克制结算。
//
// 纯函数：无随机性，相同输入必然得到相同结果（可重放、可审计）。
// 每轮内双方同时结算：伤害按轮初数量计算，轮末统一扣减。
// 双方同轮打空时判防守方获胜（无幸存者）；一轮内双方均无战损视为攻势瓦解，同样判防守方胜。
func Resolve(attacker, defender []city.CityArmy, units map[catalog.UnitID]catalog.MilitaryUnit, now time.Time) BattleResult {
	atk := filterKnown(attacker, units)
	def := filterKnown(defender, units)

	rounds := 0
	for len(atk) > 0 && len(def) > 0 && rounds < maxRounds {
		rounds++

		atkLosses := roundLosses(def, atk, units)
		defLosses := roundLosses(atk, def, units)

		if !anyLoss(atkLosses) && !anyLoss(defLosses) {
			// 僵局：双方都打不动对方，防守成立。
			return result(WinnerDefender, def, units, now, rounds)
		}

		atk = applyLosses(atk, atkLosses)
		def = applyLosses(def, defLosses)
	}

	if len(def) > 0 {
		return result(WinnerDefender, def, units, now, rounds)
	}
	if len(atk) > 0 {
		return result(WinnerAttacker, atk, units, now, rounds)
	}
	// 同归于尽：防守方获胜，无幸存者。
	return result(WinnerDefender, nil, units, now, rounds)
}

// roundLosses 计算 targets 每叠在本轮中被 sources 全部叠合计打掉的单位数。
// 伤害全部基于轮初数量；每个 (source, target) 配对各自向下取整后累加。
func roundLosses(sources, targets []city.CityArmy, units map[catalog.UnitID]catalog.MilitaryUnit) []int {
	losses := make([]int, len(targets))
	for _, src := range sources {
		srcUnit := units[src.UnitID]
		for i, tgt := range targets {
			tgtUnit := units[tgt.UnitID]
			if tgtUnit.Damage.Amount <= 0 {
				// 零伤单位不提供战损换算基准，整叠直接被清掉。
				losses[i] = tgt.Count
				continue
			}
			dmg := pairDamage(srcUnit.Damage, tgtUnit.Damage.Type, src.Count)
			losses[i] += int(dmg / float64(tgtUnit.Damage.Amount))
		}
	}
	for i, tgt := range targets {
		if losses[i] > tgt.Count {
			losses[i] = tgt.Count
		}
	}
	return losses
}

// pairDamage 返回一叠 source 对某个目标伤害类型的合计伤害。
// 同类型 1 倍，克制 2 倍，被克制 0.5 倍。
func pairDamage(src catalog.Damage, targetType catalog.DamageType, count int) float64 {
	base := float64(src.Amount) * float64(count)
	switch {
	case src.Type == targetType:
		return base
	case src.Type.Beats(targetType):
		return base * 2
	default:
		return base * 0.5
	}
}

func anyLoss(losses []int) bool {
	for _, l := range losses {
		if l > 0 {
			return true
		}
	}
	return false
}

func applyLosses(army []city.CityArmy, losses []int) []city.CityArmy {
	out := make([]city.CityArmy, 0, len(army))
	for i, stack := range army {
		stack.Count -= losses[i]
		if stack.Count > 0 {
			out = append(out, stack)
		}
	}
	return out
}

// filterKnown 丢弃目录中不存在的兵种叠与空叠，目录不一致由调用方记录告警。
func filterKnown(army []city.CityArmy, units map[catalog.UnitID]catalog.MilitaryUnit) []city.CityArmy {
	out := make([]city.CityArmy, 0, len(army))
	for _, stack := range army {
		if stack.Count <= 0 {
			continue
		}
		if _, ok := units[stack.UnitID]; !ok {
			continue
		}
		out = append(out, stack)
	}
	return out
}

func result(w Winner, survivors []city.CityArmy, units map[catalog.UnitID]catalog.MilitaryUnit, now time.Time, rounds int) BattleResult {
	res := BattleResult{
		Winner:     w,
		Survivors:  append([]city.CityArmy(nil), survivors...),
		ResolvedAt: now,
		Rounds:     rounds,
	}
	res.RemainingUnits = make([]RemainingUnit, 0, len(survivors))
	for _, stack := range survivors {
		res.RemainingUnits = append(res.RemainingUnits, RemainingUnit{
			UnitID:    stack.UnitID,
			UnitName:  units[stack.UnitID].Name,
			Remaining: stack.Count,
		})
	}
	return res
}
