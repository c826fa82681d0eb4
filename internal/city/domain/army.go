package domain

import catalog "StrategyGame/internal/catalog/domain"

// CityArmy 是军队里的一叠：同一兵种的单位数量。
// 不变式：任何修改之后，一个城市的军队中每个兵种至多出现一叠。
type CityArmy struct {
	UnitID catalog.UnitID
	Count  int
}

// MergeStack 把 count 个 unitID 并入 army，同兵种合并；返回新切片，不修改入参。
func MergeStack(army []CityArmy, unitID catalog.UnitID, count int) []CityArmy {
	if count <= 0 {
		return append([]CityArmy(nil), army...)
	}
	out := make([]CityArmy, 0, len(army)+1)
	merged := false
	for _, stack := range army {
		if stack.UnitID == unitID {
			stack.Count += count
			merged = true
		}
		out = append(out, stack)
	}
	if !merged {
		out = append(out, CityArmy{UnitID: unitID, Count: count})
	}
	return out
}

// RemoveUnits 从 army 中移除 count 个 unitID；数量归零的叠被整体移除。
// 返回新切片和是否移除成功：持有量不足时不做任何移除。
func RemoveUnits(army []CityArmy, unitID catalog.UnitID, count int) ([]CityArmy, bool) {
	if count <= 0 {
		return append([]CityArmy(nil), army...), false
	}
	have := 0
	for _, stack := range army {
		if stack.UnitID == unitID {
			have += stack.Count
		}
	}
	if have < count {
		return append([]CityArmy(nil), army...), false
	}
	out := make([]CityArmy, 0, len(army))
	for _, stack := range army {
		if stack.UnitID == unitID {
			stack.Count -= count
			count = 0
		}
		if stack.Count > 0 {
			out = append(out, stack)
		}
	}
	return out, true
}

// CompactArmy 去掉数量非正的叠并合并重复兵种，用于持久化前恢复不变式。
func CompactArmy(army []CityArmy) []CityArmy {
	out := make([]CityArmy, 0, len(army))
	index := make(map[catalog.UnitID]int, len(army))
	for _, stack := range army {
		if stack.Count <= 0 {
			continue
		}
		if i, ok := index[stack.UnitID]; ok {
			out[i].Count += stack.Count
			continue
		}
		index[stack.UnitID] = len(out)
		out = append(out, stack)
	}
	return out
}
