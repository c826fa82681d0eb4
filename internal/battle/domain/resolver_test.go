package domain

import (
	"reflect"
	"testing"
	"time"

	catalog "StrategyGame/internal/catalog/domain"
	city "StrategyGame/internal/city/domain"
)

func testUnits() map[catalog.UnitID]catalog.MilitaryUnit {
	return map[catalog.UnitID]catalog.MilitaryUnit{
		"rock": {
			ID:     "rock",
			Name:   "盾兵",
			Damage: catalog.Damage{Type: catalog.DamageRock, Amount: 5},
		},
		"scissors": {
			ID:     "scissors",
			Name:   "刀兵",
			Damage: catalog.Damage{Type: catalog.DamageScissors, Amount: 5},
		},
		"paper": {
			ID:     "paper",
			Name:   "弓兵",
			Damage: catalog.Damage{Type: catalog.DamagePaper, Amount: 5},
		},
	}
}

func TestResolve_四刀兵进攻十盾兵_防守方胜且剩八(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	attacker := []city.CityArmy{{UnitID: "scissors", Count: 4}}
	defender := []city.CityArmy{{UnitID: "rock", Count: 10}}

	res := Resolve(attacker, defender, testUnits(), now)

	if res.Winner != WinnerDefender {
		t.Fatalf("winner = %s, want %s", res.Winner, WinnerDefender)
	}
	if len(res.Survivors) != 1 || res.Survivors[0].UnitID != "rock" || res.Survivors[0].Count != 8 {
		t.Fatalf("survivors = %+v, want 8 rock", res.Survivors)
	}
	if res.Rounds != 1 {
		t.Fatalf("rounds = %d, want 1", res.Rounds)
	}
	if !res.ResolvedAt.Equal(now) {
		t.Fatalf("resolved_at = %v, want %v", res.ResolvedAt, now)
	}
}

func TestResolve_相同输入必然得到相同结果(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	attacker := []city.CityArmy{{UnitID: "scissors", Count: 7}, {UnitID: "paper", Count: 3}}
	defender := []city.CityArmy{{UnitID: "rock", Count: 6}, {UnitID: "scissors", Count: 2}}

	first := Resolve(attacker, defender, testUnits(), now)
	second := Resolve(attacker, defender, testUnits(), now)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestResolve_同归于尽判防守方胜且无幸存者(t *testing.T) {
	now := time.Now()
	// 同类型同伤害各一单位：轮初互相打满一单位战损，轮末同时清零。
	attacker := []city.CityArmy{{UnitID: "rock", Count: 1}}
	defender := []city.CityArmy{{UnitID: "rock", Count: 1}}

	res := Resolve(attacker, defender, testUnits(), now)

	if res.Winner != WinnerDefender {
		t.Fatalf("winner = %s, want %s", res.Winner, WinnerDefender)
	}
	if len(res.Survivors) != 0 {
		t.Fatalf("survivors = %+v, want none", res.Survivors)
	}
}

func TestResolve_进攻方占优时获胜(t *testing.T) {
	now := time.Now()
	attacker := []city.CityArmy{{UnitID: "rock", Count: 10}}
	defender := []city.CityArmy{{UnitID: "scissors", Count: 4}}

	res := Resolve(attacker, defender, testUnits(), now)

	if res.Winner != WinnerAttacker {
		t.Fatalf("winner = %s, want %s", res.Winner, WinnerAttacker)
	}
	if len(res.Survivors) != 1 || res.Survivors[0].Count != 8 {
		t.Fatalf("survivors = %+v, want 8 rock", res.Survivors)
	}
}

func TestResolve_目录缺失的兵种叠被过滤(t *testing.T) {
	now := time.Now()
	attacker := []city.CityArmy{{UnitID: "ghost", Count: 100}, {UnitID: "scissors", Count: 4}}
	defender := []city.CityArmy{{UnitID: "rock", Count: 10}}

	res := Resolve(attacker, defender, testUnits(), now)

	// 幽灵兵种不参战：和四刀兵进攻十盾兵结果一致。
	if res.Winner != WinnerDefender {
		t.Fatalf("winner = %s, want %s", res.Winner, WinnerDefender)
	}
	if len(res.Survivors) != 1 || res.Survivors[0].Count != 8 {
		t.Fatalf("survivors = %+v, want 8 rock", res.Survivors)
	}
}

func TestResolve_双方皆空判防守方胜(t *testing.T) {
	res := Resolve(nil, nil, testUnits(), time.Now())

	if res.Winner != WinnerDefender {
		t.Fatalf("winner = %s, want %s", res.Winner, WinnerDefender)
	}
	if len(res.Survivors) != 0 || res.Rounds != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRemainingUnits_按幸存叠展开(t *testing.T) {
	now := time.Now()
	attacker := []city.CityArmy{{UnitID: "scissors", Count: 4}}
	defender := []city.CityArmy{{UnitID: "rock", Count: 10}}

	res := Resolve(attacker, defender, testUnits(), now)

	if len(res.RemainingUnits) != 1 {
		t.Fatalf("remaining units = %+v, want 1", res.RemainingUnits)
	}
	got := res.RemainingUnits[0]
	if got.UnitID != "rock" || got.UnitName != "盾兵" || got.Remaining != 8 {
		t.Fatalf("remaining unit = %+v", got)
	}
}
