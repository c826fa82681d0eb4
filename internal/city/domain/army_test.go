package domain

import (
	"testing"
)

func TestMergeStack_同兵种只保留一叠(t *testing.T) {
	army := []CityArmy{{UnitID: "spearman", Count: 3}}

	army = MergeStack(army, "spearman", 5)

	if len(army) != 1 {
		t.Fatalf("army = %+v, want single stack", army)
	}
	if army[0].Count != 8 {
		t.Fatalf("count = %d, want 8", army[0].Count)
	}
}

func TestMergeStack_新兵种追加新叠(t *testing.T) {
	army := []CityArmy{{UnitID: "spearman", Count: 3}}

	army = MergeStack(army, "archer", 2)

	if len(army) != 2 {
		t.Fatalf("army = %+v, want two stacks", army)
	}
	if army[1].UnitID != "archer" || army[1].Count != 2 {
		t.Fatalf("new stack = %+v", army[1])
	}
}

func TestMergeStack_非正数量不改变军队(t *testing.T) {
	army := []CityArmy{{UnitID: "spearman", Count: 3}}

	got := MergeStack(army, "spearman", 0)

	if len(got) != 1 || got[0].Count != 3 {
		t.Fatalf("army = %+v, want unchanged", got)
	}
}

func TestRemoveUnits_数量足够时扣减(t *testing.T) {
	army := []CityArmy{{UnitID: "spearman", Count: 5}, {UnitID: "archer", Count: 2}}

	got, ok := RemoveUnits(army, "spearman", 3)

	if !ok {
		t.Fatal("ok = false, want true")
	}
	if len(got) != 2 || got[0].Count != 2 {
		t.Fatalf("army = %+v", got)
	}
	// 原切片不受影响。
	if army[0].Count != 5 {
		t.Fatalf("source mutated: %+v", army)
	}
}

func TestRemoveUnits_扣空后整叠移除(t *testing.T) {
	army := []CityArmy{{UnitID: "spearman", Count: 3}}

	got, ok := RemoveUnits(army, "spearman", 3)

	if !ok {
		t.Fatal("ok = false, want true")
	}
	if len(got) != 0 {
		t.Fatalf("army = %+v, want empty", got)
	}
}

func TestRemoveUnits_数量不足时不做部分扣减(t *testing.T) {
	army := []CityArmy{{UnitID: "spearman", Count: 2}}

	got, ok := RemoveUnits(army, "spearman", 3)

	if ok {
		t.Fatal("ok = true, want false")
	}
	if len(got) != 1 || got[0].Count != 2 {
		t.Fatalf("army = %+v, want unchanged", got)
	}
}

func TestCompactArmy_清理空叠(t *testing.T) {
	army := []CityArmy{
		{UnitID: "spearman", Count: 0},
		{UnitID: "archer", Count: 2},
		{UnitID: "cavalry", Count: -1},
	}

	got := CompactArmy(army)

	if len(got) != 1 || got[0].UnitID != "archer" {
		t.Fatalf("army = %+v, want archer only", got)
	}
}
