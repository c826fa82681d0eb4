package app

import (
	"context"
	"errors"
	"testing"
	"time"

	citymemory "StrategyGame/internal/city/infra/persistence/memory"
	"StrategyGame/modules/kit/errx"
)

func TestFoundSettlement_新城落在指定扇区且内容为空(t *testing.T) {
	repo := citymemory.NewCityRepo()
	svc := NewCityService(repo, newTestWorlds(), time.Now, nopLogger{})

	c, err := svc.FoundSettlement(context.Background(), FoundSettlementReq{
		PlayerID: "p1",
		Name:     "新都",
		WorldID:  "w1",
		SectorID: "s3",
		X:        12,
		Y:        7,
	})

	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if c.ID == "" {
		t.Fatal("city id is empty")
	}
	if c.SectorID != "s3" || c.X != 12 || c.Y != 7 {
		t.Fatalf("city = %+v", c)
	}
	if len(c.Contents.Armies) != 0 || len(c.Contents.ResourceStorage) != 0 || len(c.Contents.TrainingQueue) != 0 {
		t.Fatalf("contents = %+v, want empty", c.Contents)
	}
	stored, err := repo.GetCity(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("读回失败: %v", err)
	}
	if stored.Name != "新都" {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestFoundSettlement_名字为空是参数错误(t *testing.T) {
	svc := NewCityService(citymemory.NewCityRepo(), newTestWorlds(), time.Now, nopLogger{})

	_, err := svc.FoundSettlement(context.Background(), FoundSettlementReq{WorldID: "w1"})

	if !errors.Is(err, errx.ErrReqParamERR) {
		t.Fatalf("err = %v, want ErrReqParamERR", err)
	}
}

func TestFoundSettlement_世界不存在时拒绝落城(t *testing.T) {
	svc := NewCityService(citymemory.NewCityRepo(), newTestWorlds(), time.Now, nopLogger{})

	_, err := svc.FoundSettlement(context.Background(), FoundSettlementReq{Name: "孤城", WorldID: "ghost"})

	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
}

func TestGetCity_不存在返回业务错误(t *testing.T) {
	svc := NewCityService(citymemory.NewCityRepo(), newTestWorlds(), time.Now, nopLogger{})

	_, err := svc.GetCity(context.Background(), "ghost")

	if !errors.Is(err, ErrCityNotFound) {
		t.Fatalf("err = %v, want ErrCityNotFound", err)
	}
}
