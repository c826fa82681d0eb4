package handler

import (
	nethttp "net/http"
	"testing"

	"StrategyGame/internal/city/app"
	"StrategyGame/internal/shared/transport"
	"StrategyGame/modules/kit/errx"
)

func TestToHTTP_业务拒绝映射4xx(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"资源不足", app.ErrInsufficientResources, nethttp.StatusBadRequest, transport.ResourceInsufficient},
		{"城市不存在", app.ErrCityNotFound, nethttp.StatusNotFound, transport.CityNotFound},
		{"目录缺失", app.ErrCatalogNotFound, nethttp.StatusNotFound, transport.CatalogNotFound},
		{"队列条目不存在", app.ErrQueueEntryNotFound, nethttp.StatusNotFound, transport.QueueEntryNotFound},
		{"建筑不存在", app.ErrBuildingNotPresent, nethttp.StatusNotFound, transport.BuildingNotPresent},
		{"参数错误", errx.ErrReqParamERR, nethttp.StatusBadRequest, transport.InvalidParam},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code, _ := toHTTP(tc.err)
			if status != tc.wantStatus || code != tc.wantCode {
				t.Fatalf("toHTTP(%v) = (%d, %d), want (%d, %d)", tc.err, status, code, tc.wantStatus, tc.wantCode)
			}
		})
	}
}

func TestToHTTP_锁竞争与依赖故障映射503(t *testing.T) {
	status, code, _ := toHTTP(errx.ErrLockTimeout.WithData("city_id", "c1"))
	if status != nethttp.StatusServiceUnavailable || code != transport.LockBusy {
		t.Fatalf("lock timeout = (%d, %d)", status, code)
	}

	status, code, _ = toHTTP(errx.ErrUnavailable)
	if status != nethttp.StatusServiceUnavailable || code != transport.StoreDown {
		t.Fatalf("unavailable = (%d, %d)", status, code)
	}
}

func TestToHTTP_未知错误兜底500(t *testing.T) {
	status, code, _ := toHTTP(nethttp.ErrBodyNotAllowed)
	if status != nethttp.StatusInternalServerError || code != transport.SystemError {
		t.Fatalf("fallback = (%d, %d)", status, code)
	}
}

func TestIsSysError_只认技术错误(t *testing.T) {
	if !isSysError(errx.ErrLockTimeout) || !isSysError(errx.ErrUnavailable) {
		t.Fatal("技术错误没有被识别")
	}
	if isSysError(app.ErrInsufficientResources) {
		t.Fatal("业务拒绝被当成了技术错误")
	}
}
