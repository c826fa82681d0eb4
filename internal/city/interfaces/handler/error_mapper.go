package handler

import (
	"errors"
	nethttp "net/http"

	"StrategyGame/internal/city/app"
	"StrategyGame/internal/shared/transport"
	"StrategyGame/modules/kit/errx"
)

// toHTTP 把应用层错误映射为 HTTP 状态码和客户端业务码。
// 业务拒绝类给 4xx，并发/依赖类给 503，兜底 500。
func toHTTP(err error) (status int, code int, msg string) {
	switch {
	case errors.Is(err, app.ErrInsufficientResources):
		return nethttp.StatusBadRequest, transport.ResourceInsufficient, "资源不足"
	case errors.Is(err, app.ErrCityNotFound):
		return nethttp.StatusNotFound, transport.CityNotFound, "城市不存在"
	case errors.Is(err, app.ErrCatalogNotFound):
		return nethttp.StatusNotFound, transport.CatalogNotFound, "目录条目不存在"
	case errors.Is(err, app.ErrQueueEntryNotFound):
		return nethttp.StatusNotFound, transport.QueueEntryNotFound, "队列条目不存在"
	case errors.Is(err, app.ErrBuildingNotPresent):
		return nethttp.StatusNotFound, transport.BuildingNotPresent, "城中没有该建筑"
	case errors.Is(err, errx.ErrReqParamERR):
		return nethttp.StatusBadRequest, transport.InvalidParam, "参数有误"
	case errors.Is(err, errx.ErrLockTimeout):
		return nethttp.StatusServiceUnavailable, transport.LockBusy, "城市繁忙，请稍后重试"
	case errors.Is(err, errx.ErrUnavailable), errors.Is(err, errx.ErrTimeout):
		return nethttp.StatusServiceUnavailable, transport.StoreDown, "服务暂不可用"
	default:
		return nethttp.StatusInternalServerError, transport.SystemError, "服务器内部错误"
	}
}

// isSysError 区分需要走技术错误上报的错误。
func isSysError(err error) bool {
	return errors.Is(err, errx.ErrUnavailable) ||
		errors.Is(err, errx.ErrTimeout) ||
		errors.Is(err, errx.ErrLockTimeout) ||
		errors.Is(err, errx.ErrInternal)
}
