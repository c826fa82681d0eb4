package app

import "StrategyGame/modules/kit/errx"

// Code 表示应用层错误码（通常更贴近“业务语义/对外协议”）。
type Code = errx.Code

const (
	CodeInsufficientResources Code = "RESOURCE_INSUFFICIENT"
	CodeCityNotFound          Code = "CITY_NOT_FOUND"
	CodeCatalogNotFound       Code = "CATALOG_NOT_FOUND"
	CodeQueueEntryNotFound    Code = "QUEUE_ENTRY_NOT_FOUND"
	CodeBuildingNotPresent    Code = "BUILDING_NOT_PRESENT"
	// 以下复用 kit 的统一系统码（跨服务一致，便于告警/排障）。
	CodeLockTimeout    Code = errx.CodeLockTimeout
	CodeUnavailable    Code = errx.CodeUnavailable
	CodeInternalServer Code = errx.CodeInternal
)

// Error 复用通用错误模型：对外语义(code/msg)、上下文(data)、溯源链(cause)、系统错误一次栈(stack)。
type Error = errx.Error

// 常用错误定义（哨兵错误）：禁止直接修改其 data/cause（通过 WithData/WithCause 派生新对象）。
var (
	ErrInsufficientResources = errx.NewBiz(CodeInsufficientResources, "资源不足")
	ErrCityNotFound          = errx.NewBiz(CodeCityNotFound, "城市不存在")
	ErrCatalogNotFound       = errx.NewBiz(CodeCatalogNotFound, "目录条目不存在")
	ErrQueueEntryNotFound    = errx.NewBiz(CodeQueueEntryNotFound, "队列条目不存在")
	ErrBuildingNotPresent    = errx.NewBiz(CodeBuildingNotPresent, "城中没有该建筑")
	ErrLockTimeout           = errx.ErrLockTimeout
	ErrUnavailable           = errx.ErrUnavailable
	ErrInternalServer        = errx.ErrInternal
)
