package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 客户端可见业务码。0 成功；1~499 业务拒绝；>=500 技术错误。
const (
	OK           = 0
	InvalidParam = 1

	ResourceInsufficient = 101
	CityNotFound         = 102
	CatalogNotFound      = 103
	QueueEntryNotFound   = 104
	BuildingNotPresent   = 105
	Unauthorized         = 106

	SystemError = 500
	LockBusy    = 503
	StoreDown   = 504
)
