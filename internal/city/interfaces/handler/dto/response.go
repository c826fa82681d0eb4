package dto

// Response 是统一响应包装：code 为 0 表示成功。
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

func Success(code int, data any) Response {
	return Response{Code: code, Data: data}
}

func Error(code int, msg string) Response {
	return Response{Code: code, Msg: msg}
}
