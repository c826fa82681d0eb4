package errx

import "errors"

// CodeOf 从错误链里提取第一个 *Error 的错误码文本；链上没有则返回空串。
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.CodeText()
	}
	return ""
}
