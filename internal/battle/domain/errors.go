package domain

import "errors"

// ErrForceNotFound 表示部队记录不存在（通常是已被其他扫表协程认领）。
var ErrForceNotFound = errors.New("attack force not found")
