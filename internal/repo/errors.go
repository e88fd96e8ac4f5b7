package repo

import "errors"

// 仓储层错误定义
var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
