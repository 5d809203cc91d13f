package errors

import "errors"

// ErrStaleState 条件更新未命中：记录状态已被其他请求修改
var ErrStaleState = errors.New("Record state has changed, refresh and retry")

// ErrTokenConsumed 邀请令牌不存在或已被使用（两种情况对外不可区分）
var ErrTokenConsumed = errors.New("invitation token not found or already used")
