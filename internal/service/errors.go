package service

import "errors"

// 业务错误哨兵值
// handler 层通过 errors.Is 映射为响应状态码，不在服务层做任何重试或恢复
var (
	// ErrNotFound 目标资源不存在（用户/动态/评论/论坛）
	ErrNotFound = errors.New("resource not found")
	// ErrForbidden 无权操作（删除他人的动态或评论）
	ErrForbidden = errors.New("permission denied")
	// ErrInvalidArgument 非法参数（空内容、超长、自己加自己好友等）
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidCredentials 登录凭证错误
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrConflict 唯一约束冲突（用户名或邮箱已被占用）
	ErrConflict = errors.New("already exists")
)
