package handler

import (
	"errors"
	"strconv"

	"thoughts-system/internal/service"
	"thoughts-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// handleServiceError 将业务错误映射为统一响应
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrConflict):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidArgument):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, "internal error")
	}
}

// parseIDParam 解析路径中的ID参数，返回0表示非法
func parseIDParam(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
