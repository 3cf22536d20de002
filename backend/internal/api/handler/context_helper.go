package handler

import (
	"github.com/gin-gonic/gin"

	"brigade/backend/internal/service"
	"brigade/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetOperator 还原请求方身份（employee_id 对管理员可为空）
func MustGetOperator(c *gin.Context) (service.Operator, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return service.Operator{}, false
	}
	role, ok := MustGetRole(c)
	if !ok {
		return service.Operator{}, false
	}
	employeeID, _ := c.Get("employee_id")
	s, _ := employeeID.(string)
	return service.Operator{UserID: userID, Role: role, EmployeeID: s}, true
}
