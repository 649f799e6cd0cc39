package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误码约定：1xxxx 请求错误，2xxxx 业务错误，5xxxx 服务端错误
const (
	CodeInvalidParams   = 10001
	CodeRateLimited     = 10004
	CodeBodyTooLarge    = 10005
	CodeSurveyNotFound  = 20001
	CodeInternalError   = 50000
	CodeServiceDegraded = 50300
)

// ErrorResponse 统一错误响应结构
type ErrorResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError 字段级校验错误
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ── 成功响应（直接输出资源本身，不做包装）──

// OK 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204，响应体为空
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// ValidationError 400，附带字段级错误列表
func ValidationError(c *gin.Context, fields []FieldError) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    CodeInvalidParams,
		Message: "Validation failed",
		Errors:  fields,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeInvalidParams, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternalError, "Internal server error")
}

// BodyTooLarge 413
func BodyTooLarge(c *gin.Context) {
	Error(c, http.StatusRequestEntityTooLarge, CodeBodyTooLarge, "Request body too large")
}
