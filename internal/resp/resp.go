// Package resp 提供统一的HTTP响应结构和业务码定义。
package resp

import (
	"encoding/json"
	"net/http"
)

// Code 业务码类型，0 表示成功，非0为具体错误
type Code int

// 约定的业务码集合
const (
	CodeOK            Code = 0
	CodeInvalidParam  Code = 10001 // 请求参数错误
	CodeUnauthorized  Code = 10002 // 会话缺失或无效
	CodeNotFound      Code = 10003 // 资源不存在
	CodeTooManyReqs   Code = 10004 // 触发限流
	CodeTimeout       Code = 10005 // 请求超时
	CodeInternalError Code = 20001 // 服务内部错误
)

// Response 统一响应信封
// data 字段按需携带业务数据；request_id/trace_id 便于日志关联
type Response[T any] struct {
	Code      Code   `json:"code"`
	Message   string `json:"message"`
	Data      T      `json:"data,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	TraceID   string `json:"trace_id,omitempty"`
}

// HTTPStatusFromCode 将业务码映射为HTTP状态码
func HTTPStatusFromCode(code Code) int {
	switch code {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidParam:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeTooManyReqs:
		return http.StatusTooManyRequests
	case CodeTimeout:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON 写出统一格式的JSON响应
func WriteJSON(w http.ResponseWriter, status int, code Code, message string, data any, requestID, traceID string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// 序列化失败无法再向客户端报告，忽略写错误
	_ = json.NewEncoder(w).Encode(Response[any]{
		Code:      code,
		Message:   message,
		Data:      data,
		RequestID: requestID,
		TraceID:   traceID,
	})
}

// OK 写出成功响应
func OK(w http.ResponseWriter, data any, requestID, traceID string) {
	WriteJSON(w, http.StatusOK, CodeOK, "success", data, requestID, traceID)
}

// Error 写出错误响应
func Error(w http.ResponseWriter, status int, code Code, message, requestID, traceID string) {
	WriteJSON(w, status, code, message, nil, requestID, traceID)
}
