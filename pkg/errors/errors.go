package errors

import (
	"errors"
	"fmt"
)

// ErrNotFound 记录不存在（可用 errors.Is 匹配所有 NotFoundError）
var ErrNotFound = errors.New("record not found")

// NotFoundError 携带资源名与标识的不存在错误
type NotFoundError struct {
	Resource string
	ID       any
}

// NotFound 创建 NotFoundError
func NotFound(resource string, id any) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with ID: %v", e.Resource, e.ID)
}

// Is 使 errors.Is(err, ErrNotFound) 成立
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
