package activity

import (
	"errors"
	"fmt"
)

const (
	msgEmptyBody     = "请求数据为空"
	msgMalformedBody = "请求数据格式错误"
	msgMissingField  = "缺少必要字段: "
	msgSyncFailed    = "同步失败: "
)

// ValidationError is a client mistake in a sync request.
type ValidationError struct {
	// Field is the offending payload field, empty for body-level problems.
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

// ErrEmptyBody is returned for an empty or null sync body.
var ErrEmptyBody = &ValidationError{Message: msgEmptyBody}

func malformedBody(err error) *ValidationError {
	return &ValidationError{Message: msgMalformedBody, Err: err}
}

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: msgMissingField + field}
}

// ProcessingError is an unexpected failure while reading or storing a
// record. The record is never stored when one is returned.
type ProcessingError struct {
	Err error
}

func (e *ProcessingError) Error() string { return msgSyncFailed + e.Err.Error() }

func (e *ProcessingError) Unwrap() error { return e.Err }

// ErrStoreFull is returned by a bounded store that has no room left.
var ErrStoreFull = errors.New("synced activity store is full")

func storeFailure(err error) *ProcessingError {
	return &ProcessingError{Err: fmt.Errorf("store activity: %w", err)}
}
