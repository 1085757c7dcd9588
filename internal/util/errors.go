package util

import (
	"errors"
	"fmt"
)

// 错误分类，HandleError 按类别映射状态码
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateConflict  = errors.New("duplicate")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

var (
	ErrExamNotFound        = fmt.Errorf("%w: exam not found", ErrNotFound)
	ErrAttemptNotFound     = fmt.Errorf("%w: attempt not found", ErrNotFound)
	ErrSubmissionNotFound  = fmt.Errorf("%w: submission not found", ErrNotFound)
	ErrFileNotFound        = fmt.Errorf("%w: file not found", ErrNotFound)
	ErrExamInactive        = fmt.Errorf("%w: exam is not active", ErrForbidden)
	ErrNotExamOwner        = fmt.Errorf("%w: only the exam creator may do this", ErrForbidden)
	ErrAlreadySubmitted    = fmt.Errorf("%w: exam already submitted", ErrDuplicateConflict)
	ErrAlreadyCompleted    = fmt.Errorf("%w: exam attempt already completed", ErrDuplicateConflict)
	ErrDuplicateSubmission = fmt.Errorf("%w: answer already submitted for this exam", ErrDuplicateConflict)
	ErrInvalidReference    = fmt.Errorf("%w: invalid file reference", ErrValidation)
	ErrUnsupportedFileType = fmt.Errorf("%w: unsupported file type", ErrValidation)
	ErrFileTooLarge        = fmt.Errorf("%w: file too large", ErrValidation)
	ErrEmptyFile           = fmt.Errorf("%w: file is empty", ErrValidation)
)

// FieldError 字段级校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 携带字段错误的校验失败
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return fmt.Sprintf("%s: %s %s", ErrValidation.Error(), e.Fields[0].Field, e.Fields[0].Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil 没有字段错误时返回 nil
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
