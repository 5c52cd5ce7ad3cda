package errors

import (
	"errors"
	"fmt"
)

// ErrorType은 에러의 종류를 나타냅니다
type ErrorType string

const (
	// ErrorTypeValidation은 입력값 검증 실패를 나타냅니다 (상태 변경 없음, 재입력으로 복구 가능)
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypePrecondition은 작업 전제조건 미충족을 나타냅니다 (쓰기 작업 전에 중단됨)
	ErrorTypePrecondition ErrorType = "PRECONDITION"

	// ErrorTypeMutation은 백업 이후의 쓰기/활성화 실패를 나타냅니다 (롤백 경로로 전파됨)
	ErrorTypeMutation ErrorType = "MUTATION"

	// ErrorTypeIrrecoverable은 롤백 자체의 실패를 나타냅니다 (유일한 종결 케이스)
	ErrorTypeIrrecoverable ErrorType = "IRRECOVERABLE"

	// ErrorTypeSystem은 시스템 레벨 에러를 나타냅니다
	ErrorTypeSystem ErrorType = "SYSTEM"

	// ErrorTypeTimeout은 타임아웃 에러를 나타냅니다
	ErrorTypeTimeout ErrorType = "TIMEOUT"
)

// DomainError는 도메인 레벨의 에러를 나타냅니다
type DomainError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error는 error 인터페이스를 구현합니다
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap은 내부 에러를 반환합니다
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is는 에러 비교를 위한 메서드입니다
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// 생성자 함수들

// NewValidationError는 유효성 검증 에러를 생성합니다
func NewValidationError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeValidation,
		Message: message,
		Cause:   cause,
	}
}

// NewPreconditionError는 전제조건 에러를 생성합니다
func NewPreconditionError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypePrecondition,
		Message: message,
		Cause:   cause,
	}
}

// NewMutationError는 쓰기/활성화 실패 에러를 생성합니다
func NewMutationError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeMutation,
		Message: message,
		Cause:   cause,
	}
}

// NewIrrecoverableError는 복구 불가능 에러를 생성합니다
func NewIrrecoverableError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeIrrecoverable,
		Message: message,
		Cause:   cause,
	}
}

// NewSystemError는 시스템 에러를 생성합니다
func NewSystemError(message string, cause error) *DomainError {
	return &DomainError{
		Type:    ErrorTypeSystem,
		Message: message,
		Cause:   cause,
	}
}

// NewTimeoutError는 타임아웃 에러를 생성합니다
func NewTimeoutError(message string) *DomainError {
	return &DomainError{
		Type:    ErrorTypeTimeout,
		Message: message,
	}
}

// 에러 타입 확인 헬퍼 함수들

// IsValidationError는 유효성 검증 에러인지 확인합니다
func IsValidationError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeValidation
	}
	return false
}

// IsPreconditionError는 전제조건 에러인지 확인합니다
func IsPreconditionError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypePrecondition
	}
	return false
}

// IsMutationError는 쓰기/활성화 실패 에러인지 확인합니다
func IsMutationError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeMutation
	}
	return false
}

// IsIrrecoverableError는 복구 불가능 에러인지 확인합니다
func IsIrrecoverableError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeIrrecoverable
	}
	return false
}

// IsSystemError는 시스템 에러인지 확인합니다
func IsSystemError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeSystem
	}
	return false
}

// IsTimeoutError는 타임아웃 에러인지 확인합니다
func IsTimeoutError(err error) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == ErrorTypeTimeout
	}
	return false
}
