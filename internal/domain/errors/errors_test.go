package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	t.Run("원인이 있는 에러", func(t *testing.T) {
		err := NewMutationError("아티팩트 교체 실패", errors.New("permission denied"))
		assert.Equal(t, "[MUTATION] 아티팩트 교체 실패: permission denied", err.Error())
	})

	t.Run("원인이 없는 에러", func(t *testing.T) {
		err := NewTimeoutError("입력 대기 시간 초과")
		assert.Equal(t, "[TIMEOUT] 입력 대기 시간 초과", err.Error())
	})
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewSystemError("백업 저장 실패", cause)

	assert.ErrorIs(t, err, cause)
}

func TestErrorTypeMatchers(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		matcher func(error) bool
		want    bool
	}{
		{name: "검증 에러 일치", err: NewValidationError("m", nil), matcher: IsValidationError, want: true},
		{name: "전제조건 에러 일치", err: NewPreconditionError("m", nil), matcher: IsPreconditionError, want: true},
		{name: "변경 에러 일치", err: NewMutationError("m", nil), matcher: IsMutationError, want: true},
		{name: "복구 불가 에러 일치", err: NewIrrecoverableError("m", nil), matcher: IsIrrecoverableError, want: true},
		{name: "시스템 에러 일치", err: NewSystemError("m", nil), matcher: IsSystemError, want: true},
		{name: "타임아웃 에러 일치", err: NewTimeoutError("m"), matcher: IsTimeoutError, want: true},
		{name: "타입 불일치", err: NewValidationError("m", nil), matcher: IsMutationError, want: false},
		{name: "일반 에러는 불일치", err: errors.New("plain"), matcher: IsValidationError, want: false},
		{name: "nil은 불일치", err: nil, matcher: IsValidationError, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.matcher(tt.err))
		})
	}
}

func TestErrorTypeMatchers_WrappedError(t *testing.T) {
	// 래핑된 도메인 에러도 타입 판정이 유지되어야 함
	inner := NewIrrecoverableError("롤백 복원 실패", nil)
	wrapped := fmt.Errorf("apply: %w", inner)

	assert.True(t, IsIrrecoverableError(wrapped))
	assert.False(t, IsMutationError(wrapped))
}
