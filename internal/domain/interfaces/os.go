package interfaces

import (
	"context"
	"os"
	"time"
)

// CommandExecutor는 시스템 명령을 실행하는 인터페이스입니다
type CommandExecutor interface {
	// Execute는 명령을 실행하고 결과를 반환합니다
	Execute(ctx context.Context, command string, args ...string) ([]byte, error)

	// ExecuteWithTimeout은 타임아웃을 적용하여 명령을 실행합니다
	ExecuteWithTimeout(ctx context.Context, timeout time.Duration, command string, args ...string) ([]byte, error)
}

// FileSystem은 파일 시스템 작업을 추상화하는 인터페이스입니다
type FileSystem interface {
	// ReadFile은 파일을 읽습니다
	ReadFile(path string) ([]byte, error)

	// WriteFile은 파일에 데이터를 씁니다
	WriteFile(path string, data []byte, perm os.FileMode) error

	// Exists는 파일이나 디렉토리가 존재하는지 확인합니다
	Exists(path string) bool

	// MkdirAll은 디렉토리를 재귀적으로 생성합니다
	MkdirAll(path string, perm os.FileMode) error

	// Remove는 파일이나 디렉토리를 삭제합니다
	Remove(path string) error

	// Rename은 파일을 원자적으로 이동합니다 (스테이징 -> 라이브 교체에 사용)
	Rename(oldPath, newPath string) error

	// ListFiles는 디렉토리의 파일 목록을 반환합니다
	ListFiles(path string) ([]string, error)

	// Stat은 파일 정보를 반환합니다 (백업 보존 순서는 수정 시각 기준)
	Stat(path string) (os.FileInfo, error)
}

// Clock은 시간 관련 작업을 추상화하는 인터페이스입니다
type Clock interface {
	// Now는 현재 시간을 반환합니다
	Now() time.Time
}

// InputProvider는 대화형 입력을 추상화하는 인터페이스입니다.
// 검증 로직은 입력 방식(콘솔, 스크립트, 테스트 더블)에 의존해서는 안 됩니다
type InputProvider interface {
	// ReadLine은 프롬프트를 출력하고 한 줄을 읽습니다
	ReadLine(ctx context.Context, prompt string) (string, error)

	// Confirm은 y/n 확인을 요청합니다. 타임아웃이 지나면 안전 기본값(false, 건너뜀)을 반환합니다
	Confirm(ctx context.Context, prompt string) (bool, error)
}
