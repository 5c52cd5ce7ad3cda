package interfaces

import (
	"context"
)

// Link는 장치 열거자가 보고하는 라이브 네트워크 링크입니다
type Link struct {
	Name       string
	MacAddress string
	State      string
	MTU        int
}

// LinkRepository는 라이브 링크 상태를 조회하는 장치 열거자 인터페이스입니다
type LinkRepository interface {
	// List는 모든 라이브 링크를 반환합니다
	List(ctx context.Context) ([]Link, error)

	// Exists는 해당 이름의 링크가 존재하는지 확인합니다
	Exists(ctx context.Context, name string) (bool, error)

	// MacAddress는 링크의 하드웨어 주소를 반환합니다
	MacAddress(ctx context.Context, name string) (string, error)
}

// ServiceController는 시스템 서비스 제어 협력자 인터페이스입니다
type ServiceController interface {
	// Restart는 서비스를 재시작합니다
	Restart(ctx context.Context, unit string) error

	// IsActive는 서비스 활성 여부와 상태 출력을 반환합니다
	IsActive(ctx context.Context, unit string) (bool, string, error)
}

// PackageInstaller는 패키지 설치 협력자 인터페이스입니다
type PackageInstaller interface {
	// Install은 지정된 패키지 목록을 설치합니다
	Install(ctx context.Context, packages []string) error
}
