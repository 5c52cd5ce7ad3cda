package interfaces

import (
	"context"

	"netswitch-tool/internal/domain/entities"
)

// BackupManager는 설정 아티팩트의 스냅샷/보존/복원을 담당하는 인터페이스입니다
type BackupManager interface {
	// Snapshot은 아티팩트의 타임스탬프 백업을 생성합니다.
	// 실패 시 호출자는 이후의 파괴적 쓰기를 진행해서는 안 됩니다
	Snapshot(ctx context.Context, artifactPath string) (entities.Backup, error)

	// Prune은 보존 개수를 초과하는 오래된 백업을 삭제합니다
	Prune(ctx context.Context) error

	// Restore는 선택한 백업을 라이브 아티팩트 위로 복사합니다 (활성화는 호출자 책임)
	Restore(ctx context.Context, backup entities.Backup) error

	// List는 백업 목록을 최신순으로 반환합니다
	List(ctx context.Context) ([]entities.Backup, error)
}

// TunablePatcher는 커널 튜너블의 멱등 적용을 담당하는 인터페이스입니다
type TunablePatcher interface {
	// EnsureSettings는 누락된 키만 추가하고 라이브 적용합니다. 누락이 없으면 쓰기 없이 성공합니다
	EnsureSettings(ctx context.Context) error
}

// IdentityBinder는 MAC 주소 기반 영구 이름 바인딩을 담당하는 인터페이스입니다
type IdentityBinder interface {
	// ResolveIdentity는 휘발성 이름의 하드웨어 주소를 조회하여 바인딩 엔티티를 생성합니다
	ResolveIdentity(ctx context.Context, currentName, targetName string) (*entities.InterfaceIdentity, error)

	// ExistingBindingMAC은 대상 이름에 대한 기존 바인딩의 MAC을 반환합니다
	ExistingBindingMAC(targetName string) (string, bool)

	// Bind는 바인딩 파일을 기록하고 재부팅 대기 상태로 전이합니다
	Bind(ctx context.Context, identity *entities.InterfaceIdentity) error

	// RewriteArtifactReferences는 아티팩트 내 이전 이름 참조를 재작성합니다
	RewriteArtifactReferences(artifactPath, oldName, newName string) (int, error)

	// RegenerateBootImage는 부팅 초기 장치 이미지를 재생성합니다 (보조 단계)
	RegenerateBootImage(ctx context.Context) error
}

// VolumeScanner는 고아 볼륨 탐지/삭제를 담당하는 인터페이스입니다
type VolumeScanner interface {
	// Scan은 고아 볼륨 후보 목록을 반환합니다
	Scan(ctx context.Context) ([]entities.OrphanCandidate, error)

	// Delete는 확인이 끝난 단일 후보 볼륨을 삭제합니다
	Delete(ctx context.Context, candidate entities.OrphanCandidate) error
}

// HostnameChanger는 호스트네임 변경 협력자 인터페이스입니다
type HostnameChanger interface {
	// Change는 호스트네임을 변경하고 hosts 파일 참조를 갱신합니다
	Change(ctx context.Context, oldHostname, newHostname string) error
}
