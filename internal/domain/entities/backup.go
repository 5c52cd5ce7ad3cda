package entities

import "time"

// Backup은 설정 아티팩트의 불변 타임스탬프 사본입니다.
// 생성 이후 절대 수정되지 않으며 Backup Manager가 소유합니다
type Backup struct {
	FileName   string    // 백업 디렉토리 내 파일명
	Path       string    // 백업 파일의 절대 경로
	SourcePath string    // 원본 아티팩트 경로
	CreatedAt  time.Time // 생성 시각 (보존 순서의 기준)
}

// OrphanCandidate는 소유 워크로드가 사라진 것으로 추정되는 스토리지 볼륨입니다
type OrphanCandidate struct {
	VolumeName string
	WorkloadID int
}
