package usecases

import (
	"context"
	"fmt"

	"netswitch-tool/internal/domain/entities"
	"netswitch-tool/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// ScanOrphansUseCase는 고아 볼륨을 탐지하고 건별 확인 후 삭제하는 유스케이스입니다.
// 볼륨 삭제는 되돌릴 수 없으므로 일괄 확인은 의도적으로 제공하지 않습니다
type ScanOrphansUseCase struct {
	volumeScanner interfaces.VolumeScanner
	input         interfaces.InputProvider
	logger        *logrus.Logger
}

// NewScanOrphansUseCase는 새로운 ScanOrphansUseCase를 생성합니다
func NewScanOrphansUseCase(
	scanner interfaces.VolumeScanner,
	input interfaces.InputProvider,
	logger *logrus.Logger,
) *ScanOrphansUseCase {
	return &ScanOrphansUseCase{
		volumeScanner: scanner,
		input:         input,
		logger:        logger,
	}
}

// ScanOrphansOutput은 유스케이스의 출력 결과입니다
type ScanOrphansOutput struct {
	Candidates     []entities.OrphanCandidate
	DeletedVolumes []string
	SkippedVolumes []string
	Errors         []error
}

// Execute는 고아 볼륨 스캔/정리 유스케이스를 실행합니다
func (uc *ScanOrphansUseCase) Execute(ctx context.Context) (*ScanOrphansOutput, error) {
	candidates, err := uc.volumeScanner.Scan(ctx)
	if err != nil {
		return nil, err
	}

	output := &ScanOrphansOutput{Candidates: candidates}

	if len(candidates) == 0 {
		uc.logger.Info("고아 볼륨 후보 없음")
		return output, nil
	}

	uc.logger.WithField("candidates", len(candidates)).Info("고아 볼륨 후보 발견, 건별 확인 시작")

	for _, candidate := range candidates {
		// 건별 확인: 타임아웃 시 안전 기본값은 건너뜀 (삭제 아님)
		confirmed, err := uc.input.Confirm(ctx, fmt.Sprintf(
			"볼륨 %s (워크로드 %d 없음)을 삭제하시겠습니까?",
			candidate.VolumeName, candidate.WorkloadID))
		if err != nil {
			output.Errors = append(output.Errors, err)
			continue
		}
		if !confirmed {
			uc.logger.WithField("volume", candidate.VolumeName).Info("운영자가 삭제를 건너뜀")
			output.SkippedVolumes = append(output.SkippedVolumes, candidate.VolumeName)
			continue
		}

		if err := uc.volumeScanner.Delete(ctx, candidate); err != nil {
			uc.logger.WithError(err).WithField("volume", candidate.VolumeName).Error("볼륨 삭제 실패")
			output.Errors = append(output.Errors, err)
			continue
		}
		output.DeletedVolumes = append(output.DeletedVolumes, candidate.VolumeName)
	}

	uc.logger.WithFields(logrus.Fields{
		"deleted": len(output.DeletedVolumes),
		"skipped": len(output.SkippedVolumes),
		"errors":  len(output.Errors),
	}).Info("고아 볼륨 정리 완료")

	return output, nil
}
