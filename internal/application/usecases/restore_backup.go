package usecases

import (
	"context"
	"fmt"

	"netswitch-tool/internal/domain/entities"
	"netswitch-tool/internal/domain/errors"
	"netswitch-tool/internal/domain/interfaces"
	"netswitch-tool/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// RestoreBackupUseCase는 선택한 백업을 복원하고 재활성화하는 유스케이스입니다.
// 복원은 마지막 방어선입니다: 복원 후 활성화 실패는 복구 불가능으로 처리되며
// 더 이상의 자동화된 수단 없이 백업 경로만 운영자에게 노출됩니다
type RestoreBackupUseCase struct {
	backupManager     interfaces.BackupManager
	serviceController interfaces.ServiceController
	logger            *logrus.Logger
	serviceUnit       string
}

// NewRestoreBackupUseCase는 새로운 RestoreBackupUseCase를 생성합니다
func NewRestoreBackupUseCase(
	backupManager interfaces.BackupManager,
	serviceController interfaces.ServiceController,
	logger *logrus.Logger,
	serviceUnit string,
) *RestoreBackupUseCase {
	return &RestoreBackupUseCase{
		backupManager:     backupManager,
		serviceController: serviceController,
		logger:            logger,
		serviceUnit:       serviceUnit,
	}
}

// ListBackups는 복원 가능한 백업 목록을 최신순으로 반환합니다
func (uc *RestoreBackupUseCase) ListBackups(ctx context.Context) ([]entities.Backup, error) {
	return uc.backupManager.List(ctx)
}

// Execute는 백업 복원 유스케이스를 실행합니다
func (uc *RestoreBackupUseCase) Execute(ctx context.Context, backup entities.Backup) error {
	metrics.RecordRestore("manual")

	if err := uc.backupManager.Restore(ctx, backup); err != nil {
		metrics.RecordError("irrecoverable")
		return err
	}

	if err := uc.serviceController.Restart(ctx, uc.serviceUnit); err != nil {
		metrics.RecordError("irrecoverable")
		return errors.NewIrrecoverableError(
			fmt.Sprintf("복원 후 서비스 재시작 실패, 수동 복구 필요 (백업 경로: %s)", backup.Path), err)
	}

	active, status, err := uc.serviceController.IsActive(ctx, uc.serviceUnit)
	if err != nil || !active {
		uc.logger.WithField("status_output", status).Error("복원 후 네트워크 서비스가 활성 상태가 아님")
		metrics.RecordError("irrecoverable")
		return errors.NewIrrecoverableError(
			fmt.Sprintf("복원 후 활성화 검증 실패, 수동 복구 필요 (백업 경로: %s)", backup.Path), err)
	}

	uc.logger.WithField("backup_file", backup.FileName).Info("백업 복원 및 재활성화 완료")
	return nil
}
