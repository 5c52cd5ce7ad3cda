package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"netswitch-tool/internal/domain/entities"
	"netswitch-tool/internal/domain/errors"
	"netswitch-tool/internal/domain/interfaces"
	"netswitch-tool/internal/domain/services"
	"netswitch-tool/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// ApplyNetworkUseCase는 설정 전환의 안전 적용 파이프라인입니다:
// 검증 -> 병렬 준비 -> 백업 -> 합성 -> 스테이징 -> 원자적 교체 -> 활성화 -> 검증 -> 실패 시 롤백.
// 백업/쓰기/활성화는 서로의 성공에 의존하므로 엄격히 순차 실행됩니다
type ApplyNetworkUseCase struct {
	synthesizer       *services.StanzaSynthesizer
	backupManager     interfaces.BackupManager
	tunablePatcher    interfaces.TunablePatcher
	packageInstaller  interfaces.PackageInstaller
	serviceController interfaces.ServiceController
	linkRepository    interfaces.LinkRepository
	fileSystem        interfaces.FileSystem
	input             interfaces.InputProvider
	logger            *logrus.Logger
	artifactPath      string
	serviceUnit       string
	helperPackages    []string
}

// NewApplyNetworkUseCase는 새로운 ApplyNetworkUseCase를 생성합니다
func NewApplyNetworkUseCase(
	synthesizer *services.StanzaSynthesizer,
	backupManager interfaces.BackupManager,
	tunablePatcher interfaces.TunablePatcher,
	packageInstaller interfaces.PackageInstaller,
	serviceController interfaces.ServiceController,
	linkRepository interfaces.LinkRepository,
	fileSystem interfaces.FileSystem,
	input interfaces.InputProvider,
	logger *logrus.Logger,
	artifactPath string,
	serviceUnit string,
	helperPackages []string,
) *ApplyNetworkUseCase {
	return &ApplyNetworkUseCase{
		synthesizer:       synthesizer,
		backupManager:     backupManager,
		tunablePatcher:    tunablePatcher,
		packageInstaller:  packageInstaller,
		serviceController: serviceController,
		linkRepository:    linkRepository,
		fileSystem:        fileSystem,
		input:             input,
		logger:            logger,
		artifactPath:      artifactPath,
		serviceUnit:       serviceUnit,
		helperPackages:    helperPackages,
	}
}

// ApplyNetworkInput은 유스케이스의 입력 파라미터입니다
type ApplyNetworkInput struct {
	Parameters entities.ParameterSet
}

// ApplyNetworkOutput은 유스케이스의 출력 결과입니다
type ApplyNetworkOutput struct {
	EmittedStanzas   []string
	SkippedStanzas   []string
	PrepFailureCount int  // 병렬 준비 단계에서 실패한 브랜치 수
	RolledBack       bool // 적용 실패로 롤백이 수행되었는지 여부
}

// Execute는 설정 적용 유스케이스를 실행합니다
func (uc *ApplyNetworkUseCase) Execute(ctx context.Context, input ApplyNetworkInput) (*ApplyNetworkOutput, error) {
	startTime := time.Now()

	// 1. 유효성 검증: 실패하면 어떤 변경도 수행하지 않음
	if err := input.Parameters.Validate(); err != nil {
		metrics.RecordError("validation")
		return nil, errors.NewValidationError("파라미터 검증 실패", err)
	}

	// 2. 장치 존재 확인. 존재하지 않는 인터페이스는 보고하되,
	// 운영자가 명시적으로 확인하면 진행을 허용함 (재해 복구용 탈출구, 결함 아님)
	if err := uc.checkDevices(ctx, input.Parameters.BondMembers); err != nil {
		metrics.RecordError("precondition")
		return nil, err
	}

	// 3. 병렬 준비 단계: 헬퍼 패키지 설치와 커널 튜너블 적용은 순차 임계 경로와
	// 충돌하지 않으므로 병렬 실행. 한쪽의 실패가 다른 쪽을 취소하지 않으며,
	// 합류 결과는 실패한 브랜치 수를 보고함
	prepFailures := uc.runPreparation(ctx)

	output := &ApplyNetworkOutput{PrepFailureCount: prepFailures}

	// 4. 기존 아티팩트 읽기 (멱등성 확인용)
	var existing []byte
	if uc.fileSystem.Exists(uc.artifactPath) {
		content, err := uc.fileSystem.ReadFile(uc.artifactPath)
		if err != nil {
			metrics.RecordError("precondition")
			return nil, errors.NewPreconditionError("기존 아티팩트 읽기 실패", err)
		}
		existing = content
	}

	// 5. 스탠자 합성. 운영자 입력 문제만 validation으로 집계하고
	// 내부 불변식 위반은 system으로 구분
	result, err := uc.synthesizer.Synthesize(existing, &input.Parameters)
	if err != nil {
		if errors.IsValidationError(err) {
			metrics.RecordError("validation")
		} else {
			metrics.RecordError("system")
		}
		return nil, err
	}
	output.EmittedStanzas = result.Emitted
	output.SkippedStanzas = result.Skipped
	metrics.RecordSynthesis(len(result.Emitted), len(result.Skipped))

	if !result.Changed() {
		uc.logger.Info("아티팩트가 이미 수렴 상태, 적용할 변경 없음")
		metrics.RecordApply("noop", time.Since(startTime).Seconds())
		return output, nil
	}

	// 6. 백업: 실패하면 이후의 파괴적 쓰기를 진행하지 않음
	backup, err := uc.backupManager.Snapshot(ctx, uc.artifactPath)
	if err != nil {
		metrics.RecordError("system")
		return nil, err
	}

	// 7. 스테이징 쓰기 후 원자적 교체. 인터럽트 시 스테이징 파일만 정리되고
	// 라이브 아티팩트는 손대지 않음
	if err := uc.stageAndSwap(ctx, result.Content); err != nil {
		metrics.RecordError("mutation")
		return nil, err
	}

	// 8. 활성화 및 검증; 실패 시 자동 롤백
	if err := uc.activateAndVerify(ctx); err != nil {
		uc.logger.WithError(err).Error("설정 활성화 실패, 자동 롤백 시작")
		output.RolledBack = true

		if rollbackErr := uc.rollback(ctx, backup); rollbackErr != nil {
			metrics.RecordError("irrecoverable")
			metrics.RecordApply("failed", time.Since(startTime).Seconds())
			return output, rollbackErr
		}

		metrics.RecordError("mutation")
		metrics.RecordApply("rolled_back", time.Since(startTime).Seconds())
		return output, errors.NewMutationError("설정 활성화 실패, 이전 설정으로 롤백 완료", err)
	}

	uc.logger.WithFields(logrus.Fields{
		"emitted": output.EmittedStanzas,
		"skipped": output.SkippedStanzas,
	}).Info("네트워크 설정 적용 성공")
	metrics.RecordApply("success", time.Since(startTime).Seconds())

	return output, nil
}

// checkDevices는 본드 멤버 인터페이스의 존재를 확인합니다
func (uc *ApplyNetworkUseCase) checkDevices(ctx context.Context, members []string) error {
	for _, member := range members {
		exists, err := uc.linkRepository.Exists(ctx, member)
		if err != nil {
			return errors.NewPreconditionError(fmt.Sprintf("장치 확인 실패: %s", member), err)
		}
		if exists {
			continue
		}

		uc.logger.WithField("interface", member).Warn("인터페이스가 존재하지 않음")
		proceed, err := uc.input.Confirm(ctx,
			fmt.Sprintf("인터페이스 %s가 존재하지 않습니다. 그래도 진행하시겠습니까?", member))
		if err != nil {
			return errors.NewPreconditionError("장치 확인 응답 읽기 실패", err)
		}
		if !proceed {
			return errors.NewPreconditionError(
				fmt.Sprintf("존재하지 않는 인터페이스로 중단됨: %s", member), nil)
		}
		uc.logger.WithField("interface", member).Warn("운영자 확인으로 존재하지 않는 인터페이스 진행 허용")
	}
	return nil
}

// runPreparation은 독립적인 준비 작업을 병렬 실행하고 실패한 브랜치 수를 반환합니다
func (uc *ApplyNetworkUseCase) runPreparation(ctx context.Context) int {
	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := uc.packageInstaller.Install(ctx, uc.helperPackages); err != nil {
			uc.logger.WithError(err).Warn("헬퍼 패키지 설치 실패 (주 작업은 계속)")
			errCh <- err
		}
	}()
	go func() {
		defer wg.Done()
		if err := uc.tunablePatcher.EnsureSettings(ctx); err != nil {
			uc.logger.WithError(err).Warn("커널 튜너블 적용 실패 (주 작업은 계속)")
			errCh <- err
		}
	}()

	wg.Wait()
	close(errCh)

	failures := 0
	for range errCh {
		failures++
	}
	if failures > 0 {
		uc.logger.WithField("failed_branches", failures).Warn("병렬 준비 단계 일부 실패")
	}
	return failures
}

// stageAndSwap은 스테이징 경로에 쓴 뒤 라이브 경로로 원자적으로 교체합니다
func (uc *ApplyNetworkUseCase) stageAndSwap(ctx context.Context, content []byte) error {
	stagingPath := uc.artifactPath + ".staging"

	if err := uc.fileSystem.WriteFile(stagingPath, content, 0644); err != nil {
		return errors.NewMutationError("스테이징 파일 쓰기 실패", err)
	}

	// 교체 직전 취소 확인: 취소되면 스테이징만 정리하고 라이브는 그대로 둠
	if ctx.Err() != nil {
		if removeErr := uc.fileSystem.Remove(stagingPath); removeErr != nil {
			uc.logger.WithError(removeErr).Warn("스테이징 파일 정리 실패")
		}
		uc.logger.Info("작업이 취소되어 스테이징 파일 정리 완료, 라이브 아티팩트는 변경되지 않음")
		return errors.NewMutationError("적용이 취소됨", ctx.Err())
	}

	if err := uc.fileSystem.Rename(stagingPath, uc.artifactPath); err != nil {
		if removeErr := uc.fileSystem.Remove(stagingPath); removeErr != nil {
			uc.logger.WithError(removeErr).Warn("스테이징 파일 정리 실패")
		}
		return errors.NewMutationError("아티팩트 교체 실패", err)
	}

	return nil
}

// activateAndVerify는 네트워크 서비스를 재시작하고 활성 상태를 검증합니다
func (uc *ApplyNetworkUseCase) activateAndVerify(ctx context.Context) error {
	if err := uc.serviceController.Restart(ctx, uc.serviceUnit); err != nil {
		return err
	}

	active, status, err := uc.serviceController.IsActive(ctx, uc.serviceUnit)
	if err != nil {
		return errors.NewMutationError("서비스 상태 확인 실패", err)
	}
	if !active {
		// 서비스 상태 출력을 로그에 남김
		uc.logger.WithField("status_output", status).Error("네트워크 서비스가 활성 상태가 아님")
		return errors.NewMutationError(fmt.Sprintf("네트워크 서비스 비활성: %s", uc.serviceUnit), nil)
	}

	return nil
}

// rollback은 적용 직전 백업을 복원하고 재활성화합니다.
// 복원은 마지막 방어선이므로 여기서의 실패는 복구 불가능으로 처리되며,
// 수동 복구를 위해 백업 경로를 운영자에게 노출합니다
func (uc *ApplyNetworkUseCase) rollback(ctx context.Context, backup entities.Backup) error {
	metrics.RecordRestore("rollback")

	if err := uc.backupManager.Restore(ctx, backup); err != nil {
		return errors.NewIrrecoverableError(
			fmt.Sprintf("롤백 복원 실패, 수동 복구 필요 (백업 경로: %s)", backup.Path), err)
	}

	if err := uc.activateAndVerify(ctx); err != nil {
		return errors.NewIrrecoverableError(
			fmt.Sprintf("복원 후 활성화 실패, 수동 복구 필요 (백업 경로: %s)", backup.Path), err)
	}

	uc.logger.WithField("backup_path", backup.Path).Info("롤백 및 재활성화 완료")
	return nil
}
