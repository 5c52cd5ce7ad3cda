package adapters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"netswitch-tool/internal/domain/errors"
	"netswitch-tool/internal/domain/interfaces"
	"netswitch-tool/pkg/utils"

	"github.com/sirupsen/logrus"
)

// 패키지 관리자 락 경합은 일시적이므로 설치는 백오프 재시도
var aptRetryConfig = utils.DefaultRetryConfig

// SystemdController는 systemctl을 사용하는 ServiceController 구현체입니다
type SystemdController struct {
	commandExecutor interfaces.CommandExecutor
	commandTimeout  time.Duration
	logger          *logrus.Logger
}

// NewSystemdController는 새로운 SystemdController를 생성합니다
func NewSystemdController(
	executor interfaces.CommandExecutor,
	commandTimeout time.Duration,
	logger *logrus.Logger,
) interfaces.ServiceController {
	return &SystemdController{
		commandExecutor: executor,
		commandTimeout:  commandTimeout,
		logger:          logger,
	}
}

// Restart는 서비스를 재시작합니다
func (s *SystemdController) Restart(ctx context.Context, unit string) error {
	s.logger.WithField("unit", unit).Info("서비스 재시작 시작")

	if _, err := s.commandExecutor.ExecuteWithTimeout(ctx, s.commandTimeout, "systemctl", "restart", unit); err != nil {
		return errors.NewMutationError(fmt.Sprintf("서비스 재시작 실패: %s", unit), err)
	}

	s.logger.WithField("unit", unit).Info("서비스 재시작 완료")
	return nil
}

// IsActive는 서비스 활성 여부와 상태 출력을 반환합니다.
// systemctl is-active는 비활성 시 비정상 종료 코드를 반환하므로 에러는 비활성으로 해석합니다
func (s *SystemdController) IsActive(ctx context.Context, unit string) (bool, string, error) {
	output, err := s.commandExecutor.ExecuteWithTimeout(ctx, s.commandTimeout, "systemctl", "is-active", unit)
	status := strings.TrimSpace(string(output))
	if err != nil {
		// 상태 출력 전체를 확보하여 로그에 남길 수 있도록 status 명령을 추가 실행
		detail, detailErr := s.commandExecutor.ExecuteWithTimeout(ctx, s.commandTimeout, "systemctl", "status", unit, "--no-pager")
		if detailErr == nil {
			status = strings.TrimSpace(string(detail))
		}
		return false, status, nil
	}
	return status == "active", status, nil
}

// AptInstaller는 apt-get을 사용하는 PackageInstaller 구현체입니다
type AptInstaller struct {
	commandExecutor interfaces.CommandExecutor
	commandTimeout  time.Duration
	logger          *logrus.Logger
}

// NewAptInstaller는 새로운 AptInstaller를 생성합니다
func NewAptInstaller(
	executor interfaces.CommandExecutor,
	commandTimeout time.Duration,
	logger *logrus.Logger,
) interfaces.PackageInstaller {
	return &AptInstaller{
		commandExecutor: executor,
		commandTimeout:  commandTimeout,
		logger:          logger,
	}
}

// Install은 지정된 패키지 목록을 설치합니다
func (a *AptInstaller) Install(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		return nil
	}

	a.logger.WithField("packages", packages).Info("패키지 설치 시작")

	args := append([]string{"install", "-y"}, packages...)
	err := utils.RetryWithBackoff(ctx, aptRetryConfig, func() error {
		_, execErr := a.commandExecutor.ExecuteWithTimeout(ctx, a.commandTimeout, "apt-get", args...)
		return execErr
	})
	if err != nil {
		return errors.NewSystemError(fmt.Sprintf("패키지 설치 실패: %s", strings.Join(packages, ", ")), err)
	}

	a.logger.WithField("packages", packages).Info("패키지 설치 완료")
	return nil
}
