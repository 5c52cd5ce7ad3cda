package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"netswitch-tool/internal/domain/errors"
	"netswitch-tool/internal/domain/interfaces"
	"netswitch-tool/pkg/utils"

	"github.com/sirupsen/logrus"
)

// HostnameService는 호스트네임 변경 협력자입니다.
// 단발성 순차 작업으로, 합성 파이프라인과 순서 의존성이 없습니다
type HostnameService struct {
	fileSystem      interfaces.FileSystem
	commandExecutor interfaces.CommandExecutor
	logger          *logrus.Logger
	hostsPath       string
	commandTimeout  time.Duration
}

// NewHostnameService는 새로운 HostnameService를 생성합니다
func NewHostnameService(
	fs interfaces.FileSystem,
	executor interfaces.CommandExecutor,
	logger *logrus.Logger,
	commandTimeout time.Duration,
) *HostnameService {
	return &HostnameService{
		fileSystem:      fs,
		commandExecutor: executor,
		logger:          logger,
		hostsPath:       "/etc/hosts",
		commandTimeout:  commandTimeout,
	}
}

// Change는 호스트네임을 변경하고 hosts 파일의 참조를 갱신합니다
func (s *HostnameService) Change(ctx context.Context, oldHostname, newHostname string) error {
	if err := utils.ValidateHostname(newHostname); err != nil {
		return errors.NewValidationError("호스트네임 검증 실패", err)
	}

	if _, err := s.commandExecutor.ExecuteWithTimeout(ctx, s.commandTimeout,
		"hostnamectl", "set-hostname", newHostname); err != nil {
		return errors.NewMutationError(fmt.Sprintf("호스트네임 변경 실패: %s", newHostname), err)
	}

	// hosts 파일 참조 갱신은 보조 단계: 실패해도 변경 자체는 유효
	if err := s.rewriteHosts(oldHostname, newHostname); err != nil {
		s.logger.WithError(err).Warn("hosts 파일 갱신 실패")
	}

	s.logger.WithFields(logrus.Fields{
		"old_hostname": oldHostname,
		"new_hostname": newHostname,
	}).Info("호스트네임 변경 완료")

	return nil
}

// rewriteHosts는 hosts 파일의 이전 호스트네임 참조를 새 이름으로 재작성합니다
func (s *HostnameService) rewriteHosts(oldHostname, newHostname string) error {
	if oldHostname == "" || !s.fileSystem.Exists(s.hostsPath) {
		return nil
	}

	content, err := s.fileSystem.ReadFile(s.hostsPath)
	if err != nil {
		return err
	}

	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(oldHostname) + `\b`)
	if !pattern.Match(content) {
		return nil
	}

	rewritten := pattern.ReplaceAll(content, []byte(newHostname))
	return s.fileSystem.WriteFile(s.hostsPath, rewritten, 0644)
}
