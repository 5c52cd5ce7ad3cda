package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"netswitch-tool/internal/domain/errors"
	"netswitch-tool/internal/domain/interfaces"
	"netswitch-tool/internal/infrastructure/config"
	"netswitch-tool/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// TunableService는 커널 튜너블을 영속 설정 파일에 멱등 적용하는 서비스입니다.
// 커널 튜너블은 파일 전체 복원 외에는 자연스러운 undo가 없는 프로세스 전역 상태이므로,
// 기존 줄은 절대 재작성하거나 재정렬하지 않고 누락된 줄만 덧붙입니다
type TunableService struct {
	fileSystem      interfaces.FileSystem
	commandExecutor interfaces.CommandExecutor
	logger          *logrus.Logger
	path            string
	desired         []config.Setting
	commandTimeout  time.Duration
}

// NewTunableService는 새로운 TunableService를 생성합니다
func NewTunableService(
	fs interfaces.FileSystem,
	executor interfaces.CommandExecutor,
	logger *logrus.Logger,
	path string,
	desired []config.Setting,
	commandTimeout time.Duration,
) interfaces.TunablePatcher {
	return &TunableService{
		fileSystem:      fs,
		commandExecutor: executor,
		logger:          logger,
		path:            path,
		desired:         desired,
		commandTimeout:  commandTimeout,
	}
}

// EnsureSettings는 기대값과 정확히 일치하는 키가 이미 있으면 건너뛰고,
// 누락된 키/값만 덧붙인 뒤 라이브 적용합니다. 누락이 없으면 쓰기 없이 성공합니다
func (s *TunableService) EnsureSettings(ctx context.Context) error {
	var existing []byte
	if s.fileSystem.Exists(s.path) {
		content, err := s.fileSystem.ReadFile(s.path)
		if err != nil {
			return errors.NewPreconditionError("튜너블 파일 읽기 실패", err)
		}
		existing = content
	}

	current := parseSettings(existing)

	var missing []config.Setting
	for _, setting := range s.desired {
		if value, ok := current[setting.Key]; ok && value == setting.Value {
			continue
		}
		missing = append(missing, setting)
	}

	if len(missing) == 0 {
		s.logger.WithField("path", s.path).Info("모든 튜너블이 이미 설정됨 (no-op)")
		metrics.RecordTunablePatch(false)
		return nil
	}

	var b strings.Builder
	b.Write(existing)
	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		b.WriteString("\n")
	}
	for _, setting := range missing {
		fmt.Fprintf(&b, "%s = %s\n", setting.Key, setting.Value)
	}

	if err := s.fileSystem.WriteFile(s.path, []byte(b.String()), 0644); err != nil {
		return errors.NewMutationError("튜너블 파일 쓰기 실패", err)
	}

	metrics.RecordTunablePatch(true)
	s.logger.WithFields(logrus.Fields{
		"path":  s.path,
		"added": len(missing),
	}).Info("누락된 튜너블 추가 완료")

	// 라이브 적용
	if _, err := s.commandExecutor.ExecuteWithTimeout(ctx, s.commandTimeout, "sysctl", "-p", s.path); err != nil {
		return errors.NewMutationError("튜너블 라이브 적용 실패", err)
	}

	s.logger.WithField("path", s.path).Info("튜너블 라이브 적용 완료")
	return nil
}

// parseSettings는 key = value 형식의 영속 설정 내용을 맵으로 파싱합니다
func parseSettings(content []byte) map[string]string {
	settings := make(map[string]string)
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		settings[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return settings
}
