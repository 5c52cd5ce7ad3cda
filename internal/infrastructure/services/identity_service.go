package services

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"netswitch-tool/internal/domain/entities"
	"netswitch-tool/internal/domain/errors"
	"netswitch-tool/internal/domain/interfaces"
	"netswitch-tool/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// IdentityService는 하드웨어 주소 기반의 영구 인터페이스 이름 바인딩을 관리합니다.
// 이 서비스는 2단계 커밋의 1단계(의도 기록)만 수행합니다:
// 실제 이름 변경은 재부팅 시 부팅 장치 열거자가 수행하며, 이 프로세스는 이를 강제할 수 없습니다
type IdentityService struct {
	fileSystem      interfaces.FileSystem
	linkRepository  interfaces.LinkRepository
	commandExecutor interfaces.CommandExecutor
	logger          *logrus.Logger
	bindingDir      string
	bindingPriority int
	commandTimeout  time.Duration
}

// NewIdentityService는 새로운 IdentityService를 생성합니다
func NewIdentityService(
	fs interfaces.FileSystem,
	linkRepo interfaces.LinkRepository,
	executor interfaces.CommandExecutor,
	logger *logrus.Logger,
	bindingDir string,
	bindingPriority int,
	commandTimeout time.Duration,
) *IdentityService {
	return &IdentityService{
		fileSystem:      fs,
		linkRepository:  linkRepo,
		commandExecutor: executor,
		logger:          logger,
		bindingDir:      bindingDir,
		bindingPriority: bindingPriority,
		commandTimeout:  commandTimeout,
	}
}

// ResolveIdentity는 휘발성 이름의 하드웨어 주소를 조회하여 바인딩 엔티티를 생성합니다.
// 빈 주소와 제로 주소는 거부됩니다
func (s *IdentityService) ResolveIdentity(ctx context.Context, currentName, targetName string) (*entities.InterfaceIdentity, error) {
	mac, err := s.linkRepository.MacAddress(ctx, currentName)
	if err != nil {
		return nil, err
	}

	identity, err := entities.NewInterfaceIdentity(mac, currentName, targetName)
	if err != nil {
		return nil, errors.NewValidationError("바인딩 생성 실패", err)
	}

	return identity, nil
}

// ExistingBindingMAC은 대상 이름에 대한 기존 바인딩이 있으면 그 MAC을 반환합니다.
// 안정적 이름은 운영자의 명시적 재정의 없이는 다른 하드웨어 주소에 재사용되지 않습니다
func (s *IdentityService) ExistingBindingMAC(targetName string) (string, bool) {
	path := s.bindingFilePath(targetName)
	if !s.fileSystem.Exists(path) {
		return "", false
	}

	content, err := s.fileSystem.ReadFile(path)
	if err != nil {
		s.logger.WithError(err).WithField("path", path).Warn("기존 바인딩 파일 읽기 실패")
		return "", false
	}

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "MACAddress=") {
			return strings.TrimPrefix(line, "MACAddress="), true
		}
	}
	return "", false
}

// Bind는 MAC 주소와 안정적 이름의 바인딩 파일을 기록하고
// 바인딩을 재부팅 대기 상태로 전이합니다
func (s *IdentityService) Bind(ctx context.Context, identity *entities.InterfaceIdentity) error {
	if err := s.fileSystem.MkdirAll(s.bindingDir, 0755); err != nil {
		return errors.NewMutationError("바인딩 디렉토리 생성 실패", err)
	}

	content := fmt.Sprintf("[Match]\nMACAddress=%s\n\n[Link]\nName=%s\n",
		identity.MacAddress, identity.TargetName)

	path := s.bindingFilePath(identity.TargetName)
	if err := s.fileSystem.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.NewMutationError(fmt.Sprintf("바인딩 파일 쓰기 실패: %s", path), err)
	}

	identity.MarkBound()
	metrics.IdentityBindings.Inc()

	s.logger.WithFields(logrus.Fields{
		"mac":          identity.MacAddress,
		"current_name": identity.CurrentName,
		"target_name":  identity.TargetName,
		"binding_file": path,
		"state":        identity.State,
	}).Info("이름 바인딩 기록 완료, 적용에는 재부팅 필요")

	return nil
}

// RewriteArtifactReferences는 아티팩트 내의 이전 이름 참조를 새 이름으로 재작성합니다.
// 단어 단위 일치만 수행하므로 유사 접두 이름은 변경되지 않습니다.
// 호출자는 재작성 전에 반드시 백업을 생성해야 합니다
func (s *IdentityService) RewriteArtifactReferences(artifactPath, oldName, newName string) (int, error) {
	if !s.fileSystem.Exists(artifactPath) {
		s.logger.WithField("path", artifactPath).Debug("아티팩트가 없어 참조 재작성 건너뜀")
		return 0, nil
	}

	content, err := s.fileSystem.ReadFile(artifactPath)
	if err != nil {
		return 0, errors.NewPreconditionError("아티팩트 읽기 실패", err)
	}

	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(oldName) + `\b`)
	matches := pattern.FindAll(content, -1)
	if len(matches) == 0 {
		return 0, nil
	}

	rewritten := pattern.ReplaceAll(content, []byte(newName))
	if err := s.fileSystem.WriteFile(artifactPath, rewritten, 0644); err != nil {
		return 0, errors.NewMutationError("아티팩트 참조 재작성 실패", err)
	}

	s.logger.WithFields(logrus.Fields{
		"old_name":   oldName,
		"new_name":   newName,
		"references": len(matches),
	}).Info("아티팩트 참조 재작성 완료")

	return len(matches), nil
}

// RegenerateBootImage는 부팅 초기 장치 이미지를 재생성합니다.
// 실패해도 주 작업을 중단하지 않는 보조 단계입니다 (호출자는 경고만 남김)
func (s *IdentityService) RegenerateBootImage(ctx context.Context) error {
	if _, err := s.commandExecutor.ExecuteWithTimeout(ctx, s.commandTimeout, "update-initramfs", "-u"); err != nil {
		return err
	}
	s.logger.Info("부팅 이미지 재생성 완료")
	return nil
}

// bindingFilePath는 대상 이름의 바인딩 파일 경로를 반환합니다.
// 우선순위 접두어가 낮아 기본 네이밍 규칙보다 먼저 적용됩니다
func (s *IdentityService) bindingFilePath(targetName string) string {
	return filepath.Join(s.bindingDir, fmt.Sprintf("%02d-%s.link", s.bindingPriority, targetName))
}
