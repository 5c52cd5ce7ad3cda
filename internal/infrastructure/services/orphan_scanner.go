package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"netswitch-tool/internal/domain/entities"
	"netswitch-tool/internal/domain/errors"
	"netswitch-tool/internal/domain/interfaces"
	"netswitch-tool/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// 볼륨 이름에서 워크로드 식별자를 추출하는 패턴 (예: vm-101-disk-0 -> 101)
var volumeIDPattern = regexp.MustCompile(`^vm-(\d+)-disk`)

// OrphanScanner는 소유 워크로드가 사라진 스토리지 볼륨을 탐지하는 서비스입니다.
// 볼륨 삭제는 되돌릴 수 없고 식별자 우연 충돌이 현실적인 실패 모드이므로,
// 후보 제시까지만 담당하고 삭제 여부는 호출자가 건별로 확인받아야 합니다
type OrphanScanner struct {
	fileSystem      interfaces.FileSystem
	commandExecutor interfaces.CommandExecutor
	logger          *logrus.Logger
	volumeGroup     string
	workloadConfDir string
	denylist        []string
	commandTimeout  time.Duration
}

// NewOrphanScanner는 새로운 OrphanScanner를 생성합니다
func NewOrphanScanner(
	fs interfaces.FileSystem,
	executor interfaces.CommandExecutor,
	logger *logrus.Logger,
	volumeGroup string,
	workloadConfDir string,
	denylist []string,
	commandTimeout time.Duration,
) *OrphanScanner {
	return &OrphanScanner{
		fileSystem:      fs,
		commandExecutor: executor,
		logger:          logger,
		volumeGroup:     volumeGroup,
		workloadConfDir: workloadConfDir,
		denylist:        denylist,
		commandTimeout:  commandTimeout,
	}
}

// Scan은 고아 볼륨 후보 목록을 반환합니다.
// 거부 목록의 이름은 식별자 일치 여부와 무관하게 즉시 제외됩니다
func (s *OrphanScanner) Scan(ctx context.Context) ([]entities.OrphanCandidate, error) {
	volumes, err := s.listVolumes(ctx)
	if err != nil {
		return nil, err
	}

	liveIDs, err := s.liveWorkloadIDs()
	if err != nil {
		return nil, err
	}

	var candidates []entities.OrphanCandidate
	for _, volume := range volumes {
		if s.isDenylisted(volume) {
			s.logger.WithField("volume", volume).Debug("거부 목록 볼륨 제외")
			continue
		}

		match := volumeIDPattern.FindStringSubmatch(volume)
		if match == nil {
			continue
		}

		workloadID, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		if _, live := liveIDs[workloadID]; live {
			continue
		}

		s.logger.WithFields(logrus.Fields{
			"volume":      volume,
			"workload_id": workloadID,
		}).Info("고아 볼륨 후보 발견")
		candidates = append(candidates, entities.OrphanCandidate{
			VolumeName: volume,
			WorkloadID: workloadID,
		})
	}

	return candidates, nil
}

// Delete는 확인이 끝난 단일 후보 볼륨을 삭제합니다
func (s *OrphanScanner) Delete(ctx context.Context, candidate entities.OrphanCandidate) error {
	target := fmt.Sprintf("%s/%s", s.volumeGroup, candidate.VolumeName)
	if _, err := s.commandExecutor.ExecuteWithTimeout(ctx, s.commandTimeout, "lvremove", "-f", target); err != nil {
		return errors.NewMutationError(fmt.Sprintf("볼륨 삭제 실패: %s", target), err)
	}

	metrics.OrphanVolumesDeleted.Inc()
	s.logger.WithField("volume", candidate.VolumeName).Info("고아 볼륨 삭제 완료")
	return nil
}

// listVolumes는 볼륨 그룹의 논리 볼륨 이름 목록을 조회합니다
func (s *OrphanScanner) listVolumes(ctx context.Context) ([]string, error) {
	output, err := s.commandExecutor.ExecuteWithTimeout(ctx, s.commandTimeout,
		"lvs", "--noheadings", "-o", "lv_name", s.volumeGroup)
	if err != nil {
		return nil, errors.NewPreconditionError("볼륨 목록 조회 실패", err)
	}

	var volumes []string
	for _, line := range strings.Split(string(output), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			volumes = append(volumes, name)
		}
	}
	return volumes, nil
}

// liveWorkloadIDs는 라이브 워크로드 설정 파일에서 식별자 집합을 수집합니다
func (s *OrphanScanner) liveWorkloadIDs() (map[int]struct{}, error) {
	ids := make(map[int]struct{})

	if !s.fileSystem.Exists(s.workloadConfDir) {
		s.logger.WithField("dir", s.workloadConfDir).Warn("워크로드 설정 디렉토리가 없음")
		return ids, nil
	}

	files, err := s.fileSystem.ListFiles(s.workloadConfDir)
	if err != nil {
		return nil, errors.NewPreconditionError("워크로드 설정 디렉토리 읽기 실패", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file, ".conf") {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSuffix(file, ".conf"))
		if err != nil {
			continue
		}
		ids[id] = struct{}{}
	}

	return ids, nil
}

// isDenylisted는 시스템 필수 볼륨 여부를 확인합니다.
// 항목이 *로 끝나면 접두사 일치(예: base-*), 그 외에는 정확 일치입니다
func (s *OrphanScanner) isDenylisted(volume string) bool {
	for _, entry := range s.denylist {
		if strings.HasSuffix(entry, "*") {
			if strings.HasPrefix(volume, strings.TrimSuffix(entry, "*")) {
				return true
			}
			continue
		}
		if volume == entry {
			return true
		}
	}
	return false
}
