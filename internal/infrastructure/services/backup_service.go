package services

import (
	"fmt"
	"path/filepath"
	"sort"

	"context"

	"netswitch-tool/internal/domain/entities"
	"netswitch-tool/internal/domain/errors"
	"netswitch-tool/internal/domain/interfaces"
	"netswitch-tool/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
)

// BackupService는 설정 아티팩트의 타임스탬프 백업을 관리하는 서비스입니다.
// 백업은 생성 이후 절대 수정되지 않으며, 보존 개수를 초과하면 오래된 것부터 제거됩니다
type BackupService struct {
	fileSystem   interfaces.FileSystem
	clock        interfaces.Clock
	logger       *logrus.Logger
	backupDir    string
	artifactPath string
	retention    int
}

// NewBackupService는 새로운 BackupService를 생성합니다
func NewBackupService(
	fs interfaces.FileSystem,
	clock interfaces.Clock,
	logger *logrus.Logger,
	backupDir string,
	artifactPath string,
	retention int,
) interfaces.BackupManager {
	return &BackupService{
		fileSystem:   fs,
		clock:        clock,
		logger:       logger,
		backupDir:    backupDir,
		artifactPath: artifactPath,
		retention:    retention,
	}
}

// Snapshot은 아티팩트의 타임스탬프 백업을 생성합니다.
// 복사 실패는 호출자를 중단시켜야 합니다: 백업 없는 파괴적 쓰기는 허용되지 않습니다
func (s *BackupService) Snapshot(ctx context.Context, artifactPath string) (entities.Backup, error) {
	// 백업 디렉토리 생성
	if err := s.fileSystem.MkdirAll(s.backupDir, 0755); err != nil {
		return entities.Backup{}, errors.NewSystemError("백업 디렉토리 생성 실패", err)
	}

	// 원본이 없으면 빈 내용으로 백업 (최초 구성 시나리오)
	var content []byte
	if s.fileSystem.Exists(artifactPath) {
		read, err := s.fileSystem.ReadFile(artifactPath)
		if err != nil {
			return entities.Backup{}, errors.NewSystemError("아티팩트 읽기 실패", err)
		}
		content = read
	} else {
		s.logger.WithField("path", artifactPath).Warn("백업할 아티팩트가 없어 빈 백업 생성")
	}

	// 백업 파일명 생성 (예: interfaces_20250108_150405.bak)
	now := s.clock.Now()
	backupFileName := fmt.Sprintf("%s_%s.bak", filepath.Base(artifactPath), now.Format("20060102_150405"))
	backupPath := filepath.Join(s.backupDir, backupFileName)

	// 같은 초 내 중복 생성 시 접미사로 구분
	for seq := 1; s.fileSystem.Exists(backupPath); seq++ {
		backupFileName = fmt.Sprintf("%s_%s_%d.bak", filepath.Base(artifactPath), now.Format("20060102_150405"), seq)
		backupPath = filepath.Join(s.backupDir, backupFileName)
	}

	if err := s.fileSystem.WriteFile(backupPath, content, 0644); err != nil {
		return entities.Backup{}, errors.NewSystemError("백업 파일 저장 실패", err)
	}

	metrics.BackupsCreated.Inc()
	s.logger.WithFields(logrus.Fields{
		"source":      artifactPath,
		"backup_path": backupPath,
	}).Info("설정 백업 생성 완료")

	// 보존 개수 초과분 정리. 정리 실패는 경고로만 처리 (주 작업을 중단하지 않음)
	if err := s.Prune(ctx); err != nil {
		s.logger.WithError(err).Warn("백업 정리 실패")
	}

	return entities.Backup{
		FileName:   backupFileName,
		Path:       backupPath,
		SourcePath: artifactPath,
		CreatedAt:  now,
	}, nil
}

// Prune은 보존 개수를 초과하는 백업을 생성 시각 기준으로 오래된 것부터 삭제합니다
func (s *BackupService) Prune(ctx context.Context) error {
	backups, err := s.List(ctx)
	if err != nil {
		return err
	}

	if len(backups) <= s.retention {
		return nil
	}

	// List는 최신순이므로 보존 개수 이후가 삭제 대상
	for _, backup := range backups[s.retention:] {
		if err := s.fileSystem.Remove(backup.Path); err != nil {
			return errors.NewSystemError(fmt.Sprintf("백업 삭제 실패: %s", backup.FileName), err)
		}
		metrics.BackupsPruned.Inc()
		s.logger.WithField("backup_file", backup.FileName).Info("보존 기한 초과 백업 삭제")
	}

	return nil
}

// Restore는 선택한 백업을 라이브 아티팩트 위로 복사합니다.
// 활성화와 활성화 실패 처리(복구 불가 판정)는 호출자 책임입니다
func (s *BackupService) Restore(ctx context.Context, backup entities.Backup) error {
	content, err := s.fileSystem.ReadFile(backup.Path)
	if err != nil {
		return errors.NewIrrecoverableError(
			fmt.Sprintf("백업 읽기 실패: %s", backup.Path), err)
	}

	if err := s.fileSystem.WriteFile(s.artifactPath, content, 0644); err != nil {
		return errors.NewIrrecoverableError(
			fmt.Sprintf("백업 복원 실패: %s -> %s", backup.Path, s.artifactPath), err)
	}

	s.logger.WithFields(logrus.Fields{
		"backup_file": backup.FileName,
		"target":      s.artifactPath,
	}).Info("백업 복원 완료")

	return nil
}

// List는 백업 목록을 생성 시각 기준 최신순으로 반환합니다 (파일명 사전순이 아님)
func (s *BackupService) List(ctx context.Context) ([]entities.Backup, error) {
	if !s.fileSystem.Exists(s.backupDir) {
		return []entities.Backup{}, nil
	}

	files, err := s.fileSystem.ListFiles(s.backupDir)
	if err != nil {
		return nil, errors.NewSystemError("백업 디렉토리 읽기 실패", err)
	}

	var backups []entities.Backup
	for _, file := range files {
		path := filepath.Join(s.backupDir, file)
		info, err := s.fileSystem.Stat(path)
		if err != nil {
			s.logger.WithError(err).WithField("file", file).Warn("백업 파일 정보 조회 실패, 목록에서 제외")
			continue
		}
		backups = append(backups, entities.Backup{
			FileName:   file,
			Path:       path,
			SourcePath: s.artifactPath,
			CreatedAt:  info.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}
