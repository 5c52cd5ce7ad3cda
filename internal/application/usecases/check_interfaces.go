package usecases

import (
	"context"
	"os"

	"netswitch-tool/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// CheckInterfacesUseCase는 라이브 링크 상태를 조회하는 읽기 전용 유스케이스입니다
type CheckInterfacesUseCase struct {
	linkRepository interfaces.LinkRepository
	logger         *logrus.Logger
}

// NewCheckInterfacesUseCase는 새로운 CheckInterfacesUseCase를 생성합니다
func NewCheckInterfacesUseCase(
	linkRepo interfaces.LinkRepository,
	logger *logrus.Logger,
) *CheckInterfacesUseCase {
	return &CheckInterfacesUseCase{
		linkRepository: linkRepo,
		logger:         logger,
	}
}

// Execute는 라이브 링크 목록을 반환합니다
func (uc *CheckInterfacesUseCase) Execute(ctx context.Context) ([]interfaces.Link, error) {
	links, err := uc.linkRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	uc.logger.WithField("count", len(links)).Debug("라이브 링크 조회 완료")
	return links, nil
}

// ChangeHostnameUseCase는 호스트네임 변경 유스케이스입니다
type ChangeHostnameUseCase struct {
	hostnameChanger interfaces.HostnameChanger
	logger          *logrus.Logger
}

// NewChangeHostnameUseCase는 새로운 ChangeHostnameUseCase를 생성합니다
func NewChangeHostnameUseCase(
	changer interfaces.HostnameChanger,
	logger *logrus.Logger,
) *ChangeHostnameUseCase {
	return &ChangeHostnameUseCase{
		hostnameChanger: changer,
		logger:          logger,
	}
}

// Execute는 호스트네임 변경 유스케이스를 실행합니다
func (uc *ChangeHostnameUseCase) Execute(ctx context.Context, newHostname string) error {
	oldHostname, err := os.Hostname()
	if err != nil {
		oldHostname = ""
		uc.logger.WithError(err).Warn("현재 호스트네임 조회 실패")
	}

	return uc.hostnameChanger.Change(ctx, oldHostname, newHostname)
}
