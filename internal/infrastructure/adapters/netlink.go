package adapters

import (
	"context"
	"errors"
	"fmt"

	domainerrors "netswitch-tool/internal/domain/errors"
	"netswitch-tool/internal/domain/interfaces"

	"github.com/vishvananda/netlink"
)

// NetlinkRepository는 netlink를 통해 라이브 링크 상태를 조회하는 LinkRepository 구현체입니다
type NetlinkRepository struct{}

// NewNetlinkRepository는 새로운 NetlinkRepository를 생성합니다
func NewNetlinkRepository() interfaces.LinkRepository {
	return &NetlinkRepository{}
}

// List는 모든 라이브 링크를 반환합니다
func (r *NetlinkRepository) List(ctx context.Context) ([]interfaces.Link, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, domainerrors.NewSystemError("링크 목록 조회 실패", err)
	}

	result := make([]interfaces.Link, 0, len(links))
	for _, link := range links {
		attrs := link.Attrs()
		result = append(result, interfaces.Link{
			Name:       attrs.Name,
			MacAddress: attrs.HardwareAddr.String(),
			State:      attrs.OperState.String(),
			MTU:        attrs.MTU,
		})
	}
	return result, nil
}

// Exists는 해당 이름의 링크가 존재하는지 확인합니다
func (r *NetlinkRepository) Exists(ctx context.Context, name string) (bool, error) {
	_, err := netlink.LinkByName(name)
	if err != nil {
		var notFound netlink.LinkNotFoundError
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, domainerrors.NewSystemError(fmt.Sprintf("링크 조회 실패: %s", name), err)
	}
	return true, nil
}

// MacAddress는 링크의 하드웨어 주소를 반환합니다
func (r *NetlinkRepository) MacAddress(ctx context.Context, name string) (string, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		var notFound netlink.LinkNotFoundError
		if errors.As(err, &notFound) {
			return "", domainerrors.NewPreconditionError(
				fmt.Sprintf("인터페이스가 존재하지 않음: %s", name), err)
		}
		return "", domainerrors.NewSystemError(fmt.Sprintf("링크 조회 실패: %s", name), err)
	}
	return link.Attrs().HardwareAddr.String(), nil
}
