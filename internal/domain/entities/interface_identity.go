package entities

import (
	"errors"

	"netswitch-tool/pkg/utils"
)

// IdentityState는 MAC 기반 이름 바인딩의 활성화 상태를 나타냅니다
type IdentityState string

const (
	// IdentityStatePending은 바인딩 의도만 있는 상태입니다
	IdentityStatePending IdentityState = "pending"

	// IdentityStateBoundAwaitingReboot은 바인딩 파일이 기록되어 재부팅을 기다리는 상태입니다.
	// 실제 이름 변경은 부팅 시 장치 열거자가 수행하며, 이 시스템은 상태 전이를 관찰만 합니다
	IdentityStateBoundAwaitingReboot IdentityState = "bound-awaiting-reboot"

	// IdentityStateActive는 재부팅 후 바인딩이 적용된 상태입니다
	IdentityStateActive IdentityState = "active"
)

var (
	ErrZeroMacAddress   = errors.New("하드웨어 주소가 제로 주소임")
	ErrEmptyMacAddress  = errors.New("하드웨어 주소가 비어있음")
	ErrSameName         = errors.New("현재 이름과 대상 이름이 동일함")
	ErrInvalidMacFormat = errors.New("유효하지 않은 MAC 주소 형식")
)

// InterfaceIdentity는 하드웨어 주소와 영구 인터페이스 이름 간의 바인딩입니다
type InterfaceIdentity struct {
	MacAddress  string
	CurrentName string // 휘발성 이름 (예: enp3s0)
	TargetName  string // 안정적 이름 (예: lan0)
	State       IdentityState
}

// NewInterfaceIdentity는 새로운 바인딩을 생성합니다. 제로/빈 MAC은 거부됩니다
func NewInterfaceIdentity(mac, currentName, targetName string) (*InterfaceIdentity, error) {
	if mac == "" {
		return nil, ErrEmptyMacAddress
	}
	if mac == utils.ZeroMacAddress {
		return nil, ErrZeroMacAddress
	}
	if err := utils.ValidateMACAddress(mac); err != nil {
		return nil, ErrInvalidMacFormat
	}
	if err := utils.ValidateInterfaceName(currentName); err != nil {
		return nil, err
	}
	if err := utils.ValidateInterfaceName(targetName); err != nil {
		return nil, err
	}
	if currentName == targetName {
		return nil, ErrSameName
	}
	return &InterfaceIdentity{
		MacAddress:  mac,
		CurrentName: currentName,
		TargetName:  targetName,
		State:       IdentityStatePending,
	}, nil
}

// MarkBound는 바인딩 파일 기록 완료 후 재부팅 대기 상태로 전이합니다
func (i *InterfaceIdentity) MarkBound() {
	i.State = IdentityStateBoundAwaitingReboot
}
