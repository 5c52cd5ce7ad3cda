package entities

import (
	"fmt"

	"netswitch-tool/pkg/utils"
)

// ParameterSet은 스탠자 합성에 사용되는 사용자 입력값의 집합입니다.
// 합성기는 Validate를 통과한 ParameterSet만 받아들입니다.
type ParameterSet struct {
	BondName          string   // 예: bond0
	BondMembers       []string // 순서가 보존되는 물리 인터페이스 목록
	BridgeName        string   // 예: vmbr0
	ManagementAddress string   // 관리 IP (점 표기)
	PrefixLength      int      // CIDR 프리픽스 (1~32)
	Gateway           string   // 기본 게이트웨이 (빈 값 허용)
	ManagementVlanID  int      // 0이면 관리 주소를 브리지에 직접 부여
}

// Validate는 모든 필드를 검증합니다. 하나라도 실패하면 어떤 변경도 수행되지 않아야 합니다
func (p *ParameterSet) Validate() error {
	if err := utils.ValidateInterfaceName(p.BondName); err != nil {
		return fmt.Errorf("본드 이름 검증 실패: %w", err)
	}
	if err := utils.ValidateInterfaceName(p.BridgeName); err != nil {
		return fmt.Errorf("브리지 이름 검증 실패: %w", err)
	}
	if len(p.BondMembers) < 1 {
		return fmt.Errorf("본드 멤버 인터페이스가 없음")
	}
	for _, member := range p.BondMembers {
		if err := utils.ValidateInterfaceName(member); err != nil {
			return fmt.Errorf("본드 멤버 검증 실패: %w", err)
		}
	}
	if err := utils.ValidateIPv4(p.ManagementAddress); err != nil {
		return fmt.Errorf("관리 IP 검증 실패: %w", err)
	}
	if err := utils.ValidateCIDR(p.PrefixLength); err != nil {
		return fmt.Errorf("프리픽스 검증 실패: %w", err)
	}
	if p.Gateway != "" {
		if err := utils.ValidateIPv4(p.Gateway); err != nil {
			return fmt.Errorf("게이트웨이 검증 실패: %w", err)
		}
	}
	if p.ManagementVlanID < 0 || p.ManagementVlanID > 4094 {
		return fmt.Errorf("잘못된 관리 VLAN ID: %d (0~4094)", p.ManagementVlanID)
	}
	// 합성되는 스탠자 식별자는 서로 달라야 함 (루프백 포함)
	if p.BondName == "lo" || p.BridgeName == "lo" {
		return fmt.Errorf("예약된 장치 이름은 사용할 수 없음: lo")
	}
	if p.BondName == p.BridgeName {
		return fmt.Errorf("본드와 브리지 이름이 같음: %s", p.BondName)
	}
	if p.ManagementVlanID > 0 && p.BondName == fmt.Sprintf("%s.%d", p.BridgeName, p.ManagementVlanID) {
		return fmt.Errorf("본드 이름이 관리 VLAN 장치 이름과 충돌: %s", p.BondName)
	}
	return nil
}

// Netmask는 프리픽스를 점 표기 넷마스크로 변환해 반환합니다
func (p *ParameterSet) Netmask() string {
	return utils.PrefixToNetmask(p.PrefixLength)
}
