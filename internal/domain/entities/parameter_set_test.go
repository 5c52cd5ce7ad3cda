package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validParameterSet() ParameterSet {
	return ParameterSet{
		BondName:          "bond0",
		BondMembers:       []string{"eth0", "eth1"},
		BridgeName:        "vmbr0",
		ManagementAddress: "10.0.0.2",
		PrefixLength:      24,
		Gateway:           "10.0.0.1",
		ManagementVlanID:  100,
	}
}

func TestParameterSet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *ParameterSet)
		wantErr bool
	}{
		{
			name:    "유효한 파라미터",
			mutate:  func(p *ParameterSet) {},
			wantErr: false,
		},
		{
			name:    "게이트웨이는 생략 가능",
			mutate:  func(p *ParameterSet) { p.Gateway = "" },
			wantErr: false,
		},
		{
			name:    "VLAN 0은 관리 VLAN 없음을 의미",
			mutate:  func(p *ParameterSet) { p.ManagementVlanID = 0 },
			wantErr: false,
		},
		{
			name:    "잘못된 본드 이름",
			mutate:  func(p *ParameterSet) { p.BondName = "Bond 0" },
			wantErr: true,
		},
		{
			name:    "본드 멤버 없음",
			mutate:  func(p *ParameterSet) { p.BondMembers = nil },
			wantErr: true,
		},
		{
			name:    "잘못된 본드 멤버 이름",
			mutate:  func(p *ParameterSet) { p.BondMembers = []string{"eth0", "9bad"} },
			wantErr: true,
		},
		{
			name:    "잘못된 관리 주소",
			mutate:  func(p *ParameterSet) { p.ManagementAddress = "10.0.0.999" },
			wantErr: true,
		},
		{
			name:    "잘못된 프리픽스",
			mutate:  func(p *ParameterSet) { p.PrefixLength = 0 },
			wantErr: true,
		},
		{
			name:    "잘못된 게이트웨이",
			mutate:  func(p *ParameterSet) { p.Gateway = "gateway" },
			wantErr: true,
		},
		{
			name:    "VLAN 범위 초과",
			mutate:  func(p *ParameterSet) { p.ManagementVlanID = 4095 },
			wantErr: true,
		},
		{
			name:    "본드와 브리지 이름이 같으면 거부",
			mutate:  func(p *ParameterSet) { p.BridgeName = p.BondName },
			wantErr: true,
		},
		{
			name:    "루프백 이름은 예약됨",
			mutate:  func(p *ParameterSet) { p.BondName = "lo" },
			wantErr: true,
		},
		{
			name:    "본드 이름이 관리 VLAN 장치 이름과 충돌하면 거부",
			mutate:  func(p *ParameterSet) { p.BondName = "vmbr0.100" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParameterSet()
			tt.mutate(&params)

			err := params.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParameterSet_Netmask(t *testing.T) {
	params := validParameterSet()
	params.PrefixLength = 22

	assert.Equal(t, "255.255.252.0", params.Netmask())
}
