package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateIPv4(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{
			name:    "유효한 주소",
			address: "192.168.1.10",
			wantErr: false,
		},
		{
			name:    "경계값 0과 255",
			address: "0.0.0.255",
			wantErr: false,
		},
		{
			name:    "빈 주소",
			address: "",
			wantErr: true,
		},
		{
			name:    "옥텟 3개",
			address: "192.168.1",
			wantErr: true,
		},
		{
			name:    "옥텟 범위 초과",
			address: "192.168.1.256",
			wantErr: true,
		},
		{
			name:    "숫자가 아닌 옥텟",
			address: "192.168.one.1",
			wantErr: true,
		},
		{
			name:    "빈 옥텟",
			address: "192..1.1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIPv4(tt.address)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCIDR(t *testing.T) {
	tests := []struct {
		name    string
		prefix  int
		wantErr bool
	}{
		{name: "일반적인 프리픽스 24", prefix: 24, wantErr: false},
		{name: "최소 경계 1", prefix: 1, wantErr: false},
		{name: "최대 경계 32", prefix: 32, wantErr: false},
		{name: "0은 거부", prefix: 0, wantErr: true},
		{name: "33은 거부", prefix: 33, wantErr: true},
		{name: "음수는 거부", prefix: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCIDR(tt.prefix)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateInterfaceName(t *testing.T) {
	tests := []struct {
		name    string
		ifName  string
		wantErr bool
	}{
		{name: "유효한 본드 이름", ifName: "bond0", wantErr: false},
		{name: "유효한 브리지 이름", ifName: "vmbr0", wantErr: false},
		{name: "VLAN 표기 포함", ifName: "vmbr0.100", wantErr: false},
		{name: "빈 이름", ifName: "", wantErr: true},
		{name: "대문자로 시작", ifName: "Eth0", wantErr: true},
		{name: "숫자로 시작", ifName: "0eth", wantErr: true},
		{name: "커널 제한 15자 초과", ifName: "verylonginterface0", wantErr: true},
		{name: "공백 포함", ifName: "eth 0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInterfaceName(tt.ifName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateHostname(t *testing.T) {
	tests := []struct {
		name     string
		hostname string
		wantErr  bool
	}{
		{name: "유효한 호스트네임", hostname: "pve-node01", wantErr: false},
		{name: "도메인 포함", hostname: "node01.cluster.local", wantErr: false},
		{name: "빈 호스트네임", hostname: "", wantErr: true},
		{name: "하이픈으로 끝남", hostname: "node01-", wantErr: true},
		{name: "언더스코어 포함", hostname: "node_01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHostname(tt.hostname)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMACAddress(t *testing.T) {
	tests := []struct {
		name    string
		mac     string
		wantErr bool
	}{
		{name: "콜론 구분", mac: "aa:bb:cc:dd:ee:ff", wantErr: false},
		{name: "하이픈 구분", mac: "AA-BB-CC-DD-EE-FF", wantErr: false},
		{name: "빈 주소", mac: "", wantErr: true},
		{name: "제로 주소는 거부", mac: "00:00:00:00:00:00", wantErr: true},
		{name: "자릿수 부족", mac: "aa:bb:cc:dd:ee", wantErr: true},
		{name: "16진수가 아님", mac: "gg:bb:cc:dd:ee:ff", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMACAddress(tt.mac)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPrefixToNetmask(t *testing.T) {
	tests := []struct {
		name   string
		prefix int
		want   string
	}{
		{name: "프리픽스 24", prefix: 24, want: "255.255.255.0"},
		{name: "프리픽스 16", prefix: 16, want: "255.255.0.0"},
		{name: "프리픽스 22", prefix: 22, want: "255.255.252.0"},
		{name: "프리픽스 32", prefix: 32, want: "255.255.255.255"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrefixToNetmask(tt.prefix))
		})
	}
}
