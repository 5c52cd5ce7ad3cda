package services

import (
	"testing"

	"netswitch-tool/internal/domain/entities"
	"netswitch-tool/internal/domain/errors"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return logger
}

func testParams() *entities.ParameterSet {
	return &entities.ParameterSet{
		BondName:          "bond0",
		BondMembers:       []string{"eth0", "eth1"},
		BridgeName:        "vmbr0",
		ManagementAddress: "10.0.0.2",
		PrefixLength:      24,
		Gateway:           "10.0.0.1",
		ManagementVlanID:  100,
	}
}

func TestStanzaSynthesizer_Synthesize(t *testing.T) {
	t.Run("빈 아티팩트에서 전체 스탠자 합성", func(t *testing.T) {
		synthesizer := NewStanzaSynthesizer(testLogger())

		result, err := synthesizer.Synthesize(nil, testParams())

		require.NoError(t, err)
		assert.Equal(t, []string{"lo", "bond0", "vmbr0", "vmbr0.100"}, result.Emitted)
		assert.Empty(t, result.Skipped)
		assert.True(t, result.Changed())

		content := string(result.Content)
		assert.Contains(t, content, "iface lo inet loopback")
		assert.Contains(t, content, "iface bond0 inet manual")
		assert.Contains(t, content, "bond-slaves eth0 eth1")
		assert.Contains(t, content, "bond-mode 802.3ad")
		assert.Contains(t, content, "bond-xmit-hash-policy layer2+3")
		assert.Contains(t, content, "bridge-vlan-aware yes")
		assert.Contains(t, content, "bridge-vids 2-4094")
		assert.Contains(t, content, "iface vmbr0.100 inet static")
		assert.Contains(t, content, "netmask 255.255.255.0")
		assert.Contains(t, content, "gateway 10.0.0.1")
	})

	t.Run("관리 VLAN이 있으면 브리지는 manual, VLAN은 표준 MTU", func(t *testing.T) {
		synthesizer := NewStanzaSynthesizer(testLogger())

		result, err := synthesizer.Synthesize(nil, testParams())

		require.NoError(t, err)
		content := string(result.Content)
		assert.Contains(t, content, "iface vmbr0 inet manual")
		assert.Contains(t, content, "mtu 9000")
		assert.Contains(t, content, "mtu 1500")
	})

	t.Run("관리 VLAN이 없으면 주소를 브리지에 직접 부여", func(t *testing.T) {
		synthesizer := NewStanzaSynthesizer(testLogger())
		params := testParams()
		params.ManagementVlanID = 0

		result, err := synthesizer.Synthesize(nil, params)

		require.NoError(t, err)
		assert.Equal(t, []string{"lo", "bond0", "vmbr0"}, result.Emitted)

		content := string(result.Content)
		assert.Contains(t, content, "iface vmbr0 inet static")
		assert.Contains(t, content, "address 10.0.0.2")
		assert.NotContains(t, content, "vmbr0.100")
	})

	t.Run("기존 스탠자는 건너뛰고 누락분만 합성", func(t *testing.T) {
		synthesizer := NewStanzaSynthesizer(testLogger())
		existing := []byte("auto lo\niface lo inet loopback\n\nauto bond0\niface bond0 inet manual\n    bond-slaves eth0 eth1\n")

		result, err := synthesizer.Synthesize(existing, testParams())

		require.NoError(t, err)
		assert.Equal(t, []string{"lo", "bond0"}, result.Skipped)
		assert.Equal(t, []string{"vmbr0", "vmbr0.100"}, result.Emitted)
	})

	t.Run("반복 실행은 바이트 단위로 수렴", func(t *testing.T) {
		synthesizer := NewStanzaSynthesizer(testLogger())
		params := testParams()

		first, err := synthesizer.Synthesize(nil, params)
		require.NoError(t, err)
		require.True(t, first.Changed())

		second, err := synthesizer.Synthesize(first.Content, params)
		require.NoError(t, err)

		assert.False(t, second.Changed())
		assert.Empty(t, second.Emitted)
		assert.Equal(t, []string{"lo", "bond0", "vmbr0", "vmbr0.100"}, second.Skipped)
		assert.Equal(t, first.Content, second.Content)
	})

	t.Run("검증 실패 시 아무것도 합성하지 않음", func(t *testing.T) {
		synthesizer := NewStanzaSynthesizer(testLogger())
		params := testParams()
		params.ManagementAddress = "300.0.0.1"

		result, err := synthesizer.Synthesize(nil, params)

		assert.Nil(t, result)
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestHasStanza(t *testing.T) {
	content := []byte("auto bond0\niface bond0 inet manual\n    bond-slaves eth0 eth1\n")

	tests := []struct {
		name       string
		identifier string
		want       bool
	}{
		{name: "존재하는 식별자", identifier: "bond0", want: true},
		{name: "존재하지 않는 식별자", identifier: "vmbr0", want: false},
		{name: "접두 부분 일치는 불인정", identifier: "bond", want: false},
		{name: "옵션 값 내 단어는 불인정", identifier: "eth0", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasStanza(content, tt.identifier))
		})
	}
}
