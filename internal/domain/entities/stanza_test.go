package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStanza_Render(t *testing.T) {
	tests := []struct {
		name   string
		stanza Stanza
		want   string
	}{
		{
			name: "루프백 스탠자",
			stanza: Stanza{
				Kind:       StanzaKindLoopback,
				Identifier: "lo",
				Method:     "loopback",
			},
			want: "auto lo\niface lo inet loopback\n",
		},
		{
			name: "옵션이 있는 본드 스탠자",
			stanza: Stanza{
				Kind:       StanzaKindBond,
				Identifier: "bond0",
				Method:     "manual",
				Options: []Option{
					{Key: "bond-slaves", Value: "eth0 eth1"},
					{Key: "bond-mode", Value: "802.3ad"},
				},
			},
			want: "auto bond0\niface bond0 inet manual\n    bond-slaves eth0 eth1\n    bond-mode 802.3ad\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stanza.Render())
		})
	}
}

func TestArtifact_Append(t *testing.T) {
	t.Run("정상 추가", func(t *testing.T) {
		artifact := NewArtifact("/etc/network/interfaces")

		err := artifact.Append(Stanza{Kind: StanzaKindBond, Identifier: "bond0", Method: "manual"})

		require.NoError(t, err)
		assert.True(t, artifact.Has(StanzaKindBond, "bond0"))
		assert.True(t, artifact.HasIdentifier("bond0"))
	})

	t.Run("동일 종류 내 식별자 중복은 거부", func(t *testing.T) {
		artifact := NewArtifact("/etc/network/interfaces")
		require.NoError(t, artifact.Append(Stanza{Kind: StanzaKindBond, Identifier: "bond0", Method: "manual"}))

		err := artifact.Append(Stanza{Kind: StanzaKindBond, Identifier: "bond0", Method: "manual"})

		assert.Error(t, err)
		assert.Len(t, artifact.Stanzas, 1)
	})
}

func TestArtifact_Render(t *testing.T) {
	t.Run("스탠자 블록은 빈 줄로 구분", func(t *testing.T) {
		artifact := NewArtifact("/etc/network/interfaces")
		require.NoError(t, artifact.Append(Stanza{Kind: StanzaKindLoopback, Identifier: "lo", Method: "loopback"}))
		require.NoError(t, artifact.Append(Stanza{Kind: StanzaKindBond, Identifier: "bond0", Method: "manual"}))

		want := "auto lo\niface lo inet loopback\n\nauto bond0\niface bond0 inet manual\n"
		assert.Equal(t, want, artifact.Render())
	})

	t.Run("빈 아티팩트는 빈 문자열", func(t *testing.T) {
		artifact := NewArtifact("/etc/network/interfaces")
		assert.Equal(t, "", artifact.Render())
	})
}
