package entities

import (
	"fmt"
	"strings"
)

// StanzaKind는 설정 스탠자의 종류를 나타냅니다
type StanzaKind string

const (
	StanzaKindLoopback StanzaKind = "loopback"
	StanzaKindBond     StanzaKind = "bond"
	StanzaKindBridge   StanzaKind = "bridge"
	StanzaKindVlan     StanzaKind = "vlan"
)

// MTU 정책: 스토리지/클러스터 경로는 점보 프레임, 관리 경로는 표준
const (
	MTUJumbo    = 9000
	MTUStandard = 1500
)

// Option은 스탠자 내부의 순서가 있는 키/값 설정입니다
type Option struct {
	Key   string
	Value string
}

// Stanza는 단일 네트워크 장치에 대한 설정 블록을 나타냅니다
type Stanza struct {
	Kind       StanzaKind
	Identifier string // 장치 이름 (예: bond0, vmbr0)
	Method     string // loopback, manual, static
	Options    []Option
}

// Render는 스탠자를 interfaces(5) 텍스트 블록으로 직렬화합니다
func (s Stanza) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "auto %s\n", s.Identifier)
	fmt.Fprintf(&b, "iface %s inet %s\n", s.Identifier, s.Method)
	for _, opt := range s.Options {
		fmt.Fprintf(&b, "    %s %s\n", opt.Key, opt.Value)
	}
	return b.String()
}

// Artifact는 호스트 네트워크 상태를 나타내는 단일 설정 파일의 스테이징 사본입니다.
// 스탠자 순서가 보존되며, 직렬화 시점에만 텍스트로 변환됩니다.
type Artifact struct {
	Path    string
	Stanzas []Stanza
}

// NewArtifact는 주어진 라이브 경로에 대한 빈 스테이징 아티팩트를 생성합니다
func NewArtifact(path string) *Artifact {
	return &Artifact{Path: path}
}

// Has는 해당 종류/식별자의 스탠자가 이미 포함되어 있는지 확인합니다
func (a *Artifact) Has(kind StanzaKind, identifier string) bool {
	for _, s := range a.Stanzas {
		if s.Kind == kind && s.Identifier == identifier {
			return true
		}
	}
	return false
}

// HasIdentifier는 종류와 무관하게 해당 식별자의 스탠자가 있는지 확인합니다
func (a *Artifact) HasIdentifier(identifier string) bool {
	for _, s := range a.Stanzas {
		if s.Identifier == identifier {
			return true
		}
	}
	return false
}

// Append는 스탠자를 추가합니다. 동일 종류 내 식별자 중복은 허용되지 않습니다
func (a *Artifact) Append(s Stanza) error {
	if a.Has(s.Kind, s.Identifier) {
		return fmt.Errorf("스탠자 식별자 중복: %s (%s)", s.Identifier, s.Kind)
	}
	a.Stanzas = append(a.Stanzas, s)
	return nil
}

// Render는 전체 아티팩트를 텍스트로 직렬화합니다
func (a *Artifact) Render() string {
	blocks := make([]string, 0, len(a.Stanzas))
	for _, s := range a.Stanzas {
		blocks = append(blocks, s.Render())
	}
	return strings.Join(blocks, "\n")
}
