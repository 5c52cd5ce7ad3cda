package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"netswitch-tool/internal/domain/entities"
	"netswitch-tool/internal/domain/errors"

	"github.com/sirupsen/logrus"
)

// StanzaSynthesizer는 검증된 파라미터로부터 네트워크 설정 스탠자를 합성하는 도메인 서비스입니다.
// 합성 순서는 고정입니다: Loopback -> Bond -> Bridge -> Vlan.
// 뒤의 스탠자가 앞의 스탠자가 만든 장치를 참조하므로 순서는 정확성 요구사항입니다
type StanzaSynthesizer struct {
	logger *logrus.Logger
}

// NewStanzaSynthesizer는 새로운 StanzaSynthesizer를 생성합니다
func NewStanzaSynthesizer(logger *logrus.Logger) *StanzaSynthesizer {
	return &StanzaSynthesizer{logger: logger}
}

// SynthesisResult는 합성 결과입니다
type SynthesisResult struct {
	Content []byte   // 스테이징할 전체 아티팩트 내용
	Emitted []string // 새로 합성된 스탠자 식별자
	Skipped []string // 이미 존재하여 건너뛴 스탠자 식별자
}

// Changed는 기존 아티팩트 대비 변경 여부를 반환합니다
func (r *SynthesisResult) Changed() bool {
	return len(r.Emitted) > 0
}

// Synthesize는 기존 아티팩트 내용을 읽어 누락된 스탠자만 덧붙인 스테이징 내용을 생성합니다.
// 동일 식별자의 스탠자가 이미 존재하면 에러 없이 건너뛰고 no-op을 기록하므로
// 반복 실행은 발산하지 않고 수렴합니다
func (s *StanzaSynthesizer) Synthesize(existing []byte, params *entities.ParameterSet) (*SynthesisResult, error) {
	// 검증되지 않은 필드로는 어떤 스탠자도 합성하지 않음
	if err := params.Validate(); err != nil {
		return nil, errors.NewValidationError("파라미터 검증 실패", err)
	}

	staged := entities.NewArtifact("")
	result := &SynthesisResult{}

	for _, stanza := range s.buildAll(params) {
		if HasStanza(existing, stanza.Identifier) {
			s.logger.WithFields(logrus.Fields{
				"identifier": stanza.Identifier,
				"kind":       stanza.Kind,
			}).Info("스탠자가 이미 존재하여 합성 건너뜀 (no-op)")
			result.Skipped = append(result.Skipped, stanza.Identifier)
			continue
		}
		// Validate가 식별자 충돌을 걸러내므로 여기서의 중복은 내부 불변식 위반
		if err := staged.Append(stanza); err != nil {
			return nil, errors.NewSystemError("스탠자 추가 실패", err)
		}
		result.Emitted = append(result.Emitted, stanza.Identifier)
	}

	result.Content = mergeContent(existing, staged)
	return result, nil
}

// buildAll은 고정된 순서로 전체 스탠자 목록을 생성합니다
func (s *StanzaSynthesizer) buildAll(params *entities.ParameterSet) []entities.Stanza {
	stanzas := []entities.Stanza{
		buildLoopback(),
		buildBond(params),
		buildBridge(params),
	}
	if params.ManagementVlanID > 0 {
		stanzas = append(stanzas, buildManagementVlan(params))
	}
	return stanzas
}

// buildLoopback은 루프백 스탠자를 생성합니다
func buildLoopback() entities.Stanza {
	return entities.Stanza{
		Kind:       entities.StanzaKindLoopback,
		Identifier: "lo",
		Method:     "loopback",
	}
}

// buildBond는 링크 집계 스탠자를 생성합니다. 스토리지/클러스터 트래픽을
// 운반하므로 MTU는 점보 프레임 고정입니다
func buildBond(params *entities.ParameterSet) entities.Stanza {
	return entities.Stanza{
		Kind:       entities.StanzaKindBond,
		Identifier: params.BondName,
		Method:     "manual",
		Options: []entities.Option{
			{Key: "bond-slaves", Value: strings.Join(params.BondMembers, " ")},
			{Key: "bond-miimon", Value: "100"},
			{Key: "bond-mode", Value: "802.3ad"},
			{Key: "bond-xmit-hash-policy", Value: "layer2+3"},
			{Key: "mtu", Value: strconv.Itoa(entities.MTUJumbo)},
		},
	}
}

// buildBridge는 VLAN 인지 브리지 스탠자를 생성합니다.
// 관리 VLAN이 없으면 관리 주소를 브리지에 직접 부여합니다
func buildBridge(params *entities.ParameterSet) entities.Stanza {
	stanza := entities.Stanza{
		Kind:       entities.StanzaKindBridge,
		Identifier: params.BridgeName,
		Method:     "manual",
	}

	if params.ManagementVlanID == 0 {
		stanza.Method = "static"
		stanza.Options = append(stanza.Options,
			entities.Option{Key: "address", Value: params.ManagementAddress},
			entities.Option{Key: "netmask", Value: params.Netmask()},
		)
		if params.Gateway != "" {
			stanza.Options = append(stanza.Options,
				entities.Option{Key: "gateway", Value: params.Gateway})
		}
	}

	stanza.Options = append(stanza.Options,
		entities.Option{Key: "bridge-ports", Value: params.BondName},
		entities.Option{Key: "bridge-stp", Value: "off"},
		entities.Option{Key: "bridge-fd", Value: "0"},
		entities.Option{Key: "bridge-vlan-aware", Value: "yes"},
		entities.Option{Key: "bridge-vids", Value: "2-4094"},
		entities.Option{Key: "mtu", Value: strconv.Itoa(entities.MTUJumbo)},
	)
	return stanza
}

// buildManagementVlan은 관리 VLAN 스탠자를 생성합니다. 관리 전용 경로이므로 표준 MTU입니다
func buildManagementVlan(params *entities.ParameterSet) entities.Stanza {
	identifier := fmt.Sprintf("%s.%d", params.BridgeName, params.ManagementVlanID)
	options := []entities.Option{
		{Key: "address", Value: params.ManagementAddress},
		{Key: "netmask", Value: params.Netmask()},
	}
	if params.Gateway != "" {
		options = append(options, entities.Option{Key: "gateway", Value: params.Gateway})
	}
	options = append(options, entities.Option{Key: "mtu", Value: strconv.Itoa(entities.MTUStandard)})

	return entities.Stanza{
		Kind:       entities.StanzaKindVlan,
		Identifier: identifier,
		Method:     "static",
		Options:    options,
	}
}

// HasStanza는 아티팩트 텍스트에 해당 식별자의 스탠자가 존재하는지 확인합니다.
// iface 또는 auto 지시어 기준의 단어 단위 일치만 인정합니다
func HasStanza(content []byte, identifier string) bool {
	if len(content) == 0 {
		return false
	}
	pattern := regexp.MustCompile(
		`(?m)^\s*(iface|auto)\s+` + regexp.QuoteMeta(identifier) + `(\s|$)`)
	return pattern.Match(content)
}

// mergeContent는 기존 내용 뒤에 새로 합성된 스탠자를 덧붙입니다.
// 합성할 것이 없으면 기존 내용이 바이트 단위로 그대로 유지됩니다
func mergeContent(existing []byte, staged *entities.Artifact) []byte {
	if len(staged.Stanzas) == 0 {
		return existing
	}

	rendered := staged.Render()
	if len(existing) == 0 {
		return []byte(rendered)
	}

	base := strings.TrimRight(string(existing), "\n")
	return []byte(base + "\n\n" + rendered)
}
