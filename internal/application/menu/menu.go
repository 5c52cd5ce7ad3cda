package menu

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"netswitch-tool/internal/application/usecases"
	"netswitch-tool/internal/domain/entities"
	"netswitch-tool/internal/domain/errors"
	"netswitch-tool/internal/domain/interfaces"
	"netswitch-tool/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Menu는 각 유스케이스를 1:1로 노출하는 번호 기반 디스패처입니다.
// 자체 불변식은 없으며 파라미터 수집과 순서 결정만 담당합니다
type Menu struct {
	input  interfaces.InputProvider
	writer io.Writer
	logger *logrus.Logger

	checkInterfaces *usecases.CheckInterfacesUseCase
	applyNetwork    *usecases.ApplyNetworkUseCase
	changeHostname  *usecases.ChangeHostnameUseCase
	restoreBackup   *usecases.RestoreBackupUseCase
	tunablePatcher  interfaces.TunablePatcher
	renameInterface *usecases.RenameInterfaceUseCase
	scanOrphans     *usecases.ScanOrphansUseCase
}

// NewMenu는 새로운 Menu를 생성합니다
func NewMenu(
	input interfaces.InputProvider,
	writer io.Writer,
	logger *logrus.Logger,
	checkInterfaces *usecases.CheckInterfacesUseCase,
	applyNetwork *usecases.ApplyNetworkUseCase,
	changeHostname *usecases.ChangeHostnameUseCase,
	restoreBackup *usecases.RestoreBackupUseCase,
	tunablePatcher interfaces.TunablePatcher,
	renameInterface *usecases.RenameInterfaceUseCase,
	scanOrphans *usecases.ScanOrphansUseCase,
) *Menu {
	return &Menu{
		input:           input,
		writer:          writer,
		logger:          logger,
		checkInterfaces: checkInterfaces,
		applyNetwork:    applyNetwork,
		changeHostname:  changeHostname,
		restoreBackup:   restoreBackup,
		tunablePatcher:  tunablePatcher,
		renameInterface: renameInterface,
		scanOrphans:     scanOrphans,
	}
}

const menuText = `
==== netswitch ====
1) 인터페이스 확인
2) 네트워크 설정 적용
3) 호스트네임 변경
4) 백업에서 복원
5) 커널 튜너블 적용
6) 인터페이스 이름 변경
7) 고아 볼륨 스캔
8) 종료
`

// Run은 메뉴 루프를 실행합니다. 복구 불가능 에러만 루프를 종료시킵니다
func (m *Menu) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			fmt.Fprintln(m.writer, "작업이 취소되어 종료합니다")
			return nil
		}

		fmt.Fprint(m.writer, menuText)
		choice, err := m.input.ReadLine(ctx, "선택: ")
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		var actionErr error
		switch choice {
		case "1":
			actionErr = m.runCheckInterfaces(ctx)
		case "2":
			actionErr = m.runApply(ctx)
		case "3":
			actionErr = m.runChangeHostname(ctx)
		case "4":
			actionErr = m.runRestore(ctx)
		case "5":
			actionErr = m.tunablePatcher.EnsureSettings(ctx)
		case "6":
			actionErr = m.runRename(ctx)
		case "7":
			actionErr = m.runScanOrphans(ctx)
		case "8":
			fmt.Fprintln(m.writer, "종료합니다")
			return nil
		default:
			fmt.Fprintf(m.writer, "잘못된 선택: %s\n", choice)
			continue
		}

		if actionErr != nil {
			// 복구 불가능 에러만 메뉴를 종료시킴; 나머지는 보고 후 메뉴 재개
			if errors.IsIrrecoverableError(actionErr) {
				fmt.Fprintf(m.writer, "복구 불가능한 오류: %v\n", actionErr)
				return actionErr
			}
			fmt.Fprintf(m.writer, "오류: %v\n", actionErr)
			m.logger.WithError(actionErr).Error("메뉴 작업 실패")
		}
	}
}

// runCheckInterfaces는 라이브 링크 목록을 출력합니다
func (m *Menu) runCheckInterfaces(ctx context.Context) error {
	links, err := m.checkInterfaces.Execute(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.writer, "%-16s %-18s %-10s %s\n", "NAME", "MAC", "STATE", "MTU")
	for _, link := range links {
		fmt.Fprintf(m.writer, "%-16s %-18s %-10s %d\n", link.Name, link.MacAddress, link.State, link.MTU)
	}
	return nil
}

// runApply는 파라미터를 수집/검증한 뒤 적용 파이프라인을 실행합니다
func (m *Menu) runApply(ctx context.Context) error {
	params, err := m.collectParameters(ctx)
	if err != nil {
		return err
	}

	output, err := m.applyNetwork.Execute(ctx, usecases.ApplyNetworkInput{Parameters: *params})
	if err != nil {
		return err
	}

	if len(output.EmittedStanzas) == 0 {
		fmt.Fprintln(m.writer, "변경 없음: 설정이 이미 수렴 상태입니다")
	} else {
		fmt.Fprintf(m.writer, "적용 완료: 합성 %v, 건너뜀 %v\n", output.EmittedStanzas, output.SkippedStanzas)
	}
	if output.PrepFailureCount > 0 {
		fmt.Fprintf(m.writer, "경고: 준비 단계 브랜치 %d개 실패 (로그 확인)\n", output.PrepFailureCount)
	}
	return nil
}

// collectParameters는 검증 실패 시 재입력을 요구하는 수집 루프입니다
func (m *Menu) collectParameters(ctx context.Context) (*entities.ParameterSet, error) {
	bondName, err := m.readWithDefault(ctx, "본드 이름", "bond0", utils.ValidateInterfaceName)
	if err != nil {
		return nil, err
	}

	membersLine, err := m.readValidated(ctx, "본드 멤버 (쉼표 구분, 예: eth0,eth1): ", func(s string) error {
		for _, member := range splitList(s) {
			if err := utils.ValidateInterfaceName(member); err != nil {
				return err
			}
		}
		if len(splitList(s)) == 0 {
			return fmt.Errorf("본드 멤버가 없음")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	bridgeName, err := m.readWithDefault(ctx, "브리지 이름", "vmbr0", utils.ValidateInterfaceName)
	if err != nil {
		return nil, err
	}

	address, err := m.readValidated(ctx, "관리 IP 주소: ", utils.ValidateIPv4)
	if err != nil {
		return nil, err
	}

	prefixLine, err := m.readValidated(ctx, "CIDR 프리픽스 (1~32): ", func(s string) error {
		prefix, convErr := strconv.Atoi(s)
		if convErr != nil {
			return fmt.Errorf("숫자가 아님: %s", s)
		}
		return utils.ValidateCIDR(prefix)
	})
	if err != nil {
		return nil, err
	}
	prefix, _ := strconv.Atoi(prefixLine)

	gateway, err := m.readValidated(ctx, "게이트웨이 (생략 가능): ", func(s string) error {
		if s == "" {
			return nil
		}
		return utils.ValidateIPv4(s)
	})
	if err != nil {
		return nil, err
	}

	vlanLine, err := m.readValidated(ctx, "관리 VLAN ID (0이면 없음): ", func(s string) error {
		if s == "" {
			return nil
		}
		vlan, convErr := strconv.Atoi(s)
		if convErr != nil || vlan < 0 || vlan > 4094 {
			return fmt.Errorf("잘못된 VLAN ID: %s", s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	vlanID := 0
	if vlanLine != "" {
		vlanID, _ = strconv.Atoi(vlanLine)
	}

	return &entities.ParameterSet{
		BondName:          bondName,
		BondMembers:       splitList(membersLine),
		BridgeName:        bridgeName,
		ManagementAddress: address,
		PrefixLength:      prefix,
		Gateway:           gateway,
		ManagementVlanID:  vlanID,
	}, nil
}

// runChangeHostname은 호스트네임 변경을 실행합니다
func (m *Menu) runChangeHostname(ctx context.Context) error {
	hostname, err := m.readValidated(ctx, "새 호스트네임: ", utils.ValidateHostname)
	if err != nil {
		return err
	}
	return m.changeHostname.Execute(ctx, hostname)
}

// runRestore는 백업 목록을 출력하고 선택한 백업을 복원합니다
func (m *Menu) runRestore(ctx context.Context) error {
	backups, err := m.restoreBackup.ListBackups(ctx)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Fprintln(m.writer, "복원 가능한 백업이 없습니다")
		return nil
	}

	for i, backup := range backups {
		fmt.Fprintf(m.writer, "%d) %s (%s)\n", i+1, backup.FileName, backup.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	choice, err := m.input.ReadLine(ctx, "복원할 백업 번호: ")
	if err != nil {
		return err
	}
	index, convErr := strconv.Atoi(choice)
	if convErr != nil || index < 1 || index > len(backups) {
		return errors.NewValidationError(fmt.Sprintf("잘못된 백업 번호: %s", choice), nil)
	}

	return m.restoreBackup.Execute(ctx, backups[index-1])
}

// runRename은 인터페이스 이름 변경을 실행합니다
func (m *Menu) runRename(ctx context.Context) error {
	current, err := m.readValidated(ctx, "현재 인터페이스 이름: ", utils.ValidateInterfaceName)
	if err != nil {
		return err
	}
	target, err := m.readValidated(ctx, "새 인터페이스 이름: ", utils.ValidateInterfaceName)
	if err != nil {
		return err
	}

	output, err := m.renameInterface.Execute(ctx, usecases.RenameInterfaceInput{
		CurrentName: current,
		TargetName:  target,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(m.writer, "바인딩 완료: %s -> %s (MAC %s, 참조 %d건 재작성)\n",
		current, target, output.MacAddress, output.RewrittenReferences)
	fmt.Fprintln(m.writer, "경고: 이름 변경은 재부팅 후에 적용됩니다")
	return nil
}

// runScanOrphans는 고아 볼륨 스캔/정리를 실행합니다
func (m *Menu) runScanOrphans(ctx context.Context) error {
	output, err := m.scanOrphans.Execute(ctx)
	if err != nil {
		return err
	}

	if len(output.Candidates) == 0 {
		fmt.Fprintln(m.writer, "고아 볼륨 후보가 없습니다")
		return nil
	}
	fmt.Fprintf(m.writer, "삭제 %d건, 건너뜀 %d건, 실패 %d건\n",
		len(output.DeletedVolumes), len(output.SkippedVolumes), len(output.Errors))
	return nil
}

// readValidated는 검증을 통과할 때까지 재입력을 요구합니다.
// 검증 실패는 예상된 부정 케이스이므로 작업을 중단시키지 않습니다
func (m *Menu) readValidated(ctx context.Context, prompt string, validate func(string) error) (string, error) {
	for {
		line, err := m.input.ReadLine(ctx, prompt)
		if err != nil {
			return "", err
		}
		if validateErr := validate(line); validateErr != nil {
			fmt.Fprintf(m.writer, "잘못된 입력: %v\n", validateErr)
			continue
		}
		return line, nil
	}
}

// readWithDefault는 빈 입력에 기본값을 적용합니다
func (m *Menu) readWithDefault(ctx context.Context, label, defaultValue string, validate func(string) error) (string, error) {
	line, err := m.readValidated(ctx, fmt.Sprintf("%s [%s]: ", label, defaultValue), func(s string) error {
		if s == "" {
			return nil
		}
		return validate(s)
	})
	if err != nil {
		return "", err
	}
	if line == "" {
		return defaultValue, nil
	}
	return line, nil
}

// splitList는 쉼표 구분 목록을 파싱합니다
func splitList(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
