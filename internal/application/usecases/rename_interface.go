package usecases

import (
	"context"
	"fmt"

	"netswitch-tool/internal/domain/entities"
	"netswitch-tool/internal/domain/errors"
	"netswitch-tool/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// RenameInterfaceUseCase는 MAC 주소 기반 영구 인터페이스 이름 변경 유스케이스입니다.
// 이 유스케이스는 의도 기록(1단계)까지만 수행합니다: 이름 변경의 실현(2단계)은
// 다음 부팅의 장치 열거자가 수행하며, 같은 프로세스 수명 내에 완료된다고 가정하지 않습니다
type RenameInterfaceUseCase struct {
	identityBinder interfaces.IdentityBinder
	backupManager  interfaces.BackupManager
	input          interfaces.InputProvider
	logger         *logrus.Logger
	artifactPath   string
}

// NewRenameInterfaceUseCase는 새로운 RenameInterfaceUseCase를 생성합니다
func NewRenameInterfaceUseCase(
	binder interfaces.IdentityBinder,
	backupManager interfaces.BackupManager,
	input interfaces.InputProvider,
	logger *logrus.Logger,
	artifactPath string,
) *RenameInterfaceUseCase {
	return &RenameInterfaceUseCase{
		identityBinder: binder,
		backupManager:  backupManager,
		input:          input,
		logger:         logger,
		artifactPath:   artifactPath,
	}
}

// RenameInterfaceInput은 유스케이스의 입력 파라미터입니다
type RenameInterfaceInput struct {
	CurrentName string
	TargetName  string
}

// RenameInterfaceOutput은 유스케이스의 출력 결과입니다
type RenameInterfaceOutput struct {
	MacAddress          string
	RewrittenReferences int
	State               entities.IdentityState
	RebootRequired      bool
}

// Execute는 이름 변경 유스케이스를 실행합니다
func (uc *RenameInterfaceUseCase) Execute(ctx context.Context, input RenameInterfaceInput) (*RenameInterfaceOutput, error) {
	// 1. 하드웨어 주소 해석 (빈 주소/제로 주소 거부)
	identity, err := uc.identityBinder.ResolveIdentity(ctx, input.CurrentName, input.TargetName)
	if err != nil {
		return nil, err
	}

	// 2. 안정적 이름의 재사용 방지: 다른 MAC에 이미 바인딩된 이름은
	// 운영자의 명시적 재정의 없이는 거부됨
	if existingMAC, ok := uc.identityBinder.ExistingBindingMAC(input.TargetName); ok && existingMAC != identity.MacAddress {
		uc.logger.WithFields(logrus.Fields{
			"target_name":  input.TargetName,
			"existing_mac": existingMAC,
			"new_mac":      identity.MacAddress,
		}).Warn("대상 이름이 다른 하드웨어 주소에 이미 바인딩됨")

		override, err := uc.input.Confirm(ctx,
			fmt.Sprintf("이름 %s는 이미 %s에 바인딩되어 있습니다. 재정의하시겠습니까?",
				input.TargetName, existingMAC))
		if err != nil {
			return nil, errors.NewPreconditionError("재정의 확인 응답 읽기 실패", err)
		}
		if !override {
			return nil, errors.NewPreconditionError(
				fmt.Sprintf("이름 %s의 기존 바인딩 재정의 거부됨", input.TargetName), nil)
		}
		uc.logger.WithField("target_name", input.TargetName).Warn("운영자 재정의로 기존 바인딩 교체")
	}

	// 3. 바인딩 파일 기록
	if err := uc.identityBinder.Bind(ctx, identity); err != nil {
		return nil, err
	}

	// 4. 아티팩트 참조 재작성 (백업 선행)
	if _, err := uc.backupManager.Snapshot(ctx, uc.artifactPath); err != nil {
		return nil, err
	}

	references, err := uc.identityBinder.RewriteArtifactReferences(
		uc.artifactPath, input.CurrentName, input.TargetName)
	if err != nil {
		return nil, err
	}

	// 5. 부팅 이미지 재생성은 보조 단계: 실패는 경고로만 처리
	if err := uc.identityBinder.RegenerateBootImage(ctx); err != nil {
		uc.logger.WithError(err).Warn("부팅 이미지 재생성 실패, 수동 재생성 필요")
	}

	uc.logger.WithFields(logrus.Fields{
		"mac":        identity.MacAddress,
		"old_name":   input.CurrentName,
		"new_name":   input.TargetName,
		"references": references,
	}).Warn("이름 바인딩 완료: 적용을 위해 재부팅이 필요합니다")

	return &RenameInterfaceOutput{
		MacAddress:          identity.MacAddress,
		RewrittenReferences: references,
		State:               identity.State,
		RebootRequired:      true,
	}, nil
}
