package services

import (
	"context"
	"os"
	"testing"
	"time"

	"netswitch-tool/internal/domain/entities"
	domainErrors "netswitch-tool/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newIdentityService(fs *MockFileSystem, linkRepo *MockLinkRepository, executor *MockCommandExecutor) *IdentityService {
	return NewIdentityService(fs, linkRepo, executor, testLogger(), "/etc/systemd/network", 10, 30*time.Second)
}

func TestIdentityService_ResolveIdentity(t *testing.T) {
	t.Run("하드웨어 주소로 대기 상태 바인딩 생성", func(t *testing.T) {
		mockFS := new(MockFileSystem)
		mockLinkRepo := new(MockLinkRepository)
		mockExecutor := new(MockCommandExecutor)
		service := newIdentityService(mockFS, mockLinkRepo, mockExecutor)

		mockLinkRepo.On("MacAddress", mock.Anything, "enp3s0").Return("aa:bb:cc:dd:ee:ff", nil)

		identity, err := service.ResolveIdentity(context.Background(), "enp3s0", "lan0")

		require.NoError(t, err)
		assert.Equal(t, "aa:bb:cc:dd:ee:ff", identity.MacAddress)
		assert.Equal(t, entities.IdentityStatePending, identity.State)
	})

	t.Run("제로 MAC은 검증 에러", func(t *testing.T) {
		mockFS := new(MockFileSystem)
		mockLinkRepo := new(MockLinkRepository)
		mockExecutor := new(MockCommandExecutor)
		service := newIdentityService(mockFS, mockLinkRepo, mockExecutor)

		mockLinkRepo.On("MacAddress", mock.Anything, "enp3s0").Return("00:00:00:00:00:00", nil)

		identity, err := service.ResolveIdentity(context.Background(), "enp3s0", "lan0")

		assert.Nil(t, identity)
		assert.True(t, domainErrors.IsValidationError(err))
	})

	t.Run("빈 MAC은 검증 에러", func(t *testing.T) {
		mockFS := new(MockFileSystem)
		mockLinkRepo := new(MockLinkRepository)
		mockExecutor := new(MockCommandExecutor)
		service := newIdentityService(mockFS, mockLinkRepo, mockExecutor)

		mockLinkRepo.On("MacAddress", mock.Anything, "enp3s0").Return("", nil)

		identity, err := service.ResolveIdentity(context.Background(), "enp3s0", "lan0")

		assert.Nil(t, identity)
		assert.True(t, domainErrors.IsValidationError(err))
	})
}

func TestIdentityService_ExistingBindingMAC(t *testing.T) {
	bindingPath := "/etc/systemd/network/10-lan0.link"

	t.Run("기존 바인딩의 MAC 반환", func(t *testing.T) {
		mockFS := new(MockFileSystem)
		service := newIdentityService(mockFS, new(MockLinkRepository), new(MockCommandExecutor))

		content := []byte("[Match]\nMACAddress=11:22:33:44:55:66\n\n[Link]\nName=lan0\n")
		mockFS.On("Exists", bindingPath).Return(true)
		mockFS.On("ReadFile", bindingPath).Return(content, nil)

		mac, found := service.ExistingBindingMAC("lan0")

		assert.True(t, found)
		assert.Equal(t, "11:22:33:44:55:66", mac)
	})

	t.Run("바인딩 파일이 없으면 미발견", func(t *testing.T) {
		mockFS := new(MockFileSystem)
		service := newIdentityService(mockFS, new(MockLinkRepository), new(MockCommandExecutor))

		mockFS.On("Exists", bindingPath).Return(false)

		_, found := service.ExistingBindingMAC("lan0")

		assert.False(t, found)
	})
}

func TestIdentityService_Bind(t *testing.T) {
	t.Run("바인딩 파일 기록 후 재부팅 대기 상태로 전이", func(t *testing.T) {
		mockFS := new(MockFileSystem)
		service := newIdentityService(mockFS, new(MockLinkRepository), new(MockCommandExecutor))

		identity, err := entities.NewInterfaceIdentity("aa:bb:cc:dd:ee:ff", "enp3s0", "lan0")
		require.NoError(t, err)

		expectedContent := []byte("[Match]\nMACAddress=aa:bb:cc:dd:ee:ff\n\n[Link]\nName=lan0\n")
		mockFS.On("MkdirAll", "/etc/systemd/network", os.FileMode(0755)).Return(nil)
		mockFS.On("WriteFile", "/etc/systemd/network/10-lan0.link", expectedContent, os.FileMode(0644)).Return(nil)

		err = service.Bind(context.Background(), identity)

		require.NoError(t, err)
		assert.Equal(t, entities.IdentityStateBoundAwaitingReboot, identity.State)
		mockFS.AssertExpectations(t)
	})
}

func TestIdentityService_RewriteArtifactReferences(t *testing.T) {
	artifactPath := "/etc/network/interfaces"

	t.Run("단어 단위 일치만 재작성, 유사 접두 이름은 보존", func(t *testing.T) {
		mockFS := new(MockFileSystem)
		service := newIdentityService(mockFS, new(MockLinkRepository), new(MockCommandExecutor))

		content := []byte("auto eth0\niface eth0 inet manual\n    bond-slaves eth0 eth01\n")
		rewritten := []byte("auto lan0\niface lan0 inet manual\n    bond-slaves lan0 eth01\n")

		mockFS.On("Exists", artifactPath).Return(true)
		mockFS.On("ReadFile", artifactPath).Return(content, nil)
		mockFS.On("WriteFile", artifactPath, rewritten, os.FileMode(0644)).Return(nil)

		count, err := service.RewriteArtifactReferences(artifactPath, "eth0", "lan0")

		require.NoError(t, err)
		assert.Equal(t, 3, count)
		mockFS.AssertExpectations(t)
	})

	t.Run("참조가 없으면 쓰기 없이 0 반환", func(t *testing.T) {
		mockFS := new(MockFileSystem)
		service := newIdentityService(mockFS, new(MockLinkRepository), new(MockCommandExecutor))

		mockFS.On("Exists", artifactPath).Return(true)
		mockFS.On("ReadFile", artifactPath).Return([]byte("auto bond0\n"), nil)

		count, err := service.RewriteArtifactReferences(artifactPath, "eth0", "lan0")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
		mockFS.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("아티팩트가 없으면 건너뜀", func(t *testing.T) {
		mockFS := new(MockFileSystem)
		service := newIdentityService(mockFS, new(MockLinkRepository), new(MockCommandExecutor))

		mockFS.On("Exists", artifactPath).Return(false)

		count, err := service.RewriteArtifactReferences(artifactPath, "eth0", "lan0")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestIdentityService_RegenerateBootImage(t *testing.T) {
	mockExecutor := new(MockCommandExecutor)
	service := newIdentityService(new(MockFileSystem), new(MockLinkRepository), mockExecutor)

	mockExecutor.On("ExecuteWithTimeout", mock.Anything, 30*time.Second, "update-initramfs", []string{"-u"}).
		Return([]byte{}, nil)

	err := service.RegenerateBootImage(context.Background())

	require.NoError(t, err)
	mockExecutor.AssertExpectations(t)
}
