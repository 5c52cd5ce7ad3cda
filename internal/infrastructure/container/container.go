package container

import (
	"io"
	"os"

	"netswitch-tool/internal/application/menu"
	"netswitch-tool/internal/application/usecases"
	"netswitch-tool/internal/domain/interfaces"
	"netswitch-tool/internal/domain/services"
	"netswitch-tool/internal/infrastructure/adapters"
	"netswitch-tool/internal/infrastructure/config"
	infraservices "netswitch-tool/internal/infrastructure/services"

	"github.com/sirupsen/logrus"
)

// Container는 의존성 주입을 관리하는 컨테이너입니다
type Container struct {
	config *config.Config
	logger *logrus.Logger
	writer io.Writer

	// 인프라스트럭처 어댑터들
	fileSystem        interfaces.FileSystem
	commandExecutor   interfaces.CommandExecutor
	clock             interfaces.Clock
	input             interfaces.InputProvider
	linkRepository    interfaces.LinkRepository
	serviceController interfaces.ServiceController
	packageInstaller  interfaces.PackageInstaller

	// 서비스들
	synthesizer     *services.StanzaSynthesizer
	backupManager   interfaces.BackupManager
	tunablePatcher  interfaces.TunablePatcher
	identityBinder  interfaces.IdentityBinder
	volumeScanner   interfaces.VolumeScanner
	hostnameChanger interfaces.HostnameChanger

	// 유스케이스
	checkInterfacesUseCase *usecases.CheckInterfacesUseCase
	applyNetworkUseCase    *usecases.ApplyNetworkUseCase
	changeHostnameUseCase  *usecases.ChangeHostnameUseCase
	restoreBackupUseCase   *usecases.RestoreBackupUseCase
	renameInterfaceUseCase *usecases.RenameInterfaceUseCase
	scanOrphansUseCase     *usecases.ScanOrphansUseCase

	// 메뉴 오케스트레이터
	menu *menu.Menu
}

// NewContainer는 새로운 Container를 생성합니다
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	container := &Container{
		config: cfg,
		logger: logger,
		writer: os.Stdout,
	}

	container.initializeInfrastructure()
	container.initializeServices()
	container.initializeUseCases()

	return container, nil
}

// initializeInfrastructure는 인프라스트럭처 컴포넌트들을 초기화합니다
func (c *Container) initializeInfrastructure() {
	c.fileSystem = adapters.NewRealFileSystem()
	c.commandExecutor = adapters.NewRealCommandExecutor()
	c.clock = adapters.NewRealClock()
	c.linkRepository = adapters.NewNetlinkRepository()
	c.input = adapters.NewConsoleInput(os.Stdin, c.writer, c.config.Tool.PromptTimeout, c.logger)
	c.serviceController = adapters.NewSystemdController(c.commandExecutor, c.config.Tool.CommandTimeout, c.logger)
	c.packageInstaller = adapters.NewAptInstaller(c.commandExecutor, c.config.Tool.CommandTimeout, c.logger)
}

// initializeServices는 서비스들을 초기화합니다
func (c *Container) initializeServices() {
	c.synthesizer = services.NewStanzaSynthesizer(c.logger)

	c.backupManager = infraservices.NewBackupService(
		c.fileSystem,
		c.clock,
		c.logger,
		c.config.Backup.Directory,
		c.config.Network.ArtifactPath,
		c.config.Backup.RetentionCount,
	)

	c.tunablePatcher = infraservices.NewTunableService(
		c.fileSystem,
		c.commandExecutor,
		c.logger,
		c.config.Tunables.Path,
		c.config.Tunables.Desired,
		c.config.Tool.CommandTimeout,
	)

	c.identityBinder = infraservices.NewIdentityService(
		c.fileSystem,
		c.linkRepository,
		c.commandExecutor,
		c.logger,
		c.config.Identity.BindingDir,
		c.config.Identity.BindingPriority,
		c.config.Tool.CommandTimeout,
	)

	c.volumeScanner = infraservices.NewOrphanScanner(
		c.fileSystem,
		c.commandExecutor,
		c.logger,
		c.config.Storage.VolumeGroup,
		c.config.Storage.WorkloadConfDir,
		c.config.Storage.Denylist,
		c.config.Tool.CommandTimeout,
	)

	c.hostnameChanger = infraservices.NewHostnameService(
		c.fileSystem,
		c.commandExecutor,
		c.logger,
		c.config.Tool.CommandTimeout,
	)
}

// initializeUseCases는 유스케이스들과 메뉴를 초기화합니다
func (c *Container) initializeUseCases() {
	c.checkInterfacesUseCase = usecases.NewCheckInterfacesUseCase(c.linkRepository, c.logger)

	c.applyNetworkUseCase = usecases.NewApplyNetworkUseCase(
		c.synthesizer,
		c.backupManager,
		c.tunablePatcher,
		c.packageInstaller,
		c.serviceController,
		c.linkRepository,
		c.fileSystem,
		c.input,
		c.logger,
		c.config.Network.ArtifactPath,
		c.config.Network.ServiceUnit,
		c.config.Network.HelperPackages,
	)

	c.changeHostnameUseCase = usecases.NewChangeHostnameUseCase(c.hostnameChanger, c.logger)

	c.restoreBackupUseCase = usecases.NewRestoreBackupUseCase(
		c.backupManager,
		c.serviceController,
		c.logger,
		c.config.Network.ServiceUnit,
	)

	c.renameInterfaceUseCase = usecases.NewRenameInterfaceUseCase(
		c.identityBinder,
		c.backupManager,
		c.input,
		c.logger,
		c.config.Network.ArtifactPath,
	)

	c.scanOrphansUseCase = usecases.NewScanOrphansUseCase(c.volumeScanner, c.input, c.logger)

	c.menu = menu.NewMenu(
		c.input,
		c.writer,
		c.logger,
		c.checkInterfacesUseCase,
		c.applyNetworkUseCase,
		c.changeHostnameUseCase,
		c.restoreBackupUseCase,
		c.tunablePatcher,
		c.renameInterfaceUseCase,
		c.scanOrphansUseCase,
	)
}

// GetConfig는 설정을 반환합니다
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetMenu는 메뉴 오케스트레이터를 반환합니다
func (c *Container) GetMenu() *menu.Menu {
	return c.menu
}

// GetCheckInterfacesUseCase는 인터페이스 확인 유스케이스를 반환합니다
func (c *Container) GetCheckInterfacesUseCase() *usecases.CheckInterfacesUseCase {
	return c.checkInterfacesUseCase
}

// GetApplyNetworkUseCase는 네트워크 설정 적용 유스케이스를 반환합니다
func (c *Container) GetApplyNetworkUseCase() *usecases.ApplyNetworkUseCase {
	return c.applyNetworkUseCase
}

// GetChangeHostnameUseCase는 호스트네임 변경 유스케이스를 반환합니다
func (c *Container) GetChangeHostnameUseCase() *usecases.ChangeHostnameUseCase {
	return c.changeHostnameUseCase
}

// GetRestoreBackupUseCase는 백업 복원 유스케이스를 반환합니다
func (c *Container) GetRestoreBackupUseCase() *usecases.RestoreBackupUseCase {
	return c.restoreBackupUseCase
}

// GetTunablePatcher는 커널 튜너블 적용 서비스를 반환합니다
func (c *Container) GetTunablePatcher() interfaces.TunablePatcher {
	return c.tunablePatcher
}

// GetRenameInterfaceUseCase는 인터페이스 이름 변경 유스케이스를 반환합니다
func (c *Container) GetRenameInterfaceUseCase() *usecases.RenameInterfaceUseCase {
	return c.renameInterfaceUseCase
}

// GetScanOrphansUseCase는 고아 볼륨 스캔 유스케이스를 반환합니다
func (c *Container) GetScanOrphansUseCase() *usecases.ScanOrphansUseCase {
	return c.scanOrphansUseCase
}

// GetInputProvider는 대화형 입력 프로바이더를 반환합니다
func (c *Container) GetInputProvider() interfaces.InputProvider {
	return c.input
}
