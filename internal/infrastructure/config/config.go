package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"netswitch-tool/internal/domain/errors"

	"gopkg.in/yaml.v3"
)

// Config is a struct that holds application configuration
type Config struct {
	Network  NetworkConfig  `yaml:"network"`
	Backup   BackupConfig   `yaml:"backup"`
	Tunables TunableConfig  `yaml:"tunables"`
	Identity IdentityConfig `yaml:"identity"`
	Storage  StorageConfig  `yaml:"storage"`
	Tool     ToolConfig     `yaml:"tool"`
}

// NetworkConfig is a struct that holds network artifact configuration
type NetworkConfig struct {
	ArtifactPath   string   `yaml:"artifact_path"`   // 라이브 설정 아티팩트 경로
	ServiceUnit    string   `yaml:"service_unit"`    // 활성화에 사용하는 서비스 유닛
	HelperPackages []string `yaml:"helper_packages"` // 적용 전 병렬 준비 단계에서 설치
}

// BackupConfig is a struct that holds backup retention configuration
type BackupConfig struct {
	Directory      string `yaml:"directory"`
	RetentionCount int    `yaml:"retention_count"`
}

// Setting is a single persistent kernel tunable
type Setting struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

// TunableConfig is a struct that holds kernel tunable configuration
type TunableConfig struct {
	Path    string    `yaml:"path"`
	Desired []Setting `yaml:"desired"`
}

// IdentityConfig is a struct that holds interface rename configuration
type IdentityConfig struct {
	BindingDir      string `yaml:"binding_dir"`      // systemd .link 파일 디렉토리
	BindingPriority int    `yaml:"binding_priority"` // 기본 네이밍 규칙보다 먼저 적용되도록 낮은 값
}

// StorageConfig is a struct that holds orphan volume scan configuration
type StorageConfig struct {
	VolumeGroup     string   `yaml:"volume_group"`
	WorkloadConfDir string   `yaml:"workload_conf_dir"`
	Denylist        []string `yaml:"denylist"`
}

// ToolConfig is a struct that holds process-level configuration
type ToolConfig struct {
	CommandTimeout time.Duration `yaml:"command_timeout"`
	PromptTimeout  time.Duration `yaml:"prompt_timeout"`
	MetricsPort    string        `yaml:"metrics_port"` // 빈 값이면 메트릭 리스너 비활성화
}

// ConfigLoader is an interface for loading configuration
type ConfigLoader interface {
	Load() (*Config, error)
}

// EnvironmentConfigLoader loads configuration from environment variables,
// optionally overlaid by a YAML file pointed to by NETSWITCH_CONFIG
type EnvironmentConfigLoader struct{}

// NewEnvironmentConfigLoader creates a new EnvironmentConfigLoader
func NewEnvironmentConfigLoader() ConfigLoader {
	return &EnvironmentConfigLoader{}
}

// DefaultTunables are the bridge/forwarding keys required for VLAN bridge operation
func DefaultTunables() []Setting {
	return []Setting{
		{Key: "net.ipv4.ip_forward", Value: "1"},
		{Key: "net.ipv4.conf.all.rp_filter", Value: "2"},
		{Key: "net.ipv4.conf.all.arp_ignore", Value: "1"},
		{Key: "net.ipv4.conf.all.arp_announce", Value: "2"},
		{Key: "net.bridge.bridge-nf-call-iptables", Value: "0"},
	}
}

// Load loads configuration from environment variables
func (l *EnvironmentConfigLoader) Load() (*Config, error) {
	config := &Config{
		Network: NetworkConfig{
			ArtifactPath:   getEnvOrDefault("ARTIFACT_PATH", "/etc/network/interfaces"),
			ServiceUnit:    getEnvOrDefault("NETWORK_SERVICE_UNIT", "networking"),
			HelperPackages: getEnvListOrDefault("HELPER_PACKAGES", []string{"ifupdown2", "ifenslave"}),
		},
		Backup: BackupConfig{
			Directory:      getEnvOrDefault("BACKUP_DIR", "/var/lib/netswitch/backups"),
			RetentionCount: getEnvIntOrDefault("BACKUP_RETENTION", 5),
		},
		Tunables: TunableConfig{
			Path:    getEnvOrDefault("TUNABLES_PATH", "/etc/sysctl.conf"),
			Desired: DefaultTunables(),
		},
		Identity: IdentityConfig{
			BindingDir:      getEnvOrDefault("BINDING_DIR", "/etc/systemd/network"),
			BindingPriority: getEnvIntOrDefault("BINDING_PRIORITY", 10),
		},
		Storage: StorageConfig{
			VolumeGroup:     getEnvOrDefault("VOLUME_GROUP", "pve"),
			WorkloadConfDir: getEnvOrDefault("WORKLOAD_CONF_DIR", "/etc/pve/qemu-server"),
			Denylist:        getEnvListOrDefault("VOLUME_DENYLIST", []string{"root", "swap", "data", "base-*"}),
		},
		Tool: ToolConfig{
			CommandTimeout: getEnvDurationOrDefault("COMMAND_TIMEOUT", 30*time.Second),
			PromptTimeout:  getEnvDurationOrDefault("PROMPT_TIMEOUT", 60*time.Second),
			MetricsPort:    getEnvOrDefault("METRICS_PORT", ""),
		},
	}

	// Optional YAML overlay
	if path := os.Getenv("NETSWITCH_CONFIG"); path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.NewPreconditionError("cannot read config file", err)
		}
		if err := yaml.Unmarshal(content, config); err != nil {
			return nil, errors.NewValidationError("cannot parse config file", err)
		}
	}

	// Validate configuration
	if err := l.validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validate validates the configuration
func (l *EnvironmentConfigLoader) validate(config *Config) error {
	if config.Network.ArtifactPath == "" {
		return errors.NewValidationError("artifact path not configured", nil)
	}
	if config.Network.ServiceUnit == "" {
		return errors.NewValidationError("network service unit not configured", nil)
	}
	if config.Backup.Directory == "" {
		return errors.NewValidationError("backup directory not configured", nil)
	}
	if config.Backup.RetentionCount < 1 {
		return errors.NewValidationError("invalid backup retention count", nil)
	}
	if config.Tunables.Path == "" {
		return errors.NewValidationError("tunables path not configured", nil)
	}
	if config.Identity.BindingDir == "" {
		return errors.NewValidationError("binding directory not configured", nil)
	}
	if config.Tool.CommandTimeout <= 0 {
		return errors.NewValidationError("invalid command timeout", nil)
	}
	if config.Tool.PromptTimeout <= 0 {
		return errors.NewValidationError("invalid prompt timeout", nil)
	}

	return nil
}

// Environment variable helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
