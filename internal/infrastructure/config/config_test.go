package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentConfigLoader_Load(t *testing.T) {
	t.Run("기본값 로드", func(t *testing.T) {
		loader := NewEnvironmentConfigLoader()

		cfg, err := loader.Load()

		require.NoError(t, err)
		assert.Equal(t, "/etc/network/interfaces", cfg.Network.ArtifactPath)
		assert.Equal(t, "networking", cfg.Network.ServiceUnit)
		assert.Equal(t, []string{"ifupdown2", "ifenslave"}, cfg.Network.HelperPackages)
		assert.Equal(t, "/var/lib/netswitch/backups", cfg.Backup.Directory)
		assert.Equal(t, 5, cfg.Backup.RetentionCount)
		assert.Equal(t, "/etc/sysctl.conf", cfg.Tunables.Path)
		assert.NotEmpty(t, cfg.Tunables.Desired)
		assert.Equal(t, "/etc/systemd/network", cfg.Identity.BindingDir)
		assert.Equal(t, 10, cfg.Identity.BindingPriority)
		assert.Equal(t, "pve", cfg.Storage.VolumeGroup)
		assert.Equal(t, []string{"root", "swap", "data", "base-*"}, cfg.Storage.Denylist)
		assert.Equal(t, 30*time.Second, cfg.Tool.CommandTimeout)
		assert.Equal(t, 60*time.Second, cfg.Tool.PromptTimeout)
		assert.Empty(t, cfg.Tool.MetricsPort)
	})

	t.Run("환경 변수로 재정의", func(t *testing.T) {
		t.Setenv("ARTIFACT_PATH", "/tmp/interfaces")
		t.Setenv("BACKUP_RETENTION", "3")
		t.Setenv("VOLUME_DENYLIST", "root, swap")
		t.Setenv("COMMAND_TIMEOUT", "10s")

		loader := NewEnvironmentConfigLoader()
		cfg, err := loader.Load()

		require.NoError(t, err)
		assert.Equal(t, "/tmp/interfaces", cfg.Network.ArtifactPath)
		assert.Equal(t, 3, cfg.Backup.RetentionCount)
		assert.Equal(t, []string{"root", "swap"}, cfg.Storage.Denylist)
		assert.Equal(t, 10*time.Second, cfg.Tool.CommandTimeout)
	})

	t.Run("잘못된 환경 변수 값은 기본값으로 폴백", func(t *testing.T) {
		t.Setenv("BACKUP_RETENTION", "not-a-number")
		t.Setenv("PROMPT_TIMEOUT", "soon")

		loader := NewEnvironmentConfigLoader()
		cfg, err := loader.Load()

		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Backup.RetentionCount)
		assert.Equal(t, 60*time.Second, cfg.Tool.PromptTimeout)
	})

	t.Run("YAML 오버레이 적용", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "netswitch.yaml")
		content := []byte("network:\n  artifact_path: /tmp/overlay-interfaces\nbackup:\n  directory: /tmp/overlay-backups\n  retention_count: 7\n")
		require.NoError(t, os.WriteFile(path, content, 0644))
		t.Setenv("NETSWITCH_CONFIG", path)

		loader := NewEnvironmentConfigLoader()
		cfg, err := loader.Load()

		require.NoError(t, err)
		assert.Equal(t, "/tmp/overlay-interfaces", cfg.Network.ArtifactPath)
		assert.Equal(t, "/tmp/overlay-backups", cfg.Backup.Directory)
		assert.Equal(t, 7, cfg.Backup.RetentionCount)
		// 오버레이에 없는 값은 환경 기본값 유지
		assert.Equal(t, "networking", cfg.Network.ServiceUnit)
	})

	t.Run("존재하지 않는 설정 파일은 에러", func(t *testing.T) {
		t.Setenv("NETSWITCH_CONFIG", "/nonexistent/netswitch.yaml")

		loader := NewEnvironmentConfigLoader()
		_, err := loader.Load()

		assert.Error(t, err)
	})

	t.Run("보존 개수 0은 검증 실패", func(t *testing.T) {
		t.Setenv("BACKUP_RETENTION", "0")

		loader := NewEnvironmentConfigLoader()
		_, err := loader.Load()

		assert.Error(t, err)
	})
}

func TestDefaultTunables(t *testing.T) {
	tunables := DefaultTunables()

	keys := make(map[string]string, len(tunables))
	for _, setting := range tunables {
		keys[setting.Key] = setting.Value
	}

	assert.Equal(t, "1", keys["net.ipv4.ip_forward"])
	assert.Equal(t, "2", keys["net.ipv4.conf.all.rp_filter"])
	assert.Contains(t, keys, "net.bridge.bridge-nf-call-iptables")
}
