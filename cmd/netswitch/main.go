package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"netswitch-tool/internal/application/usecases"
	"netswitch-tool/internal/domain/entities"
	"netswitch-tool/internal/infrastructure/config"
	"netswitch-tool/internal/infrastructure/container"
	"netswitch-tool/internal/infrastructure/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "0.3.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd는 루트 명령을 생성합니다. 인자 없이 실행하면 대화형 메뉴를 띄웁니다
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "netswitch",
		Short:        "호스트 네트워크 설정 합성/적용 도구",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()
			return app.GetMenu().Run(ctx)
		},
	}

	rootCmd.AddCommand(
		newInterfacesCmd(),
		newApplyCmd(),
		newHostnameCmd(),
		newRestoreCmd(),
		newTunablesCmd(),
		newRenameCmd(),
		newOrphansCmd(),
	)

	return rootCmd
}

// bootstrap은 로거/설정/컨테이너를 초기화하고 시그널 취소 컨텍스트를 반환합니다
func bootstrap() (*container.Container, context.Context, func(), error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr != "" {
		logLevel, err := logrus.ParseLevel(logLevelStr)
		if err != nil {
			logger.WithError(err).Warnf("Unknown LOG_LEVEL value: %s. Using default Info level.", logLevelStr)
			logger.SetLevel(logrus.InfoLevel)
		} else {
			logger.SetLevel(logLevel)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	configLoader := config.NewEnvironmentConfigLoader()
	cfg, err := configLoader.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appContainer, err := container.NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create dependency injection container: %w", err)
	}

	hostname, _ := os.Hostname()
	metrics.SetToolInfo(version, hostname)

	// 메트릭 리스너는 포트가 설정된 경우에만 기동
	if port := cfg.Tool.MetricsPort; port != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		go func() {
			logger.WithField("port", port).Info("메트릭 서버 시작")
			if err := http.ListenAndServe(":"+port, mux); err != nil {
				logger.WithError(err).Error("메트릭 서버 실패")
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("종료 시그널 수신")
		cancel()
	}()

	cleanup := func() {
		signal.Stop(sigChan)
		cancel()
	}

	return appContainer, ctx, cleanup, nil
}

// newInterfacesCmd는 라이브 링크 목록을 출력하는 명령입니다
func newInterfacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interfaces",
		Short: "라이브 네트워크 인터페이스 목록 출력",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			links, err := app.GetCheckInterfacesUseCase().Execute(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("%-16s %-18s %-10s %s\n", "NAME", "MAC", "STATE", "MTU")
			for _, link := range links {
				fmt.Printf("%-16s %-18s %-10s %d\n", link.Name, link.MacAddress, link.State, link.MTU)
			}
			return nil
		},
	}
}

// newApplyCmd는 네트워크 설정 적용 명령입니다
func newApplyCmd() *cobra.Command {
	var (
		bondName string
		members  []string
		bridge   string
		address  string
		prefix   int
		gateway  string
		vlanID   int
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "본드/브리지/VLAN 설정을 합성하고 적용",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			input := usecases.ApplyNetworkInput{
				Parameters: entities.ParameterSet{
					BondName:          bondName,
					BondMembers:       members,
					BridgeName:        bridge,
					ManagementAddress: address,
					PrefixLength:      prefix,
					Gateway:           gateway,
					ManagementVlanID:  vlanID,
				},
			}

			output, err := app.GetApplyNetworkUseCase().Execute(ctx, input)
			if err != nil {
				return err
			}

			if len(output.EmittedStanzas) == 0 {
				fmt.Println("변경 없음: 설정이 이미 수렴 상태입니다")
			} else {
				fmt.Printf("적용 완료: 합성 %s, 건너뜀 %s\n",
					strings.Join(output.EmittedStanzas, ","), strings.Join(output.SkippedStanzas, ","))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&bondName, "bond", "bond0", "본드 인터페이스 이름")
	cmd.Flags().StringSliceVar(&members, "members", nil, "본드 멤버 인터페이스 목록")
	cmd.Flags().StringVar(&bridge, "bridge", "vmbr0", "VLAN-aware 브리지 이름")
	cmd.Flags().StringVar(&address, "address", "", "관리 IPv4 주소")
	cmd.Flags().IntVar(&prefix, "prefix", 24, "CIDR 프리픽스 길이")
	cmd.Flags().StringVar(&gateway, "gateway", "", "기본 게이트웨이 (생략 가능)")
	cmd.Flags().IntVar(&vlanID, "vlan", 0, "관리 VLAN ID (0이면 없음)")
	_ = cmd.MarkFlagRequired("members")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}

// newHostnameCmd는 호스트네임 변경 명령입니다
func newHostnameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hostname <new-hostname>",
		Short: "호스트네임 변경 및 hosts 파일 갱신",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()
			return app.GetChangeHostnameUseCase().Execute(ctx, args[0])
		},
	}
}

// newRestoreCmd는 백업 복원 명령입니다. 인자가 없으면 백업 목록만 출력합니다
func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [backup-file]",
		Short: "백업 목록 출력 또는 선택한 백업 복원",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			useCase := app.GetRestoreBackupUseCase()
			backups, err := useCase.ListBackups(ctx)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				if len(backups) == 0 {
					fmt.Println("복원 가능한 백업이 없습니다")
					return nil
				}
				for _, backup := range backups {
					fmt.Printf("%s (%s)\n", backup.FileName, backup.CreatedAt.Format("2006-01-02 15:04:05"))
				}
				return nil
			}

			for _, backup := range backups {
				if backup.FileName == args[0] {
					return useCase.Execute(ctx, backup)
				}
			}
			return fmt.Errorf("백업을 찾을 수 없음: %s", args[0])
		},
	}
}

// newTunablesCmd는 커널 튜너블 적용 명령입니다
func newTunablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tunables",
		Short: "누락된 커널 튜너블을 추가하고 라이브 적용",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()
			return app.GetTunablePatcher().EnsureSettings(ctx)
		},
	}
}

// newRenameCmd는 인터페이스 이름 변경 명령입니다
func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <current-name> <new-name>",
		Short: "MAC 기반 영구 이름 바인딩 기록 (재부팅 후 적용)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			output, err := app.GetRenameInterfaceUseCase().Execute(ctx, usecases.RenameInterfaceInput{
				CurrentName: args[0],
				TargetName:  args[1],
			})
			if err != nil {
				return err
			}

			fmt.Printf("바인딩 완료: %s -> %s (MAC %s, 참조 %d건 재작성)\n",
				args[0], args[1], output.MacAddress, output.RewrittenReferences)
			fmt.Println("경고: 이름 변경은 재부팅 후에 적용됩니다")
			return nil
		},
	}
}

// newOrphansCmd는 고아 볼륨 스캔/정리 명령입니다
func newOrphansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orphans",
		Short: "고아 볼륨 스캔 및 건별 확인 후 삭제",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ctx, cleanup, err := bootstrap()
			if err != nil {
				return err
			}
			defer cleanup()

			output, err := app.GetScanOrphansUseCase().Execute(ctx)
			if err != nil {
				return err
			}

			if len(output.Candidates) == 0 {
				fmt.Println("고아 볼륨 후보가 없습니다")
				return nil
			}
			fmt.Printf("삭제 %d건, 건너뜀 %d건, 실패 %d건\n",
				len(output.DeletedVolumes), len(output.SkippedVolumes), len(output.Errors))
			return nil
		},
	}
}
