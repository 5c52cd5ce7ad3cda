package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 적용 파이프라인 관련 메트릭
	AppliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netswitch_applies_total",
			Help: "Total number of configuration apply attempts",
		},
		[]string{"status"}, // success, failed, rolled_back
	)

	ApplyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "netswitch_apply_duration_seconds",
			Help:    "Time spent applying a configuration transition",
			Buckets: prometheus.DefBuckets,
		},
	)

	StanzasSynthesized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netswitch_stanzas_synthesized_total",
			Help: "Total number of stanzas synthesized or skipped as no-ops",
		},
		[]string{"result"}, // emitted, skipped
	)

	// 백업 관련 메트릭
	BackupsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "netswitch_backups_created_total",
			Help: "Total number of artifact backups created",
		},
	)

	BackupsPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "netswitch_backups_pruned_total",
			Help: "Total number of backups evicted by retention",
		},
	)

	RestoresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netswitch_restores_total",
			Help: "Total number of backup restores",
		},
		[]string{"trigger"}, // manual, rollback
	)

	// 튜너블 관련 메트릭
	TunableWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netswitch_tunable_writes_total",
			Help: "Total number of tunable patch operations",
		},
		[]string{"result"}, // written, noop
	)

	// 인터페이스 이름 바인딩 메트릭
	IdentityBindings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "netswitch_identity_bindings_total",
			Help: "Total number of MAC-to-name bindings written",
		},
	)

	// 고아 볼륨 정리 메트릭
	OrphanVolumesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "netswitch_orphan_volumes_deleted_total",
			Help: "Total number of orphaned volumes deleted after confirmation",
		},
	)

	// 에러 메트릭
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "netswitch_errors_total",
			Help: "Total number of errors encountered",
		},
		[]string{"error_type"}, // validation, precondition, mutation, irrecoverable, system, timeout
	)

	// 시스템 정보
	ToolInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "netswitch_tool_info",
			Help: "Tool information",
		},
		[]string{"version", "node_name"},
	)
)

// RecordApply는 적용 시도 결과와 소요 시간을 기록합니다
func RecordApply(status string, duration float64) {
	AppliesTotal.WithLabelValues(status).Inc()
	ApplyDuration.Observe(duration)
}

// RecordSynthesis는 합성 결과를 기록합니다
func RecordSynthesis(emitted, skipped int) {
	StanzasSynthesized.WithLabelValues("emitted").Add(float64(emitted))
	StanzasSynthesized.WithLabelValues("skipped").Add(float64(skipped))
}

// RecordRestore는 백업 복원을 기록합니다
func RecordRestore(trigger string) {
	RestoresTotal.WithLabelValues(trigger).Inc()
}

// RecordTunablePatch는 튜너블 적용 결과를 기록합니다
func RecordTunablePatch(written bool) {
	if written {
		TunableWrites.WithLabelValues("written").Inc()
	} else {
		TunableWrites.WithLabelValues("noop").Inc()
	}
}

// RecordError는 에러 발생을 기록합니다
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// SetToolInfo는 도구 정보를 설정합니다
func SetToolInfo(version, nodeName string) {
	ToolInfo.WithLabelValues(version, nodeName).Set(1)
}
