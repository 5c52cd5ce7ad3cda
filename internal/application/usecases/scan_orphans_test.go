package usecases

import (
	"context"
	"errors"
	"testing"

	"netswitch-tool/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestScanOrphansUseCase_Execute(t *testing.T) {
	candidates := []entities.OrphanCandidate{
		{VolumeName: "vm-998-disk-0", WorkloadID: 998},
		{VolumeName: "vm-999-disk-0", WorkloadID: 999},
	}

	t.Run("건별 확인: 승인은 삭제, 거부는 건너뜀", func(t *testing.T) {
		scanner := new(MockVolumeScanner)
		input := new(MockInputProvider)
		useCase := NewScanOrphansUseCase(scanner, input, testLogger())

		scanner.On("Scan", mock.Anything).Return(candidates, nil)
		// 확인은 후보 순서대로 요청됨: 첫 후보는 승인, 둘째는 거부
		input.On("Confirm", mock.Anything, mock.Anything).Return(true, nil).Once()
		input.On("Confirm", mock.Anything, mock.Anything).Return(false, nil).Once()
		scanner.On("Delete", mock.Anything, candidates[0]).Return(nil)

		output, err := useCase.Execute(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"vm-998-disk-0"}, output.DeletedVolumes)
		assert.Equal(t, []string{"vm-999-disk-0"}, output.SkippedVolumes)
		assert.Empty(t, output.Errors)
		scanner.AssertNotCalled(t, "Delete", mock.Anything, candidates[1])
	})

	t.Run("후보가 없으면 확인 없이 종료", func(t *testing.T) {
		scanner := new(MockVolumeScanner)
		input := new(MockInputProvider)
		useCase := NewScanOrphansUseCase(scanner, input, testLogger())

		scanner.On("Scan", mock.Anything).Return([]entities.OrphanCandidate{}, nil)

		output, err := useCase.Execute(context.Background())

		require.NoError(t, err)
		assert.Empty(t, output.Candidates)
		input.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything)
	})

	t.Run("개별 삭제 실패는 수집하고 나머지 계속", func(t *testing.T) {
		scanner := new(MockVolumeScanner)
		input := new(MockInputProvider)
		useCase := NewScanOrphansUseCase(scanner, input, testLogger())

		scanner.On("Scan", mock.Anything).Return(candidates, nil)
		input.On("Confirm", mock.Anything, mock.Anything).Return(true, nil)
		scanner.On("Delete", mock.Anything, candidates[0]).Return(errors.New("volume in use"))
		scanner.On("Delete", mock.Anything, candidates[1]).Return(nil)

		output, err := useCase.Execute(context.Background())

		require.NoError(t, err)
		assert.Len(t, output.Errors, 1)
		assert.Equal(t, []string{"vm-999-disk-0"}, output.DeletedVolumes)
	})

	t.Run("스캔 실패는 즉시 전파", func(t *testing.T) {
		scanner := new(MockVolumeScanner)
		input := new(MockInputProvider)
		useCase := NewScanOrphansUseCase(scanner, input, testLogger())

		scanner.On("Scan", mock.Anything).Return(nil, errors.New("lvs failed"))

		output, err := useCase.Execute(context.Background())

		assert.Nil(t, output)
		assert.Error(t, err)
	})
}
