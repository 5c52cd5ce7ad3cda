package adapters

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"netswitch-tool/internal/domain/errors"
	"netswitch-tool/internal/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// ConsoleInput은 콘솔에서 대화형 입력을 읽는 InputProvider 구현체입니다.
// 모든 프롬프트에 타임아웃이 적용되며, 확인 프롬프트의 타임아웃은
// 안전 기본값(건너뜀)으로 처리됩니다
type ConsoleInput struct {
	writer  io.Writer
	lines   chan string
	timeout time.Duration
	logger  *logrus.Logger

	// 포기한(타임아웃/취소된) 프롬프트 수. 그 수만큼 뒤늦게 도착하는 입력은
	// 다음 프롬프트의 답이 아니므로 폐기해야 함
	stale int
}

// NewConsoleInput은 새로운 ConsoleInput을 생성합니다
func NewConsoleInput(reader io.Reader, writer io.Writer, timeout time.Duration, logger *logrus.Logger) interfaces.InputProvider {
	c := &ConsoleInput{
		writer:  writer,
		lines:   make(chan string),
		timeout: timeout,
		logger:  logger,
	}

	// 표준 입력 읽기는 취소할 수 없으므로 별도 고루틴에서 채널로 전달
	go func() {
		scanner := bufio.NewScanner(reader)
		for scanner.Scan() {
			c.lines <- scanner.Text()
		}
		close(c.lines)
	}()

	return c
}

// ReadLine은 프롬프트를 출력하고 한 줄을 읽습니다.
// 이전에 포기한 프롬프트의 답이 뒤늦게 도착하면 현재 프롬프트의 답으로
// 재생하지 않고 폐기합니다
func (c *ConsoleInput) ReadLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(c.writer, prompt)

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	for {
		select {
		case line, ok := <-c.lines:
			if !ok {
				return "", errors.NewSystemError("입력 스트림이 닫힘", nil)
			}
			if c.stale > 0 {
				c.stale--
				c.logger.WithField("line", line).Warn("포기한 프롬프트의 뒤늦은 입력 폐기")
				continue
			}
			return strings.TrimSpace(line), nil
		case <-ctx.Done():
			c.stale++
			return "", ctx.Err()
		case <-timer.C:
			c.stale++
			return "", errors.NewTimeoutError(fmt.Sprintf("입력 대기 시간 초과 (%v)", c.timeout))
		}
	}
}

// Confirm은 y/n 확인을 요청합니다. 타임아웃 시 안전 기본값(false)을 반환합니다
func (c *ConsoleInput) Confirm(ctx context.Context, prompt string) (bool, error) {
	answer, err := c.ReadLine(ctx, prompt+" [y/N]: ")
	if err != nil {
		if errors.IsTimeoutError(err) {
			c.logger.WithField("prompt", prompt).Warn("확인 대기 시간 초과, 안전 기본값(건너뜀) 적용")
			return false, nil
		}
		return false, err
	}

	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
