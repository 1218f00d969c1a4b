package command

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sharpbot/internal/core/domain"
)

type MockTextSender struct {
	mu      sync.Mutex
	err     error
	Message string
	actions int
}

func (m *MockTextSender) SendMessageReply(_ context.Context, _ *domain.Message, message string) (int, error) {
	m.Message = message
	return 0, m.err
}

func (m *MockTextSender) NotifyAndReturnError(_ context.Context, err error, _ *domain.Message) error {
	m.Message = err.Error()
	if m.err != nil {
		return errors.Join(err, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, m.err))
	}
	return err
}

func (m *MockTextSender) SendChatAction(_ context.Context, _ int64, _ domain.Action) {
	m.mu.Lock()
	m.actions++
	m.mu.Unlock()
}

type MockImageSender struct {
	file   []byte
	called bool
	err    error
}

func (m *MockImageSender) SendImageFileReply(_ context.Context, _ *domain.Message, file []byte) error {
	m.file = file
	m.called = true
	return m.err
}

type MockNode struct {
	req    domain.UnsharpRequest
	called bool
	out    domain.ImageOutput
	err    error
}

func (m *MockNode) Invoke(_ context.Context, req domain.UnsharpRequest) (domain.ImageOutput, error) {
	m.req = req
	m.called = true
	return m.out, m.err
}

type MockArchive struct {
	data    []byte
	err     error
	read    string
	removed []string
}

func (m *MockArchive) ReadImage(_ context.Context, name string) ([]byte, error) {
	m.read = name
	return m.data, m.err
}

func (m *MockArchive) RemoveImage(name string) {
	m.removed = append(m.removed, name)
}

type MockAuthorizer struct {
	denied bool
}

func (m *MockAuthorizer) IsAuthorized(_ context.Context, _ int64) bool {
	return !m.denied
}

type MockTracker struct {
	usage    map[int64]int
	limit    int
	exceeded bool
}

func (m *MockTracker) AddRequest(chatID int64) {
	if m.usage == nil {
		m.usage = make(map[int64]int)
	}
	m.usage[chatID]++
}

func (m *MockTracker) CheckLimit(_ context.Context, _ int64) bool {
	return !m.exceeded
}

func (m *MockTracker) GetUsage(chatID int64) int {
	return m.usage[chatID]
}

func (m *MockTracker) Limit() int {
	return m.limit
}
