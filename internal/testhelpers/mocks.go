package testhelpers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockGenerator is a testify mock of ai.TextGenerator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// Reply makes every prompt answer with raw.
func (m *MockGenerator) Reply(raw string) *mock.Call {
	return m.On("Generate", mock.Anything, mock.Anything).Return(raw, nil)
}

// FakeObjectStore keeps uploads in memory and hands out fake presigned URLs.
type FakeObjectStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Err     error
}

func NewFakeObjectStore() *FakeObjectStore {
	return &FakeObjectStore{Objects: map[string][]byte{}}
}

func (f *FakeObjectStore) PutObject(_ context.Context, key, _ string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Objects[key] = data
	return nil
}

func (f *FakeObjectStore) GeneratePresignedURL(_ context.Context, key string, expiration time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/%s?expires=%d", key, int(expiration.Seconds())), nil
}
