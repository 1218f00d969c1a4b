package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestAddRequest(t *testing.T) {
	tracker := &UsageTracker{
		chats: make(map[int64]int),
		mutex: &sync.Mutex{},
	}
	tests := []struct {
		name      string
		chatID    int64
		initial   int
		requests  int
		wantTotal int
	}{
		{
			name:      "first request",
			chatID:    1,
			initial:   0,
			requests:  1,
			wantTotal: 1,
		},
		{
			name:      "adds to existing count",
			chatID:    2,
			initial:   3,
			requests:  2,
			wantTotal: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker.chats[tt.chatID] = tt.initial
			for range tt.requests {
				tracker.AddRequest(tt.chatID)
			}
			assert.Equal(t, tt.wantTotal, tracker.GetUsage(tt.chatID))
		})
	}
}

func TestAddRequestConcurrent(t *testing.T) {
	tracker := &UsageTracker{
		chats: make(map[int64]int),
		mutex: &sync.Mutex{},
	}

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.AddRequest(7)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, tracker.GetUsage(7))
}

func TestCheckLimit(t *testing.T) {
	dailyLimit := 5
	tests := []struct {
		name          string
		chatID        int64
		used          int
		limit         int
		expectAllowed bool
		expectMessage bool
		simulateErr   error
	}{
		{
			name:          "below limit",
			chatID:        1,
			used:          4,
			limit:         dailyLimit,
			expectAllowed: true,
		},
		{
			name:          "limit reached and message sent",
			chatID:        2,
			used:          5,
			limit:         dailyLimit,
			expectAllowed: false,
			expectMessage: true,
		},
		{
			name:          "above limit with send error",
			chatID:        3,
			used:          9,
			limit:         dailyLimit,
			expectAllowed: false,
			expectMessage: true,
			simulateErr:   assert.AnError,
		},
		{
			name:          "zero limit means unlimited",
			chatID:        4,
			used:          1000,
			limit:         0,
			expectAllowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSender := &mockTextSender{sendError: tt.simulateErr}
			tracker := &UsageTracker{
				chats:      map[int64]int{tt.chatID: tt.used},
				mutex:      &sync.Mutex{},
				dailyLimit: tt.limit,
				sender:     mockSender,
			}
			result := tracker.CheckLimit(context.Background(), tt.chatID)
			assert.Equal(t, tt.expectAllowed, result)
			if tt.expectMessage {
				assert.Equal(t, 1, mockSender.callCount)
				expectedText := fmt.Sprintf(overLimit,
					tracker.dailyLimit, time.Until(getNextResetTime()).Truncate(time.Second))

				assert.Equal(t, expectedText, mockSender.sendReplies[0])
			} else {
				assert.Equal(t, 0, mockSender.callCount)
			}
		})
	}
}

func TestNewUsageTracker(t *testing.T) {
	viper.Set("telegram.daily_request_limit", 10)
	defer viper.Reset()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mockSender := &mockTextSender{}
	tracker := NewUsageTracker(ctx, mockSender)

	assert.NotNil(t, tracker.chats)
	assert.NotNil(t, tracker.mutex)
	assert.Equal(t, 10, tracker.Limit())
	assert.Equal(t, mockSender, tracker.sender)
}

func TestGetNextResetTime(t *testing.T) {
	reset := getNextResetTime()
	tomorrow := time.Now().AddDate(0, 0, 1)

	assert.Equal(t, 0, reset.Hour())
	assert.Equal(t, 0, reset.Minute())
	assert.Equal(t, 0, reset.Second())
	assert.Equal(t, tomorrow.Day(), reset.Day())
}
