package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

func TestNewRejectsBadSpec(t *testing.T) {
	ctrl := gomock.NewController(t)

	_, err := New(NewMockSettler(ctrl), "not a schedule")

	assert.Error(t, err)
}

func TestSettle(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		prepareMock func(settler *MockSettler)
	}{
		{
			name: "Settles with the current time",
			prepareMock: func(settler *MockSettler) {
				settler.EXPECT().SettleDue(gomock.Any(), now).Return(3, nil)
			},
		},
		{
			name: "Errors are logged",
			prepareMock: func(settler *MockSettler) {
				settler.EXPECT().SettleDue(gomock.Any(), now).Return(1, errors.New("db error"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			settler := NewMockSettler(ctrl)
			tt.prepareMock(settler)

			s, err := New(settler, "@hourly")
			require.NoError(t, err)
			s.now = func() time.Time { return now }

			assert.NotPanics(t, s.settle)
		})
	}
}

func TestRunFiresAndStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	settler := NewMockSettler(ctrl)
	fired := make(chan struct{}, 1)
	settler.EXPECT().SettleDue(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, time.Time) (int, error) {
		select {
		case fired <- struct{}{}:
		default:
		}
		return 0, nil
	}).MinTimes(1)

	s, err := New(settler, "@every 1s")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("settlement job did not fire")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
