package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/GlebRadaev/prizepool/internal/reconcile"
	"github.com/GlebRadaev/prizepool/internal/scheduler"
	"github.com/GlebRadaev/prizepool/pkg/ratelimit"
	"github.com/stretchr/testify/suite"
	gomock "go.uber.org/mock/gomock"
)

type ApplicationSuite struct {
	suite.Suite
	app *Application
}

func TestApplication(t *testing.T) {
	suite.Run(t, &ApplicationSuite{})
}

func (s *ApplicationSuite) SetupTest() {
	s.app = New()
}

func (s *ApplicationSuite) TestWait() {
	ctx, cancel := context.WithCancel(context.Background())

	s.app.errCh = make(chan error)
	go func() {
		s.app.errCh <- fmt.Errorf("mock error")
	}()

	err := s.app.Wait(ctx, cancel)

	s.Require().Error(err)
	s.Contains(err.Error(), "mock error")
}

func (s *ApplicationSuite) TestBackgroundStopsOnCancel() {
	ctrl := gomock.NewController(s.T())
	accruer := reconcile.NewMockAccruer(ctrl)
	accruer.EXPECT().Uncredited(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	settler := scheduler.NewMockSettler(ctrl)
	settler.EXPECT().SettleDue(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()

	var err error
	s.app.reconcile = reconcile.New(accruer, 10*time.Millisecond)
	s.app.scheduler, err = scheduler.New(settler, "@hourly")
	s.Require().NoError(err)
	s.app.limiter = ratelimit.New(1, 1)

	ctx, cancel := context.WithCancel(context.Background())
	s.app.startBackground(ctx)
	time.AfterFunc(30*time.Millisecond, cancel)

	done := make(chan error, 1)
	go func() { done <- s.app.Wait(ctx, cancel) }()

	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(2 * time.Second):
		s.Fail("background workers did not stop")
	}
}
