//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"supplier-quotes/internal/domain/quote"
	"supplier-quotes/internal/pkg/clock"
	"supplier-quotes/internal/pkg/errs"
	"supplier-quotes/internal/usecase/commands"
	"supplier-quotes/tests/common/builder"
	"supplier-quotes/tests/common/testutil"
	commandsmock "supplier-quotes/tests/mock/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRefresher_Tick(t *testing.T) {
	t.Run("refresh only", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cmds := commandsmock.NewMockQuoteCommands(ctrl)
		cmds.EXPECT().RefreshQuotes(gomock.Any()).Return(5, nil)

		commands.NewRefresher(cmds, time.Minute, false, testutil.DiscardLogger()).Tick(context.Background())
	})

	t.Run("refresh then expire", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cmds := commandsmock.NewMockQuoteCommands(ctrl)
		gomock.InOrder(
			cmds.EXPECT().RefreshQuotes(gomock.Any()).Return(5, nil),
			cmds.EXPECT().ExpireOverdue(gomock.Any()).Return(1, nil),
		)

		commands.NewRefresher(cmds, time.Minute, true, testutil.DiscardLogger()).Tick(context.Background())
	})

	t.Run("failed refresh skips expiry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cmds := commandsmock.NewMockQuoteCommands(ctrl)
		cmds.EXPECT().RefreshQuotes(gomock.Any()).Return(0, errors.New("down"))

		commands.NewRefresher(cmds, time.Minute, true, testutil.DiscardLogger()).Tick(context.Background())
	})
}

func TestRefresher_Run(t *testing.T) {
	t.Run("stops with its context", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cmds := commandsmock.NewMockQuoteCommands(ctrl)
		cmds.EXPECT().RefreshQuotes(gomock.Any()).Return(5, nil).AnyTimes()

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			commands.NewRefresher(cmds, 5*time.Millisecond, false, testutil.DiscardLogger()).Run(ctx)
			close(done)
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("refresher did not stop")
		}
	})

	t.Run("disabled interval returns at once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cmds := commandsmock.NewMockQuoteCommands(ctrl)

		commands.NewRefresher(cmds, 0, true, testutil.DiscardLogger()).Run(context.Background())
	})
}

func TestQuoteUseCase_LoadFallsBackToRefresh(t *testing.T) {
	q := builder.NewQuoteBuilder().Build()
	clk := clock.NewMockClock(builder.DefaultNow)

	t.Run("quote recorded since the last refresh is found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := commandsmock.NewMockQuoteStore(ctrl)
		accepted := builder.NewQuoteBuilder().WithStatus(quote.StatusAccepted).Build()

		gomock.InOrder(
			st.EXPECT().GetByID(gomock.Any(), q.ID()).Return(nil, false, nil),
			st.EXPECT().Refresh(gomock.Any()).Return([]*quote.Quote{q}, nil),
			st.EXPECT().GetByID(gomock.Any(), q.ID()).Return(q, true, nil),
			st.EXPECT().Update(gomock.Any(), q.ID(), gomock.Any()).Return(accepted, nil),
		)

		uc := commands.NewQuoteUseCase(st, clk, testutil.DiscardLogger())
		got, err := uc.Accept(context.Background(), q.ID())
		require.NoError(t, err)
		assert.Equal(t, quote.StatusAccepted, got.Status())
	})

	t.Run("still missing after refresh", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := commandsmock.NewMockQuoteStore(ctrl)

		st.EXPECT().GetByID(gomock.Any(), q.ID()).Return(nil, false, nil).Times(2)
		st.EXPECT().Refresh(gomock.Any()).Return(nil, nil)

		uc := commands.NewQuoteUseCase(st, clk, testutil.DiscardLogger())
		_, err := uc.Reject(context.Background(), q.ID(), nil)
		assert.True(t, errs.Is(err, errs.ErrQuoteNotFound))
	})

	t.Run("refresh failure is surfaced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		st := commandsmock.NewMockQuoteStore(ctrl)
		unavailable := errs.Mark(errs.New("down"), errs.ErrQuoteNotAvailable)

		st.EXPECT().GetByID(gomock.Any(), q.ID()).Return(nil, false, nil)
		st.EXPECT().Refresh(gomock.Any()).Return(nil, unavailable)

		uc := commands.NewQuoteUseCase(st, clk, testutil.DiscardLogger())
		_, err := uc.Accept(context.Background(), q.ID())
		assert.True(t, errs.Is(err, errs.ErrQuoteNotAvailable))
	})
}
