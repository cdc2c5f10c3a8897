//go:build unit

package commands_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"supplier-quotes/internal/domain/quote"
	"supplier-quotes/internal/pkg/actor"
	"supplier-quotes/internal/pkg/clock"
	"supplier-quotes/internal/pkg/errs"
	"supplier-quotes/internal/usecase/commands"
	"supplier-quotes/internal/usecase/shared"
	"supplier-quotes/internal/usecase/store"
	"supplier-quotes/tests/common/builder"
	"supplier-quotes/tests/common/testutil"
	sharedmock "supplier-quotes/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type QuoteCommandsTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockBackend *sharedmock.MockQuoteBackend
	clock       *clock.MockClock
	useCase     commands.QuoteCommands
}

func (s *QuoteCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockBackend = sharedmock.NewMockQuoteBackend(s.mockCtrl)
	// before the default validity date of 2024-02-15
	s.clock = clock.NewMockClock(builder.DefaultNow)
	st := store.NewQuoteStore(s.mockBackend, shared.QuoteFilter{}, s.clock, testutil.DiscardLogger())
	s.useCase = commands.NewQuoteUseCase(st, s.clock, testutil.DiscardLogger())
}

func (s *QuoteCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestQuoteCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(QuoteCommandsTestSuite))
}

// seed makes the backend serve quotes and apply patches the way a real backend would.
func (s *QuoteCommandsTestSuite) seed(quotes ...*quote.Quote) *gomock.Call {
	s.mockBackend.EXPECT().FetchAll(gomock.Any(), gomock.Any()).Return(quotes, nil).AnyTimes()
	return s.mockBackend.EXPECT().PersistUpdate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID, p quote.Patch) (*quote.Quote, error) {
			for _, q := range quotes {
				if q.ID() == id {
					return q.Apply(p, s.clock.Now())
				}
			}
			return nil, errs.ErrQuoteNotFound
		})
}

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func (s *QuoteCommandsTestSuite) TestAccept() {
	s.Run("pending quote is accepted with other fields unchanged", func() {
		s.SetupTest()
		q := builder.NewQuoteBuilder().WithTotal(49500).Build()
		s.seed(q).Do(func(_ context.Context, _ uuid.UUID, p quote.Patch) {
			s.Equal(quote.StatusPending, *p.ExpectedStatus)
			s.False(p.Notes.IsSet())
		})

		got, err := s.useCase.Accept(context.Background(), q.ID())
		s.Require().NoError(err)
		s.Equal(quote.StatusAccepted, got.Status())

		want := q.Attributes()
		want.Status = quote.StatusAccepted
		s.Empty(cmp.Diff(want, got.Attributes(), decimalEqual,
			cmpopts.IgnoreFields(quote.Attributes{}, "UpdatedAt")))
	})

	s.Run("expired pending quote is not actionable", func() {
		s.SetupTest()
		validUntil := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
		q := builder.NewQuoteBuilder().WithValidUntil(&validUntil).Build()
		s.seed(q).Times(0)
		s.clock.Set(validUntil.Add(24 * time.Hour))

		_, err := s.useCase.Accept(context.Background(), q.ID())
		s.ErrorIs(err, quote.ErrQuoteExpired)
		s.True(errs.Is(err, errs.ErrInvalidTransition))
	})

	s.Run("terminal quotes cannot be accepted", func() {
		for _, st := range []quote.Status{quote.StatusAccepted, quote.StatusRejected, quote.StatusExpired} {
			s.SetupTest()
			q := builder.NewQuoteBuilder().WithStatus(st).Build()
			s.seed(q).Times(0)

			_, err := s.useCase.Accept(context.Background(), q.ID())
			s.True(errs.Is(err, errs.ErrInvalidTransition), st.String())
		}
	})

	s.Run("unknown quote is not found after one refresh", func() {
		s.SetupTest()
		s.mockBackend.EXPECT().FetchAll(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

		_, err := s.useCase.Accept(context.Background(), uuid.New())
		s.ErrorIs(err, commands.ErrQuoteNotFound)
		s.True(errs.Is(err, errs.ErrQuoteNotFound))
	})

	s.Run("quote decided elsewhere in the meantime", func() {
		s.SetupTest()
		q := builder.NewQuoteBuilder().Build()
		s.mockBackend.EXPECT().FetchAll(gomock.Any(), gomock.Any()).Return([]*quote.Quote{q}, nil)
		s.mockBackend.EXPECT().PersistUpdate(gomock.Any(), q.ID(), gomock.Any()).
			Return(nil, quote.ErrStatusChanged)

		_, err := s.useCase.Accept(context.Background(), q.ID())
		s.True(errs.Is(err, errs.ErrInvalidTransition))
	})

	s.Run("backend unreachable", func() {
		s.SetupTest()
		s.mockBackend.EXPECT().FetchAll(gomock.Any(), gomock.Any()).
			Return(nil, errs.New("dial tcp: connection refused"))

		_, err := s.useCase.Accept(context.Background(), uuid.New())
		s.True(errs.Is(err, errs.ErrQuoteNotAvailable))
	})
}

func (s *QuoteCommandsTestSuite) TestReject() {
	s.Run("reason overwrites notes", func() {
		s.SetupTest()
		notes := "Best price guaranteed"
		q := builder.NewQuoteBuilder().WithNotes(&notes).Build()
		s.seed(q)

		reason := "Price too high"
		got, err := s.useCase.Reject(context.Background(), q.ID(), &reason)
		s.Require().NoError(err)
		s.Equal(quote.StatusRejected, got.Status())
		s.Require().NotNil(got.Notes())
		s.Equal("Price too high", *got.Notes())
	})

	s.Run("no reason clears notes", func() {
		s.SetupTest()
		q := builder.NewQuoteBuilder().Build()
		s.seed(q)

		got, err := s.useCase.Reject(context.Background(), q.ID(), nil)
		s.Require().NoError(err)
		s.Nil(got.Notes())
	})

	s.Run("expired pending quote can be rejected", func() {
		s.SetupTest()
		validUntil := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
		q := builder.NewQuoteBuilder().WithValidUntil(&validUntil).Build()
		s.seed(q)
		s.clock.Set(validUntil.Add(24 * time.Hour))

		got, err := s.useCase.Reject(context.Background(), q.ID(), nil)
		s.Require().NoError(err)
		s.Equal(quote.StatusRejected, got.Status())
	})

	s.Run("terminal quotes cannot be rejected", func() {
		s.SetupTest()
		q := builder.NewQuoteBuilder().WithStatus(quote.StatusAccepted).Build()
		s.seed(q).Times(0)

		reason := "changed our mind"
		_, err := s.useCase.Reject(context.Background(), q.ID(), &reason)
		s.ErrorIs(err, quote.ErrAlreadyDecided)
	})
}

func (s *QuoteCommandsTestSuite) TestUpdateQuote() {
	s.Run("applies monetary corrections", func() {
		s.SetupTest()
		q := builder.NewQuoteBuilder().Build()
		s.seed(q)

		sub, tax, total := decimal.NewFromInt(40000), decimal.NewFromInt(4000), decimal.NewFromInt(44000)
		got, err := s.useCase.UpdateQuote(context.Background(), q.ID(), quote.Patch{
			Subtotal: &sub, Tax: &tax, Total: &total,
		})
		s.Require().NoError(err)
		s.True(got.Total().Equal(total))
		s.Equal(quote.StatusPending, got.Status())
	})

	s.Run("status is not editable", func() {
		s.SetupTest()
		st := quote.StatusAccepted
		_, err := s.useCase.UpdateQuote(context.Background(), uuid.New(), quote.Patch{Status: &st})
		s.ErrorIs(err, quote.ErrStatusNotEditable)
		s.True(errs.Is(err, errs.ErrValidationFailure))
	})

	s.Run("empty patch", func() {
		s.SetupTest()
		_, err := s.useCase.UpdateQuote(context.Background(), uuid.New(), quote.Patch{})
		s.ErrorIs(err, commands.ErrEmptyPatch)
	})

	s.Run("negative amount rejected before persistence", func() {
		s.SetupTest()
		neg := decimal.NewFromInt(-10)
		_, err := s.useCase.UpdateQuote(context.Background(), uuid.New(), quote.Patch{Tax: &neg})
		s.True(errs.Is(err, errs.ErrValidationFailure))
	})

	s.Run("unknown quote", func() {
		s.SetupTest()
		s.seed()
		n := "Q-9"
		_, err := s.useCase.UpdateQuote(context.Background(), uuid.New(), quote.Patch{Number: &n})
		s.True(errs.Is(err, errs.ErrQuoteNotFound))
	})
}

func (s *QuoteCommandsTestSuite) TestCreateQuote() {
	attrs := func() quote.Attributes {
		a := builder.NewQuoteBuilder().Attributes()
		a.ID = uuid.Nil
		a.Status = ""
		a.Currency = "usd"
		return a
	}

	s.Run("new quote starts pending", func() {
		s.SetupTest()
		s.mockBackend.EXPECT().PersistCreate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q *quote.Quote) (*quote.Quote, error) {
				return q, nil
			})

		got, err := s.useCase.CreateQuote(context.Background(), attrs())
		s.Require().NoError(err)
		s.Equal(quote.StatusPending, got.Status())
		s.Equal("USD", got.Currency())
		s.NotEqual(uuid.Nil, got.ID())
		s.True(got.IsActionable(s.clock.Now()))
	})

	s.Run("decided status is refused", func() {
		s.SetupTest()
		a := attrs()
		a.Status = quote.StatusAccepted

		_, err := s.useCase.CreateQuote(context.Background(), a)
		s.ErrorIs(err, quote.ErrStatusNotEditable)
	})

	s.Run("missing supplier", func() {
		s.SetupTest()
		a := attrs()
		a.Supplier = quote.SupplierRef{}

		_, err := s.useCase.CreateQuote(context.Background(), a)
		s.ErrorIs(err, quote.ErrMissingSupplier)
	})

	s.Run("backend outage", func() {
		s.SetupTest()
		s.mockBackend.EXPECT().PersistCreate(gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("dial tcp"), errs.ErrQuoteNotAvailable))

		_, err := s.useCase.CreateQuote(context.Background(), attrs())
		s.True(errs.Is(err, errs.ErrQuoteNotAvailable))
	})
}

func (s *QuoteCommandsTestSuite) TestDecisionsLogTheActingUser() {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	st := store.NewQuoteStore(s.mockBackend, shared.QuoteFilter{}, s.clock, testutil.DiscardLogger())
	useCase := commands.NewQuoteUseCase(st, s.clock, logger)

	q := builder.NewQuoteBuilder().Build()
	s.seed(q)
	userID := uuid.New()

	_, err := useCase.Accept(actor.WithUserID(context.Background(), userID), q.ID())
	s.Require().NoError(err)
	s.Contains(buf.String(), `"msg":"quote accepted"`)
	s.Contains(buf.String(), `"actor":"`+userID.String()+`"`)
}

func (s *QuoteCommandsTestSuite) TestExpireOverdue() {
	past := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	overdue := builder.NewQuoteBuilder().WithValidUntil(&past).Build()
	fresh := builder.NewQuoteBuilder().WithValidUntil(&future).Build()
	open := builder.NewQuoteBuilder().WithValidUntil(nil).Build()
	decided := builder.NewQuoteBuilder().WithValidUntil(&past).WithStatus(quote.StatusAccepted).Build()

	s.seed(overdue, fresh, open, decided).Times(1)

	n, err := s.useCase.ExpireOverdue(context.Background())
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *QuoteCommandsTestSuite) TestRefreshQuotes() {
	s.seed(builder.BuildTotals(1, 2, 3)...).Times(0)

	n, err := s.useCase.RefreshQuotes(context.Background())
	s.Require().NoError(err)
	s.Equal(3, n)
}
