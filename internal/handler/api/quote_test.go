//go:build unit

package api_test

import (
	"bytes"
	"errors"
	"net/http"
	"testing"

	"supplier-quotes/internal/domain/quote"
	"supplier-quotes/internal/handler/api"
	resdto "supplier-quotes/internal/handler/dto/response"
	"supplier-quotes/internal/handler/middleware"
	"supplier-quotes/internal/pkg/clock"
	"supplier-quotes/internal/pkg/errs"
	"supplier-quotes/internal/usecase/queries"
	"supplier-quotes/tests/common/builder"
	"supplier-quotes/tests/common/httptest"
	"supplier-quotes/tests/common/testutil"
	commandsmock "supplier-quotes/tests/mock/commands"
	queriesmock "supplier-quotes/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type stubRenderer struct {
	err error
}

func (r stubRenderer) Generate(*queries.QuoteView) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.3 stub"), nil
}

type updateBody struct {
	QuoteDate string `json:"quote_date"`
	Subtotal  string `json:"subtotal"`
	Tax       string `json:"tax"`
	Total     string `json:"total"`
	Currency  string `json:"currency"`
}

type QuoteHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockQuoteCommands
	mockQueries  *queriesmock.MockQuoteQueries
	renderer     *stubRenderer
	handler      *api.QuoteHandler
}

func (s *QuoteHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockQuoteCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockQuoteQueries(s.mockCtrl)
	s.renderer = &stubRenderer{}
	s.handler = api.NewQuoteHandler(s.mockCommands, s.mockQueries, s.renderer, clock.NewMockClock(builder.DefaultNow))

	s.router.GET("/quotes", s.handler.List)
	s.router.POST("/quotes", s.handler.Create)
	s.router.GET("/quotes/metrics", s.handler.Metrics)
	s.router.POST("/quotes/refresh", s.handler.Refresh)
	s.router.GET("/quotes/:id", s.handler.Get)
	s.router.PATCH("/quotes/:id", s.handler.Update)
	s.router.POST("/quotes/:id/accept", s.handler.Accept)
	s.router.POST("/quotes/:id/reject", s.handler.Reject)
	s.router.GET("/quotes/:id/pdf", s.handler.PDF)
	s.router.GET("/deals/:id/comparison", s.handler.CompareDeal)
}

func (s *QuoteHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestQuoteHandlerSuite(t *testing.T) {
	suite.Run(t, new(QuoteHandlerTestSuite))
}

func (s *QuoteHandlerTestSuite) TestList() {
	q := builder.NewQuoteBuilder().Build()
	view := queries.ToQuoteView(q, builder.DefaultNow)

	s.Run("success: filters are passed through", func() {
		pending := quote.StatusPending
		s.mockQueries.EXPECT().List(gomock.Any(), queries.ListFilter{
			DealID: &builder.DefaultDealID,
			Status: &pending,
			Limit:  10,
		}).Return([]*queries.QuoteView{view}, &queries.Cursor{After: "next"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/quotes?deal_id="+builder.DefaultDealID.String()+"&status=pending&limit=10", nil, "")

		var body resdto.QuoteListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Quotes, 1)
		s.Equal(q.ID(), body.Quotes[0].ID)
		s.Require().NotNil(body.NextCursor)
		s.Equal("next", *body.NextCursor)
	})

	s.Run("success: status all means no filter", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), queries.ListFilter{}).Return(nil, nil, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/quotes?status=all", nil, "")
		var body resdto.QuoteListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Quotes)
	})

	s.Run("error: 400 Bad Request on malformed query", func() {
		testCases := []struct {
			name string
			url  string
		}{
			{name: "bad deal id", url: "/quotes?deal_id=nope"},
			{name: "unknown status", url: "/quotes?status=archived"},
			{name: "zero limit", url: "/quotes?limit=0"},
			{name: "non-numeric limit", url: "/quotes?limit=ten"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, tc.url, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 503 when the store is unreachable", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).
			Return(nil, nil, errs.Mark(errs.New("dial tcp"), errs.ErrQuoteNotAvailable))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/quotes", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "retry later")
	})
}

func (s *QuoteHandlerTestSuite) TestGet() {
	q := builder.NewQuoteBuilder().Build()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), q.ID()).Return(queries.ToQuoteView(q, builder.DefaultNow), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/quotes/"+q.ID().String(), nil, "")
		var body resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Q-2024-001", body.Number)
		s.Equal("2024-01-10", body.QuoteDate)
	})

	s.Run("error: 404 for unknown id", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, queries.ErrQuoteNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/quotes/"+uuid.NewString(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "quote not found")
	})

	s.Run("error: 400 for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/quotes/42", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *QuoteHandlerTestSuite) TestAccept() {
	q := builder.NewQuoteBuilder().Build()
	url := "/quotes/" + q.ID().String() + "/accept"

	s.Run("success: returns the accepted quote", func() {
		accepted := builder.NewQuoteBuilder().With(func(b *builder.QuoteBuilder) { b.ID = q.ID() }).
			WithStatus(quote.StatusAccepted).Build()
		s.mockCommands.EXPECT().Accept(gomock.Any(), q.ID()).Return(accepted, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		var body resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("accepted", body.Status)
		s.False(body.IsActionable)
	})

	s.Run("error: maps outcome classes to statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "already decided", commandsError: quote.ErrAlreadyDecided, expectedStatus: http.StatusConflict, expectedMsg: "no longer pending"},
			{name: "expired", commandsError: quote.ErrQuoteExpired, expectedStatus: http.StatusConflict, expectedMsg: "expired"},
			{name: "not found", commandsError: errs.Mark(errs.New("quote not found"), errs.ErrQuoteNotFound), expectedStatus: http.StatusNotFound},
			{name: "unavailable", commandsError: errs.Mark(errs.New("down"), errs.ErrQuoteNotAvailable), expectedStatus: http.StatusServiceUnavailable},
			{name: "internal", commandsError: errors.New("boom"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Accept failed"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Accept(gomock.Any(), q.ID()).Return(nil, tc.commandsError)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *QuoteHandlerTestSuite) TestReject() {
	q := builder.NewQuoteBuilder().Build()
	url := "/quotes/" + q.ID().String() + "/reject"
	rejected := builder.NewQuoteBuilder().WithStatus(quote.StatusRejected).WithNotes(nil).Build()

	s.Run("success: reason is forwarded", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), q.ID(), gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, reason *string) (*quote.Quote, error) {
				s.Require().NotNil(reason)
				s.Equal("Over budget", *reason)
				return rejected, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "Over budget"}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: body is optional", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), q.ID(), (*string)(nil)).Return(rejected, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		var body resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Nil(body.Notes)
	})

	s.Run("error: 400 for malformed body", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, url, `{"reason":`)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 409 for a terminal quote", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), q.ID(), gomock.Any()).Return(nil, quote.ErrAlreadyDecided)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func (s *QuoteHandlerTestSuite) TestUpdate() {
	q := builder.NewQuoteBuilder().Build()
	url := "/quotes/" + q.ID().String()

	s.Run("success: patch is decoded", func() {
		s.mockCommands.EXPECT().UpdateQuote(gomock.Any(), q.ID(), gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, p quote.Patch) (*quote.Quote, error) {
				s.Require().NotNil(p.Tax)
				s.True(p.Tax.Equal(decimal.NewFromInt(5000)))
				s.True(p.Notes.IsSet())
				s.Nil(p.Notes.Value())
				return q, nil
			})

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPatch, url, `{"tax":"5000","notes":null}`)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 when status is in the body", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPatch, url, `{"status":"accepted"}`)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "status")
	})

	s.Run("error: 400 for malformed fields", func() {
		valid := updateBody{QuoteDate: "2024-01-15", Subtotal: "100", Tax: "10", Total: "110", Currency: "EUR"}
		testCases := []struct {
			name string
			body map[string]any
		}{
			{name: "date format", body: testutil.DtoMap(s.T(), valid, testutil.Field("quote_date", "15/01/2024"))},
			{name: "currency length", body: testutil.DtoMap(s.T(), valid, testutil.Field("currency", "DOLLAR"))},
			{name: "non-numeric amount", body: testutil.DtoMap(s.T(), valid, testutil.Field("subtotal", "abc"))},
			{name: "status", body: testutil.DtoMap(s.T(), valid, testutil.Field("status", "accepted"))},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, tc.body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 400 for validation failures from the use case", func() {
		s.mockCommands.EXPECT().UpdateQuote(gomock.Any(), q.ID(), gomock.Any()).Return(nil, quote.ErrTotalMismatch)

		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPatch, url, `{"subtotal":1,"tax":1,"total":3}`)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "total must equal")
	})
}

func (s *QuoteHandlerTestSuite) TestCreate() {
	supplierID := uuid.New()
	valid := map[string]any{
		"deal_id":      builder.DefaultDealID.String(),
		"supplier_id":  supplierID.String(),
		"quote_number": "Q-2024-010",
		"quote_date":   "2024-01-12",
		"valid_until":  "2024-02-12",
		"subtotal":     "1000",
		"tax":          "100",
		"total":        "1100",
		"items": []map[string]any{
			{"name": "Rebar", "quantity": "10", "unit_price": "100"},
		},
	}

	s.Run("success: request is mapped and 201 returned", func() {
		created := builder.NewQuoteBuilder().WithNumber("Q-2024-010").Build()
		s.mockCommands.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, a quote.Attributes) (*quote.Quote, error) {
				s.Equal(builder.DefaultDealID, a.Deal.ID)
				s.Equal(supplierID, a.Supplier.ID)
				s.Equal("USD", a.Currency)
				s.Equal("2024-01-12", a.QuoteDate.Format("2006-01-02"))
				s.Require().NotNil(a.ValidUntil)
				s.True(a.Total.Equal(decimal.NewFromInt(1100)))
				s.Require().Len(a.Items, 1)
				s.True(a.Items[0].Total.Equal(decimal.NewFromInt(1000)))
				s.Empty(a.Status)
				return created, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/quotes", valid, "")
		var body resdto.QuoteResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(created.ID(), body.ID)
		s.Equal("pending", body.Status)
	})

	s.Run("error: malformed date", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/quotes",
			`{"deal_id":"`+builder.DefaultDealID.String()+`","quote_date":"12/01/2024"}`)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "YYYY-MM-DD")
	})

	s.Run("error: malformed json", func() {
		rec := httptest.PerformRawRequest(s.T(), s.router, http.MethodPost, "/quotes", `{"deal_id":`)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{"unknown deal or supplier", quote.ErrUnknownReference, http.StatusBadRequest, "does not exist"},
		{"inconsistent totals", quote.ErrTotalMismatch, http.StatusBadRequest, "total must equal"},
		{"store unavailable", errs.Mark(errors.New("dial tcp"), errs.ErrQuoteNotAvailable), http.StatusServiceUnavailable, "retry later"},
	}
	for _, tc := range testCases {
		s.Run("error: "+tc.name, func() {
			s.mockCommands.EXPECT().CreateQuote(gomock.Any(), gomock.Any()).Return(nil, errs.Wrap(tc.err, "create quote"))

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/quotes", valid, "")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
		})
	}
}

func (s *QuoteHandlerTestSuite) TestRefresh() {
	s.Run("success", func() {
		s.mockCommands.EXPECT().RefreshQuotes(gomock.Any()).Return(5, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/quotes/refresh", nil, "")
		var body resdto.RefreshResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(5, body.Count)
	})

	s.Run("error: 503", func() {
		s.mockCommands.EXPECT().RefreshQuotes(gomock.Any()).Return(0, errs.Mark(errs.New("down"), errs.ErrQuoteNotAvailable))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/quotes/refresh", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "")
	})
}

func (s *QuoteHandlerTestSuite) TestMetrics() {
	s.mockQueries.EXPECT().Metrics(gomock.Any(), (*uuid.UUID)(nil)).Return(&queries.MetricsView{
		Total:        5,
		Pending:      3,
		Accepted:     1,
		Rejected:     1,
		TotalValue:   decimal.NewFromInt(229350),
		AverageValue: decimal.NewFromInt(45870),
	}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/quotes/metrics", nil, "")
	var body resdto.MetricsResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal(5, body.Total)
	s.True(body.AverageValue.Equal(decimal.NewFromInt(45870)))
}

func (s *QuoteHandlerTestSuite) TestCompareDeal() {
	a := builder.NewQuoteBuilder().WithTotal(49500).Build()
	b := builder.NewQuoteBuilder().WithTotal(30800).Build()
	view := &queries.ComparisonView{
		DealID:  builder.DefaultDealID,
		HasData: true,
		Count:   2,
		Lowest:  decimal.NewFromInt(30800),
		Highest: decimal.NewFromInt(49500),
		Average: decimal.NewFromInt(40150),
		Entries: []queries.ComparisonEntryView{
			{Rank: 1, Quote: queries.ToQuoteView(b, builder.DefaultNow), IsBestPrice: true, IsBestBadge: true},
			{Rank: 2, Quote: queries.ToQuoteView(a, builder.DefaultNow), PriceDelta: decimal.NewFromInt(18700), PriceDeltaPercent: decimal.RequireFromString("60.71")},
		},
	}
	s.mockQueries.EXPECT().CompareDeal(gomock.Any(), builder.DefaultDealID).Return(view, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/deals/"+builder.DefaultDealID.String()+"/comparison", nil, "")
	var body resdto.ComparisonResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Require().Len(body.Entries, 2)
	s.Equal(b.ID(), body.Entries[0].Quote.ID)
	s.True(body.Entries[0].IsBestBadge)
	s.True(body.Entries[1].PriceDeltaPercent.Equal(decimal.RequireFromString("60.71")))
}

func (s *QuoteHandlerTestSuite) TestPDF() {
	q := builder.NewQuoteBuilder().Build()
	url := "/quotes/" + q.ID().String() + "/pdf"

	s.Run("success: attachment headers", func() {
		s.renderer.err = nil
		s.mockQueries.EXPECT().GetByID(gomock.Any(), q.ID()).Return(queries.ToQuoteView(q, builder.DefaultNow), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusOK, rec.Code)
		httptest.AssertHeaders(s.T(), rec, map[string]string{
			"Content-Type":        "application/pdf",
			"Content-Disposition": `attachment; filename="Q-2024-001.pdf"`,
		})
		s.True(bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
	})

	s.Run("error: renderer failure", func() {
		s.renderer.err = errors.New("font missing")
		s.mockQueries.EXPECT().GetByID(gomock.Any(), q.ID()).Return(queries.ToQuoteView(q, builder.DefaultNow), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "PDF generation failed")
	})
}
