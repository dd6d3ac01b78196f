package handler_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mpetrov/code-critic/internal/core"
	"github.com/mpetrov/code-critic/internal/mocks"
	"github.com/mpetrov/code-critic/internal/server"
	"github.com/mpetrov/code-critic/internal/server/handler"
	"github.com/mpetrov/code-critic/internal/server/view"
	"github.com/mpetrov/code-critic/internal/storage"
)

type fixture struct {
	analyzer *mocks.MockAnalyzer
	store    *mocks.MockStore
	router   http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	analyzer := mocks.NewMockAnalyzer(ctrl)
	store := mocks.NewMockStore(ctrl)

	views, err := view.NewRenderer()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pages := handler.NewPageHandler(analyzer, store, views, logger)

	return &fixture{
		analyzer: analyzer,
		store:    store,
		router:   server.NewRouter(pages),
	}
}

func postForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHome(t *testing.T) {
	f := newFixture(t)

	f.store.EXPECT().ListRecentReviews(gomock.Any(), 5).Return([]core.Review{
		{ID: 1, FileName: "main.go", SourceCode: "package main"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "main.go")
}

func TestSubmitReviewEmptyInput(t *testing.T) {
	f := newFixture(t)

	// No Analyze or SaveReview expectations: the empty submission must be
	// rejected before any remote call is made.
	f.store.EXPECT().ListRecentReviews(gomock.Any(), 5).Return(nil, nil)

	rec := postForm(f.router, "/reviews", url.Values{"source_code": {"   \n\t "}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter some code to review.")
}

func TestSubmitReviewSuccess(t *testing.T) {
	f := newFixture(t)

	f.analyzer.EXPECT().
		Analyze(gomock.Any(), "def f(): pass", "python").
		Return(core.Feedback{Quality: "fine", Security: "no issues"}, nil)

	var saved *core.Review
	f.store.EXPECT().
		SaveReview(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *core.Review) error {
			r.ID = 7
			saved = r
			return nil
		})

	rec := postForm(f.router, "/reviews", url.Values{
		"source_code": {"def f(): pass"},
		"file_name":   {"sample.py"},
		"language":    {"python"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fine")
	assert.Contains(t, rec.Body.String(), "no issues")
	assert.Contains(t, rec.Body.String(), "review #7")

	require.NotNil(t, saved)
	assert.Equal(t, "sample.py", saved.FileName)
	assert.Equal(t, "def f(): pass", saved.SourceCode)
	assert.Equal(t, "fine", saved.QualityFeedback)
	assert.Equal(t, "no issues", saved.SecurityFeedback)
}

func TestSubmitReviewAnalysisFailure(t *testing.T) {
	f := newFixture(t)

	f.analyzer.EXPECT().
		Analyze(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(core.Feedback{}, &core.AnalysisError{Op: "model call", Err: errors.New("timeout")})
	// SaveReview must never be called for a failed analysis.
	f.store.EXPECT().ListRecentReviews(gomock.Any(), 5).Return(nil, nil)

	rec := postForm(f.router, "/reviews", url.Values{"source_code": {"def f(): pass"}})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "The analysis failed.")
}

func TestSubmitReviewSaveFailureStillShowsResult(t *testing.T) {
	f := newFixture(t)

	f.analyzer.EXPECT().
		Analyze(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(core.Feedback{Quality: "fine", Security: "no issues"}, nil)
	f.store.EXPECT().
		SaveReview(gomock.Any(), gomock.Any()).
		Return(&core.PersistenceError{Op: "save review", Err: errors.New("disk full")})

	rec := postForm(f.router, "/reviews", url.Values{"source_code": {"def f(): pass"}})

	// Persistence is best-effort: the feedback still renders.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fine")
	assert.Contains(t, rec.Body.String(), "could not be saved")
}

func TestReviewDetail(t *testing.T) {
	f := newFixture(t)

	f.store.EXPECT().GetReview(gomock.Any(), int64(42)).Return(&core.Review{
		ID: 42, FileName: "app.py", SourceCode: "print(1)", QualityFeedback: "ok", SecurityFeedback: "ok",
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/reviews/42", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "app.py")
}

func TestReviewDetailNotFound(t *testing.T) {
	f := newFixture(t)

	f.store.EXPECT().GetReview(gomock.Any(), int64(99)).Return(nil, storage.ErrReviewNotFound)

	req := httptest.NewRequest(http.MethodGet, "/reviews/99", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatSubmit(t *testing.T) {
	f := newFixture(t)

	f.analyzer.EXPECT().
		Respond(gomock.Any(), "what is sql injection?").
		Return("An attack through unsanitized query input.", nil)
	f.store.EXPECT().SaveChatMessage(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.store.EXPECT().ListChatMessages(gomock.Any(), 50).Return([]core.ChatMessage{
		{Role: core.RoleUser, Content: "what is sql injection?"},
		{Role: core.RoleAssistant, Content: "An attack through unsanitized query input."},
	}, nil)

	rec := postForm(f.router, "/chat", url.Values{"question": {"what is sql injection?"}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "An attack through unsanitized query input.")
}

func TestChatSubmitSaveFailureStillShowsAnswer(t *testing.T) {
	f := newFixture(t)

	f.analyzer.EXPECT().
		Respond(gomock.Any(), "is this safe?").
		Return("Validate the input first.", nil)
	f.store.EXPECT().
		SaveChatMessage(gomock.Any(), gomock.Any()).
		Return(&core.PersistenceError{Op: "save chat message", Err: errors.New("disk full")}).
		Times(2)
	// The failed saves never reached the store.
	f.store.EXPECT().ListChatMessages(gomock.Any(), 50).Return(nil, nil)

	rec := postForm(f.router, "/chat", url.Values{"question": {"is this safe?"}})

	// Persistence is best-effort: both turns still render.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "is this safe?")
	assert.Contains(t, rec.Body.String(), "Validate the input first.")
	assert.Contains(t, rec.Body.String(), "could not be saved")
}

func TestChatSubmitEmptyQuestion(t *testing.T) {
	f := newFixture(t)

	f.store.EXPECT().ListChatMessages(gomock.Any(), 50).Return(nil, nil)

	rec := postForm(f.router, "/chat", url.Values{"question": {"  "}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter a question.")
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
