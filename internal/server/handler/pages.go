// Package handler provides the HTTP handlers for the Code Critic web UI.
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mpetrov/code-critic/internal/core"
	"github.com/mpetrov/code-critic/internal/server/view"
	"github.com/mpetrov/code-critic/internal/storage"
	"github.com/mpetrov/code-critic/internal/util"
)

const (
	recentReviewsLimit  = 5
	historyReviewsLimit = 20
	chatMessagesLimit   = 50
)

// pageData carries the fields every page template expects. Flash is a
// warning banner (the request succeeded with a caveat), Error an error
// banner.
type pageData struct {
	Title string
	Flash string
	Error string
}

type homeData struct {
	pageData
	Recent     []core.Review
	SourceCode string
	FileName   string
	Language   string
}

type resultData struct {
	pageData
	Review    *core.Review
	LineCount int
	Saved     bool
}

type reviewData struct {
	pageData
	Review    *core.Review
	LineCount int
}

type historyData struct {
	pageData
	Reviews []core.Review
}

type chatData struct {
	pageData
	Messages []core.ChatMessage
	Question string
}

// PageHandler serves the submission form, review pages, history, and chat.
type PageHandler struct {
	analyzer core.Analyzer
	store    storage.Store
	views    *view.Renderer
	logger   *slog.Logger
}

// NewPageHandler creates the handler with its collaborators.
func NewPageHandler(analyzer core.Analyzer, store storage.Store, views *view.Renderer, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		analyzer: analyzer,
		store:    store,
		views:    views,
		logger:   logger,
	}
}

// Home renders the submission form with the most recent reviews.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderHome(w, r, http.StatusOK, homeData{pageData: pageData{Title: "Submit code"}})
}

// SubmitReview validates the submitted code, runs the analysis, and persists
// the result. Persistence is best-effort: a failed save downgrades to a
// warning and the feedback is still shown.
func (h *PageHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	sourceCode := r.FormValue("source_code")
	fileName := strings.TrimSpace(r.FormValue("file_name"))
	language := strings.TrimSpace(r.FormValue("language"))

	data := homeData{
		pageData:   pageData{Title: "Submit code"},
		SourceCode: sourceCode,
		FileName:   fileName,
		Language:   language,
	}

	// Reject empty input before any remote call is made.
	if strings.TrimSpace(sourceCode) == "" {
		data.Error = "Please enter some code to review."
		h.renderHome(w, r, http.StatusBadRequest, data)
		return
	}

	feedback, err := h.analyzer.Analyze(r.Context(), sourceCode, language)
	if err != nil {
		h.logger.Error("code analysis failed", "error", err)
		data.Error = "The analysis failed. Please try again."
		h.renderHome(w, r, http.StatusBadGateway, data)
		return
	}

	review := &core.Review{
		FileName:         util.SanitizeFilename(fileName),
		Language:         language,
		SourceCode:       sourceCode,
		QualityFeedback:  feedback.Quality,
		SecurityFeedback: feedback.Security,
	}

	result := resultData{
		pageData:  pageData{Title: "Review result"},
		Review:    review,
		LineCount: util.CountLines(sourceCode),
		Saved:     true,
	}
	if err := h.store.SaveReview(r.Context(), review); err != nil {
		h.logger.Error("failed to save review", "error", err)
		result.Saved = false
		result.Flash = "The review could not be saved to history; the results are shown below."
	}

	h.render(w, "result.html", http.StatusOK, result)
}

// ReviewDetail renders one stored review.
func (h *PageHandler) ReviewDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	review, err := h.store.GetReview(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrReviewNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error("failed to load review", "id", id, "error", err)
		http.Error(w, "Failed to load review", http.StatusInternalServerError)
		return
	}

	h.render(w, "review.html", http.StatusOK, reviewData{
		pageData:  pageData{Title: review.FileName},
		Review:    review,
		LineCount: util.CountLines(review.SourceCode),
	})
}

// History renders the review history, most recent first.
func (h *PageHandler) History(w http.ResponseWriter, r *http.Request) {
	data := historyData{pageData: pageData{Title: "Review history"}}

	reviews, err := h.store.ListRecentReviews(r.Context(), historyReviewsLimit)
	if err != nil {
		h.logger.Error("failed to load review history", "error", err)
		data.Error = "Error loading reviews. Please try refreshing the page."
	} else {
		data.Reviews = reviews
	}

	h.render(w, "history.html", http.StatusOK, data)
}

// ChatPage renders the assistant conversation.
func (h *PageHandler) ChatPage(w http.ResponseWriter, r *http.Request) {
	h.renderChat(w, r, http.StatusOK, chatData{pageData: pageData{Title: "Code assistant"}})
}

// ChatSubmit sends a follow-up question to the assistant and records both
// sides of the exchange. Message persistence is best-effort, like reviews.
func (h *PageHandler) ChatSubmit(w http.ResponseWriter, r *http.Request) {
	question := strings.TrimSpace(r.FormValue("question"))

	data := chatData{pageData: pageData{Title: "Code assistant"}}

	if question == "" {
		data.Error = "Please enter a question."
		h.renderChat(w, r, http.StatusBadRequest, data)
		return
	}

	answer, err := h.analyzer.Respond(r.Context(), question)
	if err != nil {
		h.logger.Error("assistant reply failed", "error", err)
		data.Error = "The assistant could not answer. Please try again."
		data.Question = question
		h.renderChat(w, r, http.StatusBadGateway, data)
		return
	}

	for _, msg := range []*core.ChatMessage{
		{Role: core.RoleUser, Content: question},
		{Role: core.RoleAssistant, Content: answer},
	} {
		if err := h.store.SaveChatMessage(r.Context(), msg); err != nil {
			h.logger.Error("failed to save chat message", "role", msg.Role, "error", err)
			data.Flash = "The conversation could not be saved."
			// Unsaved turns are carried in data.Messages so the answer
			// still renders; renderChat appends them after the stored
			// conversation.
			data.Messages = append(data.Messages, *msg)
		}
	}

	h.renderChat(w, r, http.StatusOK, data)
}

// Health reports liveness.
func (h *PageHandler) Health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// renderHome fills in the recent-review sidebar before rendering. A history
// load failure is reported but never blocks the form.
func (h *PageHandler) renderHome(w http.ResponseWriter, r *http.Request, status int, data homeData) {
	recent, err := h.store.ListRecentReviews(r.Context(), recentReviewsLimit)
	if err != nil {
		h.logger.Error("failed to load recent reviews", "error", err)
		if data.Error == "" {
			data.Error = "Error loading recent reviews."
		}
	} else {
		data.Recent = recent
	}
	h.render(w, "home.html", status, data)
}

// renderChat fills in the stored conversation before rendering. Any turns
// already present in data.Messages failed to save and are kept at the end,
// after the stored history.
func (h *PageHandler) renderChat(w http.ResponseWriter, r *http.Request, status int, data chatData) {
	msgs, err := h.store.ListChatMessages(r.Context(), chatMessagesLimit)
	if err != nil {
		h.logger.Error("failed to load chat messages", "error", err)
		if data.Error == "" {
			data.Error = "Error loading the conversation."
		}
	} else {
		data.Messages = append(msgs, data.Messages...)
	}
	h.render(w, "chat.html", status, data)
}

func (h *PageHandler) render(w http.ResponseWriter, page string, status int, data any) {
	if err := h.views.Render(w, status, page, data); err != nil {
		h.logger.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
