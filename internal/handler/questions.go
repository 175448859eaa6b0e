// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/coursehub/internal/middleware"
	"github.com/olegiv/coursehub/internal/render"
	"github.com/olegiv/coursehub/internal/service"
)

// QuestionHandler handles student questions and lecturer answers.
type QuestionHandler struct {
	qa       *service.QAService
	renderer *render.Renderer
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(qa *service.QAService, renderer *render.Renderer) *QuestionHandler {
	return &QuestionHandler{
		qa:       qa,
		renderer: renderer,
	}
}

// AskForm renders the question form.
func (h *QuestionHandler) AskForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, h.renderer, "ask_question", render.TemplateData{
		Title: "Ask a question",
		User:  middleware.GetUser(r),
	})
}

// Ask handles the question form submission.
func (h *QuestionHandler) Ask(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	if !parseFormOrRedirect(w, r, h.renderer, RouteAskQuestion) {
		return
	}

	form := newAskForm(r)
	if msg := validateForm(form); msg != "" {
		flashError(w, r, h.renderer, RouteAskQuestion, msg)
		return
	}

	question, err := h.qa.Ask(r.Context(), *user, service.AskInput{
		Title:   form.Title,
		Content: form.Content,
	})
	switch {
	case errors.Is(err, service.ErrForbidden):
		flashError(w, r, h.renderer, RouteDashboard, MsgStudentsAskOnly)
	case errors.Is(err, service.ErrInvalidInput):
		flashError(w, r, h.renderer, RouteAskQuestion, MsgInvalidForm)
	case err != nil:
		logAndInternalError(w, "failed to post question", "error", err, "user_id", user.ID)
	default:
		slog.Info("question posted", "question_id", question.ID, "user_id", user.ID)
		flashSuccess(w, r, h.renderer, RouteDashboard, MsgQuestionPosted)
	}
}

// AnswerForm renders a question thread with the answer form.
func (h *QuestionHandler) AnswerForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, paramQuestionID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	thread, err := h.qa.Question(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to load question", "error", err, "question_id", id)
		return
	}

	renderPage(w, r, h.renderer, "answer_question", render.TemplateData{
		Title: "Answer question",
		User:  middleware.GetUser(r),
		Data:  thread,
	})
}

// Answer handles the answer form submission.
func (h *QuestionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	id, ok := parseIDParam(r, paramQuestionID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if !parseFormOrRedirect(w, r, h.renderer, answerURL(id)) {
		return
	}

	form := newAnswerForm(r)
	if msg := validateForm(form); msg != "" {
		flashError(w, r, h.renderer, answerURL(id), msg)
		return
	}

	answer, err := h.qa.Answer(r.Context(), *user, id, service.AnswerInput{Content: form.Content})
	switch {
	case errors.Is(err, service.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, service.ErrForbidden):
		flashError(w, r, h.renderer, RouteDashboard, MsgLecturersAnswerOnly)
	case errors.Is(err, service.ErrInvalidInput):
		flashError(w, r, h.renderer, answerURL(id), MsgInvalidForm)
	case err != nil:
		logAndInternalError(w, "failed to post answer", "error", err, "question_id", id, "user_id", user.ID)
	default:
		slog.Info("answer posted", "answer_id", answer.ID, "question_id", id, "user_id", user.ID)
		flashSuccess(w, r, h.renderer, RouteDashboard, MsgAnswerPosted)
	}
}
