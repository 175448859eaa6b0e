// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/olegiv/coursehub/internal/model"
	"github.com/olegiv/coursehub/internal/store"
)

// ContentItem is an uploaded file with its lecturer's name.
type ContentItem = store.ListContentsRow

// QuestionThread is a question with its answers in posting order.
type QuestionThread struct {
	Question store.ListQuestionsRow
	Answers  []store.ListAnswersForQuestionRow
}

// Dashboard is the role-dependent landing view.
type Dashboard struct {
	Contents  []ContentItem
	Questions []QuestionThread
}

// AskInput is a validated question submission.
type AskInput struct {
	Title   string
	Content string
}

// AnswerInput is a validated answer submission.
type AnswerInput struct {
	Content string
}

// QAService handles questions, answers and the dashboard projection.
type QAService struct {
	db      *sql.DB
	queries *store.Queries
}

// NewQAService creates a new Q&A service.
func NewQAService(db *sql.DB) *QAService {
	return &QAService{
		db:      db,
		queries: store.New(db),
	}
}

// Dashboard returns what user should see. Lecturers see their own
// uploads and every question; students see every upload and their own
// questions.
func (s *QAService) Dashboard(ctx context.Context, user store.User) (Dashboard, error) {
	var (
		contents  []ContentItem
		questions []store.ListQuestionsRow
	)

	switch user.Role {
	case model.RoleLecturer:
		rows, err := s.queries.ListContentsByLecturer(ctx, user.ID)
		if err != nil {
			return Dashboard{}, fmt.Errorf("listing contents: %w", err)
		}
		for _, r := range rows {
			contents = append(contents, ContentItem(r))
		}
		questions, err = s.queries.ListQuestions(ctx)
		if err != nil {
			return Dashboard{}, fmt.Errorf("listing questions: %w", err)
		}
	case model.RoleStudent:
		var err error
		contents, err = s.queries.ListContents(ctx)
		if err != nil {
			return Dashboard{}, fmt.Errorf("listing contents: %w", err)
		}
		rows, err := s.queries.ListQuestionsByStudent(ctx, user.ID)
		if err != nil {
			return Dashboard{}, fmt.Errorf("listing questions: %w", err)
		}
		for _, r := range rows {
			questions = append(questions, store.ListQuestionsRow(r))
		}
	default:
		return Dashboard{}, ErrForbidden
	}

	threads := make([]QuestionThread, 0, len(questions))
	for _, q := range questions {
		answers, err := s.queries.ListAnswersForQuestion(ctx, q.ID)
		if err != nil {
			return Dashboard{}, fmt.Errorf("listing answers for question %d: %w", q.ID, err)
		}
		threads = append(threads, QuestionThread{Question: q, Answers: answers})
	}

	return Dashboard{Contents: contents, Questions: threads}, nil
}

// Ask posts a question on behalf of a student.
func (s *QAService) Ask(ctx context.Context, student store.User, in AskInput) (store.Question, error) {
	if student.Role != model.RoleStudent {
		return store.Question{}, ErrForbidden
	}

	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return store.Question{}, ErrInvalidInput
	}

	q, err := s.queries.CreateQuestion(ctx, store.CreateQuestionParams{
		Title:      title,
		Content:    content,
		DatePosted: time.Now().UTC(),
		StudentID:  student.ID,
	})
	if err != nil {
		return store.Question{}, fmt.Errorf("creating question: %w", err)
	}
	return q, nil
}

// Question returns a question with its answers.
func (s *QAService) Question(ctx context.Context, id int64) (QuestionThread, error) {
	row, err := s.queries.GetQuestionByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return QuestionThread{}, ErrNotFound
		}
		return QuestionThread{}, fmt.Errorf("loading question %d: %w", id, err)
	}

	answers, err := s.queries.ListAnswersForQuestion(ctx, id)
	if err != nil {
		return QuestionThread{}, fmt.Errorf("listing answers for question %d: %w", id, err)
	}

	return QuestionThread{Question: store.ListQuestionsRow(row), Answers: answers}, nil
}

// Answer posts a lecturer's answer to an existing question.
// The question lookup and the insert share one transaction.
func (s *QAService) Answer(ctx context.Context, lecturer store.User, questionID int64, in AnswerInput) (store.Answer, error) {
	if lecturer.Role != model.RoleLecturer {
		return store.Answer{}, ErrForbidden
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return store.Answer{}, ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Answer{}, fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := s.queries.WithTx(tx)

	if _, err := qtx.GetQuestionByID(ctx, questionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Answer{}, ErrNotFound
		}
		return store.Answer{}, fmt.Errorf("loading question %d: %w", questionID, err)
	}

	answer, err := qtx.CreateAnswer(ctx, store.CreateAnswerParams{
		Content:    content,
		DatePosted: time.Now().UTC(),
		QuestionID: questionID,
		LecturerID: lecturer.ID,
	})
	if err != nil {
		return store.Answer{}, fmt.Errorf("creating answer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return store.Answer{}, fmt.Errorf("committing answer: %w", err)
	}
	return answer, nil
}
