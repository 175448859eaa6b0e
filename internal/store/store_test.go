// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/olegiv/coursehub/internal/model"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "coursehub-test.db")

	db, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	return db
}

func mustCreateUser(t *testing.T, q *Queries, email string, role model.Role) User {
	t.Helper()
	user, err := q.CreateUser(context.Background(), CreateUserParams{
		Email:        email,
		PasswordHash: "hashed-password",
		Name:         "Test " + string(role),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return user
}

func TestMigrate_Idempotent(t *testing.T) {
	db := testDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestCreateUser(t *testing.T) {
	db := testDB(t)
	q := New(db)

	user := mustCreateUser(t, q, "test@example.com", model.RoleLecturer)

	if user.ID == 0 {
		t.Error("user.ID should not be 0")
	}
	if user.Email != "test@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "test@example.com")
	}
	if user.Role != model.RoleLecturer {
		t.Errorf("Role = %q, want %q", user.Role, model.RoleLecturer)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := testDB(t)
	q := New(db)

	mustCreateUser(t, q, "dup@example.com", model.RoleStudent)

	_, err := q.CreateUser(context.Background(), CreateUserParams{
		Email:        "dup@example.com",
		PasswordHash: "x",
		Name:         "Again",
		Role:         model.RoleStudent,
		CreatedAt:    time.Now().UTC(),
	})
	if err == nil {
		t.Fatal("expected unique constraint violation")
	}
	if !strings.Contains(err.Error(), "UNIQUE") {
		t.Errorf("error = %v, want UNIQUE constraint failure", err)
	}
}

func TestCreateUser_RejectsUnknownRole(t *testing.T) {
	db := testDB(t)
	q := New(db)

	_, err := q.CreateUser(context.Background(), CreateUserParams{
		Email:        "admin@example.com",
		PasswordHash: "x",
		Name:         "Admin",
		Role:         model.Role("admin"),
		CreatedAt:    time.Now().UTC(),
	})
	if err == nil {
		t.Fatal("expected CHECK constraint violation for role")
	}
}

func TestGetUserByEmail(t *testing.T) {
	db := testDB(t)
	q := New(db)
	ctx := context.Background()

	created := mustCreateUser(t, q, "find@example.com", model.RoleStudent)

	found, err := q.GetUserByEmail(ctx, "find@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}

	_, err = q.GetUserByEmail(ctx, "missing@example.com")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetUserByEmail(missing) error = %v, want sql.ErrNoRows", err)
	}
}

func TestContentsByLecturer(t *testing.T) {
	db := testDB(t)
	q := New(db)
	ctx := context.Background()

	l1 := mustCreateUser(t, q, "l1@example.com", model.RoleLecturer)
	l2 := mustCreateUser(t, q, "l2@example.com", model.RoleLecturer)

	for _, p := range []CreateContentParams{
		{Title: "A", Filename: "a.pdf", ContentType: model.ContentDocument, LecturerID: l1.ID},
		{Title: "B", Filename: "b.mp4", ContentType: model.ContentVideo, LecturerID: l2.ID},
		{Title: "C", Filename: "c.pdf", ContentType: model.ContentDocument, LecturerID: l1.ID,
			Description: sql.NullString{String: "third", Valid: true}},
	} {
		p.UploadDate = time.Now().UTC()
		if _, err := q.CreateContent(ctx, p); err != nil {
			t.Fatalf("CreateContent(%s): %v", p.Title, err)
		}
	}

	all, err := q.ListContents(ctx)
	if err != nil {
		t.Fatalf("ListContents: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(ListContents) = %d, want 3", len(all))
	}
	if all[0].Title != "A" || all[2].Title != "C" {
		t.Errorf("ListContents not in insertion order: %q, %q", all[0].Title, all[2].Title)
	}

	mine, err := q.ListContentsByLecturer(ctx, l1.ID)
	if err != nil {
		t.Fatalf("ListContentsByLecturer: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("len(ListContentsByLecturer) = %d, want 2", len(mine))
	}
	for _, c := range mine {
		if c.LecturerID != l1.ID {
			t.Errorf("content %d owned by %d, want %d", c.ID, c.LecturerID, l1.ID)
		}
		if c.LecturerName != l1.Name {
			t.Errorf("LecturerName = %q, want %q", c.LecturerName, l1.Name)
		}
	}
	if !mine[1].Description.Valid || mine[1].Description.String != "third" {
		t.Errorf("Description = %+v, want third", mine[1].Description)
	}
}

func TestQuestionsAndAnswers(t *testing.T) {
	db := testDB(t)
	q := New(db)
	ctx := context.Background()

	student := mustCreateUser(t, q, "s@example.com", model.RoleStudent)
	lecturer := mustCreateUser(t, q, "l@example.com", model.RoleLecturer)

	question, err := q.CreateQuestion(ctx, CreateQuestionParams{
		Title:      "When is the exam?",
		Content:    "Please tell us.",
		DatePosted: time.Now().UTC(),
		StudentID:  student.ID,
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	got, err := q.GetQuestionByID(ctx, question.ID)
	if err != nil {
		t.Fatalf("GetQuestionByID: %v", err)
	}
	if got.StudentName != student.Name {
		t.Errorf("StudentName = %q, want %q", got.StudentName, student.Name)
	}

	if _, err := q.CreateAnswer(ctx, CreateAnswerParams{
		Content:    "Next Friday",
		DatePosted: time.Now().UTC(),
		QuestionID: question.ID,
		LecturerID: lecturer.ID,
	}); err != nil {
		t.Fatalf("CreateAnswer: %v", err)
	}

	answers, err := q.ListAnswersForQuestion(ctx, question.ID)
	if err != nil {
		t.Fatalf("ListAnswersForQuestion: %v", err)
	}
	if len(answers) != 1 || answers[0].Content != "Next Friday" {
		t.Fatalf("answers = %+v", answers)
	}
	if answers[0].LecturerName != lecturer.Name {
		t.Errorf("LecturerName = %q, want %q", answers[0].LecturerName, lecturer.Name)
	}

	byStudent, err := q.ListQuestionsByStudent(ctx, lecturer.ID)
	if err != nil {
		t.Fatalf("ListQuestionsByStudent: %v", err)
	}
	if len(byStudent) != 0 {
		t.Errorf("lecturer should own no questions, got %d", len(byStudent))
	}
}

func TestCreateAnswer_ForeignKey(t *testing.T) {
	db := testDB(t)
	q := New(db)

	lecturer := mustCreateUser(t, q, "l@example.com", model.RoleLecturer)

	_, err := q.CreateAnswer(context.Background(), CreateAnswerParams{
		Content:    "orphan",
		DatePosted: time.Now().UTC(),
		QuestionID: 9999,
		LecturerID: lecturer.ID,
	})
	if err == nil {
		t.Fatal("expected foreign key violation for unknown question")
	}
}

func TestDeleteAll(t *testing.T) {
	db := testDB(t)
	q := New(db)
	ctx := context.Background()

	mustCreateUser(t, q, "a@example.com", model.RoleStudent)
	mustCreateUser(t, q, "b@example.com", model.RoleLecturer)

	n, err := q.DeleteAllUsers(ctx)
	if err != nil {
		t.Fatalf("DeleteAllUsers: %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteAllUsers removed %d rows, want 2", n)
	}

	count, err := q.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if count != 0 {
		t.Errorf("CountUsers = %d, want 0", count)
	}
}

func TestSeed(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := Seed(ctx, db, false); err != nil {
		t.Fatalf("Seed(disabled): %v", err)
	}
	if n, _ := New(db).CountUsers(ctx); n != 0 {
		t.Fatalf("disabled seed created %d users", n)
	}

	if err := Seed(ctx, db, true); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	// Running twice must not fail on the unique email.
	if err := Seed(ctx, db, true); err != nil {
		t.Fatalf("Seed (second run): %v", err)
	}

	lecturer, err := New(db).GetUserByEmail(ctx, DemoLecturerEmail)
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if lecturer.Role != model.RoleLecturer {
		t.Errorf("demo lecturer role = %q", lecturer.Role)
	}
}

func TestNewDB_BadPath(t *testing.T) {
	dir := t.TempDir()
	// A directory cannot be opened as a database file.
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := NewDB(filepath.Join(dir, "sub")); err == nil {
		t.Fatal("NewDB should fail on a directory path")
	}
}
