// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the landing page.
	RouteRoot = "/"
	// RouteRegister is the registration form.
	RouteRegister = "/register"
	// RouteLogin is the login form.
	RouteLogin = "/login"
	// RouteLogout ends the session.
	RouteLogout = "/logout"
	// RouteDashboard is the role-dependent landing view.
	RouteDashboard = "/dashboard"
	// RouteUpload is the lecturer upload form.
	RouteUpload = "/upload"
	// RouteUploads serves stored files.
	RouteUploads = "/uploads/{contentType}/{filename}"
	// RouteAskQuestion is the student question form.
	RouteAskQuestion = "/ask_question"
	// RouteAnswerQuestion is the lecturer answer form.
	RouteAnswerQuestion = "/answer_question/{questionID}"
	// RouteHealth reports service health as JSON.
	RouteHealth = "/health"
	// RouteStatic serves embedded assets.
	RouteStatic = "/static/*"
)

// URL parameter names.
const (
	paramContentType = "contentType"
	paramFilename    = "filename"
	paramQuestionID  = "questionID"
)

// Flash messages shown to users.
const (
	MsgRegistered         = "Registration successful"
	MsgEmailTaken         = "Email already registered"
	MsgInvalidCredentials = "Invalid email or password"
	MsgInvalidForm        = "Invalid form data"
	MsgNoFile             = "No file selected"
	MsgUploaded           = "Content uploaded successfully"
	MsgQuestionPosted     = "Question posted successfully"
	MsgAnswerPosted       = "Answer posted successfully"

	MsgLecturersUploadOnly = "Only lecturers can upload content"
	MsgStudentsAskOnly     = "Only students can ask questions"
	MsgLecturersAnswerOnly = "Only lecturers can answer questions"
)

// Header and content type constants.
const (
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// multipartMemory is how much of an upload is buffered in memory before
// spilling to temporary files.
const multipartMemory = 8 << 20

// answerURL returns the answer form path for a question.
func answerURL(questionID int64) string {
	return "/answer_question/" + formatID(questionID)
}
