// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

const notBlankTag = "notblank"

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	translator, _ = ut.New(english, english).GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, translator)

	// Report form field names instead of Go struct field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlank)
	_ = validate.RegisterTranslation(notBlankTag, translator,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return fe.Field() + " cannot be blank"
		})
}

func notBlank(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

// RegisterForm is the POST /register payload.
type RegisterForm struct {
	Name     string `form:"name" validate:"notblank,max=100"`
	Email    string `form:"email" validate:"required,email,max=120"`
	Password string `form:"password" validate:"required,max=128"`
	Role     string `form:"role" validate:"required,oneof=lecturer student"`
}

func newRegisterForm(r *http.Request) RegisterForm {
	return RegisterForm{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	}
}

// LoginForm is the POST /login payload.
type LoginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func newLoginForm(r *http.Request) LoginForm {
	return LoginForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
}

// UploadForm holds the text fields of the POST /upload multipart payload.
type UploadForm struct {
	Title       string `form:"title" validate:"notblank,max=100"`
	Description string `form:"description" validate:"max=5000"`
	ContentType string `form:"content_type" validate:"required,oneof=video document"`
}

func newUploadForm(r *http.Request) UploadForm {
	return UploadForm{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		ContentType: r.PostFormValue("content_type"),
	}
}

// AskForm is the POST /ask_question payload.
type AskForm struct {
	Title   string `form:"title" validate:"notblank,max=100"`
	Content string `form:"content" validate:"notblank,max=20000"`
}

func newAskForm(r *http.Request) AskForm {
	return AskForm{
		Title:   strings.TrimSpace(r.PostFormValue("title")),
		Content: strings.TrimSpace(r.PostFormValue("content")),
	}
}

// AnswerForm is the POST /answer_question/{id} payload.
type AnswerForm struct {
	Content string `form:"content" validate:"notblank,max=20000"`
}

func newAnswerForm(r *http.Request) AnswerForm {
	return AnswerForm{
		Content: strings.TrimSpace(r.PostFormValue("content")),
	}
}

// validateForm returns a message for the first failing field, or "" when
// the form is valid.
func validateForm(form any) string {
	err := validate.Struct(form)
	if err == nil {
		return ""
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return capitalize(verrs[0].Translate(translator))
	}
	return MsgInvalidForm
}
