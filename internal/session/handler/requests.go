package handler

import (
	"strings"

	"govos/internal/desktop"
	"govos/internal/document"
	"govos/internal/session"
	dErrors "govos/pkg/domain-errors"
	"govos/pkg/validation"
)

// CreateSessionRequest starts a session.
type CreateSessionRequest struct {
	SkipTutorial bool `json:"skip_tutorial"`
}

// DragRequest is one pointer step of a window drag. App is required to
// begin a drag and ignored afterwards.
type DragRequest struct {
	App string `json:"app"`
	X   int    `json:"x" validate:"gte=-10000,lte=10000"`
	Y   int    `json:"y" validate:"gte=-10000,lte=10000"`
}

func (r *DragRequest) Normalize() {
	if r == nil {
		return
	}
	r.App = strings.TrimSpace(r.App)
}

func (r *DragRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return validation.Validate(r)
}

// Point converts the pointer position.
func (r *DragRequest) Point() desktop.Point {
	return desktop.Point{X: r.X, Y: r.Y}
}

// ChatRequest is one messenger line.
type ChatRequest struct {
	Text string `json:"text" validate:"notblank"`
}

func (r *ChatRequest) Normalize() {
	if r == nil {
		return
	}
	r.Text = strings.TrimSpace(r.Text)
}

func (r *ChatRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.Validate(r); err != nil {
		return err
	}
	return validation.CheckStringLength("text", r.Text, validation.MaxChatLength)
}

// SelectDocumentRequest picks the portal document type.
type SelectDocumentRequest struct {
	DocType string `json:"doc_type" validate:"required"`
}

func (r *SelectDocumentRequest) Normalize() {
	if r == nil {
		return
	}
	r.DocType = strings.TrimSpace(r.DocType)
}

func (r *SelectDocumentRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.Validate(r); err != nil {
		return err
	}
	if _, err := document.ParseDocType(r.DocType); err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	return nil
}

// Type returns the validated document type.
func (r *SelectDocumentRequest) Type() document.DocType {
	return document.DocType(r.DocType)
}

// UpdateCellsRequest writes spreadsheet cells.
type UpdateCellsRequest struct {
	Cells []session.Cell `json:"cells" validate:"required,min=1"`
}

func (r *UpdateCellsRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.Validate(r); err != nil {
		return err
	}
	return validation.CheckSliceCount("cells", len(r.Cells), validation.MaxExcelCellsPerUpdate)
}

// ReplyMailRequest answers a mail.
type ReplyMailRequest struct {
	Body string `json:"body" validate:"notblank"`
}

func (r *ReplyMailRequest) Normalize() {
	if r == nil {
		return
	}
	r.Body = strings.TrimSpace(r.Body)
}

func (r *ReplyMailRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.Validate(r); err != nil {
		return err
	}
	return validation.CheckStringLength("body", r.Body, validation.MaxMailReplyLength)
}
