package domain

import "strings"

// AttachmentKind identifies the accepted file type for an attachment.
type AttachmentKind string

const (
	// KindPDF is the only kind accepted by the trabajo de grado workflow.
	KindPDF AttachmentKind = "pdf"
)

// Attachment is an immutable reference to a stored file. The aggregate keeps
// only the opaque path returned by the storage adapter, never file contents.
type Attachment struct {
	Path             string         `json:"path"`
	OriginalFilename string         `json:"original_filename"`
	Kind             AttachmentKind `json:"kind"`
}

// NewPDFAttachment builds a PDF attachment from a stored path and the name
// the file was uploaded with.
func NewPDFAttachment(path, originalFilename string) (Attachment, error) {
	if strings.TrimSpace(path) == "" {
		return Attachment{}, newValidation("path", "attachment path is required")
	}
	if strings.TrimSpace(originalFilename) == "" {
		return Attachment{}, newValidation("original_filename", "original filename is required")
	}
	return Attachment{
		Path:             path,
		OriginalFilename: originalFilename,
		Kind:             KindPDF,
	}, nil
}

// IsZero reports whether the attachment is unset.
func (a Attachment) IsZero() bool {
	return a == Attachment{}
}
