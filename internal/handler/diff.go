package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/vortex/xdiff/internal/response"
	"github.com/vortex/xdiff/internal/service"
)

// DiffHandler exposes HTTP endpoints over a DiffService.
type DiffHandler struct {
	svc service.DiffService
}

// NewDiffHandler creates a handler backed by the given service.
func NewDiffHandler(svc service.DiffService) *DiffHandler {
	return &DiffHandler{svc: svc}
}

// Diff handles POST /api/v1/diff.
// Accepts a multipart form with "left" and "right" fields, each a well-formed
// XML/XHTML document. Returns the edit script as JSON.
func (h *DiffHandler) Diff(w http.ResponseWriter, r *http.Request) {
	left, right, err := readDocumentPair(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Diff(left, right)
	if err != nil {
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// Render handles POST /api/v1/render.
// Same input as Diff; returns "left" annotated with diff:* marker
// attributes as an XML document.
func (h *DiffHandler) Render(w http.ResponseWriter, r *http.Request) {
	left, right, err := readDocumentPair(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.svc.Render(left, right)
	if err != nil {
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// readDocumentPair extracts the "left" and "right" form fields from a
// multipart upload.
func readDocumentPair(r *http.Request) (left, right []byte, err error) {
	if err = r.ParseMultipartForm(32 << 20); err != nil {
		return nil, nil, err
	}
	left, err = readField(r.MultipartForm, "left")
	if err != nil {
		return nil, nil, err
	}
	right, err = readField(r.MultipartForm, "right")
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func readField(form *multipart.Form, name string) ([]byte, error) {
	files := form.File[name]
	if len(files) == 0 {
		return nil, errMissingField(name)
	}
	f, err := files[0].Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

type missingFieldError string

func (e missingFieldError) Error() string { return "missing form field: " + string(e) }

func errMissingField(name string) error { return missingFieldError(name) }
