package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hirotalab/cms-server/internal/api/apierr"
	"github.com/hirotalab/cms-server/internal/domain/content"
)

// ContentHandler serves one collection kind. The admin gate wraps Create,
// Update and Delete at the router; List and Public are open.
type ContentHandler[T any, PT content.Entry[T], I content.Input[T]] struct {
	svc *content.Service[T, PT, I]
}

func NewContentHandler[T any, PT content.Entry[T], I content.Input[T]](svc *content.Service[T, PT, I]) *ContentHandler[T, PT, I] {
	return &ContentHandler[T, PT, I]{svc: svc}
}

// List returns the full document, hidden items included.
func (h *ContentHandler[T, PT, I]) List(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.List(r.Context())
	if err != nil {
		writeContentError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Public returns visible items in the kind's public order, wrapped in an
// {items: [...]} envelope.
func (h *ContentHandler[T, PT, I]) Public(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.PublicList(r.Context())
	if err != nil {
		writeContentError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *ContentHandler[T, PT, I]) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodePayload[I](w, r)
	if !ok {
		return
	}
	item, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeContentError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ContentHandler[T, PT, I]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		apierr.Write(w, r, http.StatusNotFound, "Item not found", nil)
		return
	}
	in, ok := decodePayload[I](w, r)
	if !ok {
		return
	}
	item, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeContentError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ContentHandler[T, PT, I]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		apierr.Write(w, r, http.StatusNotFound, "Item not found", nil)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeContentError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})
}

// decodePayload reads the request body leniently: an unreadable or
// malformed body counts as an empty payload, so create requests fail
// validation instead of erroring on syntax. Oversized bodies are the one
// hard stop.
func decodePayload[I any](w http.ResponseWriter, r *http.Request) (I, bool) {
	var in I
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			apierr.Write(w, r, http.StatusRequestEntityTooLarge, "Request body too large", err)
			return in, false
		}
		return in, true
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &in); err != nil {
			var zero I
			in = zero
		}
	}
	return in, true
}

func writeContentError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *content.ValidationError
	switch {
	case errors.As(err, &verr):
		apierr.Write(w, r, http.StatusBadRequest, "Validation failed", err, apierr.WithDetails(verr.Details))
	case errors.Is(err, content.ErrNotFound):
		apierr.Write(w, r, http.StatusNotFound, "Item not found", err)
	default:
		apierr.Write(w, r, http.StatusInternalServerError, err.Error(), err)
	}
}
