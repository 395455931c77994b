package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/hirotalab/cms-server/internal/api/apierr"
	"github.com/hirotalab/cms-server/internal/storage"
)

// FilesHandler is the binary-file passthrough: uploads land in the root of
// the storage folder, next to (not inside) the CMS document prefix.
type FilesHandler struct {
	objects storage.ObjectStore
}

func NewFilesHandler(objects storage.ObjectStore) *FilesHandler {
	return &FilesHandler{objects: objects}
}

// List returns metadata for every stored file.
func (h *FilesHandler) List(w http.ResponseWriter, r *http.Request) {
	infos, err := h.objects.List(r.Context(), "")
	if err != nil {
		apierr.Write(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}
	if infos == nil {
		infos = []storage.ObjectInfo{}
	}
	writeJSON(w, http.StatusOK, infos)
}

// Upload stores one multipart file under its original base name.
func (h *FilesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		apierr.Write(w, r, http.StatusBadRequest, "No file part in the request", err)
		return
	}
	defer file.Close()

	name := path.Base(header.Filename)
	if name == "" || name == "." || name == "/" {
		apierr.Write(w, r, http.StatusBadRequest, "No selected file", nil)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		apierr.Write(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := h.objects.Put(r.Context(), name, data, contentType); err != nil {
		apierr.Write(w, r, http.StatusInternalServerError, err.Error(), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("File %s uploaded", name),
		"id":      name,
	})
}

// Download streams a stored file back with its original content type.
func (h *FilesHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := path.Base(r.PathValue("name"))
	info, err := h.objects.Stat(r.Context(), name)
	if err != nil {
		writeFileError(w, r, err)
		return
	}
	data, err := h.objects.Get(r.Context(), name)
	if err != nil {
		writeFileError(w, r, err)
		return
	}

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *FilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := path.Base(r.PathValue("name"))
	if err := h.objects.Delete(r.Context(), name); err != nil {
		writeFileError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted"})
}

func writeFileError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		apierr.Write(w, r, http.StatusNotFound, "File not found", err)
		return
	}
	apierr.Write(w, r, http.StatusInternalServerError, err.Error(), err)
}
