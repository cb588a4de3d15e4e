package controllers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Sum1ght/schand/api/responses"
	"github.com/Sum1ght/schand/pkg/config"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
	"github.com/Sum1ght/schand/pkg/logger"
	"github.com/Sum1ght/schand/pkg/storage"
)

// FileUpload accepts one multipart file and stores it under a collision-free
// name. The response carries the stored name and its public URL.
func FileUpload(store *storage.DiskStore, cfg config.StorageConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "file store unavailable"))
			return
		}

		if max := store.MaxBytes(); max > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, max+1024)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field is required"))
			return
		}
		defer file.Close()

		name, err := store.SaveUnique(header.Filename, file)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		base := cfg.PublicBase
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{
			"name": name,
			"url":  base + name,
		})
	}
}

// FileDelete removes a stored file. Deleting a missing file succeeds.
func FileDelete(store *storage.DiskStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "file store unavailable"))
			return
		}
		name := strings.TrimSpace(chi.URLParam(r, "fileName"))
		if name == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "file name is required"))
			return
		}
		if err := store.Delete(name); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// FileDownload streams a stored file back to the client.
func FileDownload(store *storage.DiskStore, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "file store unavailable"))
			return
		}

		name := strings.TrimSpace(chi.URLParam(r, "fileName"))
		if name == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "file name is required"))
			return
		}

		f, err := store.Open(name)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		defer f.Close()

		contentType := mime.TypeByExtension(filepath.Ext(name))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		if _, err := io.Copy(w, f); err != nil {
			logg.Error(ctx, "stream file failed", err)
		}
	}
}
