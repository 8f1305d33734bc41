package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"

	"folio/internal/config"
	blogSvc "folio/internal/domain/services/blog"
	"folio/internal/httputil"
)

// uploadFieldPrefix names the multipart file fields bound to blocks:
// image_<blockId>
const uploadFieldPrefix = "image_"

// PostHandler handles the editor's post endpoints
type PostHandler struct {
	docService blogSvc.DocumentService
	logger     *slog.Logger
}

// NewPostHandler creates a new post handler
func NewPostHandler(docService blogSvc.DocumentService, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		docService: docService,
		logger:     logger,
	}
}

// ListPosts returns every index entry.
// GET /api/posts
//
// Query parameters:
//   - order: "recent" reverses the stored order (most recently added first)
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	entries, err := h.docService.ListDocuments(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if r.URL.Query().Get("order") == "recent" {
		slices.Reverse(entries)
	}

	httputil.RespondJSON(w, http.StatusOK, entries)
}

// GetPost returns the editor view of a post. Unknown ids return a blank
// document with is_new set.
// GET /api/posts/{id}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	doc, err := h.docService.LoadDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// CreatePost saves a post; an empty id creates a new one.
// POST /api/posts
//
// Accepts multipart/form-data (fields id, title, authors, date, thumbnail,
// rename, blocks as JSON, files image_<blockId>) or a JSON body.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

// UpdatePost saves the post named in the path.
// PUT /api/posts/{id}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, r.PathValue("id"))
}

func (h *PostHandler) save(w http.ResponseWriter, r *http.Request, pathID string) {
	req, uploads, cleanup, err := h.parseSaveRequest(w, r)
	if cleanup != nil {
		defer cleanup()
	}
	if err != nil {
		if httputil.IsBodyTooLarge(err) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if pathID != "" {
		req.ID = pathID
	}

	result, err := h.docService.SaveDocument(r.Context(), req, uploads)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	h.logger.Info("post saved",
		"doc_id", result.Document.ID,
		"previous_id", result.PreviousID,
		"created", result.Created,
		"uploads", len(uploads),
		"user_id", httputil.GetUserID(r),
	)

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	httputil.RespondJSON(w, status, result)
}

// parseSaveRequest reads either body shape. The returned cleanup closes
// uploaded file handles and removes multipart temp files.
func (h *PostHandler) parseSaveRequest(w http.ResponseWriter, r *http.Request) (*blogSvc.SaveDocumentRequest, []blogSvc.Upload, func(), error) {
	if httputil.IsJSON(r) {
		var req blogSvc.SaveDocumentRequest
		if err := httputil.ParseJSON(w, r, &req); err != nil {
			return nil, nil, nil, err
		}
		return &req, nil, nil, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize)
	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		if httputil.IsBodyTooLarge(err) {
			return nil, nil, nil, err
		}
		return nil, nil, nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	form := r.MultipartForm
	var files []multipart.File
	cleanup := func() {
		for _, f := range files {
			_ = f.Close()
		}
		_ = form.RemoveAll()
	}

	req := &blogSvc.SaveDocumentRequest{
		ID:        formValue(form, "id"),
		Title:     formValue(form, "title"),
		Authors:   formValue(form, "authors"),
		Date:      formValue(form, "date"),
		Thumbnail: formValue(form, "thumbnail"),
		Rename:    isTruthy(formValue(form, "rename")),
	}

	if raw := formValue(form, "blocks"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Blocks); err != nil {
			return nil, nil, cleanup, fmt.Errorf("invalid blocks: %w", err)
		}
	}

	var uploads []blogSvc.Upload
	for field, headers := range form.File {
		blockID, ok := strings.CutPrefix(field, uploadFieldPrefix)
		if !ok || blockID == "" || len(headers) == 0 {
			continue
		}

		fh := headers[0]
		f, err := fh.Open()
		if err != nil {
			h.logger.Error("failed to open uploaded file",
				"file", fh.Filename,
				"block_id", blockID,
				"error", err,
			)
			return nil, nil, cleanup, fmt.Errorf("failed to open file %s", fh.Filename)
		}
		files = append(files, f)

		uploads = append(uploads, blogSvc.Upload{
			BlockID:  blockID,
			Filename: fh.Filename,
			Body:     f,
		})
	}

	// Map iteration order is random; keep uploads stable for logging and tests
	slices.SortFunc(uploads, func(a, b blogSvc.Upload) int {
		return strings.Compare(a.BlockID, b.BlockID)
	})

	return req, uploads, cleanup, nil
}

// DeletePost removes a post from every store. Unknown ids succeed.
// DELETE /api/posts/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.docService.DeleteDocument(r.Context(), id); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	h.logger.Info("post deleted", "doc_id", id, "user_id", httputil.GetUserID(r))
	w.WriteHeader(http.StatusNoContent)
}

// ExportPost returns the rendered post in another format.
// GET /api/posts/{id}/export?format=html|markdown|text
func (h *PostHandler) ExportPost(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}

	exported, err := h.docService.ExportDocument(r.Context(), r.PathValue("id"), format)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondBody(w, http.StatusOK, exported.ContentType, exported.Body)
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}
