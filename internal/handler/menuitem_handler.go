package handler

import (
	"errors"
	"net/http"
	"strconv"

	"redmango/internal/model"
	"redmango/internal/service"
	"redmango/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxMultipartMemory bounds the in-memory portion of a multipart parse.
// It is deliberately larger than the upload ceiling so oversize files
// reach validation and get a proper FILE_TOO_LARGE response.
const maxMultipartMemory = 8 * 1024 * 1024

// MenuItemHandler handles menu item HTTP requests.
type MenuItemHandler struct {
	service service.MenuItemService
	logger  zerolog.Logger
}

// NewMenuItemHandler creates a new menu item handler.
func NewMenuItemHandler(service service.MenuItemService, logger zerolog.Logger) *MenuItemHandler {
	return &MenuItemHandler{
		service: service,
		logger:  logger.With().Str("handler", "menuitem").Logger(),
	}
}

// List handles GET /api/menuitems requests.
func (h *MenuItemHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	items, err := h.service.List(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if items == nil {
		items = []model.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetByID handles GET /api/menuitems/{id} requests.
func (h *MenuItemHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /api/menuitems multipart requests.
func (h *MenuItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	fields, upload, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	if upload != nil {
		defer upload.close()
	}

	item, err := h.service.Create(r.Context(), fields, upload.toUpload())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/menuitems/{id} multipart requests. The file part
// is optional; without it only scalar fields change.
func (h *MenuItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	fields, upload, ok := h.parseForm(w, r)
	if !ok {
		return
	}
	if upload != nil {
		defer upload.close()
	}

	item, err := h.service.Update(r.Context(), id, fields, upload.toUpload())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/menuitems/{id} requests.
func (h *MenuItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// itemID extracts and parses the menu item ID from the request path.
func (h *MenuItemHandler) itemID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	path := r.URL.Path
	if len(path) <= len("/api/menuitems/") {
		writeError(w, http.StatusBadRequest, "menu item ID is required", h.logger)
		return uuid.Nil, false
	}
	idStr := path[len("/api/menuitems/"):]

	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid menu item ID format", h.logger)
		return uuid.Nil, false
	}

	return id, true
}

// formUpload pairs the multipart file with its metadata so the handler can
// close it after the service is done.
type formUpload struct {
	upload storage.Upload
	closer interface{ Close() error }
}

func (f *formUpload) toUpload() *storage.Upload {
	if f == nil {
		return nil
	}
	return &f.upload
}

func (f *formUpload) close() {
	if f != nil && f.closer != nil {
		f.closer.Close()
	}
}

// parseForm reads the multipart form into the scalar fields and an
// optional upload. A missing file part yields a nil upload; the service
// decides whether that is acceptable.
func (h *MenuItemHandler) parseForm(w http.ResponseWriter, r *http.Request) (model.MenuItemFields, *formUpload, bool) {
	var fields model.MenuItemFields

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", h.logger)
		return fields, nil, false
	}

	fields.Name = r.FormValue("name")
	fields.Description = r.FormValue("description")
	fields.SpecialTag = r.FormValue("specialTag")
	fields.Category = r.FormValue("category")

	if priceStr := r.FormValue("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid price format", h.logger)
			return fields, nil, false
		}
		fields.Price = price
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return fields, nil, true
		}
		writeError(w, http.StatusBadRequest, "invalid file upload", h.logger)
		return fields, nil, false
	}

	return fields, &formUpload{
		upload: storage.Upload{
			Filename: header.Filename,
			Size:     header.Size,
			Content:  file,
		},
		closer: file,
	}, true
}
