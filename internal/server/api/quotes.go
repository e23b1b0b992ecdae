// Package api provides HTTP API handlers for the Mudra reaction overlay.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/store"
)

// QuotesHandler handles HTTP requests for quote resources.
type QuotesHandler struct {
	store    *store.Store
	onChange func()
}

// NewQuotesHandler creates a new QuotesHandler with the given store.
// onChange, if non-nil, is called after every successful catalog edit so
// the running rotation can pick up the new list.
func NewQuotesHandler(s *store.Store, onChange func()) *QuotesHandler {
	return &QuotesHandler{store: s, onChange: onChange}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *QuotesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse the path to determine if this is a collection or item request
	// Expected paths: /api/quotes or /api/quotes/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/quotes")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/quotes
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	// Item endpoint: /api/quotes/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createQuoteRequest struct {
	Text     string `json:"text"`
	Position int    `json:"position"`
}

type updateQuoteRequest struct {
	Text     string `json:"text"`
	Position int    `json:"position"`
}

type quoteResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Position  int    `json:"position"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type listQuotesResponse struct {
	Quotes []quoteResponse `json:"quotes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Quote to a quoteResponse.
func toResponse(q *store.Quote) quoteResponse {
	return quoteResponse{
		ID:        q.ID,
		Text:      q.Text,
		Position:  q.Position,
		CreatedAt: q.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: q.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// notifyChange invokes the onChange callback after a catalog edit.
func (h *QuotesHandler) notifyChange() {
	if h.onChange != nil {
		h.onChange()
	}
}

// list handles GET /api/quotes and returns the catalog in rotation order.
func (h *QuotesHandler) list(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.store.Quotes().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list quotes")
		return
	}

	response := listQuotesResponse{
		Quotes: make([]quoteResponse, 0, len(quotes)),
	}

	for _, q := range quotes {
		response.Quotes = append(response.Quotes, toResponse(q))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/quotes/{id} and returns a single quote.
func (h *QuotesHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	quote, err := h.store.Quotes().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Quote not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get quote")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(quote))
}

// create handles POST /api/quotes and adds a quote to the catalog.
func (h *QuotesHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate required fields
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	// Append to the end of the rotation when no position is given
	position := req.Position
	if position <= 0 {
		next, err := h.store.Quotes().NextPosition()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to create quote")
			return
		}
		position = next
	}

	quote := &store.Quote{
		ID:       uuid.New().String(),
		Text:     req.Text,
		Position: position,
	}

	if err := h.store.Quotes().Create(quote); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create quote")
		return
	}

	h.notifyChange()
	writeJSON(w, http.StatusCreated, toResponse(quote))
}

// update handles PUT /api/quotes/{id} and updates an existing quote.
func (h *QuotesHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	// First, get the existing quote
	quote, err := h.store.Quotes().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Quote not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get quote")
		return
	}

	var req updateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Update fields if provided
	if strings.TrimSpace(req.Text) != "" {
		quote.Text = req.Text
	}
	if req.Position > 0 {
		quote.Position = req.Position
	}

	if err := h.store.Quotes().Update(quote); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update quote")
		return
	}

	h.notifyChange()
	writeJSON(w, http.StatusOK, toResponse(quote))
}

// delete handles DELETE /api/quotes/{id} and removes a quote.
func (h *QuotesHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Quotes().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Quote not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete quote")
		return
	}

	h.notifyChange()
	w.WriteHeader(http.StatusNoContent)
}
