// Package planfile moves whole plans in and out of the app: .fma/.efma file
// export and import, and AI-generated plans entering through the same
// sanitize-then-validate pipeline.
package planfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/openfma/fma/internal/ai"
	"github.com/openfma/fma/internal/categorize"
	"github.com/openfma/fma/internal/category"
	"github.com/openfma/fma/internal/codec"
	"github.com/openfma/fma/internal/encoding"
	"github.com/openfma/fma/internal/plan"
	"github.com/openfma/fma/internal/sanitize"
)

const maxUploadSize = 10 << 20

type Handler struct {
	plans      *plan.Service
	categories *category.Service
	categorize *categorize.Service
	ai         *ai.Service
	encryptKey string
}

func NewHandler(
	plans *plan.Service,
	categories *category.Service,
	categorizeSvc *categorize.Service,
	aiSvc *ai.Service,
	encryptKey string,
) *Handler {
	return &Handler{
		plans:      plans,
		categories: categories,
		categorize: categorizeSvc,
		ai:         aiSvc,
		encryptKey: encryptKey,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/export", h.export)
	r.Post("/import", h.importFile)
	r.Post("/generate", h.generate)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.plans.List(ctx)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	userCats, err := h.categories.List(ctx)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	content := codec.Encode(items, userCats)
	stamp := time.Now().Format(time.DateOnly)

	if r.URL.Query().Get("format") == "efma" {
		sealed, err := codec.Encrypt([]byte(content), h.encryptKey)
		if err != nil {
			if errors.Is(err, codec.ErrNoKey) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}

			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=plan-%s.efma", stamp))
		_, _ = w.Write(sealed)

		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=plan-%s.fma", stamp))
	_, _ = io.WriteString(w, content)
}

type importResponse struct {
	Imported   int `json:"imported"`
	Categories int `json:"categories"`
}

func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return
	}

	if strings.EqualFold(filepath.Ext(header.Filename), ".efma") {
		data, err = codec.Decrypt(data, h.encryptKey)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, codec.ErrNoKey) {
				status = http.StatusConflict
			}

			http.Error(w, err.Error(), status)

			return
		}
	}

	data, err = encoding.ToUTF8(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, userCats, err := codec.Decode(string(data))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.replaceWorkingSet(r, items, userCats); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{Imported: len(items), Categories: len(userCats)})
}

type generateRequest struct {
	Prompt string `json:"prompt"`
	Year   int    `json:"year"`
}

type generateResponse struct {
	Imported int `json:"imported"`
}

// generate asks the AI for a plan, fills in the recurring series it only
// hinted at, validates the result and replaces the working set with it.
func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Year == 0 {
		req.Year = time.Now().Year()
	}

	content, err := h.ai.GeneratePlan(r.Context(), req.Prompt, req.Year)
	if err != nil {
		if errors.Is(err, ai.ErrEmptyPrompt) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusBadGateway)

		return
	}

	completed, err := sanitize.Content(content)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	items, userCats, err := codec.Decode(completed)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if err := h.replaceWorkingSet(r, items, userCats); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{Imported: len(items)})
}

// replaceWorkingSet swaps in the new plan and drops the categorization cache
// so the fresh data gets re-evaluated.
func (h *Handler) replaceWorkingSet(r *http.Request, items []plan.Item, userCats []category.Definition) error {
	ctx := r.Context()

	if err := h.plans.Import(ctx, items); err != nil {
		return err
	}

	if len(userCats) > 0 {
		if err := h.categories.Replace(ctx, userCats); err != nil {
			return err
		}
	}

	h.categorize.ClearCache(ctx)

	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
