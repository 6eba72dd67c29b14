package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gridboard/gridboard/backend-go/internal/document"
)

const maxDocumentSize = 16 << 20 // 16MB

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ExportSVG accepts a board document as JSON and returns it rendered as an
// SVG attachment.
func (h *Handler) ExportSVG(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentSize)

	var doc document.BoardDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "invalid document", http.StatusBadRequest)
		return
	}

	name := doc.Board.Name
	if name == "" {
		name = "board"
	}
	// Sanitize filename
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)

	svg, err := RenderSVG(&doc)
	if err != nil {
		slog.Error("render svg", "board", doc.Board.ID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.svg"`, name))
	w.WriteHeader(http.StatusOK)
	w.Write(svg)
}
