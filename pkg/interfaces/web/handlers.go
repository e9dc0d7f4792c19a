package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vsinha/prettybom/pkg/application/services"
	"github.com/vsinha/prettybom/pkg/domain/entities"
	domainservices "github.com/vsinha/prettybom/pkg/domain/services"
	"github.com/vsinha/prettybom/pkg/infrastructure/config"
	"github.com/vsinha/prettybom/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/prettybom/pkg/interfaces/cli/output"
)

// BOMResponse describes one BOM
type BOMResponse struct {
	ID string `json:"id"`
	output.Summary
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleListBOMs(w http.ResponseWriter, r *http.Request) {
	boms, err := s.service.ListBOMs(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	response := make([]BOMResponse, 0, len(boms))
	for _, bom := range boms {
		// a BOM deleted since it was listed is left out
		_ = s.service.View(r.Context(), bom.ID, func(bom *entities.BOM) error {
			response = append(response, BOMResponse{ID: bom.ID, Summary: output.Summarize(bom)})
			return nil
		})
	}
	writeJSON(w, response)
}

// handleUpload imports a CSV part list into a new BOM.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "file too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "no file provided")
		return
	}
	defer file.Close()

	importer, err := csv.NewImporter(csv.Options{
		HeaderPosition: csv.HeaderPosition(r.FormValue("header_position")),
		Encoding:       csv.Encoding(r.FormValue("encoding")),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	imported, err := importer.Read(file, header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	name := strings.TrimSpace(r.FormValue("main_assembly_name"))
	if name == "" {
		name = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	}

	bom, err := s.service.CreateBOM(r.Context(), name)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	summary, err := s.service.Import(r.Context(), bom.ID, imported)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, summary)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	bomID := chi.URLParam(r, "bomID")

	var response BOMResponse
	err := s.service.View(r.Context(), bomID, func(bom *entities.BOM) error {
		response = BOMResponse{ID: bom.ID, Summary: output.Summarize(bom)}
		return nil
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, response)
}

// handleSettings replaces the processing settings of a BOM with a JSON profile.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	bomID := chi.URLParam(r, "bomID")

	var profile config.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, fmt.Sprintf("invalid profile: %v", err))
		return
	}
	if err := profile.Validate(); err != nil {
		code := CodeBadRequest
		if services.IsConfigurationError(err) {
			code = CodeConfiguration
		}
		writeError(w, http.StatusBadRequest, code, err.Error())
		return
	}

	if err := s.service.ApplyProfile(r.Context(), bomID, &profile); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.handleSummary(w, r)
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Process(r.Context(), chi.URLParam(r, "bomID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Undo(r.Context(), chi.URLParam(r, "bomID")); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.handleSummary(w, r)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if _, err := s.service.ResetBOM(r.Context(), chi.URLParam(r, "bomID")); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.handleSummary(w, r)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteBOM(r.Context(), chi.URLParam(r, "bomID")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.service.History(r.Context(), chi.URLParam(r, "bomID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, history)
}

// handleExport downloads the part list in tree order. Query parameters: format
// (csv, json, xlsx or text, default csv) and columns (comma separated, default
// imported columns followed by the derived ones).
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	bomID := chi.URLParam(r, "bomID")

	format := r.URL.Query().Get("format")
	if format == "" {
		format = output.FormatCSV
	}
	switch format {
	case output.FormatCSV, output.FormatJSON, output.FormatXLSX, output.FormatText:
	default:
		writeError(w, http.StatusBadRequest, CodeBadRequest, fmt.Sprintf("unsupported export format: %s", format))
		return
	}
	columns := domainservices.ParseKeywords(r.URL.Query().Get("columns"))

	var body bytes.Buffer
	var filename string
	err := s.service.View(r.Context(), bomID, func(bom *entities.BOM) error {
		if len(columns) == 0 {
			columns = output.DefaultColumns(bom)
		}
		filename = output.FileName(bom, format)
		return output.Write(&body, output.Project(bom.Parts(), columns), format)
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", output.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = body.WriteTo(w)
}
