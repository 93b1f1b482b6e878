package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zeebo/xxh3"

	"github.com/openprocure/procdash/internal/chart"
	"github.com/openprocure/procdash/internal/fx"
	"github.com/openprocure/procdash/internal/opo"
	"github.com/openprocure/procdash/internal/schema"
	"github.com/openprocure/procdash/internal/table"
	"github.com/openprocure/procdash/internal/wwp"
)

const exportFilename = "processed_data.csv"

const emptyNotice = "no data matches the filtering criteria"

type handler struct {
	conv          *fx.Converter
	rules         wwp.Rules
	maxUploadByte int64
}

// analysisResponse is the JSON envelope for both workflows. Rows carry
// numeric cells rounded to 2 decimals, same as the CSV export.
type analysisResponse struct {
	AnalysisID string       `json:"analysis_id"`
	Notice     string       `json:"notice,omitempty"`
	Columns    []string     `json:"columns"`
	Rows       [][]string   `json:"rows"`
	Insights   any          `json:"insights"`
	Charts     []chart.Spec `json:"charts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) wwpAnalyze(w http.ResponseWriter, r *http.Request) {
	res, ok := h.runWWP(w, r)
	if !ok {
		return
	}
	h.respondAnalysis(w, "wwp", res.Table, res.Insights, res.Charts)
}

func (h *handler) wwpExport(w http.ResponseWriter, r *http.Request) {
	res, ok := h.runWWP(w, r)
	if !ok {
		return
	}
	writeCSVExport(w, "wwp", res.Table)
}

func (h *handler) opoAnalyze(w http.ResponseWriter, r *http.Request) {
	res, ok := h.runOPO(w, r)
	if !ok {
		return
	}
	h.respondAnalysis(w, "opo", res.Table, res.Insights, res.Charts)
}

func (h *handler) opoExport(w http.ResponseWriter, r *http.Request) {
	res, ok := h.runOPO(w, r)
	if !ok {
		return
	}
	writeCSVExport(w, "opo", res.Table)
}

func (h *handler) runWWP(w http.ResponseWriter, r *http.Request) (*wwp.Result, bool) {
	t, err := h.readUpload(r, "wwp", "file")
	if err != nil {
		writeError(w, "wwp", http.StatusBadRequest, err)
		return nil, false
	}
	res, err := wwp.Process(t, h.rules)
	if err != nil {
		writePipelineError(w, "wwp", err)
		return nil, false
	}
	return res, true
}

func (h *handler) runOPO(w http.ResponseWriter, r *http.Request) (*opo.Result, bool) {
	openPO, err := h.readUpload(r, "opo", "open_po")
	if err != nil {
		writeError(w, "opo", http.StatusBadRequest, err)
		return nil, false
	}
	workbench, err := h.readUpload(r, "opo", "workbench")
	if err != nil {
		writeError(w, "opo", http.StatusBadRequest, err)
		return nil, false
	}
	res, err := opo.Process(openPO, workbench, h.conv)
	if err != nil {
		writePipelineError(w, "opo", err)
		return nil, false
	}
	return res, true
}

// readUpload pulls one multipart file field and parses it into a table
// by extension. The whole request body is capped at the configured
// upload limit.
func (h *handler) readUpload(r *http.Request, workflow, field string) (*table.Table, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, h.maxUploadByte)
	f, header, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("upload %q: %w", field, err)
	}
	defer f.Close()
	uploadBytesTotal.WithLabelValues(workflow).Add(float64(header.Size))
	return table.ReadUpload(header.Filename, f)
}

func (h *handler) respondAnalysis(w http.ResponseWriter, workflow string, t *table.Table, insights any, charts []chart.Spec) {
	resp := analysisResponse{
		AnalysisID: uuid.New().String(),
		Columns:    t.Columns,
		Rows:       t.Rendered(),
		Insights:   insights,
		Charts:     charts,
	}
	outcome := "ok"
	if len(t.Rows) == 0 {
		resp.Notice = emptyNotice
		outcome = "empty"
	}
	analysesTotal.WithLabelValues(workflow, outcome).Inc()
	processedRowsTotal.WithLabelValues(workflow).Add(float64(len(t.Rows)))
	log.Info().
		Str("workflow", workflow).
		Str("analysis_id", resp.AnalysisID).
		Int("rows", len(t.Rows)).
		Msg("analysis complete")
	writeJSON(w, http.StatusOK, resp)
}

// writeCSVExport streams the processed record set as an attachment with
// an xxh3 fingerprint header so clients can detect unchanged datasets.
func writeCSVExport(w http.ResponseWriter, workflow string, t *table.Table) {
	var buf bytes.Buffer
	if err := t.WriteCSV(&buf); err != nil {
		writeError(w, workflow, http.StatusInternalServerError, err)
		return
	}
	analysesTotal.WithLabelValues(workflow, "ok").Inc()
	processedRowsTotal.WithLabelValues(workflow).Add(float64(len(t.Rows)))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename))
	w.Header().Set("X-Dataset-Checksum", fmt.Sprintf("%016x", xxh3.Hash(buf.Bytes())))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// writePipelineError maps stage failures to user-facing messages:
// schema and date failures are the caller's data (422), everything else
// is ours (500). No pipeline error propagates past this point.
func writePipelineError(w http.ResponseWriter, workflow string, err error) {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		analysesTotal.WithLabelValues(workflow, "rejected").Inc()
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: verr.Error()})
		return
	}
	analysesTotal.WithLabelValues(workflow, "error").Inc()
	log.Error().Err(err).Str("workflow", workflow).Msg("pipeline failure")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error while processing data"})
}

func writeError(w http.ResponseWriter, workflow string, status int, err error) {
	analysesTotal.WithLabelValues(workflow, "rejected").Inc()
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("response encode failed")
	}
}
