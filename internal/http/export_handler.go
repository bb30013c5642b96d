package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/brendan-oconnell/thoth/internal/export"
	"github.com/brendan-oconnell/thoth/internal/specs"
)

// ExportHandler serves the specification catalogue and the export endpoints.
type ExportHandler struct {
	registry *specs.Registry
	service  *export.Service
}

func NewExportHandler(registry *specs.Registry, service *export.Service) *ExportHandler {
	return &ExportHandler{registry: registry, service: service}
}

type specificationDTO struct {
	ID          string `json:"id"`
	Family      string `json:"format_family"`
	Dialect     string `json:"dialect"`
	ContentType string `json:"content_type"`
	Extension   string `json:"extension"`
}

func toSpecificationDTO(d specs.Descriptor) specificationDTO {
	return specificationDTO{
		ID:          d.ID(),
		Family:      string(d.Family),
		Dialect:     string(d.Dialect),
		ContentType: d.ContentType,
		Extension:   d.Extension,
	}
}

// ListSpecifications handles GET /specifications.
func (h *ExportHandler) ListSpecifications(w http.ResponseWriter, r *http.Request) {
	descriptors := h.registry.List()
	out := make([]specificationDTO, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, toSpecificationDTO(d))
	}
	JSONSuccess(w, out, map[string]interface{}{"total": len(out)})
}

// Dispatch routes everything under /specifications/. The path shapes are
//
//	/specifications/{id}
//	/specifications/{id}/work/{workID}
//	/specifications/{id}/publisher/{publisherID}
//
// where {id} is a family::dialect pair.
func (h *ExportHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/specifications/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] != "":
		h.getSpecification(w, r, parts[0])
	case len(parts) == 3 && parts[1] == "work":
		h.exportWork(w, r, parts[0], parts[2])
	case len(parts) == 3 && parts[1] == "publisher":
		h.exportPublisher(w, r, parts[0], parts[2])
	default:
		JSONError(w, http.StatusNotFound, "not_found", "unknown path", nil)
	}
}

func (h *ExportHandler) getSpecification(w http.ResponseWriter, r *http.Request, id string) {
	desc, err := h.registry.ResolveID(id)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "unsupported_dialect", err.Error(), nil)
		return
	}
	JSONSuccess(w, toSpecificationDTO(desc), nil)
}

func (h *ExportHandler) exportWork(w http.ResponseWriter, r *http.Request, specificationID, rawWorkID string) {
	workID, err := uuid.Parse(rawWorkID)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_request", "work id must be a UUID", nil)
		return
	}
	out, err := h.service.ExportWork(r.Context(), specificationID, workID)
	if err != nil {
		writeExportError(w, err)
		return
	}
	writeOutput(w, out)
}

func (h *ExportHandler) exportPublisher(w http.ResponseWriter, r *http.Request, specificationID, rawPublisherID string) {
	publisherID, err := uuid.Parse(rawPublisherID)
	if err != nil {
		JSONError(w, http.StatusBadRequest, "invalid_request", "publisher id must be a UUID", nil)
		return
	}
	params := pageParams{Limit: export.MaxPageSize, Offset: 0}
	query := r.URL.Query()
	if raw := query.Get("limit"); raw != "" {
		params.Limit, err = strconv.Atoi(raw)
		if err != nil {
			JSONError(w, http.StatusBadRequest, "invalid_request", "limit must be an integer", nil)
			return
		}
	}
	if raw := query.Get("offset"); raw != "" {
		params.Offset, err = strconv.Atoi(raw)
		if err != nil {
			JSONError(w, http.StatusBadRequest, "invalid_request", "offset must be an integer", nil)
			return
		}
	}
	if details := ValidateStruct(params); details != nil {
		JSONError(w, http.StatusBadRequest, "invalid_request", "invalid pagination", toErrorDetails(details))
		return
	}
	out, err := h.service.ExportPublisher(r.Context(), specificationID, publisherID, params.Limit, params.Offset)
	if err != nil {
		writeExportError(w, err)
		return
	}
	writeOutput(w, out)
}

type pageParams struct {
	Limit  int `validate:"gte=1,lte=100"`
	Offset int `validate:"gte=0"`
}

func writeOutput(w http.ResponseWriter, out export.Output) {
	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.FileName))
	w.Header().Set("Last-Modified", out.LastUpdated.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Bytes)
}

func writeExportError(w http.ResponseWriter, err error) {
	var exportErr *export.Error
	if !errors.As(err, &exportErr) {
		JSONError(w, http.StatusInternalServerError, "internal", "export failed", nil)
		return
	}
	code := exportErr.Kind.String()
	switch exportErr.Kind {
	case export.KindNotFound:
		JSONError(w, http.StatusNotFound, code, err.Error(), nil)
	case export.KindUnsupportedDialect, export.KindInvalidRequest:
		JSONError(w, http.StatusBadRequest, code, err.Error(), nil)
	case export.KindValidationFailed:
		details := make([]ErrorDetail, 0, len(exportErr.Fields))
		for _, f := range exportErr.Fields {
			details = append(details, ErrorDetail{Field: f, Message: "missing mandatory field"})
		}
		JSONError(w, http.StatusBadRequest, code, err.Error(), details)
	case export.KindUpstreamUnavailable:
		JSONError(w, http.StatusServiceUnavailable, code, err.Error(), nil)
	case export.KindMalformedUpstreamResponse:
		JSONError(w, http.StatusBadGateway, code, err.Error(), nil)
	default:
		JSONError(w, http.StatusInternalServerError, "internal", err.Error(), nil)
	}
}

func toErrorDetails(in []ValidationError) []ErrorDetail {
	out := make([]ErrorDetail, 0, len(in))
	for _, v := range in {
		out = append(out, ErrorDetail{Field: v.Field, Message: v.Message})
	}
	return out
}
