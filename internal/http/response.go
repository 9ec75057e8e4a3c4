package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"revenda/internal/core"
	"revenda/internal/storage"
)

type errorBody struct {
	Erro string `json:"erro"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Erro: msg})
}

// writeDomainError maps a repository/domain error to the right status code.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "registro não encontrado")
	case errors.Is(err, core.ErrInvalidCPF),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidPlaca),
		errors.Is(err, core.ErrInvalidAno),
		errors.Is(err, core.ErrEmptyNome),
		errors.Is(err, core.ErrEmptyMarca),
		errors.Is(err, core.ErrEmptyModelo),
		errors.Is(err, core.ErrInvalidStatus),
		errors.Is(err, core.ErrInvalidForma),
		errors.Is(err, core.ErrInvalidParcela):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "erro interno")
	}
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "formato de requisição inválido")
		return false
	}
	return true
}
