package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/repository"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	ReportHandler(w http.ResponseWriter, r *http.Request)
}

type reportRepo interface {
	GetByID(ctx context.Context, id string) (*entity.Report, error)
}

type handlers struct {
	logger  *slog.Logger
	reports reportRepo
}

func NewHandlers(logger *slog.Logger, reports reportRepo) Handlers {
	return &handlers{
		logger:  logger.With("component", "rest"),
		reports: reports,
	}
}

// ReportHandler - serves a stored tournament report as JSON, or as the text summary with ?format=text.
func (that *handlers) ReportHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ReportHandler")

	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Report id is required", http.StatusBadRequest)
		return
	}

	report, err := that.reports.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrReportNotFound) {
		http.Error(w, "Report not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get report", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err = w.Write([]byte(report.Summary())); err != nil {
			log.Error("failed to write report", "id", id, "error", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(report); err != nil {
		log.Error("failed to encode report", "id", id, "error", err)
	}
}
