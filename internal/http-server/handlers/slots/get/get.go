package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"saathi-service/api"
	"saathi-service/pkg/response"
	"saathi-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type SlotMaterializer interface {
	MaterializeSlots(ctx context.Context, saathiID string, windowStart time.Time, windowDays int) ([]*api.DaySlots, error)
}

type Response struct {
	response.Response
	Days []api.DaySlots `json:"days"`
}

// New serves the bookable-slot window for a saathi: the recurring weekly
// availability projected onto concrete dates starting at `from` (default
// today) for `days` days.
func New(log *slog.Logger, materializer SlotMaterializer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.slots.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		saathiID := chi.URLParam(r, "id")
		if saathiID == "" {
			log.Error("saathi id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "saathi id is required"))
			return
		}

		windowStart := time.Now()
		if fromStr := r.URL.Query().Get("from"); fromStr != "" {
			t, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				log.Error("invalid from date", sl.Err(err))
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "from must be YYYY-MM-DD"))
				return
			}
			windowStart = t
		}

		windowDays := 0
		if daysStr := r.URL.Query().Get("days"); daysStr != "" {
			d, err := strconv.Atoi(daysStr)
			if err != nil || d < 1 {
				log.Error("invalid days")
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "days must be a positive integer"))
				return
			}
			windowDays = d
		}

		days, err := materializer.MaterializeSlots(r.Context(), saathiID, windowStart, windowDays)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to materialize slots", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to get slots"))
			return
		}

		log.Info("Slots materialized", slog.Int("days", len(days)))

		daysResponse := make([]api.DaySlots, len(days))
		for i, d := range days {
			daysResponse[i] = *d
		}

		render.JSON(w, r, Response{
			Days: daysResponse,
		})
	}
}
