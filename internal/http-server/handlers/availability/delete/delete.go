package delete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"saathi-service/pkg/response"
	"saathi-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type SlotRemover interface {
	RemoveAvailabilitySlot(ctx context.Context, slotID, saathiID string) error
}

func New(log *slog.Logger, remover SlotRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.delete.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			log.Error("id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "id is required"))
			return
		}

		saathiID := r.URL.Query().Get("saathi_id")
		if saathiID == "" {
			log.Error("saathi_id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "saathi_id is required"))
			return
		}

		err := remover.RemoveAvailabilitySlot(r.Context(), id, saathiID)

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to delete slot", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to delete slot"))
			return
		}

		log.Info("Availability slot deleted", slog.String("id", id))

		w.WriteHeader(http.StatusNoContent)
	}
}
