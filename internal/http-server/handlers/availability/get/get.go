package get

import (
	"context"
	"log/slog"
	"net/http"

	"saathi-service/api"
	"saathi-service/pkg/response"
	"saathi-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type AvailabilityLister interface {
	ListAvailability(ctx context.Context, saathiID string) ([]*api.AvailabilitySlotResponse, error)
}

type Response struct {
	response.Response
	Slots []api.AvailabilitySlotResponse `json:"slots"`
}

func New(log *slog.Logger, lister AvailabilityLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.get.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		saathiID := chi.URLParam(r, "saathi_id")
		if saathiID == "" {
			log.Error("saathi_id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "saathi_id is required"))
			return
		}

		slots, err := lister.ListAvailability(r.Context(), saathiID)
		if err != nil {
			log.Error("Failed to list availability", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to list availability"))
			return
		}

		log.Info("Availability retrieved", slog.Int("count", len(slots)))

		slotsResponse := make([]api.AvailabilitySlotResponse, len(slots))
		for i, s := range slots {
			slotsResponse[i] = *s
		}

		render.JSON(w, r, Response{
			Slots: slotsResponse,
		})
	}
}
