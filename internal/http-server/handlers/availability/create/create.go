package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"saathi-service/api"
	"saathi-service/pkg/response"
	"saathi-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type SlotAdder interface {
	AddAvailabilitySlot(ctx context.Context, req *api.AvailabilitySlotRequest) (*api.AvailabilitySlotResponse, error)
}

type Request struct {
	api.AvailabilitySlotRequest
}

type Response struct {
	response.Response
	Slot api.AvailabilitySlotResponse `json:"slot,omitempty"`
}

func New(log *slog.Logger, adder SlotAdder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.create.New"

		log = log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "failed to decode request"))
			return
		}

		log.Info("Request body decoded", slog.Any("request", req))

		if req.SaathiID == "" {
			log.Error("saathi_id is empty")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.BAD_REQUEST), "saathi_id is required"))
			return
		}

		slot, err := adder.AddAvailabilitySlot(r.Context(), &req.AvailabilitySlotRequest)

		if errors.Is(err, response.ErrInvalidRange) {
			log.Error("start time is not before end time")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.INVALID_RANGE), "end time must be after start time"))
			return
		}

		if errors.Is(err, response.ErrOverlap) {
			log.Error("slot overlaps an existing slot")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error(string(response.OVERLAP), "this slot overlaps with an existing slot"))
			return
		}

		if errors.Is(err, response.ErrValidation) {
			log.Error("validation failed", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(string(response.VALIDATION), "invalid slot"))
			return
		}

		if errors.Is(err, response.ErrNotFound) {
			log.Error("resource not found")
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(string(response.NOT_FOUND), "resource not found"))
			return
		}

		if err != nil {
			log.Error("Failed to add slot", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(string(response.FAILED_REQUEST), "failed to add slot"))
			return
		}

		log.Info("Availability slot added", slog.Any("slot", slot))

		w.WriteHeader(http.StatusCreated)
		responseOK(w, r, slot)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, slot *api.AvailabilitySlotResponse) {
	render.JSON(w, r, Response{
		Slot: *slot,
	})
}
