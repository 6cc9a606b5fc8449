package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/manara-transit/backend/internal/domain"
	"github.com/manara-transit/backend/internal/service"
)

func (h *Handler) initTripRoutes(api *gin.RouterGroup) {
	trips := api.Group("/trips", h.userIdentityMiddleware)
	{
		trips.GET("", h.listTrips)
		trips.POST("", h.createTrip)
		trips.GET("/upcoming", h.upcomingTrips)
		trips.GET("/past", h.pastTrips)
		trips.GET("/ongoing", h.ongoingTrip)
		trips.GET("/:id", h.getTrip)
		trips.PUT("/:id", h.replaceTrip)
		trips.PATCH("/:id", h.patchTrip)
		trips.DELETE("/:id", h.cancelTrip)
	}
}

type createTripInput struct {
	Route                uuid.UUID          `json:"route" binding:"required"`
	Status               *domain.TripStatus `json:"status" binding:"omitempty,oneof=SCHEDULED ONGOING COMPLETED CANCELLED"`
	ScheduledTime        time.Time          `json:"scheduled_time" binding:"required"`
	EstimatedArrivalTime *time.Time         `json:"estimated_arrival_time"`
	ActualArrivalTime    *time.Time         `json:"actual_arrival_time"`
}

func (in createTripInput) toService() service.TripInput {
	return service.TripInput{
		RouteID:              &in.Route,
		Status:               in.Status,
		ScheduledTime:        &in.ScheduledTime,
		EstimatedArrivalTime: in.EstimatedArrivalTime,
		ActualArrivalTime:    in.ActualArrivalTime,
	}
}

type patchTripInput struct {
	Route                *uuid.UUID         `json:"route"`
	Status               *domain.TripStatus `json:"status" binding:"omitempty,oneof=SCHEDULED ONGOING COMPLETED CANCELLED"`
	ScheduledTime        *time.Time         `json:"scheduled_time"`
	EstimatedArrivalTime *time.Time         `json:"estimated_arrival_time"`
	ActualArrivalTime    *time.Time         `json:"actual_arrival_time"`
}

type tripCreatedResponse struct {
	Trip    *domain.Trip `json:"trip"`
	Message string       `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// @Summary List trips
// @Tags Trips
// @ModuleID listTrips
// @Produce  json
// @Success 200 {array} domain.Trip
// @Failure 401
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /trips [get]
func (h *Handler) listTrips(c *gin.Context) {
	h.respondTrips(c, h.services.Trips.List)
}

// @Summary Upcoming trips
// @Tags Trips
// @Description Scheduled trips that have not started yet, soonest first.
// @ModuleID upcomingTrips
// @Produce  json
// @Success 200 {array} domain.Trip
// @Failure 401
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /trips/upcoming [get]
func (h *Handler) upcomingTrips(c *gin.Context) {
	h.respondTrips(c, h.services.Trips.Upcoming)
}

// @Summary Past trips
// @Tags Trips
// @Description Completed trips, most recent first.
// @ModuleID pastTrips
// @Produce  json
// @Success 200 {array} domain.Trip
// @Failure 401
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /trips/past [get]
func (h *Handler) pastTrips(c *gin.Context) {
	h.respondTrips(c, h.services.Trips.Past)
}

func (h *Handler) respondTrips(c *gin.Context, list func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	trips, err := list(c.Request.Context(), userID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}
	if trips == nil {
		trips = []domain.Trip{}
	}

	c.JSON(http.StatusOK, trips)
}

// @Summary Ongoing trip
// @Tags Trips
// @ModuleID ongoingTrip
// @Produce  json
// @Success 200 {object} domain.Trip
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /trips/ongoing [get]
func (h *Handler) ongoingTrip(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	trip, err := h.services.Trips.Ongoing(c.Request.Context(), userID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, trip)
}

// @Summary Create trip
// @Tags Trips
// @ModuleID createTrip
// @Accept  json
// @Produce  json
// @Param input body createTripInput true "trip"
// @Success 201 {object} tripCreatedResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /trips [post]
func (h *Handler) createTrip(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var input createTripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	trip, err := h.services.Trips.Create(c.Request.Context(), userID, input.toService())
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, tripCreatedResponse{Trip: trip, Message: "Trip created successfully."})
}

// @Summary Get trip
// @Tags Trips
// @ModuleID getTrip
// @Produce  json
// @Param id path string true "trip id"
// @Success 200 {object} domain.Trip
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /trips/{id} [get]
func (h *Handler) getTrip(c *gin.Context) {
	userID, tripID, ok := h.tripParams(c)
	if !ok {
		return
	}

	trip, err := h.services.Trips.Get(c.Request.Context(), userID, tripID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, trip)
}

// @Summary Replace trip
// @Tags Trips
// @ModuleID replaceTrip
// @Accept  json
// @Produce  json
// @Param id path string true "trip id"
// @Param input body createTripInput true "trip"
// @Success 200 {object} domain.Trip
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /trips/{id} [put]
func (h *Handler) replaceTrip(c *gin.Context) {
	userID, tripID, ok := h.tripParams(c)
	if !ok {
		return
	}

	var input createTripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	h.updateTrip(c, userID, tripID, input.toService())
}

// @Summary Patch trip
// @Tags Trips
// @ModuleID patchTrip
// @Accept  json
// @Produce  json
// @Param id path string true "trip id"
// @Param input body patchTripInput true "fields to change"
// @Success 200 {object} domain.Trip
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /trips/{id} [patch]
func (h *Handler) patchTrip(c *gin.Context) {
	userID, tripID, ok := h.tripParams(c)
	if !ok {
		return
	}

	var input patchTripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	h.updateTrip(c, userID, tripID, service.TripInput{
		RouteID:              input.Route,
		Status:               input.Status,
		ScheduledTime:        input.ScheduledTime,
		EstimatedArrivalTime: input.EstimatedArrivalTime,
		ActualArrivalTime:    input.ActualArrivalTime,
	})
}

func (h *Handler) updateTrip(c *gin.Context, userID, tripID uuid.UUID, input service.TripInput) {
	trip, err := h.services.Trips.Update(c.Request.Context(), userID, tripID, input)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, trip)
}

// @Summary Cancel trip
// @Tags Trips
// @Description Trips are never removed; DELETE marks the trip CANCELLED.
// @ModuleID cancelTrip
// @Produce  json
// @Param id path string true "trip id"
// @Success 200 {object} messageResponse
// @Failure 401
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /trips/{id} [delete]
func (h *Handler) cancelTrip(c *gin.Context) {
	userID, tripID, ok := h.tripParams(c)
	if !ok {
		return
	}

	if err := h.services.Trips.Cancel(c.Request.Context(), userID, tripID); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, messageResponse{Message: "Trip cancelled successfully."})
}

func (h *Handler) tripParams(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := h.currentUser(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusNotFound, TripNotFoundCode)
		return uuid.Nil, uuid.Nil, false
	}

	return userID, tripID, true
}
