package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/manara-transit/backend/internal/domain"
	"github.com/manara-transit/backend/internal/service"
)

func (h *Handler) initRouteRoutes(api *gin.RouterGroup) {
	routes := api.Group("/routes", h.userIdentityMiddleware)
	{
		routes.GET("", h.listRoutes)
		routes.POST("", h.createRoute)
		routes.GET("/saved", h.savedRoutes)
	}
}

type locationInput struct {
	Name      string  `json:"name" binding:"required,max=255"`
	Latitude  float64 `json:"latitude" binding:"latitude"`
	Longitude float64 `json:"longitude" binding:"longitude"`
	Address   string  `json:"address" binding:"max=512"`
}

func (in locationInput) toService() service.LocationInput {
	return service.LocationInput{
		Name:      in.Name,
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
		Address:   in.Address,
	}
}

type routeStopInput struct {
	Location      locationInput `json:"location"`
	Sequence      int           `json:"sequence" binding:"min=0"`
	EstimatedTime int           `json:"estimated_time" binding:"min=0"`
}

type createRouteInput struct {
	Name              string           `json:"name" binding:"required,max=255"`
	StartLocation     locationInput    `json:"start_location"`
	EndLocation       locationInput    `json:"end_location"`
	EstimatedDuration int              `json:"estimated_duration" binding:"min=0"`
	IsSaved           bool             `json:"is_saved"`
	Stops             []routeStopInput `json:"stops" binding:"omitempty,dive"`
}

// @Summary List routes
// @Tags Routes
// @Description Routes created by the current user.
// @ModuleID listRoutes
// @Produce  json
// @Success 200 {array} domain.Route
// @Failure 401
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /routes [get]
func (h *Handler) listRoutes(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	routes, err := h.services.Routes.List(c.Request.Context(), userID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, nonNilRoutes(routes))
}

// @Summary Saved routes
// @Tags Routes
// @ModuleID savedRoutes
// @Produce  json
// @Success 200 {array} domain.Route
// @Failure 401
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /routes/saved [get]
func (h *Handler) savedRoutes(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	routes, err := h.services.Routes.Saved(c.Request.Context(), userID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, nonNilRoutes(routes))
}

// @Summary Create route
// @Tags Routes
// @Description Creates the start, end and stop locations together with the route.
// @ModuleID createRoute
// @Accept  json
// @Produce  json
// @Param input body createRouteInput true "route"
// @Success 201 {object} domain.Route
// @Failure 400 {object} ValidationErrorStruct
// @Failure 401
// @Failure 500 {object} ErrorStruct
// @Security UserAuth
// @Router /routes [post]
func (h *Handler) createRoute(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var input createRouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	stops := make([]service.RouteStopInput, len(input.Stops))
	for i, s := range input.Stops {
		stops[i] = service.RouteStopInput{
			Location:      s.Location.toService(),
			Sequence:      s.Sequence,
			EstimatedTime: s.EstimatedTime,
		}
	}

	route, err := h.services.Routes.Create(c.Request.Context(), userID, service.RouteInput{
		Name:              input.Name,
		StartLocation:     input.StartLocation.toService(),
		EndLocation:       input.EndLocation.toService(),
		EstimatedDuration: input.EstimatedDuration,
		IsSaved:           input.IsSaved,
		Stops:             stops,
	})
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, route)
}

func nonNilRoutes(routes []domain.Route) []domain.Route {
	if routes == nil {
		return []domain.Route{}
	}
	return routes
}
