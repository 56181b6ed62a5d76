package handler

import (
	"context"
	"net/http"
	"strconv"

	"address-api/internal/models"
	"address-api/internal/validation"

	"github.com/gin-gonic/gin"
)

// AddressHandler handles address CRUD and proximity requests
type AddressHandler struct {
	service AddressService
}

// Service interface for dependency injection
type AddressService interface {
	Create(ctx context.Context, a models.NewAddress) (models.Address, error)
	Get(ctx context.Context, id int64) (models.Address, error)
	Update(ctx context.Context, id int64, u models.AddressUpdate) (models.Address, error)
	Delete(ctx context.Context, id int64) error
	WithinDistance(ctx context.Context, q models.ProximityQuery) ([]models.Address, error)
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(svc AddressService) *AddressHandler {
	validation.UseRequestFieldNames()
	return &AddressHandler{service: svc}
}

// CreateAddressRequest is the body of POST /addresses.
type CreateAddressRequest struct {
	Name      *string  `json:"name" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

// UpdateAddressRequest is the body of PUT /addresses/{id}. Omitted fields keep their value.
type UpdateAddressRequest struct {
	Name      *string  `json:"name"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
}

// CoordinatesRequest is a query center.
type CoordinatesRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
}

// ProximityRequest is the body of POST /addresses/within_distance.
type ProximityRequest struct {
	Coordinates *CoordinatesRequest `json:"coordinates" binding:"required"`
	Distance    *float64            `json:"distance" binding:"required,gt=0"`
}

type proximityParams struct {
	Latitude  *float64 `form:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `form:"longitude" binding:"required,gte=-180,lte=180"`
	Distance  *float64 `form:"distance" binding:"required,gt=0"`
}

// MessageResponse confirms an operation without a resource body.
type MessageResponse struct {
	Message string `json:"message"`
}

// Create handles POST /addresses requests
//
//	@Summary	Create an address
//	@Tags		addresses
//	@Accept		json
//	@Produce	json
//	@Param		address	body		CreateAddressRequest	true	"New address"
//	@Success	201		{object}	models.Address
//	@Failure	400		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/addresses [post]
func (h *AddressHandler) Create(c *gin.Context) {
	var req CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), models.NewAddress{
		Name:      *req.Name,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Get handles GET /addresses/{id} requests
//
//	@Summary	Get an address
//	@Tags		addresses
//	@Produce	json
//	@Param		id	path		int	true	"Address id"
//	@Success	200	{object}	models.Address
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/addresses/{id} [get]
func (h *AddressHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	address, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, address)
}

// Update handles PUT /addresses/{id} requests
//
//	@Summary	Partially update an address
//	@Tags		addresses
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Address id"
//	@Param		address	body		UpdateAddressRequest	true	"Fields to change"
//	@Success	200		{object}	models.Address
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/addresses/{id} [put]
func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, models.AddressUpdate{
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /addresses/{id} requests
//
//	@Summary	Delete an address
//	@Tags		addresses
//	@Produce	json
//	@Param		id	path		int	true	"Address id"
//	@Success	200	{object}	MessageResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/addresses/{id} [delete]
func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Address deleted successfully"})
}

// WithinDistance handles POST /addresses/within_distance requests
//
//	@Summary	List addresses within a distance of a point
//	@Tags		addresses
//	@Accept		json
//	@Produce	json
//	@Param		query	body		ProximityRequest	true	"Center and radius in meters"
//	@Success	200		{array}		models.Address
//	@Failure	400		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/addresses/within_distance [post]
func (h *AddressHandler) WithinDistance(c *gin.Context) {
	var req ProximityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	h.withinDistance(c, models.ProximityQuery{
		Center: models.Coordinate{
			Latitude:  *req.Coordinates.Latitude,
			Longitude: *req.Coordinates.Longitude,
		},
		Distance: *req.Distance,
	})
}

// WithinDistanceQuery handles GET /addresses/within_distance requests
//
//	@Summary	List addresses within a distance of a point
//	@Tags		addresses
//	@Produce	json
//	@Param		latitude	query		number	true	"Center latitude"
//	@Param		longitude	query		number	true	"Center longitude"
//	@Param		distance	query		number	true	"Radius in meters"
//	@Success	200			{array}		models.Address
//	@Failure	400			{object}	ErrorResponse
//	@Failure	422			{object}	ErrorResponse
//	@Router		/addresses/within_distance [get]
func (h *AddressHandler) WithinDistanceQuery(c *gin.Context) {
	var params proximityParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	h.withinDistance(c, models.ProximityQuery{
		Center:   models.Coordinate{Latitude: *params.Latitude, Longitude: *params.Longitude},
		Distance: *params.Distance,
	})
}

func (h *AddressHandler) withinDistance(c *gin.Context, q models.ProximityQuery) {
	addresses, err := h.service.WithinDistance(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, addresses)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid address id"})
		return 0, false
	}
	return id, true
}
