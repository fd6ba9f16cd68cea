package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"hotel-reservation/middleware"
	"hotel-reservation/models"
	"hotel-reservation/services"
	"hotel-reservation/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{Rooms: rooms}
}

type roomPayload struct {
	Number        string   `json:"number" binding:"required"`
	Type          string   `json:"type" binding:"required"`
	Description   string   `json:"description"`
	Capacity      int      `json:"capacity" binding:"required"`
	PricePerNight float64  `json:"price_per_night"`
	Status        string   `json:"status"`
	Amenities     []string `json:"amenities"`
}

func (p *roomPayload) toModel() (*models.Room, error) {
	room := &models.Room{
		Number:        p.Number,
		Type:          models.RoomType(p.Type),
		Description:   p.Description,
		Capacity:      p.Capacity,
		PricePerNight: p.PricePerNight,
		Status:        models.RoomStatus(p.Status),
	}
	if p.Amenities != nil {
		raw, err := json.Marshal(p.Amenities)
		if err != nil {
			return nil, err
		}
		room.Amenities = datatypes.JSON(raw)
	}
	return room, nil
}

// ----------------------------------------------------
// 1. List Rooms (GET /api/rooms)
// ----------------------------------------------------

func (rc *RoomController) List(c *gin.Context) {
	filter := services.RoomFilter{
		Type:   models.RoomType(c.Query("type")),
		Status: models.RoomStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	if capStr := c.Query("capacity"); capStr != "" {
		if v, err := strconv.Atoi(capStr); err == nil {
			filter.MinCapacity = v
		}
	}

	rooms, err := rc.Rooms.List(filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	types, err := rc.Rooms.Types()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"rooms": rooms,
		"filters": gin.H{
			"types": types,
			"statuses": []models.RoomStatus{
				models.RoomStatusAvailable,
				models.RoomStatusMaintenance,
				models.RoomStatusOutOfOrder,
			},
		},
	})
}

// ----------------------------------------------------
// 2. Show Room (GET /api/rooms/:id)
// ----------------------------------------------------

func (rc *RoomController) Show(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	room, err := rc.Rooms.GetWithUpcomingBookings(id, time.Now())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// ----------------------------------------------------
// 3. Create Room (POST /api/rooms)
// ----------------------------------------------------

func (rc *RoomController) Create(c *gin.Context) {
	actor, _ := middleware.Actor(c)

	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	room, err := payload.toModel()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid amenities payload")
		return
	}

	if err := rc.Rooms.Create(*actor, room); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// ----------------------------------------------------
// 4. Update Room (PUT/PATCH /api/rooms/:id)
// ----------------------------------------------------

func (rc *RoomController) Update(c *gin.Context) {
	actor, _ := middleware.Actor(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updated, err := payload.toModel()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid amenities payload")
		return
	}

	room, err := rc.Rooms.Update(*actor, id, updated)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// ----------------------------------------------------
// 5. Delete Room (DELETE /api/rooms/:id)
// ----------------------------------------------------

func (rc *RoomController) Delete(c *gin.Context) {
	actor, _ := middleware.Actor(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := rc.Rooms.Delete(*actor, id, time.Now()); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room deleted successfully."})
}
