package handler

import (
	"net/http"
	"strconv"

	"surgery-reservation-system/internal/usecase"
	"surgery-reservation-system/pkg/response"

	"github.com/gorilla/mux"
)

type RoomHandler struct {
	roomUsecase usecase.RoomUsecase
}

func NewRoomHandler(roomUsecase usecase.RoomUsecase) *RoomHandler {
	return &RoomHandler{
		roomUsecase: roomUsecase,
	}
}

// ListRooms lists all operating rooms
// @Summary List operating rooms
// @Tags Rooms
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /rooms [get]
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	list, err := h.roomUsecase.ListRooms(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list rooms")
		return
	}

	response.Success(w, http.StatusOK, "Rooms retrieved successfully", list)
}

// GetRoom returns one operating room with its beds
// @Summary Get operating room
// @Tags Rooms
// @Security BearerAuth
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rooms/{id} [get]
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	room, err := h.roomUsecase.GetRoom(r.Context(), roomID)
	if err != nil {
		if err == usecase.ErrRoomNotFound {
			response.NotFound(w, "Operating room not found")
			return
		}
		response.InternalServerError(w, "Failed to get room")
		return
	}

	response.Success(w, http.StatusOK, "Room retrieved successfully", room)
}

// ListBedsByRoom lists the beds of one operating room
// @Summary List beds of a room
// @Tags Rooms
// @Security BearerAuth
// @Produce json
// @Param id path int true "Room ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /rooms/{id}/beds [get]
func (h *RoomHandler) ListBedsByRoom(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid room ID")
		return
	}

	beds, err := h.roomUsecase.ListBedsByRoom(r.Context(), roomID)
	if err != nil {
		if err == usecase.ErrRoomNotFound {
			response.NotFound(w, "Operating room not found")
			return
		}
		response.InternalServerError(w, "Failed to list beds")
		return
	}

	response.Success(w, http.StatusOK, "Beds retrieved successfully", beds)
}
