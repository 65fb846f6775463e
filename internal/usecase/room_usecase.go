package usecase

import (
	"context"

	"surgery-reservation-system/internal/converter"
	"surgery-reservation-system/internal/delivery/dto"
	"surgery-reservation-system/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type RoomUsecase interface {
	ListRooms(ctx context.Context) (*dto.RoomListResponse, error)
	GetRoom(ctx context.Context, roomID int) (*dto.RoomResponse, error)
	ListBedsByRoom(ctx context.Context, roomID int) ([]dto.BedResponse, error)
}

type roomUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	roomRepo repository.OperatingRoomRepository
	bedRepo  repository.OperatingBedRepository
}

func NewRoomUsecase(db *gorm.DB, log *logrus.Logger, roomRepo repository.OperatingRoomRepository, bedRepo repository.OperatingBedRepository) RoomUsecase {
	return &roomUsecase{
		db:       db,
		log:      log,
		roomRepo: roomRepo,
		bedRepo:  bedRepo,
	}
}

func (u *roomUsecase) ListRooms(ctx context.Context) (*dto.RoomListResponse, error) {
	rooms, err := u.roomRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list operating rooms: %+v", err)
		return nil, err
	}
	return &dto.RoomListResponse{
		Rooms: converter.RoomsToResponses(rooms),
		Total: len(rooms),
	}, nil
}

func (u *roomUsecase) GetRoom(ctx context.Context, roomID int) (*dto.RoomResponse, error) {
	room, err := u.roomRepo.FindByID(u.db.WithContext(ctx), roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	beds, err := u.bedRepo.FindByRoomID(u.db.WithContext(ctx), roomID)
	if err != nil {
		return nil, err
	}
	room.Beds = beds
	return converter.RoomToResponse(room), nil
}

func (u *roomUsecase) ListBedsByRoom(ctx context.Context, roomID int) ([]dto.BedResponse, error) {
	room, err := u.roomRepo.FindByID(u.db.WithContext(ctx), roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	beds, err := u.bedRepo.FindByRoomID(u.db.WithContext(ctx), roomID)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.BedResponse, 0, len(beds))
	for i := range beds {
		responses = append(responses, *converter.BedToResponse(&beds[i]))
	}
	return responses, nil
}
