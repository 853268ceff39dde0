package store

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"rentshare/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&UserModel{}, &ItemModel{}, &BookingModel{}, &CommentModel{}, &RequestModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// users

func (s *GormStore) CreateUser(u domain.User) (domain.User, error) {
	model := userToModel(u)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.User{}, err
	}
	return userFromModel(model), nil
}

func (s *GormStore) UpdateUser(u domain.User) error {
	model := userToModel(u)
	return s.db.Save(&model).Error
}

func (s *GormStore) GetUser(id int64) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

func (s *GormStore) ListUsers() ([]domain.User, error) {
	var models []UserModel
	if err := s.db.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.User, 0, len(models))
	for _, m := range models {
		res = append(res, userFromModel(m))
	}
	return res, nil
}

func (s *GormStore) DeleteUser(id int64) error {
	return s.db.Delete(&UserModel{}, "id = ?", id).Error
}

func (s *GormStore) UserExists(id int64) (bool, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) EmailTaken(email string, excludeUserID int64) (bool, error) {
	var count int64
	tx := s.db.Model(&UserModel{}).Where("email = ?", email)
	if excludeUserID != 0 {
		tx = tx.Where("id <> ?", excludeUserID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// items

func (s *GormStore) CreateItem(it domain.Item) (domain.Item, error) {
	model := itemToModel(it)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Item{}, err
	}
	created, _, err := s.GetItem(model.ID)
	return created, err
}

func (s *GormStore) UpdateItem(it domain.Item) error {
	model := itemToModel(it)
	return s.db.Save(&model).Error
}

func (s *GormStore) GetItem(id int64) (domain.Item, bool, error) {
	var model ItemModel
	if err := s.db.Preload("Owner").First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Item{}, false, nil
		}
		return domain.Item{}, false, err
	}
	return itemFromModel(model), true, nil
}

func (s *GormStore) ListItemsByOwner(ownerID int64, limit, offset int) ([]domain.Item, error) {
	return s.listItems(s.db.Where("owner_id = ?", ownerID).Order("id ASC").Limit(limit).Offset(offset))
}

func (s *GormStore) SearchItems(text string, limit, offset int) ([]domain.Item, error) {
	pattern := "%" + text + "%"
	return s.listItems(s.db.
		Where("available = ? AND (name ILIKE ? OR description ILIKE ?)", true, pattern, pattern).
		Order("id ASC").Limit(limit).Offset(offset))
}

func (s *GormStore) ListItemsByRequest(requestID int64) ([]domain.Item, error) {
	return s.listItems(s.db.Where("request_id = ?", requestID).Order("id ASC"))
}

func (s *GormStore) listItems(tx *gorm.DB) ([]domain.Item, error) {
	var models []ItemModel
	if err := tx.Preload("Owner").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Item, 0, len(models))
	for _, m := range models {
		res = append(res, itemFromModel(m))
	}
	return res, nil
}

func (s *GormStore) DeleteItemsByOwner(ownerID int64) error {
	return s.db.Delete(&ItemModel{}, "owner_id = ?", ownerID).Error
}

// bookings

func (s *GormStore) CreateBooking(b domain.Booking) (domain.Booking, error) {
	model := bookingToModel(b)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Booking{}, err
	}
	created, _, err := s.GetBooking(model.ID)
	return created, err
}

func (s *GormStore) GetBooking(id int64) (domain.Booking, bool, error) {
	var model BookingModel
	err := s.db.Preload("Item").Preload("Item.Owner").Preload("Booker").
		First(&model, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Booking{}, false, nil
		}
		return domain.Booking{}, false, err
	}
	return bookingFromModel(model), true, nil
}

// DecideBooking uses a conditional update so two concurrent decisions on the
// same WAITING booking cannot both apply.
func (s *GormStore) DecideBooking(id int64, status domain.BookingStatus) (bool, error) {
	res := s.db.Model(&BookingModel{}).
		Where("id = ? AND status = ?", id, string(domain.StatusWaiting)).
		Update("status", string(status))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) ListBookingsByBooker(bookerID int64, filter domain.StateFilter, now time.Time, limit, offset int) ([]domain.Booking, error) {
	tx := s.db.Where("booker_id = ?", bookerID)
	return s.listBookings(tx, filter, now, limit, offset)
}

func (s *GormStore) ListBookingsByOwner(ownerID int64, filter domain.StateFilter, now time.Time, limit, offset int) ([]domain.Booking, error) {
	tx := s.db.Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID)
	return s.listBookings(tx, filter, now, limit, offset)
}

func (s *GormStore) listBookings(tx *gorm.DB, filter domain.StateFilter, now time.Time, limit, offset int) ([]domain.Booking, error) {
	switch filter {
	case domain.FilterCurrent:
		tx = tx.Where("bookings.start_date <= ? AND bookings.end_date >= ?", now, now)
	case domain.FilterPast:
		tx = tx.Where("bookings.end_date < ?", now)
	case domain.FilterFuture:
		tx = tx.Where("bookings.start_date > ?", now)
	case domain.FilterWaiting, domain.FilterRejected:
		tx = tx.Where("bookings.status = ?", string(filter))
	}
	var models []BookingModel
	err := tx.Preload("Item").Preload("Item.Owner").Preload("Booker").
		Order("bookings.start_date DESC").Limit(limit).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		res = append(res, bookingFromModel(m))
	}
	return res, nil
}

func (s *GormStore) LastBookingForItem(itemID int64, now time.Time) (domain.Booking, bool, error) {
	return s.topBooking(s.db.
		Where("item_id = ? AND status = ? AND start_date < ?", itemID, string(domain.StatusApproved), now).
		Order("start_date DESC"))
}

func (s *GormStore) NextBookingForItem(itemID int64, now time.Time) (domain.Booking, bool, error) {
	return s.topBooking(s.db.
		Where("item_id = ? AND status = ? AND start_date > ?", itemID, string(domain.StatusApproved), now).
		Order("start_date ASC"))
}

func (s *GormStore) topBooking(tx *gorm.DB) (domain.Booking, bool, error) {
	var model BookingModel
	err := tx.Preload("Item").Preload("Item.Owner").Preload("Booker").First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Booking{}, false, nil
		}
		return domain.Booking{}, false, err
	}
	return bookingFromModel(model), true, nil
}

func (s *GormStore) HasFinishedBooking(itemID, bookerID int64, now time.Time) (bool, error) {
	var count int64
	err := s.db.Model(&BookingModel{}).
		Where("item_id = ? AND booker_id = ? AND status = ? AND end_date < ?",
			itemID, bookerID, string(domain.StatusApproved), now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// comments

func (s *GormStore) CreateComment(c domain.Comment) (domain.Comment, error) {
	model := commentToModel(c)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Comment{}, err
	}
	var created CommentModel
	if err := s.db.Preload("Author").First(&created, "id = ?", model.ID).Error; err != nil {
		return domain.Comment{}, err
	}
	return commentFromModel(created), nil
}

func (s *GormStore) ListCommentsByItem(itemID int64) ([]domain.Comment, error) {
	var models []CommentModel
	err := s.db.Preload("Author").Where("item_id = ?", itemID).Order("id ASC").Find(&models).Error
	if err != nil {
		return nil, err
	}
	res := make([]domain.Comment, 0, len(models))
	for _, m := range models {
		res = append(res, commentFromModel(m))
	}
	return res, nil
}

// item requests

func (s *GormStore) CreateRequest(r domain.ItemRequest) (domain.ItemRequest, error) {
	model := requestToModel(r)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.ItemRequest{}, err
	}
	created, _, err := s.GetRequest(model.ID)
	return created, err
}

func (s *GormStore) GetRequest(id int64) (domain.ItemRequest, bool, error) {
	var model RequestModel
	if err := s.db.Preload("Requestor").First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.ItemRequest{}, false, nil
		}
		return domain.ItemRequest{}, false, err
	}
	return requestFromModel(model), true, nil
}

func (s *GormStore) ListRequestsByRequestor(userID int64) ([]domain.ItemRequest, error) {
	return s.listRequests(s.db.Where("requestor_id = ?", userID).Order("created DESC"))
}

func (s *GormStore) ListRequestsByOthers(userID int64, limit, offset int) ([]domain.ItemRequest, error) {
	return s.listRequests(s.db.Where("requestor_id <> ?", userID).
		Order("created DESC").Limit(limit).Offset(offset))
}

func (s *GormStore) listRequests(tx *gorm.DB) ([]domain.ItemRequest, error) {
	var models []RequestModel
	if err := tx.Preload("Requestor").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.ItemRequest, 0, len(models))
	for _, m := range models {
		res = append(res, requestFromModel(m))
	}
	return res, nil
}

func (s *GormStore) RequestExists(id int64) (bool, error) {
	var count int64
	if err := s.db.Model(&RequestModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// converters

func userToModel(u domain.User) UserModel {
	return UserModel{ID: u.ID, Name: u.Name, Email: u.Email}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{ID: m.ID, Name: m.Name, Email: m.Email}
}

func itemToModel(it domain.Item) ItemModel {
	model := ItemModel{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.Owner.ID,
	}
	if it.RequestID != 0 {
		requestID := it.RequestID
		model.RequestID = &requestID
	}
	return model
}

func itemFromModel(m ItemModel) domain.Item {
	it := domain.Item{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Available:   m.Available,
		Owner:       userFromModel(m.Owner),
	}
	if m.RequestID != nil {
		it.RequestID = *m.RequestID
	}
	return it
}

func bookingToModel(b domain.Booking) BookingModel {
	return BookingModel{
		ID:       b.ID,
		Start:    b.Start,
		End:      b.End,
		ItemID:   b.Item.ID,
		BookerID: b.Booker.ID,
		Status:   string(b.Status),
	}
}

func bookingFromModel(m BookingModel) domain.Booking {
	return domain.Booking{
		ID:     m.ID,
		Start:  m.Start,
		End:    m.End,
		Item:   itemFromModel(m.Item),
		Booker: userFromModel(m.Booker),
		Status: domain.BookingStatus(m.Status),
	}
}

func commentToModel(c domain.Comment) CommentModel {
	return CommentModel{
		ID:       c.ID,
		Text:     c.Text,
		ItemID:   c.ItemID,
		AuthorID: c.Author.ID,
		Created:  c.Created,
	}
}

func commentFromModel(m CommentModel) domain.Comment {
	return domain.Comment{
		ID:      m.ID,
		Text:    m.Text,
		ItemID:  m.ItemID,
		Author:  userFromModel(m.Author),
		Created: m.Created,
	}
}

func requestToModel(r domain.ItemRequest) RequestModel {
	return RequestModel{
		ID:          r.ID,
		Description: r.Description,
		RequestorID: r.Requestor.ID,
		Created:     r.Created,
	}
}

func requestFromModel(m RequestModel) domain.ItemRequest {
	return domain.ItemRequest{
		ID:          m.ID,
		Description: m.Description,
		Requestor:   userFromModel(m.Requestor),
		Created:     m.Created,
	}
}
