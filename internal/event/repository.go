package event

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ListQuery is the combined listing predicate: optional case-insensitive
// title search ANDed with an optional date constraint.
type ListQuery struct {
	Search string
	Date   DateFilter
}

type Repository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id uint) (*Event, error)
	List(ctx context.Context, q ListQuery) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
	ListByCreator(ctx context.Context, userID uint) ([]Event, error)
	Update(ctx context.Context, id uint, req *UpdateEventRequest) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
	Join(ctx context.Context, eventID, userID uint) (int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// ===========================
// 🎯 Create Event
func (r *repository) Create(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// ===========================
// 🔍 Get Event By ID
func (r *repository) GetByID(ctx context.Context, id uint) (*Event, error) {
	var e Event
	err := r.db.WithContext(ctx).First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ===========================
// 📄 List Events with search + date predicate, newest first
func (r *repository) List(ctx context.Context, q ListQuery) ([]Event, error) {
	query := r.db.WithContext(ctx).Model(&Event{})

	if q.Search != "" {
		query = query.Where("title ILIKE ?", "%"+q.Search+"%")
	}

	switch {
	case q.Date.Exact != "":
		query = query.Where("date = ?", q.Date.Exact)
	case q.Date.From != "":
		query = query.Where("date >= ? AND date <= ?", q.Date.From, q.Date.To)
	}

	var events []Event
	err := query.Order("date DESC, time DESC").Find(&events).Error
	return events, err
}

// ===========================
// 📆 Most recently dated events, ignoring all filters
func (r *repository) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// ===========================
// 📄 List Events by creator, newest first
func (r *repository) ListByCreator(ctx context.Context, userID uint) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("date DESC, time DESC").
		Find(&events).Error
	return events, err
}

// ===========================
// 🛠 Update Event fields; attendee_count and joined_users are never touched
func (r *repository) Update(ctx context.Context, id uint, req *UpdateEventRequest) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":       req.Title,
			"description": req.Description,
			"name":        req.Name,
			"image":       req.Image,
			"location":    req.Location,
			"date":        req.Date,
			"time":        req.Time,
		})
	return res.RowsAffected, res.Error
}

// ===========================
// ❌ Delete Event
func (r *repository) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Event{}, id)
	return res.RowsAffected, res.Error
}

// ===========================
// 🙋 Join Event
//
// The membership check and the mutation are one conditional UPDATE: the jsonb
// containment guard makes concurrent joins by the same user collapse to a
// single increment, while joins by distinct users each match and increment.
// Zero rows affected means the event is missing or the user already joined;
// the caller distinguishes the two.
func (r *repository) Join(ctx context.Context, eventID, userID uint) (int64, error) {
	member := fmt.Sprintf("[%d]", userID)
	res := r.db.WithContext(ctx).Model(&Event{}).
		Where("id = ? AND NOT joined_users @> ?::jsonb", eventID, member).
		Updates(map[string]interface{}{
			"attendee_count": gorm.Expr("attendee_count + 1"),
			"joined_users":   gorm.Expr("joined_users || ?::jsonb", member),
		})
	return res.RowsAffected, res.Error
}
