package event

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Rika4698/event-management-server/internal/auditlog"
	"github.com/Rika4698/event-management-server/utils"
)

var (
	ErrNotFound      = errors.New("event not found")
	ErrAlreadyJoined = errors.New("already joined")
	ErrForbidden     = errors.New("only the creator may modify this event")
	ErrInvalidDate   = errors.New("invalid date format. Use YYYY-MM-DD")
)

// recentLimit is the fixed size of the homepage preview
const recentLimit = 4

const recentCacheKey = "events:recent"
const recentCacheTTL = 30 * time.Second

// Service wraps business logic for events
type Service struct {
	Repo     Repository
	AuditSvc auditlog.Service
}

func NewService(r Repository, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     r,
		AuditSvc: auditSvc,
	}
}

// ===========================
// 🎯 Create Event
func (s *Service) Create(ctx context.Context, req *CreateEventRequest, userID uint, ip, requestID string) (*Event, error) {
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, ErrInvalidDate
	}

	e := &Event{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		Image:         req.Image,
		Name:          req.Name,
		Date:          req.Date,
		Time:          req.Time,
		AttendeeCount: 0,
		CreatedBy:     userID,
		JoinedUsers:   []uint{},
	}

	if err := s.Repo.Create(ctx, e); err != nil {
		s.AuditSvc.LogAction(ctx, &userID, nil, auditlog.ActionEventCreated,
			map[string]interface{}{"title": req.Title, "error": err.Error()},
			ip, requestID, "failure")
		return nil, err
	}

	s.AuditSvc.LogAction(ctx, &userID, &e.ID, auditlog.ActionEventCreated,
		map[string]interface{}{"title": e.Title, "date": e.Date},
		ip, requestID, "success")

	_ = utils.CacheDelete(recentCacheKey)

	return e, nil
}

// ===========================
// 🔍 Get Event by ID
func (s *Service) Get(ctx context.Context, id uint) (*Event, error) {
	e, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// ===========================
// 📄 List Events with search + date/range filter
func (s *Service) List(ctx context.Context, search, date, rangeKeyword string, now time.Time) ([]Event, error) {
	q := ListQuery{
		Search: search,
		Date:   ResolveDateFilter(date, rangeKeyword, now),
	}
	return s.Repo.List(ctx, q)
}

// ===========================
// 📆 Recent Events (homepage preview, cached)
func (s *Service) ListRecent(ctx context.Context) ([]Event, error) {
	if cached, err := utils.CacheGet(recentCacheKey); err == nil {
		var events []Event
		if err := json.Unmarshal(cached, &events); err == nil {
			return events, nil
		}
	}

	events, err := s.Repo.ListRecent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(events); err == nil {
		_ = utils.CacheSet(recentCacheKey, payload, recentCacheTTL)
	}

	return events, nil
}

// ===========================
// 📄 List the caller's own events. The filter always uses the token
// identity, never a client-supplied id.
func (s *Service) ListMine(ctx context.Context, userID uint) ([]Event, error) {
	return s.Repo.ListByCreator(ctx, userID)
}

// ===========================
// 🛠 Update Event (creator-only)
func (s *Service) Update(ctx context.Context, id uint, req *UpdateEventRequest, userID uint, ip, requestID string) (int64, error) {
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return 0, ErrInvalidDate
	}

	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	if existing.CreatedBy != userID {
		s.AuditSvc.LogAction(ctx, &userID, &id, auditlog.ActionEventUpdated,
			map[string]interface{}{"title": existing.Title, "error": "not the creator"},
			ip, requestID, "failure")
		return 0, ErrForbidden
	}

	matched, err := s.Repo.Update(ctx, id, req)
	if err != nil {
		s.AuditSvc.LogAction(ctx, &userID, &id, auditlog.ActionEventUpdated,
			map[string]interface{}{"title": req.Title, "error": err.Error()},
			ip, requestID, "failure")
		return 0, err
	}

	s.AuditSvc.LogAction(ctx, &userID, &id, auditlog.ActionEventUpdated,
		map[string]interface{}{"title": req.Title, "date": req.Date},
		ip, requestID, "success")

	_ = utils.CacheDelete(recentCacheKey)

	return matched, nil
}

// ===========================
// ❌ Delete Event (creator-only, idempotent on missing ids)
func (s *Service) Delete(ctx context.Context, id uint, userID uint, ip, requestID string) (int64, error) {
	existing, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Nothing to delete; report zero deletions rather than an error
			return 0, nil
		}
		return 0, err
	}

	if existing.CreatedBy != userID {
		s.AuditSvc.LogAction(ctx, &userID, &id, auditlog.ActionEventDeleted,
			map[string]interface{}{"title": existing.Title, "error": "not the creator"},
			ip, requestID, "failure")
		return 0, ErrForbidden
	}

	deleted, err := s.Repo.Delete(ctx, id)
	if err != nil {
		s.AuditSvc.LogAction(ctx, &userID, &id, auditlog.ActionEventDeleted,
			map[string]interface{}{"title": existing.Title, "error": err.Error()},
			ip, requestID, "failure")
		return 0, err
	}

	s.AuditSvc.LogAction(ctx, &userID, &id, auditlog.ActionEventDeleted,
		map[string]interface{}{"title": existing.Title},
		ip, requestID, "success")

	_ = utils.CacheDelete(recentCacheKey)

	return deleted, nil
}

// ===========================
// 🙋 Join Event
//
// The repository performs the guarded increment+append in one store
// operation; zero affected rows is disambiguated here into NotFound vs
// AlreadyJoined.
func (s *Service) Join(ctx context.Context, eventID, userID uint, ip, requestID string) error {
	affected, err := s.Repo.Join(ctx, eventID, userID)
	if err != nil {
		return err
	}

	if affected == 0 {
		_, err := s.Repo.GetByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		s.AuditSvc.LogAction(ctx, &userID, &eventID, auditlog.ActionEventJoined,
			map[string]interface{}{"error": "already joined"},
			ip, requestID, "failure")
		return ErrAlreadyJoined
	}

	s.AuditSvc.LogAction(ctx, &userID, &eventID, auditlog.ActionEventJoined,
		nil, ip, requestID, "success")

	_ = utils.CacheDelete(recentCacheKey)

	return nil
}
