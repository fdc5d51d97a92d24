package service

import (
	"fmt"
	"time"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/pkg/apperr"
	"growthtrack/internal/app/repository"
)

// RequestPage страница заявок для конверта ответа.
type RequestPage struct {
	Items      []ds.Request
	Page       int
	Total      int64
	TotalPages int
}

// CreateRequest создает заявку участника на консультацию у врача.
// Все проверки и вставка идут в одной транзакции, порядок проверок фиксирован:
// суточный лимит, роль врача, существование детей, опекунство.
func (s *Service) CreateRequest(requesterID, doctorID uint, childIDs []uint, title string) (*ds.Request, error) {
	if len(childIDs) == 0 {
		return nil, apperr.BadRequest("childIds must not be empty")
	}
	seen := map[uint]bool{}
	for _, id := range childIDs {
		if seen[id] {
			return nil, apperr.BadRequest("duplicate child id in request")
		}
		seen[id] = true
	}

	var created *ds.Request
	err := s.repo.InTransaction(func(tx *repository.Repository) error {
		// окно текущих суток по локальному времени
		now := time.Now()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		dayEnd := dayStart.Add(24 * time.Hour)

		count, err := tx.CountRequestsCreatedBetween(requesterID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if count >= int64(s.cfg.RequestDailyLimit) {
			return apperr.BadRequest(fmt.Sprintf("daily request limit of %d reached", s.cfg.RequestDailyLimit))
		}

		doctor, err := tx.GetUserByID(doctorID)
		if err != nil {
			return apperr.NotFound("doctor not found")
		}
		if doctor.Role != ds.RoleDoctor {
			return apperr.BadRequest("target user is not a doctor")
		}

		for _, childID := range childIDs {
			if _, err := tx.GetChildByID(childID, false); err != nil {
				return err
			}
			isGuardian, err := tx.IsGuardian(requesterID, childID)
			if err != nil {
				return err
			}
			if !isGuardian {
				return apperr.Forbidden(fmt.Sprintf("requester is not a guardian of child %d", childID))
			}
		}

		req := &ds.Request{
			MemberID: requesterID,
			DoctorID: doctorID,
			Title:    title,
			Status:   ds.StatusPending,
		}
		if err := tx.CreateRequest(req, childIDs); err != nil {
			return err
		}

		created, err = tx.GetRequestByID(req.ID, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetRequest точечное чтение с правилом видимости;
// удаленные заявки видит только админ.
func (s *Service) GetRequest(id, requesterID uint) (*ds.Request, error) {
	requester, err := s.repo.GetUserByID(requesterID)
	if err != nil {
		return nil, err
	}

	req, err := s.repo.GetRequestByID(id, requester.Role == ds.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if !canViewRequest(requester, req) {
		return nil, apperr.Forbidden("no access to this request")
	}
	return req, nil
}

// ListUserRequests заявки пользователя; параметр as выбирает сторону
// (участник или врач). Не-админ может смотреть только свои и только
// в действительно имеющейся роли.
func (s *Service) ListUserRequests(userID, requesterID uint, q ListQuery, as string) (*RequestPage, error) {
	requester, err := s.repo.GetUserByID(requesterID)
	if err != nil {
		return nil, err
	}
	isAdmin := requester.Role == ds.RoleAdmin

	if !isAdmin && requesterID != userID {
		return nil, apperr.Forbidden("cannot list another user's requests")
	}

	asRole := ds.RoleMember
	if as != "" {
		parsed, ok := ds.ParseRole(as)
		if !ok || parsed == ds.RoleAdmin {
			return nil, apperr.BadRequest("as must be MEMBER or DOCTOR")
		}
		asRole = parsed
	}
	if !isAdmin && requester.Role != asRole {
		return nil, apperr.Forbidden("requester does not hold the " + string(asRole) + " role")
	}

	q.Normalize()
	filter := repository.RequestFilter{
		Search:         q.Search,
		Status:         q.Status,
		IncludeDeleted: isAdmin,
		Page:           q.Page,
		Size:           q.Size,
		OrderDesc:      q.OrderDesc,
	}
	if asRole == ds.RoleDoctor {
		filter.DoctorID = &userID
	} else {
		filter.MemberID = &userID
	}

	items, total, err := s.repo.ListRequests(filter)
	if err != nil {
		return nil, err
	}
	return &RequestPage{Items: items, Page: q.Page, Total: total, TotalPages: totalPages(total, q.Size)}, nil
}

// ListAllRequests административный листинг, включает удаленные.
// Роль проверяется на уровне маршрута.
func (s *Service) ListAllRequests(q ListQuery) (*RequestPage, error) {
	q.Normalize()
	items, total, err := s.repo.ListRequests(repository.RequestFilter{
		Search:         q.Search,
		Status:         q.Status,
		IncludeDeleted: true,
		Page:           q.Page,
		Size:           q.Size,
		OrderDesc:      q.OrderDesc,
	})
	if err != nil {
		return nil, err
	}
	return &RequestPage{Items: items, Page: q.Page, Total: total, TotalPages: totalPages(total, q.Size)}, nil
}

// UpdateRequestStatus переводит заявку по таблице переходов.
// Повтор текущего статуса это ошибка, а не no-op. При переходе в Accepted
// в той же транзакции создается консультация.
func (s *Service) UpdateRequestStatus(id, requesterID uint, statusStr string) (*ds.Request, error) {
	requester, err := s.repo.GetUserByID(requesterID)
	if err != nil {
		return nil, err
	}

	target, ok := ds.ParseRequestStatus(statusStr)
	if !ok {
		return nil, apperr.BadRequest("invalid status value")
	}

	req, err := s.repo.GetRequestByID(id, false)
	if err != nil {
		return nil, err
	}

	if req.Status == target {
		return nil, apperr.BadRequest("request is already " + string(target))
	}
	if err := authorizeTransition(requester, req, target); err != nil {
		return nil, err
	}
	if !req.Status.CanTransitionTo(target) {
		return nil, apperr.BadRequest(fmt.Sprintf("cannot transition from %s to %s", req.Status, target))
	}

	err = s.repo.InTransaction(func(tx *repository.Repository) error {
		if target == ds.StatusAccepted {
			consultation := &ds.Consultation{
				RequestID: req.ID,
				MemberID:  req.MemberID,
				DoctorID:  req.DoctorID,
				Status:    ds.ConsultationActive,
				StartedAt: time.Now(),
			}
			if err := tx.CreateConsultation(consultation); err != nil {
				return err
			}
		}
		// условный UPDATE: проигравший гонку получит BadRequest
		return tx.UpdateRequestStatus(id, req.Status, target)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetRequestByID(id, false)
}

// DeleteRequest мягкое удаление, доступно только владельцу-участнику.
func (s *Service) DeleteRequest(id, requesterID uint) (*ds.Request, error) {
	req, err := s.repo.GetRequestByID(id, false)
	if err != nil {
		return nil, err
	}
	if req.MemberID != requesterID {
		return nil, apperr.Forbidden("only the owning member may delete the request")
	}

	err = s.repo.InTransaction(func(tx *repository.Repository) error {
		return tx.SoftDeleteRequest(id)
	})
	if err != nil {
		return nil, err
	}

	req.IsDeleted = true
	return req, nil
}
