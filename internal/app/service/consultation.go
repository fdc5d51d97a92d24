package service

import (
	"time"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/pkg/apperr"
	"growthtrack/internal/app/repository"
)

// ConsultationPage страница консультаций.
type ConsultationPage struct {
	Items      []ds.Consultation
	Page       int
	Total      int64
	TotalPages int
}

// ListConsultations свои консультации: врач видит свою сторону,
// участник свою, админ все.
func (s *Service) ListConsultations(requesterID uint, q ListQuery) (*ConsultationPage, error) {
	requester, err := s.repo.GetUserByID(requesterID)
	if err != nil {
		return nil, err
	}

	q.Normalize()
	filter := repository.ConsultationFilter{
		Status:    q.Status,
		Page:      q.Page,
		Size:      q.Size,
		OrderDesc: q.OrderDesc,
	}
	switch requester.Role {
	case ds.RoleAdmin:
		// без фильтра по стороне
	case ds.RoleDoctor:
		filter.DoctorID = &requesterID
	default:
		filter.MemberID = &requesterID
	}

	items, total, err := s.repo.ListConsultations(filter)
	if err != nil {
		return nil, err
	}
	return &ConsultationPage{Items: items, Page: q.Page, Total: total, TotalPages: totalPages(total, q.Size)}, nil
}

func (s *Service) GetConsultation(id, requesterID uint) (*ds.Consultation, error) {
	requester, err := s.repo.GetUserByID(requesterID)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.GetConsultationByID(id)
	if err != nil {
		return nil, err
	}
	if requester.Role != ds.RoleAdmin && requesterID != c.MemberID && requesterID != c.DoctorID {
		return nil, apperr.Forbidden("no access to this consultation")
	}
	return c, nil
}

// CompleteConsultation завершает консультацию; только ее врач или админ.
func (s *Service) CompleteConsultation(id, requesterID uint, summary string) (*ds.Consultation, error) {
	requester, err := s.repo.GetUserByID(requesterID)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.GetConsultationByID(id)
	if err != nil {
		return nil, err
	}
	if requester.Role != ds.RoleAdmin && requesterID != c.DoctorID {
		return nil, apperr.Forbidden("only the consultation's doctor may complete it")
	}

	err = s.repo.InTransaction(func(tx *repository.Repository) error {
		return tx.CompleteConsultation(id, summary, time.Now())
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetConsultationByID(id)
}
