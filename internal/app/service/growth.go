package service

import (
	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/pkg/apperr"
)

// requireGrowthAccess доступ к измерениям: опекун, админ или врач
// с активной консультацией по этому ребенку.
func (s *Service) requireGrowthAccess(requesterID, childID uint) error {
	requester, err := s.repo.GetUserByID(requesterID)
	if err != nil {
		return err
	}
	if requester.Role == ds.RoleAdmin {
		return nil
	}
	isGuardian, err := s.repo.IsGuardian(requesterID, childID)
	if err != nil {
		return err
	}
	if isGuardian {
		return nil
	}
	if requester.Role == ds.RoleDoctor {
		ok, err := s.repo.DoctorHasActiveConsultationForChild(requesterID, childID)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return apperr.Forbidden("no access to this child's growth data")
}

func (s *Service) AddGrowthRecord(childID, requesterID uint, rec *ds.GrowthRecord) (*ds.GrowthRecord, error) {
	if _, err := s.repo.GetChildByID(childID, false); err != nil {
		return nil, err
	}
	if err := s.requireGrowthAccess(requesterID, childID); err != nil {
		return nil, err
	}
	rec.ChildID = childID
	rec.RecordedByID = requesterID
	if err := s.repo.CreateGrowthRecord(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) ListGrowthRecords(childID, requesterID uint) ([]ds.GrowthRecord, error) {
	if _, err := s.repo.GetChildByID(childID, false); err != nil {
		return nil, err
	}
	if err := s.requireGrowthAccess(requesterID, childID); err != nil {
		return nil, err
	}
	return s.repo.ListGrowthByChild(childID)
}
