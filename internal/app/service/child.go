package service

import (
	"fmt"
	"time"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/pkg/apperr"
	"growthtrack/internal/app/repository"
)

// ChildLimit действующий лимит детей: MaxChildren активного тарифа
// или базовый из конфигурации.
func (s *Service) ChildLimit(userID uint) (int, error) {
	sub, err := s.repo.GetActiveSubscription(userID, time.Now())
	if err != nil {
		return 0, err
	}
	if sub == nil {
		return s.cfg.DefaultMaxChildren, nil
	}
	return sub.Plan.MaxChildren, nil
}

// CreateChild создает ребенка и опекунскую связь владельца;
// тарифный лимит проверяется здесь, поэтому к моменту заявки
// любая опекунская связь уже легальна для тарифа.
func (s *Service) CreateChild(ownerID uint, child *ds.Child, relation string) (*ds.Child, error) {
	limit, err := s.ChildLimit(ownerID)
	if err != nil {
		return nil, err
	}

	var created *ds.Child
	err = s.repo.InTransaction(func(tx *repository.Repository) error {
		count, err := tx.CountChildrenByGuardian(ownerID)
		if err != nil {
			return err
		}
		if count >= int64(limit) {
			return apperr.BadRequest(fmt.Sprintf("membership tier allows at most %d children", limit))
		}
		if err := tx.CreateChild(child); err != nil {
			return err
		}
		if err := tx.AddGuardian(child.ID, ownerID, relation); err != nil {
			return err
		}
		created, err = tx.GetChildByID(child.ID, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) requireChildAccess(requesterID, childID uint) (*ds.User, error) {
	requester, err := s.repo.GetUserByID(requesterID)
	if err != nil {
		return nil, err
	}
	if requester.Role == ds.RoleAdmin {
		return requester, nil
	}
	isGuardian, err := s.repo.IsGuardian(requesterID, childID)
	if err != nil {
		return nil, err
	}
	if !isGuardian {
		return nil, apperr.Forbidden("not a guardian of this child")
	}
	return requester, nil
}

func (s *Service) GetChild(id, requesterID uint) (*ds.Child, error) {
	if _, err := s.requireChildAccess(requesterID, id); err != nil {
		return nil, err
	}
	return s.repo.GetChildByID(id, false)
}

func (s *Service) UpdateChild(id, requesterID uint, fields map[string]interface{}) (*ds.Child, error) {
	if _, err := s.requireChildAccess(requesterID, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateChild(id, fields); err != nil {
		return nil, err
	}
	return s.repo.GetChildByID(id, false)
}

func (s *Service) DeleteChild(id, requesterID uint) error {
	if _, err := s.requireChildAccess(requesterID, id); err != nil {
		return err
	}
	return s.repo.InTransaction(func(tx *repository.Repository) error {
		return tx.SoftDeleteChild(id)
	})
}

// AddGuardian добавить опекуна может существующий опекун или админ.
func (s *Service) AddGuardian(childID, requesterID, newGuardianID uint, relation string) error {
	if _, err := s.requireChildAccess(requesterID, childID); err != nil {
		return err
	}
	if _, err := s.repo.GetChildByID(childID, false); err != nil {
		return err
	}
	if _, err := s.repo.GetUserByID(newGuardianID); err != nil {
		return err
	}
	already, err := s.repo.IsGuardian(newGuardianID, childID)
	if err != nil {
		return err
	}
	if already {
		return apperr.BadRequest("user is already a guardian of this child")
	}
	return s.repo.AddGuardian(childID, newGuardianID, relation)
}
