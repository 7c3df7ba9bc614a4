package service

import "converso/internal/models"

type UserReader interface {
	GetByID(id uint) (*models.User, error)
}

// PlanEntitlements reads entitlements off the user row, which mirrors what the
// billing provider last reported. This service never writes plan state.
type PlanEntitlements struct {
	users UserReader
}

func NewPlanEntitlements(users UserReader) *PlanEntitlements {
	return &PlanEntitlements{users: users}
}

func (e *PlanEntitlements) HasPlan(userID uint, plan string) (bool, error) {
	u, err := e.users.GetByID(userID)
	if err != nil {
		return false, err
	}
	return u.Plan == plan, nil
}

func (e *PlanEntitlements) HasFeature(userID uint, feature string) (bool, error) {
	u, err := e.users.GetByID(userID)
	if err != nil {
		return false, err
	}
	return u.HasFeature(feature), nil
}
