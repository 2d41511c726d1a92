package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pulsemind/fitness-coach/internal/domain"
	"pulsemind/fitness-coach/internal/repository"
)

// --- Error Definitions ---
var (
	ErrNoActivePlan     = errors.New("no active plan")
	ErrPlanAccessDenied = errors.New("plan not found or unauthorized")
)

// PlanService manages a user's fitness plans. At most one plan per user
// is active at any time; creating or activating a plan deactivates the
// rest.
type PlanService interface {
	GetUserPlans(ctx context.Context, userID string) ([]domain.Plan, error)
	GetActivePlan(ctx context.Context, userID string) (*domain.Plan, error)
	CreatePlan(ctx context.Context, userID, name string, workout domain.WorkoutPlan, diet domain.DietPlan) (*domain.Plan, error)
	ActivatePlan(ctx context.Context, planID primitive.ObjectID, userID string) error
	DeletePlan(ctx context.Context, planID primitive.ObjectID, userID string) error
}

type planService struct {
	planRepo repository.PlanRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository) PlanService {
	return &planService{planRepo: planRepo}
}

// GetUserPlans returns all plans belonging to the user, newest first.
func (s *planService) GetUserPlans(ctx context.Context, userID string) ([]domain.Plan, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	return s.planRepo.GetByUserID(ctx, userID)
}

// GetActivePlan returns the user's single active plan.
func (s *planService) GetActivePlan(ctx context.Context, userID string) (*domain.Plan, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	plan, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}
	return plan, nil
}

// CreatePlan stores a new plan and makes it the active one.
func (s *planService) CreatePlan(ctx context.Context, userID, name string, workout domain.WorkoutPlan, diet domain.DietPlan) (*domain.Plan, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	if name == "" {
		return nil, errors.New("plan name cannot be empty")
	}

	plan := &domain.Plan{
		UserID:      userID,
		Name:        name,
		WorkoutPlan: workout,
		DietPlan:    diet,
	}
	planID, err := s.planRepo.CreateActive(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID
	plan.IsActive = true
	return plan, nil
}

// ActivatePlan marks one plan active and deactivates the user's others.
func (s *planService) ActivatePlan(ctx context.Context, planID primitive.ObjectID, userID string) error {
	err := s.planRepo.Activate(ctx, planID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanAccessDenied
		}
		return err
	}
	return nil
}

// DeletePlan removes a plan the user owns. The ownership check happens
// in the same store operation as the delete, so a mismatch has no effect.
func (s *planService) DeletePlan(ctx context.Context, planID primitive.ObjectID, userID string) error {
	err := s.planRepo.Delete(ctx, planID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanAccessDenied
		}
		return err
	}
	return nil
}
