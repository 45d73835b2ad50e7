package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"wealth-backoffice/internal/entity"
	"wealth-backoffice/internal/server/dto"
	"wealth-backoffice/internal/server/repository"
	"wealth-backoffice/pkg/logger"
)

var validPlanTypes = map[entity.PlanType]bool{
	entity.PlanTypeDCA:    true,
	entity.PlanTypeProfit: true,
}

var validPlanFrequencies = map[entity.PlanFrequency]bool{
	entity.FrequencyWeekly:   true,
	entity.FrequencyBiweekly: true,
	entity.FrequencyMonthly:  true,
}

// PlanService defines the interface for managing investment plans.
type PlanService interface {
	CreatePlan(ctx context.Context, accountID uint, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	GetPlansByAccount(ctx context.Context, accountID uint) ([]*dto.PlanResponse, error)
	UpdatePlan(ctx context.Context, id uint, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error)
	DeletePlan(ctx context.Context, id uint) error
	RolloverDuePlans(ctx context.Context) (int, error)
}

// NewPlanService creates a new plan service.
func NewPlanService(planRepo repository.PlanRepository, accountRepo repository.AccountRepository, logger *logger.Logger) PlanService {
	return &planService{
		planRepo:    planRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

type planService struct {
	planRepo    repository.PlanRepository
	accountRepo repository.AccountRepository
	logger      *logger.Logger
}

func (s *planService) CreatePlan(ctx context.Context, accountID uint, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if strings.TrimSpace(req.Ticker) == "" {
		return nil, fmt.Errorf("%w: ticker is required", ErrInvalidInput)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, err
	}

	planType := entity.PlanType(req.PlanType)
	if req.PlanType == "" {
		planType = entity.PlanTypeDCA
	}
	if !validPlanTypes[planType] {
		return nil, fmt.Errorf("%w: unknown plan type %q", ErrInvalidInput, req.PlanType)
	}

	frequency := entity.PlanFrequency(req.Frequency)
	if req.Frequency == "" {
		frequency = entity.FrequencyMonthly
	}
	if !validPlanFrequencies[frequency] {
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, req.Frequency)
	}

	nextRun := req.NextRunDate
	if nextRun.IsZero() {
		nextRun = time.Now()
	}

	plan := &entity.InvestmentPlan{
		AccountID:   accountID,
		Ticker:      strings.ToUpper(strings.TrimSpace(req.Ticker)),
		PlanType:    planType,
		Amount:      req.Amount,
		Frequency:   frequency,
		NextRunDate: nextRun,
		IsActive:    true,
		Config:      datatypes.JSON(req.Config),
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	return s.mapToPlanResponse(plan), nil
}

func (s *planService) GetPlansByAccount(ctx context.Context, accountID uint) ([]*dto.PlanResponse, error) {
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return nil, err
	}

	plans, err := s.planRepo.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.PlanResponse, 0, len(plans))
	for i := range plans {
		responses = append(responses, s.mapToPlanResponse(&plans[i]))
	}
	return responses, nil
}

func (s *planService) UpdatePlan(ctx context.Context, id uint, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Ticker) != "" {
		plan.Ticker = strings.ToUpper(strings.TrimSpace(req.Ticker))
	}
	if req.PlanType != "" {
		planType := entity.PlanType(req.PlanType)
		if !validPlanTypes[planType] {
			return nil, fmt.Errorf("%w: unknown plan type %q", ErrInvalidInput, req.PlanType)
		}
		plan.PlanType = planType
	}
	if req.Amount > 0 {
		plan.Amount = req.Amount
	}
	if req.Frequency != "" {
		frequency := entity.PlanFrequency(req.Frequency)
		if !validPlanFrequencies[frequency] {
			return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, req.Frequency)
		}
		plan.Frequency = frequency
	}
	if !req.NextRunDate.IsZero() {
		plan.NextRunDate = req.NextRunDate
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if len(req.Config) > 0 {
		plan.Config = datatypes.JSON(req.Config)
	}

	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}

	return s.mapToPlanResponse(plan), nil
}

func (s *planService) DeletePlan(ctx context.Context, id uint) error {
	if _, err := s.planRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.planRepo.Delete(ctx, id)
}

// RolloverDuePlans advances the next run date of every active plan whose date
// has passed. Invoked by the scheduled rollover job; returns how many plans
// were advanced.
func (s *planService) RolloverDuePlans(ctx context.Context) (int, error) {
	now := time.Now()
	due, err := s.planRepo.FindDue(ctx, now)
	if err != nil {
		return 0, err
	}

	rolled := 0
	for i := range due {
		plan := &due[i]
		next := plan.NextRunAfter(plan.NextRunDate)
		// Catch up plans that have been overdue for several intervals.
		for !next.After(now) {
			next = plan.NextRunAfter(next)
		}
		plan.NextRunDate = next

		if err := s.planRepo.Update(ctx, plan); err != nil {
			s.logger.Error("Failed to roll over plan",
				logger.IntField("plan_id", int(plan.ID)),
				logger.ErrorField(err),
			)
			continue
		}
		rolled++
	}

	if rolled > 0 {
		s.logger.Info("Rolled over due investment plans", logger.IntField("count", rolled))
	}
	return rolled, nil
}

func (s *planService) mapToPlanResponse(plan *entity.InvestmentPlan) *dto.PlanResponse {
	return &dto.PlanResponse{
		ID:          plan.ID,
		AccountID:   plan.AccountID,
		Ticker:      plan.Ticker,
		PlanType:    string(plan.PlanType),
		Amount:      plan.Amount,
		Frequency:   string(plan.Frequency),
		NextRunDate: plan.NextRunDate,
		IsActive:    plan.IsActive,
		Config:      []byte(plan.Config),
		CreatedAt:   plan.CreatedAt,
	}
}
