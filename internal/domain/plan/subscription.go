package plan

import (
	"fmt"
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionTrialing SubscriptionStatus = "trialing"
	SubscriptionPastDue  SubscriptionStatus = "past_due"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionActive, SubscriptionTrialing, SubscriptionPastDue, SubscriptionCanceled:
		return true
	}
	return false
}

// Subscription assigns a user to a plan. Each user has at most one.
// Zero period bounds mean the usage period is the calendar month.
type Subscription struct {
	id                 uint
	userID             uint
	planID             uint
	status             SubscriptionStatus
	currentPeriodStart time.Time
	currentPeriodEnd   time.Time
	canceledAt         *time.Time
	createdAt          time.Time
	updatedAt          time.Time
}

func NewSubscription(userID, planID uint, status SubscriptionStatus, periodStart, periodEnd time.Time) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	s := &Subscription{userID: userID}
	if err := s.Assign(planID, status, periodStart, periodEnd); err != nil {
		return nil, err
	}
	s.createdAt = s.updatedAt
	return s, nil
}

func ReconstructSubscription(id, userID, planID uint, status SubscriptionStatus, periodStart, periodEnd time.Time,
	canceledAt *time.Time, createdAt, updatedAt time.Time) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	return &Subscription{
		id:                 id,
		userID:             userID,
		planID:             planID,
		status:             status,
		currentPeriodStart: periodStart,
		currentPeriodEnd:   periodEnd,
		canceledAt:         canceledAt,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

// Assign moves the subscription to a plan, status and period.
func (s *Subscription) Assign(planID uint, status SubscriptionStatus, periodStart, periodEnd time.Time) error {
	if planID == 0 {
		return fmt.Errorf("plan ID is required")
	}
	if !status.IsValid() {
		return fmt.Errorf("invalid subscription status: %s", status)
	}
	if periodStart.IsZero() != periodEnd.IsZero() {
		return fmt.Errorf("period start and end must be set together")
	}
	if !periodEnd.IsZero() && !periodEnd.After(periodStart) {
		return fmt.Errorf("period end must be after period start")
	}

	now := time.Now().UTC()
	s.planID = planID
	s.status = status
	s.currentPeriodStart = periodStart.UTC()
	s.currentPeriodEnd = periodEnd.UTC()
	if status == SubscriptionCanceled {
		s.canceledAt = &now
	} else {
		s.canceledAt = nil
	}
	s.updatedAt = now
	return nil
}

func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

func (s *Subscription) ID() uint                      { return s.id }
func (s *Subscription) UserID() uint                  { return s.userID }
func (s *Subscription) PlanID() uint                  { return s.planID }
func (s *Subscription) Status() SubscriptionStatus    { return s.status }
func (s *Subscription) CurrentPeriodStart() time.Time { return s.currentPeriodStart }
func (s *Subscription) CurrentPeriodEnd() time.Time   { return s.currentPeriodEnd }
func (s *Subscription) CanceledAt() *time.Time        { return s.canceledAt }
func (s *Subscription) CreatedAt() time.Time          { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time          { return s.updatedAt }
func (s *Subscription) HasPeriod() bool               { return !s.currentPeriodEnd.IsZero() }

// IsActiveAt reports whether the subscription grants its plan at now.
// past_due and canceled fall back to the default plan, as does an active
// subscription whose period has ended.
func (s *Subscription) IsActiveAt(now time.Time) bool {
	if s.status != SubscriptionActive && s.status != SubscriptionTrialing {
		return false
	}
	if s.HasPeriod() && !now.Before(s.currentPeriodEnd) {
		return false
	}
	return true
}
