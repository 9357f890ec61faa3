package plan

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

type Interval string

const (
	IntervalMonth Interval = "month"
	IntervalYear  Interval = "year"
)

func (i Interval) IsValid() bool {
	return i == IntervalMonth || i == IntervalYear
}

var validCurrencies = map[string]bool{
	"USD": true,
	"EUR": true,
	"GBP": true,
	"CAD": true,
	"AUD": true,
}

// Plan decides which tools a subscriber may run and how often.
// DefaultToolLimit applies per tool per usage period; 0 means unlimited.
type Plan struct {
	id               uint
	slug             string
	name             string
	description      string
	price            uint64
	currency         string
	interval         Interval
	status           Status
	isDefault        bool
	allTools         bool
	defaultToolLimit int
	sortOrder        int
	createdAt        time.Time
	updatedAt        time.Time
}

type Attributes struct {
	Slug             string
	Name             string
	Description      string
	Price            uint64
	Currency         string
	Interval         Interval
	IsDefault        bool
	AllTools         bool
	DefaultToolLimit int
	SortOrder        int
}

func NewPlan(attrs Attributes) (*Plan, error) {
	p := &Plan{status: StatusActive}
	if err := p.apply(attrs); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p.createdAt = now
	p.updatedAt = now
	return p, nil
}

func ReconstructPlan(id uint, attrs Attributes, status Status, createdAt, updatedAt time.Time) (*Plan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid plan status: %s", status)
	}
	return &Plan{
		id:               id,
		slug:             attrs.Slug,
		name:             attrs.Name,
		description:      attrs.Description,
		price:            attrs.Price,
		currency:         attrs.Currency,
		interval:         attrs.Interval,
		status:           status,
		isDefault:        attrs.IsDefault,
		allTools:         attrs.AllTools,
		defaultToolLimit: attrs.DefaultToolLimit,
		sortOrder:        attrs.SortOrder,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

// Update replaces every mutable attribute.
func (p *Plan) Update(attrs Attributes) error {
	if err := p.apply(attrs); err != nil {
		return err
	}
	p.updatedAt = time.Now().UTC()
	return nil
}

func (p *Plan) apply(attrs Attributes) error {
	slug := strings.TrimSpace(attrs.Slug)
	name := strings.TrimSpace(attrs.Name)
	currency := strings.ToUpper(strings.TrimSpace(attrs.Currency))
	if currency == "" {
		currency = "USD"
	}
	interval := attrs.Interval
	if interval == "" {
		interval = IntervalMonth
	}

	switch {
	case slug == "":
		return fmt.Errorf("plan slug is required")
	case len(slug) > 100:
		return fmt.Errorf("plan slug too long (max 100 characters)")
	case name == "":
		return fmt.Errorf("plan name is required")
	case len(name) > 100:
		return fmt.Errorf("plan name too long (max 100 characters)")
	case !validCurrencies[currency]:
		return fmt.Errorf("invalid currency code: %s", attrs.Currency)
	case !interval.IsValid():
		return fmt.Errorf("invalid billing interval: %s", attrs.Interval)
	case attrs.DefaultToolLimit < 0:
		return fmt.Errorf("default tool limit cannot be negative")
	}

	p.slug = slug
	p.name = name
	p.description = attrs.Description
	p.price = attrs.Price
	p.currency = currency
	p.interval = interval
	p.isDefault = attrs.IsDefault
	p.allTools = attrs.AllTools
	p.defaultToolLimit = attrs.DefaultToolLimit
	p.sortOrder = attrs.SortOrder
	return nil
}

func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Plan) ID() uint              { return p.id }
func (p *Plan) Slug() string          { return p.slug }
func (p *Plan) Name() string          { return p.name }
func (p *Plan) Description() string   { return p.description }
func (p *Plan) Price() uint64         { return p.price }
func (p *Plan) Currency() string      { return p.currency }
func (p *Plan) Interval() Interval    { return p.interval }
func (p *Plan) Status() Status        { return p.status }
func (p *Plan) IsDefault() bool       { return p.isDefault }
func (p *Plan) AllTools() bool        { return p.allTools }
func (p *Plan) DefaultToolLimit() int { return p.defaultToolLimit }
func (p *Plan) SortOrder() int        { return p.sortOrder }
func (p *Plan) CreatedAt() time.Time  { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time  { return p.updatedAt }

func (p *Plan) IsActive() bool {
	return p.status == StatusActive
}

func (p *Plan) SetStatus(status Status) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid plan status: %s", status)
	}
	if p.status == status {
		return nil
	}
	if status == StatusInactive && p.isDefault {
		return ErrDefaultPlanInactive
	}
	p.status = status
	p.updatedAt = time.Now().UTC()
	return nil
}

// Attributes returns the plan's current mutable attributes.
func (p *Plan) Attributes() Attributes {
	return Attributes{
		Slug:             p.slug,
		Name:             p.name,
		Description:      p.description,
		Price:            p.price,
		Currency:         p.currency,
		Interval:         p.interval,
		IsDefault:        p.isDefault,
		AllTools:         p.allTools,
		DefaultToolLimit: p.defaultToolLimit,
		SortOrder:        p.sortOrder,
	}
}
