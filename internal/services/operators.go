package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fieldops-backend/internal/models"
	"fieldops-backend/internal/session"
	"fieldops-backend/internal/supabase"
)

// OperatorService manages operator profiles. Hourly rates are visible to
// admins only.
type OperatorService struct {
	store   OperatorStore
	objects ObjectStore
	now     func() time.Time
}

func NewOperatorService(store OperatorStore, objects ObjectStore) *OperatorService {
	return &OperatorService{store: store, objects: objects, now: time.Now}
}

func (s *OperatorService) List(ctx context.Context) ([]models.Operator, error) {
	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	ops, err := s.store.ListOperators(ctx)
	if err != nil {
		return nil, err
	}
	if ops == nil {
		ops = []models.Operator{}
	}
	if !sess.IsAdmin() {
		for i := range ops {
			ops[i] = ops[i].Redacted()
		}
	}
	return ops, nil
}

// Get returns a profile with its certifications.
func (s *OperatorService) Get(ctx context.Context, id uuid.UUID) (*models.OperatorResponse, error) {
	sess, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	op, err := s.store.GetOperator(ctx, id)
	if err != nil {
		return nil, err
	}
	certs, err := s.store.ListCertifications(ctx, op.ID)
	if err != nil {
		return nil, err
	}
	if certs == nil {
		certs = []models.Certification{}
	}
	resp := &models.OperatorResponse{Operator: *op, Certifications: certs}
	if !sess.IsAdmin() {
		resp.Operator = op.Redacted()
	}
	return resp, nil
}

func (s *OperatorService) Create(ctx context.Context, req models.CreateOperatorRequest) (*models.Operator, error) {
	if _, err := requireRole(ctx, session.RoleAdmin); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if req.HourlyRate != nil && req.HourlyRate.IsNegative() {
		return nil, invalid("hourly_rate must not be negative")
	}

	now := s.now().UTC()
	op := &models.Operator{
		ID:         uuid.New(),
		Name:       name,
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		TaskSkills: req.TaskSkills,
		Equipment:  req.Equipment,
		Metrics: models.OperatorMetrics{
			RevenueGenerated: decimal.Zero,
			HoursWorked:      decimal.Zero,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.UserID != nil {
		op.UserID = uuid.NullUUID{UUID: *req.UserID, Valid: true}
	}
	if req.HourlyRate != nil {
		op.HourlyRate = decimal.NewNullDecimal(*req.HourlyRate)
	}
	if op.TaskSkills == nil {
		op.TaskSkills = map[string]int{}
	}
	if op.Equipment == nil {
		op.Equipment = map[string]models.EquipmentQualification{}
	}
	op.Normalize()
	return s.store.CreateOperator(ctx, op)
}

// Update applies a partial profile update. Metrics and ratings are only
// changed by job completion.
func (s *OperatorService) Update(ctx context.Context, id uuid.UUID, req models.UpdateOperatorRequest) (*models.Operator, error) {
	if _, err := requireRole(ctx, session.RoleAdmin); err != nil {
		return nil, err
	}
	op, err := s.store.GetOperator(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("name must not be empty")
		}
		op.Name = name
	}
	if req.Email != nil {
		op.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		op.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.HourlyRate != nil {
		if req.HourlyRate.IsNegative() {
			return nil, invalid("hourly_rate must not be negative")
		}
		op.HourlyRate = decimal.NewNullDecimal(*req.HourlyRate)
	}
	if req.TaskSkills != nil {
		op.TaskSkills = req.TaskSkills
	}
	if req.Equipment != nil {
		op.Equipment = req.Equipment
	}
	op.Normalize()
	op.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateOperatorProfile(ctx, op); err != nil {
		return nil, err
	}
	return s.store.GetOperator(ctx, id)
}

// CertificationUpload is an optional scanned certificate.
type CertificationUpload struct {
	Filename string
	Data     []byte
}

func (s *OperatorService) AddCertification(ctx context.Context, operatorID uuid.UUID, name string, issued time.Time, expires *time.Time, file *CertificationUpload) (*models.Certification, error) {
	if _, err := requireRole(ctx, session.RoleAdmin); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("certification name is required")
	}
	if issued.IsZero() {
		return nil, invalid("issued_date is required")
	}
	if expires != nil && expires.Before(issued) {
		return nil, invalid("expires_date precedes issued_date")
	}
	if _, err := s.store.GetOperator(ctx, operatorID); err != nil {
		return nil, err
	}

	c := &models.Certification{
		ID:         uuid.New(),
		OperatorID: operatorID,
		Name:       name,
		IssuedDate: issued.UTC(),
		CreatedAt:  s.now().UTC(),
	}
	if expires != nil {
		c.ExpiresDate.Time, c.ExpiresDate.Valid = expires.UTC(), true
	}
	if file != nil && len(file.Data) > 0 {
		filename := filepath.Base(file.Filename)
		path := supabase.CertificationPath(operatorID, c.ID, filename)
		if err := s.objects.Upload(path, mimetype.Detect(file.Data).String(), file.Data); err != nil {
			return nil, fmt.Errorf("upload certification: %w", err)
		}
		c.DocumentPath.String, c.DocumentPath.Valid = path, true
	}
	if err := s.store.AddCertification(ctx, c); err != nil {
		if c.DocumentPath.Valid {
			if delErr := s.objects.Delete(c.DocumentPath.String); delErr != nil {
				log.Printf("Warning: failed to remove certification scan %s: %v", c.DocumentPath.String, delErr)
			}
		}
		return nil, err
	}
	return c, nil
}
