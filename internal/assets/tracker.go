// Package assets tracks blades and bits from purchase to retirement.
// Retirement is terminal and freezes usage counters.
package assets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"fieldops-backend/internal/models"
	"fieldops-backend/internal/supabase"
)

var (
	ErrRetired        = errors.New("asset is retired")
	ErrReasonRequired = errors.New("retirement reason is required")
	ErrPhotoRequired  = errors.New("retirement photo is required")
	ErrPhotoType      = errors.New("retirement photo must be an image")
	ErrInvalidUsage   = errors.New("invalid usage")
	ErrInvalidAsset   = errors.New("invalid asset")
)

type Store interface {
	CreateAsset(ctx context.Context, a *models.Asset) (*models.Asset, error)
	GetAsset(ctx context.Context, id uuid.UUID) (*models.Asset, error)
	ListAssets(ctx context.Context, filter models.AssetFilter) ([]models.Asset, error)
	AddAssetUsage(ctx context.Context, id uuid.UUID, u models.AssetUsage) (bool, error)
	RetireAsset(ctx context.Context, id uuid.UUID, reason, photo string, at time.Time) error
}

// PhotoStore holds retirement evidence.
type PhotoStore interface {
	Upload(path, contentType string, data []byte) error
	Delete(path string) error
}

type Tracker struct {
	store  Store
	photos PhotoStore
	now    func() time.Time
}

func NewTracker(store Store, photos PhotoStore) *Tracker {
	return &Tracker{store: store, photos: photos, now: time.Now}
}

func (t *Tracker) Create(ctx context.Context, a *models.Asset) (*models.Asset, error) {
	if !a.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidAsset, a.Type)
	}
	if strings.TrimSpace(a.Brand) == "" {
		return nil, fmt.Errorf("%w: brand is required", ErrInvalidAsset)
	}
	if a.Cost.Valid && a.Cost.Decimal.IsNegative() {
		return nil, fmt.Errorf("%w: cost cannot be negative", ErrInvalidAsset)
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.Status = models.AssetActive
	return t.store.CreateAsset(ctx, a)
}

func (t *Tracker) Get(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	return t.store.GetAsset(ctx, id)
}

func (t *Tracker) List(ctx context.Context, filter models.AssetFilter) ([]models.Asset, error) {
	return t.store.ListAssets(ctx, filter)
}

// ValidateUsage checks an increment against the asset type: saws accumulate
// linear feet, bits accumulate inches and holes.
func ValidateUsage(assetType models.AssetType, u models.AssetUsage) error {
	if u.LinearFeet < 0 || u.InchesDrilled < 0 || u.Holes < 0 {
		return fmt.Errorf("%w: usage cannot decrease", ErrInvalidUsage)
	}
	if u.Zero() {
		return fmt.Errorf("%w: nothing to add", ErrInvalidUsage)
	}
	if assetType.Drilling() && u.LinearFeet != 0 {
		return fmt.Errorf("%w: %s tracks inches and holes", ErrInvalidUsage, assetType)
	}
	if !assetType.Drilling() && (u.InchesDrilled != 0 || u.Holes != 0) {
		return fmt.Errorf("%w: %s tracks linear feet", ErrInvalidUsage, assetType)
	}
	return nil
}

// AddUsage accumulates usage on an active asset. On a retired asset it is a
// no-op: counters stay frozen and applied is false.
func (t *Tracker) AddUsage(ctx context.Context, id uuid.UUID, u models.AssetUsage) (*models.Asset, bool, error) {
	asset, err := t.store.GetAsset(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if asset.Status == models.AssetRetired {
		return asset, false, nil
	}
	if err := ValidateUsage(asset.Type, u); err != nil {
		return nil, false, err
	}
	applied, err := t.store.AddAssetUsage(ctx, id, u)
	if err != nil {
		return nil, false, fmt.Errorf("add usage to asset %s: %w", id, err)
	}
	updated, err := t.store.GetAsset(ctx, id)
	if err != nil {
		return nil, applied, err
	}
	return updated, applied, nil
}

// ValidateRetirement checks the evidence required before retiring.
func ValidateRetirement(reason string, photo []byte) error {
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	if len(photo) == 0 {
		return ErrPhotoRequired
	}
	if _, err := photoType(photo); err != nil {
		return err
	}
	return nil
}

// photoType sniffs the uploaded bytes. Only images are accepted.
func photoType(photo []byte) (*mimetype.MIME, error) {
	mt := mimetype.Detect(photo)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%w: got %s", ErrPhotoType, mt.String())
	}
	return mt, nil
}

// Retire moves an active asset to retired with its reason and photo. The
// photo is stored first and removed again if the status change fails.
func (t *Tracker) Retire(ctx context.Context, id uuid.UUID, reason string, photo []byte) (*models.Asset, error) {
	if err := ValidateRetirement(reason, photo); err != nil {
		return nil, err
	}
	asset, err := t.store.GetAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset.Status == models.AssetRetired {
		return nil, fmt.Errorf("asset %s: %w", id, ErrRetired)
	}

	mt, err := photoType(photo)
	if err != nil {
		return nil, err
	}
	at := t.now().UTC()
	path := supabase.RetirementPhotoPath(id, at, mt.Extension())
	if err := t.photos.Upload(path, mt.String(), photo); err != nil {
		return nil, fmt.Errorf("store retirement photo for asset %s: %w", id, err)
	}
	if err := t.store.RetireAsset(ctx, id, strings.TrimSpace(reason), path, at); err != nil {
		if delErr := t.photos.Delete(path); delErr != nil {
			log.Printf("Warning: failed to remove retirement photo %s: %v", path, delErr)
		}
		if errors.Is(err, supabase.ErrConflict) {
			return nil, fmt.Errorf("asset %s: %w", id, ErrRetired)
		}
		return nil, fmt.Errorf("retire asset %s: %w", id, err)
	}
	return t.store.GetAsset(ctx, id)
}

// Analytics groups every asset, active and retired, by brand.
func (t *Tracker) Analytics(ctx context.Context) ([]BrandStats, error) {
	all, err := t.store.ListAssets(ctx, models.AssetFilter{})
	if err != nil {
		return nil, err
	}
	return BrandAnalytics(all), nil
}
