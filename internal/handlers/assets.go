package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fieldops-backend/internal/assets"
	"fieldops-backend/internal/middleware"
	"fieldops-backend/internal/models"
)

const maxRetirementPhotoSize = 15 << 20

type AssetsHandler struct {
	tracker *assets.Tracker
}

func NewAssetsHandler(tracker *assets.Tracker) *AssetsHandler {
	return &AssetsHandler{tracker: tracker}
}

func isAdmin(c *gin.Context) bool {
	sess, ok := middleware.GetSession(c)
	return ok && sess.IsAdmin()
}

// ListAssets godoc
// @Summary     List blades and bits
// @Description Purchase cost is only returned to admins.
// @Tags        assets
// @Produce     json
// @Security    Bearer
// @Param       status      query string false "active or retired"
// @Param       type        query string false "wall_saw, hand_saw, slab_saw, chainsaw or core_bit"
// @Param       operator_id query string false "Assigned operator (UUID)"
// @Success     200 {object} models.AssetListResponse
// @Router      /assets [get]
func (h *AssetsHandler) ListAssets(c *gin.Context) {
	filter := models.AssetFilter{
		Status: models.AssetStatus(c.Query("status")),
		Type:   models.AssetType(c.Query("type")),
	}
	if v := c.Query("operator_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid operator id"})
			return
		}
		filter.OperatorID = uuid.NullUUID{UUID: id, Valid: true}
	}

	list, err := h.tracker.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "failed to list assets", err)
		return
	}
	if list == nil {
		list = []models.Asset{}
	}
	if !isAdmin(c) {
		for i := range list {
			list[i] = list[i].Redacted()
		}
	}
	c.JSON(http.StatusOK, models.AssetListResponse{Assets: list})
}

// CreateAsset godoc
// @Summary     Register a blade or bit
// @Description Only admins may record a purchase cost.
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateAssetRequest true "Asset"
// @Success     201 {object} models.Asset
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /assets [post]
func (h *AssetsHandler) CreateAsset(c *gin.Context) {
	var req models.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request", err)
		return
	}
	admin := isAdmin(c)
	if req.Cost != nil && !admin {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "forbidden", Message: "only admins may set asset cost"})
		return
	}

	a := &models.Asset{
		Type:         req.Type,
		Brand:        strings.TrimSpace(req.Brand),
		Size:         strings.TrimSpace(req.Size),
		SerialNumber: strings.TrimSpace(req.SerialNumber),
	}
	if req.PurchaseDate != nil {
		a.PurchaseDate.Time, a.PurchaseDate.Valid = *req.PurchaseDate, true
	}
	if req.Cost != nil {
		a.Cost = decimal.NewNullDecimal(*req.Cost)
	}
	if req.OperatorID != nil {
		a.OperatorID = uuid.NullUUID{UUID: *req.OperatorID, Valid: true}
	}

	created, err := h.tracker.Create(c.Request.Context(), a)
	if err != nil {
		respondError(c, "failed to create asset", err)
		return
	}
	if !admin {
		redacted := created.Redacted()
		created = &redacted
	}
	c.JSON(http.StatusCreated, created)
}

// AddUsage godoc
// @Summary     Add usage to an asset
// @Description Saws accumulate linear feet; bits accumulate inches and holes. On a retired asset nothing changes and applied is false.
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       asset_id path string            true "Asset ID (UUID)"
// @Param       request  body models.AssetUsage true "Usage increment"
// @Success     200 {object} models.AssetUsageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /assets/{asset_id}/usage [post]
func (h *AssetsHandler) AddUsage(c *gin.Context) {
	id, ok := parseID(c, "asset_id", "asset")
	if !ok {
		return
	}
	var u models.AssetUsage
	if err := c.ShouldBindJSON(&u); err != nil {
		badRequest(c, "invalid request", err)
		return
	}
	a, applied, err := h.tracker.AddUsage(c.Request.Context(), id, u)
	if err != nil {
		respondError(c, "failed to add usage", err)
		return
	}
	if !isAdmin(c) {
		*a = a.Redacted()
	}
	c.JSON(http.StatusOK, models.AssetUsageResponse{Asset: *a, Applied: applied})
}

// RetireAsset godoc
// @Summary     Retire an asset
// @Description Retirement is terminal and needs a reason and a photo of the worn blade or bit.
// @Tags        assets
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       asset_id path     string true "Asset ID (UUID)"
// @Param       reason   formData string true "Why the asset is retired"
// @Param       photo    formData file   true "Photo (JPEG)"
// @Success     200 {object} models.Asset
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /assets/{asset_id}/retire [post]
func (h *AssetsHandler) RetireAsset(c *gin.Context) {
	id, ok := parseID(c, "asset_id", "asset")
	if !ok {
		return
	}

	var photo []byte
	if fh, err := c.FormFile("photo"); err == nil {
		if fh.Size > maxRetirementPhotoSize {
			badRequest(c, "photo too large", fmt.Errorf("limit is %d bytes", maxRetirementPhotoSize))
			return
		}
		f, err := fh.Open()
		if err != nil {
			badRequest(c, "failed to open photo", err)
			return
		}
		photo, err = io.ReadAll(f)
		f.Close()
		if err != nil {
			badRequest(c, "failed to read photo", err)
			return
		}
	}

	a, err := h.tracker.Retire(c.Request.Context(), id, c.PostForm("reason"), photo)
	if err != nil {
		respondError(c, "failed to retire asset", err)
		return
	}
	if !isAdmin(c) {
		*a = a.Redacted()
	}
	c.JSON(http.StatusOK, a)
}

// Analytics godoc
// @Summary     Per-brand asset analytics
// @Description Usage at retirement, days in service and usage per dollar, grouped by brand.
// @Tags        assets
// @Produce     json
// @Security    Bearer
// @Success     200 {array} assets.BrandStats
// @Router      /assets/analytics [get]
func (h *AssetsHandler) Analytics(c *gin.Context) {
	stats, err := h.tracker.Analytics(c.Request.Context())
	if err != nil {
		respondError(c, "failed to compute analytics", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
