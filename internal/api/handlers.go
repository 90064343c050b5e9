package api

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tkaraca/newsdesk/internal/logger"
	"github.com/tkaraca/newsdesk/internal/models"
	"github.com/tkaraca/newsdesk/internal/notify"
	"github.com/tkaraca/newsdesk/internal/store"
	"github.com/tkaraca/newsdesk/internal/syncer"
)

type Handlers struct {
	coordinator *syncer.Coordinator
	settings    *store.Settings
	store       store.Store
	notices     *notify.Ring
	validate    *validator.Validate
}

func NewHandlers(coordinator *syncer.Coordinator, settings *store.Settings, st store.Store, notices *notify.Ring) *Handlers {
	return &Handlers{
		coordinator: coordinator,
		settings:    settings,
		store:       st,
		notices:     notices,
		validate:    validator.New(),
	}
}

// HealthCheck handles GET /api/v1/health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// GetArticles handles GET /api/v1/articles?q=
// Returns the currently presented set, narrowed by the title filter.
func (h *Handlers) GetArticles(c *fiber.Ctx) error {
	state := h.coordinator.State()
	query := c.Query("q", "")
	items := models.FilterByTitle(state.Records, query)

	return c.JSON(fiber.Map{
		"query":               query,
		"total":               len(items),
		"cache_enabled":       state.CacheEnabled,
		"data_loaded_offline": state.DataLoadedOffline,
		"items":               items,
	})
}

// Refresh handles POST /api/v1/refresh — the manual refresh trigger.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	state := h.coordinator.Sync(c.Context(), syncer.TriggerManualRefresh)

	return c.JSON(fiber.Map{
		"total":               len(state.Records),
		"cache_enabled":       state.CacheEnabled,
		"data_loaded_offline": state.DataLoadedOffline,
	})
}

// GetCacheSetting handles GET /api/v1/settings/cache
func (h *Handlers) GetCacheSetting(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"enabled": h.settings.CacheEnabled(),
	})
}

type cacheSettingRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// PutCacheSetting handles PUT /api/v1/settings/cache
func (h *Handlers) PutCacheSetting(c *fiber.Ctx) error {
	var req cacheSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Field 'enabled' is required",
		})
	}

	if err := h.settings.SetCacheEnabled(*req.Enabled); err != nil {
		logger.Get().Error().Err(err).Msg("failed to persist cache setting")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to persist setting",
		})
	}

	return c.JSON(fiber.Map{
		"enabled": *req.Enabled,
	})
}

// GetNotices handles GET /api/v1/notices
func (h *Handlers) GetNotices(c *fiber.Ctx) error {
	notices := h.notices.Recent()
	return c.JSON(fiber.Map{
		"total": len(notices),
		"items": notices,
	})
}

// FlushStore handles POST /api/v1/admin/flush
func (h *Handlers) FlushStore(c *fiber.Ctx) error {
	if err := h.store.ReplaceAll(c.Context(), nil); err != nil {
		logger.Get().Error().Err(err).Msg("failed to flush store")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to flush store",
		})
	}

	return c.JSON(fiber.Map{
		"status": "flushed",
	})
}
