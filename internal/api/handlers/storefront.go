package handlers

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NetLive5/weblarek/internal/api/middleware"
	"github.com/NetLive5/weblarek/internal/domain"
	"github.com/NetLive5/weblarek/internal/presenter"
	"github.com/NetLive5/weblarek/internal/session"
	"github.com/NetLive5/weblarek/pkg/errors"
)

// SessionResponse is returned when a storefront session is created
type SessionResponse struct {
	SessionID string           `json:"session_id"`
	Screen    presenter.Screen `json:"screen"`
}

// FieldInputRequest is one keystroke-level edit of a form input
type FieldInputRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// PaymentRequest presses a payment button
type PaymentRequest struct {
	Method string `json:"method" binding:"required"`
}

// HandleCreateSession handles POST /v1/sessions
func HandleCreateSession(store *session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Create(c.Request.Context())
		if err != nil {
			logger.Error("Failed to create session", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}

		screen, err := sess.Act(c.Request.Context(), nil)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.SetCookie(middleware.SessionCookie, sess.ID, 0, "/", "", false, true)
		c.JSON(http.StatusCreated, SessionResponse{SessionID: sess.ID, Screen: screen})
	}
}

// HandleDeleteSession handles DELETE /v1/sessions/current
func HandleDeleteSession(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session required"})
			return
		}
		store.Delete(sess.ID)
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
		c.Status(http.StatusNoContent)
	}
}

// HandleGetScreen handles GET /v1/screen
func HandleGetScreen(logger *zap.Logger) gin.HandlerFunc {
	return act(logger, nil)
}

// HandleReloadCatalog handles POST /v1/catalog
func HandleReloadCatalog(logger *zap.Logger) gin.HandlerFunc {
	return act(logger, func(_ *gin.Context, p *presenter.Presenter) error {
		p.LoadCatalog()
		return nil
	})
}

// HandleSelectCard handles POST /v1/catalog/:id/select
func HandleSelectCard(logger *zap.Logger) gin.HandlerFunc {
	return act(logger, func(c *gin.Context, p *presenter.Presenter) error {
		return p.SelectCard(c.Param("id"))
	})
}

// HandleBuyPreview handles POST /v1/preview/basket
func HandleBuyPreview(logger *zap.Logger) gin.HandlerFunc {
	return act(logger, func(_ *gin.Context, p *presenter.Presenter) error {
		return p.BuyPreview()
	})
}

// HandleOpenBasket handles POST /v1/basket/open
func HandleOpenBasket(logger *zap.Logger) gin.HandlerFunc {
	return act(logger, func(_ *gin.Context, p *presenter.Presenter) error {
		return p.OpenBasket()
	})
}

// HandleRemoveFromBasket handles DELETE /v1/basket/:id
func HandleRemoveFromBasket(logger *zap.Logger) gin.HandlerFunc {
	return act(logger, func(c *gin.Context, p *presenter.Presenter) error {
		return p.RemoveFromBasket(c.Param("id"))
	})
}

// HandleCheckout handles POST /v1/basket/order
func HandleCheckout(logger *zap.Logger) gin.HandlerFunc {
	return act(logger, func(_ *gin.Context, p *presenter.Presenter) error {
		return p.Checkout()
	})
}

// HandleFieldInput handles POST /v1/forms/:form/fields
func HandleFieldInput(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FieldInputRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}
		form := domain.FormName(c.Param("form"))
		act(logger, func(_ *gin.Context, p *presenter.Presenter) error {
			return p.Input(form, domain.Field(req.Field), req.Value)
		})(c)
	}
}

// HandleSelectPayment handles POST /v1/forms/:form/payment; only the order form has payment buttons
func HandleSelectPayment(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if form := c.Param("form"); form != string(domain.FormOrder) {
			respondError(c, logger, &errors.ErrNotFound{Resource: "payment buttons", ID: form})
			return
		}
		var req PaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}
		act(logger, func(_ *gin.Context, p *presenter.Presenter) error {
			return p.SelectPayment(domain.PaymentMethod(req.Method))
		})(c)
	}
}

// HandleSubmitForm handles POST /v1/forms/:form/submit
func HandleSubmitForm(logger *zap.Logger) gin.HandlerFunc {
	return act(logger, func(c *gin.Context, p *presenter.Presenter) error {
		return p.Submit(domain.FormName(c.Param("form")))
	})
}

// HandleCloseModal handles POST /v1/modal/close
func HandleCloseModal(logger *zap.Logger) gin.HandlerFunc {
	return act(logger, func(_ *gin.Context, p *presenter.Presenter) error {
		p.CloseModal()
		return nil
	})
}

// HandleCloseSuccess handles POST /v1/success/close
func HandleCloseSuccess(logger *zap.Logger) gin.HandlerFunc {
	return act(logger, func(_ *gin.Context, p *presenter.Presenter) error {
		return p.CloseSuccess()
	})
}

// act runs fn on the caller's storefront and answers with the resulting screen
func act(logger *zap.Logger, fn func(c *gin.Context, p *presenter.Presenter) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := middleware.GetSessionFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session required"})
			return
		}

		var action func(p *presenter.Presenter) error
		if fn != nil {
			action = func(p *presenter.Presenter) error { return fn(c, p) }
		}

		screen, err := sess.Act(c.Request.Context(), action)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, screen)
	}
}

// respondError maps domain errors to HTTP statuses
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		notFound   *errors.ErrNotFound
		validation *errors.ErrValidation
		conflict   *errors.ErrConflict
		transition *errors.ErrInvalidStateTransition
		apiErr     *errors.ErrAPI
	)

	switch {
	case stderrors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case stderrors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error(), "fields": validation.Fields})
	case stderrors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
	case stderrors.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{
			"error": transition.Error(),
			"from":  transition.From,
			"to":    transition.To,
		})
	case stderrors.As(err, &apiErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": apiErr.Message})
	case stderrors.Is(err, session.ErrLoopClosed):
		c.JSON(http.StatusGone, gin.H{"error": "session closed"})
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, context.Canceled):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
	default:
		logger.Error("Storefront action failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
