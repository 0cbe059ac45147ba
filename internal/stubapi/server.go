// Package stubapi serves a local stand-in for the shop API: the product
// catalog, single products and order placement, backed by a JSON catalog.
package stubapi

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/NetLive5/weblarek/internal/domain"
)

// BasePath is where the shop API is mounted on its origin
const BasePath = "/api/weblarek"

//go:embed catalog.json
var defaultCatalog []byte

// DefaultCatalog returns the bundled catalog
func DefaultCatalog() ([]domain.Item, error) {
	return parseCatalog(defaultCatalog)
}

// LoadCatalog reads a catalog file in the list-envelope format the API serves
func LoadCatalog(path string) ([]domain.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) ([]domain.Item, error) {
	var envelope domain.ListResponse[domain.Item]
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return envelope.Items, nil
}

// orderRequest is the body of POST /order
type orderRequest struct {
	Payment string          `json:"payment" validate:"required,oneof=card cash"`
	Address string          `json:"address" validate:"required"`
	Email   string          `json:"email" validate:"required,email"`
	Phone   string          `json:"phone" validate:"required"`
	Items   []string        `json:"items" validate:"required,min=1,dive,required"`
	Total   decimal.Decimal `json:"total"`
}

var orderFieldMessages = map[string]string{
	"Payment": "Payment method is invalid",
	"Address": "Address is required",
	"Email":   "Email is invalid",
	"Phone":   "Phone is required",
	"Items":   "Order has no items",
}

// Server holds the catalog and the orders accepted so far
type Server struct {
	logger   *zap.Logger
	validate *validator.Validate

	items []domain.Item
	byID  map[string]domain.Item

	mu     sync.Mutex
	orders []domain.Order
}

// NewServer creates a stub API over items
func NewServer(items []domain.Item, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		items:    make([]domain.Item, len(items)),
		byID:     make(map[string]domain.Item, len(items)),
	}
	copy(s.items, items)
	for _, it := range items {
		s.byID[it.ID] = it
	}
	return s
}

// Handler returns the gin engine serving the API under BasePath
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group(BasePath)
	{
		api.GET("/product", s.handleList)
		api.GET("/product/:id", s.handleItem)
		api.POST("/order", s.handleOrder)
	}
	return router
}

// Orders returns the orders accepted so far
func (s *Server) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.Clone()
	}
	return out
}

func (s *Server) handleList(c *gin.Context) {
	c.JSON(http.StatusOK, domain.ListResponse[domain.Item]{
		Total: len(s.items),
		Items: s.items,
	})
}

func (s *Server) handleItem(c *gin.Context) {
	id := c.Param("id")
	item, ok := s.byID[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "NotFound"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}

	total := decimal.Zero
	for _, id := range req.Items {
		item, ok := s.byID[id]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Item with id %s not found", id)})
			return
		}
		if !item.Purchasable() {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Item with id %s is not for sale", id)})
			return
		}
		total = total.Add(item.Price.Decimal)
	}
	if !total.Equal(req.Total) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Wrong total"})
		return
	}

	order := domain.Order{
		OrderForm: domain.OrderForm{
			Payment: req.Payment,
			Address: req.Address,
			Email:   req.Email,
			Phone:   req.Phone,
		},
		Items: append([]string{}, req.Items...),
		Total: decimal.NewNullDecimal(total),
	}
	s.mu.Lock()
	s.orders = append(s.orders, order)
	s.mu.Unlock()

	result := domain.OrderResult{ID: uuid.NewString(), Total: total}
	s.logger.Info("Order accepted",
		zap.String("order_id", result.ID),
		zap.Int("item_count", len(req.Items)),
		zap.String("total", total.String()),
	)
	c.JSON(http.StatusOK, result)
}

func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	if msg, ok := orderFieldMessages[verrs[0].StructField()]; ok {
		return msg
	}
	return verrs[0].Error()
}
