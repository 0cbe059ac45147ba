package shopapi

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NetLive5/weblarek/internal/domain"
	"github.com/NetLive5/weblarek/internal/stubapi"
	"github.com/NetLive5/weblarek/pkg/errors"
)

const cdn = "https://cdn.example.com/content/weblarek"

func newTestClient(t *testing.T) (*Client, *stubapi.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	items := []domain.Item{
		{ID: "a", Title: "Alpha", Image: "/a.svg", Description: "line one\nline two",
			Price: decimal.NewNullDecimal(decimal.NewFromInt(750))},
		{ID: "b", Title: "Beta", Image: "/b.svg"},
	}
	stub := stubapi.NewServer(items, nil)
	ts := httptest.NewServer(stub.Handler())
	t.Cleanup(ts.Close)

	return NewClient(ts.URL+stubapi.BasePath, cdn, 5*time.Second, nil), stub
}

func TestGetLotList_PrefixesImages(t *testing.T) {
	client, _ := newTestClient(t)

	items, err := client.GetLotList(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, cdn+"/a.svg", items[0].Image)
	assert.Equal(t, cdn+"/b.svg", items[1].Image)
	assert.False(t, items[1].Purchasable())
}

func TestGetLotItem(t *testing.T) {
	client, _ := newTestClient(t)

	item, err := client.GetLotItem(context.Background(), "a")

	require.NoError(t, err)
	assert.Equal(t, cdn+"/a.svg", item.Image)
	assert.Equal(t, []string{"line one", "line two"}, item.DescriptionLines())
}

func TestGetLotItem_NotFound(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.GetLotItem(context.Background(), "missing")

	var apiErr *errors.ErrAPI
	require.True(t, stderrors.As(err, &apiErr), "got %v", err)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "NotFound", apiErr.Message)
}

func TestOrderLots(t *testing.T) {
	client, stub := newTestClient(t)
	order := domain.NewOrder()
	order.OrderForm = domain.OrderForm{Payment: "cash", Address: "Main st. 1", Email: "buyer@example.com", Phone: "+70000000000"}
	order.Items = []string{"a"}
	order.Total = decimal.NewNullDecimal(decimal.NewFromInt(750))

	result, err := client.OrderLots(context.Background(), order)

	require.NoError(t, err)
	assert.NotEmpty(t, result.ID)
	assert.True(t, decimal.NewFromInt(750).Equal(result.Total))
	require.Len(t, stub.Orders(), 1)
	assert.Equal(t, "Main st. 1", stub.Orders()[0].Address)
}

func TestOrderLots_ServerMessage(t *testing.T) {
	client, stub := newTestClient(t)
	order := domain.NewOrder()
	order.OrderForm = domain.OrderForm{Payment: "cash", Address: "Main st. 1", Email: "buyer@example.com", Phone: "+7"}
	order.Items = []string{"b"}
	order.Total = decimal.NewNullDecimal(decimal.Zero)

	_, err := client.OrderLots(context.Background(), order)

	var apiErr *errors.ErrAPI
	require.True(t, stderrors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Item with id b is not for sale", apiErr.Message)
	assert.Empty(t, stub.Orders())
}

func TestStatusTextFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("<html>down</html>"))
	}))
	defer ts.Close()
	client := NewClient(ts.URL, cdn, 0, nil)

	_, err := client.GetLotList(context.Background())

	var apiErr *errors.ErrAPI
	require.True(t, stderrors.As(err, &apiErr))
	assert.Equal(t, "Service Unavailable", apiErr.Message)
}

func TestTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()
	client := NewClient(url, cdn, time.Second, nil)

	_, err := client.GetLotList(context.Background())

	require.Error(t, err)
	var apiErr *errors.ErrAPI
	assert.False(t, stderrors.As(err, &apiErr))
}
