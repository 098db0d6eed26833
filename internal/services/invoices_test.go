package services_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"fexa-gateway/internal/models"
	"fexa-gateway/internal/services"
	"fexa-gateway/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetInvoicesByWorkOrder_FiltersOnWorkOrderID(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ev1/client_invoices", r.URL.Path)
		assert.JSONEq(t, `[{"property":"workorders.id","value":7}]`, r.URL.Query().Get("filters"))
		json.NewEncoder(w).Encode(models.InvoicesResponse{
			Invoices: []models.Invoice{{ID: 1, WorkOrderID: 7, Amount: "125.00"}},
		})
	})
	svc := services.NewInvoiceService(api, zap.NewNop())

	resp, err := svc.GetInvoicesByWorkOrder(context.Background(), 7, 0, 100)
	require.NoError(t, err)
	require.Len(t, resp.Invoices, 1)
	assert.Equal(t, "125.00", resp.Invoices[0].Amount)
}

func TestGetInvoicesByWorkOrders_UsesInOperator(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.JSONEq(t, `[{"property":"workorders.id","operator":"in","value":[7,8]}]`,
			r.URL.Query().Get("filters"))
		json.NewEncoder(w).Encode(models.InvoicesResponse{})
	})
	svc := services.NewInvoiceService(api, zap.NewNop())

	_, err := svc.GetInvoicesByWorkOrders(context.Background(), []int{7, 8}, 0, 100)
	require.NoError(t, err)
}

func TestGetInvoicesByWorkOrders_RejectsEmptyIDList(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no upstream call expected")
	})
	svc := services.NewInvoiceService(api, zap.NewNop())

	_, err := svc.GetInvoicesByWorkOrders(context.Background(), nil, 0, 100)
	require.Error(t, err)
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))
}

func TestGetInvoicesByVendor_FiltersOnVendorID(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.JSONEq(t, `[{"property":"vendors.id","value":12}]`, r.URL.Query().Get("filters"))
		json.NewEncoder(w).Encode(models.InvoicesResponse{
			Invoices: []models.Invoice{{ID: 2, VendorID: 12}},
		})
	})
	svc := services.NewInvoiceService(api, zap.NewNop())

	resp, err := svc.GetInvoicesByVendor(context.Background(), 12, 0, 100)
	require.NoError(t, err)
	require.Len(t, resp.Invoices, 1)
	assert.Equal(t, 12, resp.Invoices[0].VendorID)
}

func TestGetInvoice_EmptyEnvelopeIsNotFound(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ev1/client_invoices/5", r.URL.Path)
		json.NewEncoder(w).Encode(models.SingleInvoiceResponse{})
	})
	svc := services.NewInvoiceService(api, zap.NewNop())

	_, err := svc.GetInvoice(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
