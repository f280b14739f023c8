package employee

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	employeeerrors "supplyhr/internal/employee/errors"
)

type fakeService struct {
	createFn func(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	getAllFn func(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	getByID  func(ctx context.Context, companyID, id string) (EmployeeResponse, error)
}

func (f *fakeService) Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	return f.createFn(ctx, companyID, req)
}
func (f *fakeService) GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	return f.getAllFn(ctx, companyID)
}
func (f *fakeService) GetOptions(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
	return f.getAllFn(ctx, companyID)
}
func (f *fakeService) GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	return f.getByID(ctx, companyID, id)
}
func (f *fakeService) Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	return EmployeeResponse{}, nil
}
func (f *fakeService) Delete(ctx context.Context, companyID, id string) error { return nil }

func TestHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uuid.New().String()

	svc := &fakeService{
		createFn: func(ctx context.Context, cid string, req CreateEmployeeRequest) (EmployeeResponse, error) {
			assert.Equal(t, companyID, cid)
			return EmployeeResponse{ID: uuid.New().String(), FullName: req.FullName}, nil
		},
	}
	h := NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", companyID)
	c.Request = httptest.NewRequest(http.MethodPost, "/employees",
		strings.NewReader(`{"full_name":"Sara Haddad","email":"sara@example.com","hire_date":"2026-03-01"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Sara Haddad")
}

func TestHandler_Create_InvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"email":"not-an-email"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetAll_FilterAndPaginate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getAllFn: func(ctx context.Context, companyID string) ([]EmployeeResponse, error) {
			return []EmployeeResponse{
				{ID: "1", FullName: "Sara Haddad", Email: "sara@example.com"},
				{ID: "2", FullName: "Omar Khalil", Email: "omar@example.com"},
				{ID: "3", FullName: "Sami Aldeen", Email: "sami@example.com"},
			}, nil
		},
	}
	h := NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodGet, "/employees?q=sa&page=1&page_size=10", nil)

	h.GetAll(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sara Haddad")
	assert.Contains(t, w.Body.String(), "Sami Aldeen")
	assert.NotContains(t, w.Body.String(), "Omar Khalil")
}

func TestHandler_GetById_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getByID: func(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		},
	}
	h := NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("company_id", uuid.New().String())
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodGet, "/employees/x", nil)

	h.GetById(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
