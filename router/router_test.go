package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yeremiapane/foodiego/config"
	"github.com/yeremiapane/foodiego/database"
	"github.com/yeremiapane/foodiego/models"
	"github.com/yeremiapane/foodiego/router"
	"github.com/yeremiapane/foodiego/services"
	"github.com/yeremiapane/foodiego/testutil"
	"gorm.io/gorm"
)

type RouterSuite struct {
	suite.Suite
	db        *gorm.DB
	r         *gin.Engine
	publisher *testutil.RecordingPublisher
	uploadDir string
}

func TestRouterSuite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.db = testutil.NewDB(s.T())
	s.Require().NoError(database.Seed(s.db))
	s.publisher = &testutil.RecordingPublisher{}
	s.uploadDir = s.T().TempDir()
	s.r = router.SetupRouter(s.db, router.Options{
		Config: config.Config{
			CORSOrigin: "http://localhost:3000",
			UploadDir:  s.uploadDir,
		},
		Publisher: s.publisher,
		Payments:  services.NewPaymentServiceWithCreator(nil, "usd"),
	})
}

func (s *RouterSuite) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func (s *RouterSuite) login(email, password string) string {
	w := s.do(http.MethodPost, "/api/login", "", gin.H{"email": email, "password": password})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	data := s.decode(w)["data"].(map[string]interface{})
	return data["token"].(string)
}

func (s *RouterSuite) menuItemID(name string) uint {
	var item models.MenuItem
	s.Require().NoError(s.db.Where("name = ?", name).First(&item).Error)
	return item.ID
}

func (s *RouterSuite) categoryID(name string) uint {
	var category models.Category
	s.Require().NoError(s.db.Where("name = ?", name).First(&category).Error)
	return category.ID
}

func (s *RouterSuite) orderPayload() gin.H {
	return gin.H{
		"customer_name":    "Demo User",
		"customer_phone":   "0812345678",
		"customer_address": "1 Demo Street",
		"items": []gin.H{
			{"menu_item_id": s.menuItemID("Classic Burger"), "quantity": 2, "price": 8.99},
			{"menu_item_id": s.menuItemID("Fresh Lemonade"), "quantity": 1, "price": 3.99},
		},
	}
}

func (s *RouterSuite) TestPing() {
	w := s.do(http.MethodGet, "/ping", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.NotEmpty(w.Header().Get("X-Request-ID"))
}

func (s *RouterSuite) TestRegisterAndLogin() {
	w := s.do(http.MethodPost, "/api/register", "", gin.H{
		"name": "New Customer", "email": "new@example.com", "password": "secret1",
	})
	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal("User created successfully", s.decode(w)["success"])

	w = s.do(http.MethodPost, "/api/register", "", gin.H{
		"name": "Again", "email": "new@example.com", "password": "secret1",
	})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("Email already exists", s.decode(w)["error"])

	w = s.do(http.MethodPost, "/api/register", "", gin.H{"name": "X", "email": "bad", "password": "1"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid fields", s.decode(w)["error"])

	token := s.login("new@example.com", "secret1")
	w = s.do(http.MethodGet, "/api/me", token, nil)
	s.Equal(http.StatusOK, w.Code)
	profile := s.decode(w)["data"].(map[string]interface{})
	s.Equal("new@example.com", profile["email"])
	s.Equal("USER", profile["role"])
	s.NotContains(w.Body.String(), "password")

	w = s.do(http.MethodPost, "/api/login", "", gin.H{"email": "new@example.com", "password": "wrong"})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterSuite) TestMeRequiresSession() {
	w := s.do(http.MethodGet, "/api/me", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Unauthorized", s.decode(w)["error"])
}

func (s *RouterSuite) TestCatalogue() {
	w := s.do(http.MethodGet, "/api/categories", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	categories := s.decode(w)["data"].([]interface{})
	s.Len(categories, 4)
	first := categories[0].(map[string]interface{})
	s.Equal("Burgers", first["name"])
	s.EqualValues(3, first["menu_item_count"])

	w = s.do(http.MethodGet, "/api/menu", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["data"].([]interface{}), 10)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/categories/%d/menu", s.categoryID("Drinks")), "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["data"].([]interface{}), 2)
}

func (s *RouterSuite) TestOrderFlow() {
	userToken := s.login("user@foodiego.com", "user123")
	adminToken := s.login("admin@foodiego.com", "admin123")

	w := s.do(http.MethodPost, "/api/orders", "", s.orderPayload())
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/orders", userToken, s.orderPayload())
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	created := s.decode(w)
	s.Equal("Order created successfully", created["success"])
	order := created["order"].(map[string]interface{})
	s.Equal(21.97, order["total_amount"])
	orderID := uint(order["id"].(float64))

	w = s.do(http.MethodGet, "/api/orders", userToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["data"].([]interface{}), 1)

	w = s.do(http.MethodGet, "/api/admin/orders", userToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	statusPath := fmt.Sprintf("/api/admin/orders/%d/status", orderID)
	w = s.do(http.MethodPatch, statusPath, adminToken, gin.H{"status": "EATEN"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid fields", s.decode(w)["error"])

	w = s.do(http.MethodPatch, statusPath, adminToken, gin.H{"status": "CONFIRMED"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("Order status updated successfully", s.decode(w)["success"])

	w = s.do(http.MethodGet, "/api/admin/orders", adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	orders := s.decode(w)["data"].([]interface{})
	s.Require().Len(orders, 1)
	s.Equal("CONFIRMED", orders[0].(map[string]interface{})["status"])

	w = s.do(http.MethodGet, "/api/admin/stats", adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	stats := s.decode(w)["data"].(map[string]interface{})
	s.EqualValues(1, stats["total_orders"])
	s.EqualValues(0, stats["pending_orders"])
	s.EqualValues(2, stats["total_users"])
	s.Equal(21.97, stats["total_revenue"])

	s.Equal([]string{"order.created", "order.status_updated"}, s.publisher.Keys())
}

func (s *RouterSuite) TestReceipt() {
	userToken := s.login("user@foodiego.com", "user123")
	w := s.do(http.MethodPost, "/api/orders", userToken, s.orderPayload())
	s.Require().Equal(http.StatusCreated, w.Code)
	orderID := uint(s.decode(w)["order"].(map[string]interface{})["id"].(float64))

	path := fmt.Sprintf("/api/orders/%d/receipt", orderID)
	w = s.do(http.MethodGet, path, userToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("application/pdf", w.Header().Get("Content-Type"))
	s.True(bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	testutil.CreateUser(s.T(), s.db, models.RoleUser, "stranger@example.com")
	strangerToken := s.login("stranger@example.com", testutil.Password)
	s.Equal(http.StatusForbidden, s.do(http.MethodGet, path, strangerToken, nil).Code)

	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/api/orders/9999/receipt", userToken, nil).Code)
}

func (s *RouterSuite) TestAdminCatalogueMutationsRevalidatePages() {
	adminToken := s.login("admin@foodiego.com", "admin123")
	userToken := s.login("user@foodiego.com", "user123")

	s.Equal("MISS", s.do(http.MethodGet, "/api/categories", "", nil).Header().Get("X-Cache"))
	s.Equal("HIT", s.do(http.MethodGet, "/api/categories", "", nil).Header().Get("X-Cache"))

	w := s.do(http.MethodPost, "/api/admin/categories", userToken, gin.H{"name": "Salads"})
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("HIT", s.do(http.MethodGet, "/api/categories", "", nil).Header().Get("X-Cache"))

	w = s.do(http.MethodPost, "/api/admin/categories", adminToken, gin.H{"name": "Salads"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/categories", "", nil)
	s.Equal("MISS", w.Header().Get("X-Cache"))
	s.Len(s.decode(w)["data"].([]interface{}), 5)

	burgers := s.categoryID("Burgers")
	w = s.do(http.MethodDelete, fmt.Sprintf("/api/admin/categories/%d", burgers), adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("Category deleted successfully", s.decode(w)["success"])

	w = s.do(http.MethodGet, "/api/menu", "", nil)
	s.Len(s.decode(w)["data"].([]interface{}), 7)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/admin/categories/%d", burgers), adminToken, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/admin/menu", adminToken, gin.H{
		"name": "Caesar Salad", "price": 7.5, "category_id": s.categoryID("Salads"),
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	item := s.menuItemID("Caesar Salad")
	w = s.do(http.MethodPut, fmt.Sprintf("/api/admin/menu/%d", item), adminToken, gin.H{
		"name": "Caesar Salad", "price": 8, "category_id": s.categoryID("Salads"), "available": false,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/admin/menu/%d", item), adminToken, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, "/api/admin/menu/abc", adminToken, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) categoryCount(w *httptest.ResponseRecorder, name string) float64 {
	for _, raw := range s.decode(w)["data"].([]interface{}) {
		category := raw.(map[string]interface{})
		if category["name"] == name {
			return category["menu_item_count"].(float64)
		}
	}
	s.FailNow("category not listed", name)
	return 0
}

func (s *RouterSuite) TestMenuMutationsRefreshCategoryListing() {
	adminToken := s.login("admin@foodiego.com", "admin123")
	burgers := s.categoryID("Burgers")

	w := s.do(http.MethodGet, "/api/categories", "", nil)
	s.Equal("MISS", w.Header().Get("X-Cache"))
	before := s.categoryCount(w, "Burgers")
	s.Equal("HIT", s.do(http.MethodGet, "/api/categories", "", nil).Header().Get("X-Cache"))

	w = s.do(http.MethodPost, "/api/admin/menu", adminToken, gin.H{
		"name": "Double Burger", "price": 11.5, "category_id": burgers,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/categories", "", nil)
	s.Equal("MISS", w.Header().Get("X-Cache"))
	s.Equal(before+1, s.categoryCount(w, "Burgers"))

	// Renaming a category refreshes the menu listings that embed it.
	s.Equal("MISS", s.do(http.MethodGet, "/api/menu", "", nil).Header().Get("X-Cache"))
	byCategory := fmt.Sprintf("/api/categories/%d/menu", burgers)
	s.Equal("MISS", s.do(http.MethodGet, byCategory, "", nil).Header().Get("X-Cache"))

	w = s.do(http.MethodPut, fmt.Sprintf("/api/admin/categories/%d", burgers), adminToken, gin.H{"name": "Burgers and Sandwiches"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/menu", "", nil)
	s.Equal("MISS", w.Header().Get("X-Cache"))
	s.Contains(w.Body.String(), "Burgers and Sandwiches")
	s.Equal("MISS", s.do(http.MethodGet, byCategory, "", nil).Header().Get("X-Cache"))
}

func (s *RouterSuite) TestPaymentIntent() {
	userToken := s.login("user@foodiego.com", "user123")

	w := s.do(http.MethodPost, "/api/create-payment-intent", "", gin.H{"amount": 10})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Unauthorized", s.decode(w)["error"])

	w = s.do(http.MethodPost, "/api/create-payment-intent", userToken, gin.H{"amount": 0})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid amount", s.decode(w)["error"])

	w = s.do(http.MethodPost, "/api/create-payment-intent", userToken, gin.H{"amount": 21.97, "order_id": "1"})
	s.Require().Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal(services.DemoClientSecret, body["clientSecret"])
	s.Equal(true, body["demo"])
}

func (s *RouterSuite) upload(token, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		s.Require().NoError(err)
		_, err = part.Write(content)
		s.Require().NoError(err)
	}
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) TestUpload() {
	adminToken := s.login("admin@foodiego.com", "admin123")
	userToken := s.login("user@foodiego.com", "user123")
	png := []byte("\x89PNG\r\n\x1a\nfake")

	s.Equal(http.StatusForbidden, s.upload(userToken, "a.png", "image/png", png).Code)

	w := s.upload(adminToken, "", "", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("No file uploaded", s.decode(w)["error"])

	w = s.upload(adminToken, "notes.txt", "text/plain", []byte("hi"))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("File must be an image", s.decode(w)["error"])

	w = s.upload(adminToken, "my burger.png", "image/png", png)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	url := s.decode(w)["url"].(string)
	s.Regexp(`^/uploads/\d+-my-burger\.png$`, url)

	stored, err := os.ReadFile(filepath.Join(s.uploadDir, filepath.Base(url)))
	s.Require().NoError(err)
	s.Equal(png, stored)

	w = s.do(http.MethodGet, url, "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodGet, "/uploads/secret.txt", "", nil).Code)
}
