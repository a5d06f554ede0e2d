package apitest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	cartApi "brightlaptop.GO/api/cart"
	cartEntity "brightlaptop.GO/model/entity/cart"
	catalogEntity "brightlaptop.GO/model/entity/catalog"
	catalogRepo "brightlaptop.GO/model/repository/catalog"
)

func cartTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&catalogEntity.Product{},
		&catalogEntity.ConfigurationVariant{},
		&catalogEntity.WarrantyOption{},
		&cartEntity.Cart{},
		&cartEntity.LineItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	catalogRepo.NewCatalogRepository(db).InvalidateListings()
	return db
}

func cartServer(t *testing.T) (*echo.Echo, uint) {
	e := echo.New()
	db := cartTestDB(t)
	p := catalogEntity.Product{
		SKU: "BL-CART", Name: "ThinkPad X1 Carbon", Brand: "Lenovo",
		BasePrice: 50000, MRP: 60000, IsActive: true,
		Variants: []catalogEntity.ConfigurationVariant{
			{Kind: catalogEntity.VariantKindMemory, Value: "8GB"},
			{Kind: catalogEntity.VariantKindMemory, Value: "16GB", PriceAdjustment: 2500},
			{Kind: catalogEntity.VariantKindStorage, Value: "512GB"},
		},
		WarrantyOptions: []catalogEntity.WarrantyOption{{Duration: "2 Years", Price: 2000}},
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	cartApi.RegisterCartRoutes(e.Group("/api"), db)
	return e, p.ID
}

func cartDo(t *testing.T, e *echo.Echo, method, url string, body interface{}) (int, map[string]interface{}) {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", "test-session")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var resp map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return rec.Code, resp
}

func cartItems(t *testing.T, resp map[string]interface{}) []map[string]interface{} {
	cart, ok := resp["cart"].(map[string]interface{})
	if !ok {
		t.Fatalf("cart missing: %v", resp)
	}
	raw, _ := cart["items"].([]interface{})
	items := make([]map[string]interface{}, 0, len(raw))
	for _, it := range raw {
		items = append(items, it.(map[string]interface{}))
	}
	return items
}

func TestCartAPI_EmptyCart(t *testing.T) {
	e, _ := cartServer(t)
	code, resp := cartDo(t, e, http.MethodGet, "/api/cart", nil)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	totals := resp["totals"].(map[string]interface{})
	if totals["total"].(float64) != 0 || totals["itemCount"].(float64) != 0 {
		t.Errorf("totals = %v, want zeros", totals)
	}
}

func TestCartAPI_AddRequiresConfiguration(t *testing.T) {
	e, pid := cartServer(t)
	code, _ := cartDo(t, e, http.MethodPost, "/api/cart/items", map[string]interface{}{
		"productId": pid, "quantity": 1,
	})
	if code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422 (no selection)", code)
	}
}

func TestCartAPI_AddUnknownProduct(t *testing.T) {
	e, _ := cartServer(t)
	code, _ := cartDo(t, e, http.MethodPost, "/api/cart/items", map[string]interface{}{
		"productId": 99999, "quantity": 1, "selectedMemory": "8GB", "selectedStorage": "512GB",
	})
	if code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}

func TestCartAPI_AddUpdateRemoveFlow(t *testing.T) {
	e, pid := cartServer(t)

	code, resp := cartDo(t, e, http.MethodPost, "/api/cart/items", map[string]interface{}{
		"productId": pid, "quantity": 2,
		"selectedMemory": "16GB", "selectedStorage": "512GB", "selectedWarranty": "2 Years",
	})
	if code != http.StatusCreated {
		t.Fatalf("add status = %d, want 201 (%v)", code, resp)
	}
	items := cartItems(t, resp)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0]["unitPrice"].(float64) != 54500 {
		t.Errorf("unitPrice = %v, want 54500", items[0]["unitPrice"])
	}
	if items[0]["tier"] != "retail" {
		t.Errorf("tier = %v, want retail", items[0]["tier"])
	}
	totals := resp["totals"].(map[string]interface{})
	if totals["total"].(float64) != 109000 {
		t.Errorf("total = %v, want 109000", totals["total"])
	}
	// Savings measured against the 60000 MRP: (60000-54500)*2
	if totals["savings"].(float64) != 11000 {
		t.Errorf("savings = %v, want 11000", totals["savings"])
	}
	if totals["subtotal"].(float64) != 120000 {
		t.Errorf("subtotal = %v, want 120000", totals["subtotal"])
	}

	// Same product + selection merges into the existing line.
	code, resp = cartDo(t, e, http.MethodPost, "/api/cart/items", map[string]interface{}{
		"productId": pid, "quantity": 1,
		"selectedMemory": "16GB", "selectedStorage": "512GB", "selectedWarranty": "2 Years",
	})
	if code != http.StatusCreated {
		t.Fatalf("merge status = %d, want 201", code)
	}
	items = cartItems(t, resp)
	if len(items) != 1 {
		t.Fatalf("after merge items = %d, want 1", len(items))
	}
	if items[0]["quantity"].(float64) != 3 {
		t.Errorf("merged quantity = %v, want 3", items[0]["quantity"])
	}

	// Quantity 10 crosses the bulk threshold; the line reprices.
	itemID := int(items[0]["id"].(float64))
	code, resp = cartDo(t, e, http.MethodPut, "/api/cart/items/"+strconv.Itoa(itemID), map[string]interface{}{
		"quantity": 10,
	})
	if code != http.StatusOK {
		t.Fatalf("update status = %d, want 200", code)
	}
	items = cartItems(t, resp)
	if items[0]["tier"] != "bulk" {
		t.Errorf("tier = %v, want bulk after crossing threshold", items[0]["tier"])
	}
	// 50000*0.85 + 2500 + 2000
	if items[0]["unitPrice"].(float64) != 47000 {
		t.Errorf("bulk unitPrice = %v, want 47000", items[0]["unitPrice"])
	}

	// And back below the threshold.
	code, resp = cartDo(t, e, http.MethodPut, "/api/cart/items/"+strconv.Itoa(itemID), map[string]interface{}{
		"quantity": 9,
	})
	if code != http.StatusOK {
		t.Fatalf("update status = %d, want 200", code)
	}
	items = cartItems(t, resp)
	if items[0]["tier"] != "retail" {
		t.Errorf("tier = %v, want retail below threshold", items[0]["tier"])
	}
	if items[0]["unitPrice"].(float64) != 54500 {
		t.Errorf("unitPrice = %v, want 54500 again", items[0]["unitPrice"])
	}

	// Remove the line.
	code, resp = cartDo(t, e, http.MethodDelete, "/api/cart/items/"+strconv.Itoa(itemID), nil)
	if code != http.StatusOK {
		t.Fatalf("remove status = %d, want 200", code)
	}
	if len(cartItems(t, resp)) != 0 {
		t.Error("item still present after remove")
	}
}

func TestCartAPI_UpdateMissingItem(t *testing.T) {
	e, _ := cartServer(t)
	code, _ := cartDo(t, e, http.MethodPut, "/api/cart/items/424242", map[string]interface{}{"quantity": 2})
	if code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}

func TestCartAPI_Clear(t *testing.T) {
	e, pid := cartServer(t)
	code, _ := cartDo(t, e, http.MethodPost, "/api/cart/items", map[string]interface{}{
		"productId": pid, "quantity": 1, "selectedMemory": "8GB", "selectedStorage": "512GB",
	})
	if code != http.StatusCreated {
		t.Fatalf("add status = %d, want 201", code)
	}
	code, resp := cartDo(t, e, http.MethodDelete, "/api/cart", nil)
	if code != http.StatusOK {
		t.Fatalf("clear status = %d, want 200", code)
	}
	if len(cartItems(t, resp)) != 0 {
		t.Error("cart not empty after clear")
	}
	totals := resp["totals"].(map[string]interface{})
	if totals["total"].(float64) != 0 {
		t.Errorf("total = %v, want 0", totals["total"])
	}
}
