package products

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestServer(repo Repository) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/produtos", NewHandler(NewService(repo)).RegisterProductRoutes)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeProduct(t *testing.T, rec *httptest.ResponseRecorder) Product {
	t.Helper()
	var p Product
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("Invalid body %q: %v", rec.Body.String(), err)
	}
	return p
}

func TestHandler_Lifecycle(t *testing.T) {
	for _, f := range flavors {
		t.Run(f.name, func(t *testing.T) {
			srv := newTestServer(f.newRepo())

			rec := do(t, srv, http.MethodPost, "/api/produtos", `{"nome":"Caneta","preco":2.50,"descricao":"azul"}`)
			if rec.Code != http.StatusCreated {
				t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
			}
			created := decodeProduct(t, rec)
			if created.ID == "" {
				t.Fatalf("Expected an id")
			}

			rec = do(t, srv, http.MethodGet, "/api/produtos/"+created.ID, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d", rec.Code)
			}
			if got := decodeProduct(t, rec); !got.Equal(created) {
				t.Errorf("Expected %+v, got %+v", created, got)
			}

			rec = do(t, srv, http.MethodPut, "/api/produtos/"+created.ID, `{"nome":"Caneta","preco":"3.00"}`)
			if rec.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if got := decodeProduct(t, rec); !got.Price.Equal(decimal.NewFromInt(3)) || got.Description != "" {
				t.Errorf("Unexpected product %+v", got)
			}

			rec = do(t, srv, http.MethodDelete, "/api/produtos/"+created.ID, "")
			if rec.Code != http.StatusNoContent {
				t.Fatalf("Expected 204, got %d", rec.Code)
			}

			rec = do(t, srv, http.MethodGet, "/api/produtos/"+created.ID, "")
			if rec.Code != http.StatusNotFound {
				t.Errorf("Expected 404, got %d", rec.Code)
			}

			rec = do(t, srv, http.MethodDelete, "/api/produtos/"+created.ID, "")
			if rec.Code != http.StatusNotFound {
				t.Errorf("Expected 404 on second delete, got %d", rec.Code)
			}
		})
	}
}

func TestHandler_PriceIsSerializedAsDecimalString(t *testing.T) {
	srv := newTestServer(newSerialMock())

	rec := do(t, srv, http.MethodPost, "/api/produtos", `{"nome":"Caneta","preco":0.10}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", rec.Code)
	}

	var raw map[string]any
	json.Unmarshal(rec.Body.Bytes(), &raw)
	if raw["preco"] != "0.1" {
		t.Errorf("Expected preco \"0.1\", got %v", raw["preco"])
	}
	if raw["id"] != "1" {
		t.Errorf("Expected id \"1\", got %v", raw["id"])
	}
}

func TestHandler_Create_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"nome":`},
		{"missing price", `{"nome":"Caneta"}`},
		{"zero price", `{"nome":"Caneta","preco":0}`},
		{"negative price", `{"nome":"Caneta","preco":-1.00}`},
		{"blank name", `{"nome":"  ","preco":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newSerialMock()
			rec := do(t, newTestServer(repo), http.MethodPost, "/api/produtos", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			if repo.saveCalls != 0 {
				t.Errorf("Expected no store write")
			}
		})
	}
}

func TestHandler_MalformedIDIsBadRequest(t *testing.T) {
	repo := newObjectIDMock()
	srv := newTestServer(repo)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec := do(t, srv, method, "/api/produtos/not-an-object-id", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", method, rec.Code)
		}
	}
	rec := do(t, srv, http.MethodPut, "/api/produtos/123", `{"nome":"X","preco":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("PUT: expected 400, got %d", rec.Code)
	}
	if repo.storeCalls() != 0 {
		t.Errorf("Expected no store call, got %d", repo.storeCalls())
	}
}

func TestHandler_Update_UnknownIDIsNotFound(t *testing.T) {
	srv := newTestServer(newObjectIDMock())

	rec := do(t, srv, http.MethodPut, "/api/produtos/"+primitive.NewObjectID().Hex(), `{"nome":"X","preco":1}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
}

func TestHandler_List(t *testing.T) {
	srv := newTestServer(newSerialMock())

	rec := do(t, srv, http.MethodGet, "/api/produtos", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("Expected 200 with [], got %d %q", rec.Code, rec.Body.String())
	}

	do(t, srv, http.MethodPost, "/api/produtos", `{"nome":"A","preco":1}`)
	do(t, srv, http.MethodPost, "/api/produtos", `{"nome":"B","preco":2}`)

	rec = do(t, srv, http.MethodGet, "/api/produtos", "")
	var list []Product
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("Invalid body: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("Expected 2 products, got %d", len(list))
	}
}

func TestHandler_StoreFailureIsInternalError(t *testing.T) {
	repo := newSerialMock()
	repo.findErr = errors.New("connection refused")
	srv := newTestServer(repo)

	rec := do(t, srv, http.MethodGet, "/api/produtos", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Errorf("Expected driver error to stay out of the response, got %q", rec.Body.String())
	}
}

func TestHandler_NonCanonicalSerialIDIsBadRequest(t *testing.T) {
	repo := newSerialMock()
	srv := newTestServer(repo)
	do(t, srv, http.MethodPost, "/api/produtos", `{"nome":"Caneta","preco":1}`)

	for _, id := range []string{"007", "+1", "01"} {
		rec := do(t, srv, http.MethodGet, "/api/produtos/"+id, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", id, rec.Code)
		}
	}
	if rec := do(t, srv, http.MethodGet, "/api/produtos/1", ""); rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for the canonical id, got %d", rec.Code)
	}
}

func TestHandler_Update_ThreeDecimalPlaces(t *testing.T) {
	srv := newTestServer(newSerialMock())
	do(t, srv, http.MethodPost, "/api/produtos", `{"nome":"Caneta","preco":"10.50"}`)

	rec := do(t, srv, http.MethodPut, "/api/produtos/1", `{"nome":"Caneta","preco":"10.504"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeProduct(t, rec); got.Price.String() != "10.504" {
		t.Errorf("Expected 10.504, got %s", got.Price)
	}

	rec = do(t, srv, http.MethodGet, "/api/produtos/1", "")
	if got := decodeProduct(t, rec); got.Price.String() != "10.504" {
		t.Errorf("Expected stored 10.504, got %s", got.Price)
	}
}
