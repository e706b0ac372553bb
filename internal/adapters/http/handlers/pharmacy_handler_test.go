package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newRegionsApp() *fiber.App {
	handler := NewPharmacyHandler(nil)

	app := fiber.New()
	app.Get("/api/regions/wilayas", handler.Wilayas)
	app.Get("/api/regions/wilayas/:wilaya/communes", handler.Communes)
	return app
}

func TestRegionsEndpoints(t *testing.T) {
	app := newRegionsApp()

	t.Run("lists the wilayas", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/regions/wilayas", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		var body struct {
			Success bool `json:"success"`
			Data    struct {
				Wilayas []string `json:"wilayas"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if !body.Success {
			t.Error("success = false")
		}
		if len(body.Data.Wilayas) != 8 || body.Data.Wilayas[0] != "Alger" {
			t.Errorf("wilayas = %v", body.Data.Wilayas)
		}
	})

	t.Run("lists the communes with the default selection", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/regions/wilayas/Alger/communes", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		var body struct {
			Data struct {
				Wilaya         string   `json:"wilaya"`
				Communes       []string `json:"communes"`
				DefaultCommune string   `json:"default_commune"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if body.Data.DefaultCommune != "Alger Centre" {
			t.Errorf("default commune = %q, want Alger Centre", body.Data.DefaultCommune)
		}
		if len(body.Data.Communes) != 5 {
			t.Errorf("communes = %v", body.Data.Communes)
		}
	})

	t.Run("decodes accented wilaya names", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/regions/wilayas/"+url.PathEscape("Sétif")+"/communes", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		var body struct {
			Data struct {
				Wilaya         string   `json:"wilaya"`
				Communes       []string `json:"communes"`
				DefaultCommune string   `json:"default_commune"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if body.Data.Wilaya != "Sétif" {
			t.Errorf("wilaya = %q, want Sétif", body.Data.Wilaya)
		}
		// No enumerated communes for Sétif, so the list is empty and the
		// default selection stays cleared
		if len(body.Data.Communes) != 0 || body.Data.DefaultCommune != "" {
			t.Errorf("communes = %v, default = %q", body.Data.Communes, body.Data.DefaultCommune)
		}
	})
}
