package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRegister_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/api/auth/register" {
			t.Errorf("Expected register path, got %s", r.URL.Path)
		}

		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("Failed to decode register payload: %v", err)
		}
		if !strings.HasPrefix(payload["username"], "simtech") {
			t.Errorf("Unexpected username: %s", payload["username"])
		}
		if payload["password"] == "" {
			t.Error("Expected a password in register payload")
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"token": "test-token"})
	}))
	defer server.Close()

	authToken = ""
	if err := register(server.URL); err != nil {
		t.Fatalf("Expected register to succeed, got error: %v", err)
	}
	if authToken != "test-token" {
		t.Errorf("Expected token to be captured, got %q", authToken)
	}
}

func TestRegister_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`Username already exists`))
	}))
	defer server.Close()

	authToken = ""
	if err := register(server.URL); err == nil {
		t.Error("Expected error for conflicting registration, got nil")
	}
}

func TestCreateService_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/services" {
			t.Errorf("Expected services path, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Expected bearer token header, got %s", r.Header.Get("Authorization"))
		}

		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("Failed to decode create payload: %v", err)
		}
		if payload["client_name"] == "" {
			t.Error("Expected client_name in create payload")
		}
		if payload["maintenance_type"] == "" {
			t.Error("Expected maintenance_type in create payload")
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"id":            "abc123",
			"tracking_code": "AB12CD34",
		})
	}))
	defer server.Close()

	authToken = "test-token"
	id, code, err := createService(server.URL)
	if err != nil {
		t.Fatalf("Expected create to succeed, got error: %v", err)
	}
	if id != "abc123" {
		t.Errorf("Expected id abc123, got %s", id)
	}
	if code != "AB12CD34" {
		t.Errorf("Expected tracking code AB12CD34, got %s", code)
	}
}

func TestCreateService_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`client_name is required`))
	}))
	defer server.Close()

	authToken = "test-token"
	if _, _, err := createService(server.URL); err == nil {
		t.Error("Expected error for rejected creation, got nil")
	}
}

func TestTransition(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"message": "Cambiado a Diagnóstico"})
	}))
	defer server.Close()

	authToken = "test-token"
	if err := transition(server.URL, "abc123", "start"); err != nil {
		t.Fatalf("Expected transition to succeed, got error: %v", err)
	}
	if gotPath != "/api/services/abc123/start" {
		t.Errorf("Unexpected transition path: %s", gotPath)
	}
}

func TestTransition_Conflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`Service already completed`))
	}))
	defer server.Close()

	authToken = "test-token"
	err := transition(server.URL, "abc123", "advance")
	if err == nil {
		t.Error("Expected error for conflicting transition, got nil")
	}
	if !strings.Contains(err.Error(), "advance failed") {
		t.Errorf("Expected action name in error, got: %v", err)
	}
}

func TestTrack_Found(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/track/AB12CD34" {
			t.Errorf("Expected track path, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("Tracking lookup should not carry an auth header")
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"found":    true,
			"progress": 40,
			"record":   map[string]string{"current_status": "cleaning"},
		})
	}))
	defer server.Close()

	status, progress, err := track(server.URL, "AB12CD34")
	if err != nil {
		t.Fatalf("Expected track to succeed, got error: %v", err)
	}
	if status != "cleaning" {
		t.Errorf("Expected status cleaning, got %s", status)
	}
	if progress != 40 {
		t.Errorf("Expected progress 40, got %d", progress)
	}
}

func TestTrack_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"found":   false,
			"message": "No se encontró ningún servicio con ese código",
		})
	}))
	defer server.Close()

	if _, _, err := track(server.URL, "ZZZZZZZZ"); err == nil {
		t.Error("Expected error for unknown tracking code, got nil")
	}
}
