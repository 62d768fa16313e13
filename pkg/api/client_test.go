package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateUser_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/create-user" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["rollNumber"] != "21BCE100" || body["name"] != "Alice" {
			t.Errorf("unexpected body: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Welcome aboard"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	msg, err := client.CreateUser(context.Background(), "21BCE100", "Alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if msg != "Welcome aboard" {
		t.Fatalf("message = %q", msg)
	}
}

func TestCreateUser_DefaultMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	msg, err := client.CreateUser(context.Background(), "21BCE100", "Alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if msg != DefaultUserCreatedMessage {
		t.Fatalf("message = %q", msg)
	}
}

func TestCreateUser_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "User already exists"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.CreateUser(context.Background(), "21BCE100", "Alice")

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %T: %v", err, err)
	}
	if !authErr.Rejected {
		t.Fatal("expected a server rejection, not a transport failure")
	}
	if authErr.Message != "User already exists" {
		t.Fatalf("message = %q", authErr.Message)
	}
}

func TestCreateUser_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL)
	_, err := client.CreateUser(context.Background(), "21BCE100", "Alice")

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %T: %v", err, err)
	}
	if authErr.Rejected {
		t.Fatal("transport failure flagged as rejection")
	}
	if authErr.Message != GenericRetryMessage {
		t.Fatalf("message = %q", authErr.Message)
	}
	if authErr.Unwrap() == nil {
		t.Fatal("transport cause not wrapped")
	}
}

func TestGetForm_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/get-form" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("rollNumber"); got != "21BCE100" {
			t.Errorf("rollNumber = %q", got)
		}
		_, _ = w.Write([]byte(`{"form": {"formTitle": "T", "sections": [
			{"sectionId": "s1", "title": "One", "fields": [
				{"fieldId": "name", "type": "text", "label": "Name", "required": true}
			]}
		]}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	form, err := client.GetForm(context.Background(), "21BCE100")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	if form.FormTitle != "T" || len(form.Sections) != 1 {
		t.Fatalf("unexpected form: %+v", form)
	}
}

func TestGetForm_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetForm(context.Background(), "21BCE100")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %T: %v", err, err)
	}
	if err.Error() != FormUnavailableMessage {
		t.Fatalf("user-facing message = %q", err.Error())
	}
}

func TestGetForm_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"form": "not an object"`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetForm(context.Background(), "21BCE100")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %T: %v", err, err)
	}
}
