package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestAddStageSendsRoleHeader(t *testing.T) {
	var gotRole string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole = r.Header.Get("X-Actor-Role")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"pr-1","status":"Farm"}`)
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "", "farmer")
	p, err := c.AddStage(context.Background(), "pr-1", &AddStageRequest{
		Stage: "Farm", Location: "FieldA", Handler: "Alice",
	})
	if err != nil {
		t.Fatalf("AddStage: %v", err)
	}
	if gotRole != "farmer" {
		t.Errorf("role header = %q, want farmer", gotRole)
	}
	if p.Status != "Farm" {
		t.Errorf("status = %q", p.Status)
	}
}

func TestListProductsQueryEncoding(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"products":[],"total":0}`)
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "", "")
	_, err := c.ListProducts(context.Background(), &ListProductsRequest{
		Status: "Farm",
		Limit:  5,
		Offset: 10,
	})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	for _, want := range []string{"status=Farm", "limit=5", "offset=10"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error":"role \"processor\" is not authorized to add stage \"Warehouse\""}`)
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "", "processor")
	_, err := c.AddStage(context.Background(), "pr-1", &AddStageRequest{
		Stage: "Warehouse", Location: "DC-9", Handler: "Bob",
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", apiErr.StatusCode)
	}
}

func TestAuthHeader(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `{"status":"ok"}`)
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "secret", "")
	if _, err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestStreamProductsSkipsHeartbeats(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		fmt.Fprint(w, "data:{\"type\":\"connected\"}\n\n")
		fmt.Fprint(w, ":heartbeat\n\n")
		fmt.Fprint(w, "data:{\"id\":\"pr-1\"}\n\n")
		flusher.Flush()
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c := NewHTTPClient(ts.URL, "", "")
	ch, err := c.StreamProducts(ctx, nil)
	if err != nil {
		t.Fatalf("StreamProducts: %v", err)
	}

	var ack struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(<-ch, &ack); err != nil || ack.Type != "connected" {
		t.Fatalf("first frame = %+v, err %v", ack, err)
	}

	var frame struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(<-ch, &frame); err != nil || frame.ID != "pr-1" {
		t.Fatalf("second frame = %+v, err %v", frame, err)
	}
}
