package persist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"newsdesk/types"
)

func testArticle() types.Article {
	return types.Article{
		Title:   "Oil prices climb",
		Content: "Body",
		Summary: "Sum",
		Market:  "SA",
		Author:  types.AuthorPrimary,
	}
}

func TestGatewayCreateReturnsStoredRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}

		var received types.Article
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode article: %v", err)
		}
		if received.Published {
			t.Error("articles must arrive unpublished")
		}

		received.ID = "cms-42"
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(received)
	}))
	defer server.Close()

	stored, err := NewHTTPGateway(server.URL).Create(context.Background(), testArticle())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.ID != "cms-42" {
		t.Fatalf("expected the assigned id, got %q", stored.ID)
	}
	if stored.Title != "Oil prices climb" {
		t.Fatalf("unexpected stored title: %q", stored.Title)
	}
}

func TestGatewayCreateToleratesMalformedEcho(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("created"))
	}))
	defer server.Close()

	stored, err := NewHTTPGateway(server.URL).Create(context.Background(), testArticle())
	if err != nil {
		t.Fatalf("accepted record must not error on a bad echo, got %v", err)
	}
	if stored == nil || stored.Title != "Oil prices climb" {
		t.Fatalf("expected the original article back, got %+v", stored)
	}
}

func TestGatewayCreateRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "validation failed", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	if _, err := NewHTTPGateway(server.URL).Create(context.Background(), testArticle()); err == nil {
		t.Fatal("expected an error for a rejected article")
	}
}
