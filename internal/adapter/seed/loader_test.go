package seed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"orders":{"100-FD30":{"SOP":100,"RATING":"FD30","WRITTEN-UP":"Yes","ISSUED-TO-FACTORY":"No","FACTORY-COMPLETE":"No","DISPATCH":null,"LOGS":{}}}}`))
	}))
	defer srv.Close()

	ds, err := NewLoader(srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	order, found := ds.Orders["100-FD30"]
	if !found {
		t.Fatal("expected order 100-FD30 in fetched dataset")
	}
	if order.SOP != 100 || !bool(order.WrittenUp) {
		t.Errorf("order = %+v", order)
	}
}

func TestFetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := NewLoader(srv.URL).Fetch(context.Background()); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestFetchBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{broken`))
	}))
	defer srv.Close()

	if _, err := NewLoader(srv.URL).Fetch(context.Background()); err == nil {
		t.Error("expected error for malformed payload")
	}
}
