package extractor

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractor_Run_ExtractsMainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Post</title></head><body>
			<article><h1>Heading</h1>
			<p>This is the main body of the article with enough text for the
			readability heuristics to treat it as real content. It keeps going
			for a while to make sure extraction picks it up properly.</p>
			<p>A second paragraph adds more substance to the page so the
			extraction does not dismiss it as boilerplate.</p></article>
		</body></html>`))
	}))
	defer srv.Close()

	e := NewExtractor()
	text, errMsg := e.Run(srv.URL)

	if errMsg != "" {
		t.Fatalf("Expected no error, got %q", errMsg)
	}
	if !strings.Contains(text, "main body of the article") {
		t.Errorf("Expected article text, got: %s", text)
	}
}

func TestExtractor_Run_CapsExtractedLength(t *testing.T) {
	long := strings.Repeat("Long sentence with filler words to pad the article body. ", 200)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><article><p>" + long + "</p></article></body></html>"))
	}))
	defer srv.Close()

	e := NewExtractor()
	text, errMsg := e.Run(srv.URL)

	if errMsg != "" {
		t.Fatalf("Expected no error, got %q", errMsg)
	}
	if utf8.RuneCountInString(text) > 2000 {
		t.Errorf("Expected text capped at 2000 chars, got %d", utf8.RuneCountInString(text))
	}
}

func TestExtractor_Run_CapKeepsCyrillicValid(t *testing.T) {
	long := strings.Repeat("Длинное предложение по-русски, чтобы набрать объём статьи. ", 200)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body><article><p>" + long + "</p></article></body></html>"))
	}))
	defer srv.Close()

	e := NewExtractor()
	text, errMsg := e.Run(srv.URL)

	if errMsg != "" {
		t.Fatalf("Expected no error, got %q", errMsg)
	}
	if !utf8.ValidString(text) {
		t.Error("Expected capped text to remain valid UTF-8")
	}
	if utf8.RuneCountInString(text) > 2000 {
		t.Errorf("Expected text capped at 2000 chars, got %d", utf8.RuneCountInString(text))
	}
}

func TestExtractor_Run_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	e := NewExtractor()
	text, errMsg := e.Run(srv.URL)

	if text != "" {
		t.Errorf("Expected no text on error, got %q", text)
	}
	if !strings.Contains(errMsg, "Fetch failed") {
		t.Errorf("Expected fetch failure message, got %q", errMsg)
	}
}

func TestExtractor_Run_UnreachableHost(t *testing.T) {
	e := NewExtractor()
	text, errMsg := e.Run("http://127.0.0.1:1/nothing")

	if text != "" {
		t.Errorf("Expected no text, got %q", text)
	}
	if !strings.Contains(errMsg, "Fetch failed") {
		t.Errorf("Expected fetch failure message, got %q", errMsg)
	}
}
