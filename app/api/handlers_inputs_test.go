package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/daycast/daycast/app/database"
	"github.com/gin-gonic/gin"
)

type fakeInputRepo struct {
	database.InputItemRepository
	created *database.InputItem
}

func (f *fakeInputRepo) Create(item *database.InputItem) error {
	item.ID = "item-1"
	f.created = item
	return nil
}

func inputsTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/inputs", h.CreateInputItem)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateInputItem_RejectsImportanceOutOfRange(t *testing.T) {
	r := inputsTestRouter(&Handler{})

	for _, body := range []string{
		`{"date": "2026-08-28", "type": "text", "content": "note", "importance": 999}`,
		`{"date": "2026-08-28", "type": "text", "content": "note", "importance": 0}`,
	} {
		w := postJSON(r, "/inputs", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for %s, got %d", body, w.Code)
		}
	}
}

func TestCreateInputItem_RejectsOversizedContent(t *testing.T) {
	r := inputsTestRouter(&Handler{})

	body := `{"date": "2026-08-28", "type": "text", "content": "` + strings.Repeat("a", 4001) + `"}`
	w := postJSON(r, "/inputs", body)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for oversized content, got %d", w.Code)
	}
}

func TestCreateInputItem_AcceptsImportanceInRange(t *testing.T) {
	repo := &fakeInputRepo{}
	r := inputsTestRouter(&Handler{items: repo})

	w := postJSON(r, "/inputs", `{"date": "2026-08-28", "type": "text", "content": "note", "importance": 5}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if repo.created == nil || repo.created.Importance == nil || *repo.created.Importance != 5 {
		t.Error("Expected importance 5 to be persisted")
	}
}
