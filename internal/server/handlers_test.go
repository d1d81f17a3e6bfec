package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tasksheet/tasksheet-cli/internal/board"
	"github.com/tasksheet/tasksheet-cli/internal/model"
	"github.com/tasksheet/tasksheet-cli/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, err := board.NewService(context.Background(), store.NewJSONStore(t.TempDir()), "local")
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return NewServer(svc, model.DefaultConfig())
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestGetTasksStartsEmpty(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/v1/tasks", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var collection model.TaskCollection
	if err := json.Unmarshal(w.Body.Bytes(), &collection); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if collection.TotalTasks() != 0 {
		t.Fatalf("expected empty board, got %d tasks", collection.TotalTasks())
	}
	for _, columnID := range model.ColumnOrder {
		if _, ok := collection[columnID]; !ok {
			t.Fatalf("expected column %q in response", columnID)
		}
	}
}

func TestAddTaskEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/tasks", gin.H{"title": "Plan sprint", "tag": "work"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var task model.Task
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("failed to decode task: %v", err)
	}
	if task.ID == "" || task.Tag != "work" {
		t.Fatalf("unexpected task %+v", task)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/tasks", gin.H{"title": "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank title, got %d", w.Code)
	}
}

func TestMoveTaskEndpoint(t *testing.T) {
	s := newTestServer(t)

	task, ok := s.svc.AddTask(context.Background(), model.ColumnToday, "Review PR", "")
	if !ok {
		t.Fatalf("seed add failed")
	}

	w := doJSON(t, s, http.MethodPost, "/api/v1/tasks/"+task.ID+"/move",
		gin.H{"source": model.ColumnToday, "target": model.ColumnPriority})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var collection model.TaskCollection
	if err := json.Unmarshal(w.Body.Bytes(), &collection); err != nil {
		t.Fatalf("failed to decode collection: %v", err)
	}
	if len(collection[model.ColumnPriority]) != 1 {
		t.Fatalf("expected task moved to priority column")
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/tasks/missing/move",
		gin.H{"source": model.ColumnToday, "target": model.ColumnPriority})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown task, got %d", w.Code)
	}
}

func TestCompleteAndDashboardEndpoints(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	task, _ := s.svc.AddTask(ctx, "", "Ship feature", "work")
	w := doJSON(t, s, http.MethodPost, "/api/v1/tasks/"+task.ID+"/complete", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/stats/dashboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var dashboard struct {
		CurrentStreak int                   `json:"currentStreak"`
		LongestStreak int                   `json:"longestStreak"`
		TagChart      []model.TagChartPoint `json:"tagChart"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &dashboard); err != nil {
		t.Fatalf("failed to decode dashboard: %v", err)
	}
	if dashboard.CurrentStreak != 1 || dashboard.LongestStreak != 1 {
		t.Fatalf("expected streak 1 after completing today, got %+v", dashboard)
	}
	if len(dashboard.TagChart) != 1 || dashboard.TagChart[0].Name != "work" {
		t.Fatalf("expected work tag in chart, got %+v", dashboard.TagChart)
	}
}

func TestSnapshotEndpointValidatesDate(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/v1/history/not-a-date", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", w.Code)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/history/2026-01-01", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with default collection, got %d", w.Code)
	}
}

func TestExportEndpoint(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	task, _ := s.svc.AddTask(ctx, "", "Ship feature", "work")
	if err := s.svc.CompleteTask(ctx, task.ID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	w := doJSON(t, s, http.MethodGet, "/api/v1/export/tags", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if disposition := w.Header().Get("Content-Disposition"); !strings.Contains(disposition, "tag-distribution-") {
		t.Fatalf("expected attachment disposition, got %q", disposition)
	}
	if !strings.HasPrefix(w.Body.String(), "tag,count\n") {
		t.Fatalf("expected CSV header, got %q", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "work,1") {
		t.Fatalf("expected work row, got %q", w.Body.String())
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/export/bogus", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown kind, got %d", w.Code)
	}
}

func TestReplaceTasksEndpoint(t *testing.T) {
	s := newTestServer(t)

	collection := model.NewTaskCollection()
	collection[model.ColumnNonNegotiables] = []model.Task{{ID: "x1", Title: "Meditate", Tag: model.DefaultTag}}

	w := doJSON(t, s, http.MethodPut, "/api/v1/tasks", collection)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	bad := map[string][]model.Task{"someday": {{ID: "x2", Title: "Nope"}}}
	w = doJSON(t, s, http.MethodPut, "/api/v1/tasks", bad)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid column, got %d", w.Code)
	}

	dup := model.NewTaskCollection()
	dup[model.ColumnToday] = []model.Task{{ID: "x1", Title: "Meditate", Tag: model.DefaultTag}}
	dup[model.ColumnPriority] = []model.Task{{ID: "x1", Title: "Meditate", Tag: model.DefaultTag}}
	w = doJSON(t, s, http.MethodPut, "/api/v1/tasks", dup)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate task id, got %d", w.Code)
	}
}
