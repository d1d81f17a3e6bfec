package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tasksheet/tasksheet-cli/internal/board"
	"github.com/tasksheet/tasksheet-cli/internal/export"
	"github.com/tasksheet/tasksheet-cli/internal/history"
	"github.com/tasksheet/tasksheet-cli/internal/model"
	"github.com/tasksheet/tasksheet-cli/internal/util"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGetTasks(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.Tasks())
}

func (s *Server) handleReplaceTasks(c *gin.Context) {
	var collection model.TaskCollection
	if err := c.ShouldBindJSON(&collection); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.svc.ReplaceAll(c.Request.Context(), collection); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.svc.Tasks())
}

type addTaskRequest struct {
	Column string `json:"column"`
	Title  string `json:"title" binding:"required"`
	Tag    string `json:"tag"`
}

func (s *Server) handleAddTask(c *gin.Context) {
	var req addTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, ok := s.svc.AddTask(c.Request.Context(), req.Column, req.Title, req.Tag)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task title must not be empty"})
		return
	}
	c.JSON(http.StatusCreated, task)
}

type moveTaskRequest struct {
	Source string `json:"source" binding:"required"`
	Target string `json:"target" binding:"required"`
}

func (s *Server) handleMoveTask(c *gin.Context) {
	var req moveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := s.svc.MoveTask(c.Request.Context(), c.Param("id"), req.Source, req.Target)
	if errors.Is(err, board.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.svc.Tasks())
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.svc.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleCompleteTask(c *gin.Context) {
	s.taskMutation(c, s.svc.CompleteTask)
}

func (s *Server) handleReopenTask(c *gin.Context) {
	s.taskMutation(c, s.svc.ReopenTask)
}

func (s *Server) taskMutation(c *gin.Context, mutate func(ctx context.Context, taskID string) error) {
	err := mutate(c.Request.Context(), c.Param("id"))
	if errors.Is(err, board.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.svc.Tasks())
}

func (s *Server) handleStartTimer(c *gin.Context) {
	task, err := s.svc.StartTimer(c.Request.Context(), c.Param("id"))
	if errors.Is(err, board.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handlePauseTimer(c *gin.Context) {
	task, err := s.svc.PauseTimer(c.Request.Context(), c.Param("id"))
	if errors.Is(err, board.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleGetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, s.svc.History())
}

func (s *Server) handleGetSnapshot(c *gin.Context) {
	dateKey := c.Param("date")
	if _, err := util.ParseDateKey(dateKey); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid date %q", dateKey)})
		return
	}
	c.JSON(http.StatusOK, history.SnapshotFor(s.svc.History(), dateKey))
}

func (s *Server) handleDashboard(c *gin.Context) {
	snapshots := s.svc.History()
	current, longest := history.CalculateStreaks(snapshots)
	tagStats := history.CalculateTagStats(snapshots)
	timeStats := history.CalculateTimeStats(snapshots)

	c.JSON(http.StatusOK, gin.H{
		"currentStreak":   current,
		"longestStreak":   longest,
		"weekCompletion":  history.CurrentWeekCompletion(snapshots, time.Now()),
		"completionByDay": history.CompletionByDay(snapshots),
		"tagChart":        history.TagChartData(tagStats),
		"timeChart":       history.TimeChartData(timeStats),
	})
}

func (s *Server) handleExport(c *gin.Context) {
	snapshots := s.svc.History()

	var content string
	kind := c.Param("kind")
	switch kind {
	case "completion":
		content = export.CompletionCSV(history.CompletionByDay(snapshots))
		kind = export.KindCompletion
	case "tags":
		content = export.TagDistributionCSV(history.TagChartData(history.CalculateTagStats(snapshots)))
		kind = export.KindTags
	case "time":
		content = export.TimeTrackingCSV(history.CalculateTimeStats(snapshots))
		kind = export.KindTime
	case "history":
		content = export.TaskHistoryCSV(snapshots)
		kind = export.KindHistory
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown report kind %q", kind)})
		return
	}

	filename := export.Filename(kind, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", []byte(content))
}
