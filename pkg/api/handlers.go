package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.temporal.io/sdk/client"

	"dev/bravebird/ui-check-go/pkg/database"
	"dev/bravebird/ui-check-go/pkg/models"
)

// TaskQueue is the Temporal task queue workers listen on
const TaskQueue = "ui-check"

// Handlers contains API handlers
type Handlers struct {
	db             *database.DB
	temporalClient client.Client
	suites         map[string]models.CheckSuite
	screenshotDir  string
	upgrader       websocket.Upgrader
}

// NewHandlers creates new API handlers. suites maps suite name to definition;
// db may be nil when MySQL is unavailable.
func NewHandlers(
	db *database.DB,
	temporalClient client.Client,
	suites map[string]models.CheckSuite,
	screenshotDir string,
) *Handlers {
	return &Handlers{
		db:             db,
		temporalClient: temporalClient,
		suites:         suites,
		screenshotDir:  screenshotDir,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ==================== Suite Handlers ====================

// ListSuites lists the configured check suites
func (h *Handlers) ListSuites(w http.ResponseWriter, r *http.Request) {
	suites := make([]models.CheckSuite, 0, len(h.suites))
	for _, suite := range h.suites {
		suites = append(suites, suite)
	}
	respondJSON(w, suites)
}

// GetSuite retrieves a single suite definition
func (h *Handlers) GetSuite(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	suite, ok := h.suites[vars["name"]]
	if !ok {
		http.Error(w, "Suite not found", http.StatusNotFound)
		return
	}
	respondJSON(w, suite)
}

// ==================== Run Handlers ====================

// ExecuteSuite starts a suite run as a Temporal workflow
func (h *Handlers) ExecuteSuite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	suiteName := vars["name"]

	suite, ok := h.suites[suiteName]
	if !ok {
		http.Error(w, "Suite not found", http.StatusNotFound)
		return
	}

	var req models.ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Allow pointing the suite at a different deployment of the same page
	if req.TargetURL != "" {
		suite.TargetURL = req.TargetURL
	}

	runID := uuid.New().String()
	now := time.Now()

	run := &models.SuiteRun{
		ID:        runID,
		SuiteName: suiteName,
		TargetURL: suite.TargetURL,
		Status:    models.StatusPending,
		StartedAt: &now,
	}

	if h.db != nil {
		if err := h.db.CreateSuiteRun(ctx, run); err != nil {
			http.Error(w, "Failed to create run: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	input := models.SuiteInput{
		RunID:         runID,
		Suite:         suite,
		Headless:      req.Headless,
		Timeout:       120,
		RetryAttempts: 3,
	}

	workflowOptions := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("ui-check-%s", runID),
		TaskQueue: TaskQueue,
	}

	we, err := h.temporalClient.ExecuteWorkflow(ctx, workflowOptions, "UICheckWorkflow", input)
	if err != nil {
		if h.db != nil {
			h.db.UpdateSuiteRunStatus(ctx, runID, models.StatusFailed, err.Error())
		}
		http.Error(w, "Failed to start workflow: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if h.db != nil {
		h.db.UpdateSuiteRunTemporalIDs(ctx, runID, we.GetID(), we.GetRunID())
		h.db.UpdateSuiteRunStatus(ctx, runID, models.StatusRunning, "")
	}

	respondJSON(w, map[string]interface{}{
		"run_id":               runID,
		"temporal_workflow_id": we.GetID(),
		"temporal_run_id":      we.GetRunID(),
		"status":               models.StatusRunning,
	})
}

// ListRuns lists suite runs
func (h *Handlers) ListRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.db == nil {
		http.Error(w, "Database not available", http.StatusServiceUnavailable)
		return
	}

	runs, err := h.db.ListSuiteRuns(ctx, r.URL.Query().Get("suite"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, runs)
}

// GetRun retrieves a suite run with its check results
func (h *Handlers) GetRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	id := vars["id"]

	if h.db == nil {
		http.Error(w, "Database not available", http.StatusServiceUnavailable)
		return
	}

	run, err := h.db.GetSuiteRun(ctx, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if run == nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	results, _ := h.db.GetCheckResults(ctx, id)
	run.CheckResults = results

	respondJSON(w, run)
}

// CancelRun cancels a running suite
func (h *Handlers) CancelRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	id := vars["id"]

	if h.db == nil {
		http.Error(w, "Database not available", http.StatusServiceUnavailable)
		return
	}

	run, err := h.db.GetSuiteRun(ctx, id)
	if err != nil || run == nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	if run.TemporalWorkflowID != "" {
		err = h.temporalClient.CancelWorkflow(ctx, run.TemporalWorkflowID, run.TemporalRunID)
		if err != nil {
			http.Error(w, "Failed to cancel workflow: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	h.db.UpdateSuiteRunStatus(ctx, id, models.StatusCanceled, "Cancelled by user")

	respondJSON(w, map[string]string{"status": string(models.StatusCanceled)})
}

// StreamRunUpdates streams run progress over a WebSocket. Progress comes from
// a Temporal workflow query when possible, otherwise from the database.
func (h *Handlers) StreamRunUpdates(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["id"]

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx := r.Context()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastStatus := ""
	lastCheckCount := 0

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var status models.RunStatus
			var checkResults []models.CheckResult

			if h.temporalClient != nil {
				queryResp, err := h.temporalClient.QueryWorkflow(ctx, fmt.Sprintf("ui-check-%s", runID), "", "getProgress")
				if err == nil {
					var result models.SuiteResult
					if queryResp.Get(&result) == nil {
						status = result.Status
						checkResults = result.CheckResults
					}
				}
			}

			if status == "" && h.db != nil {
				run, err := h.db.GetSuiteRun(ctx, runID)
				if err != nil || run == nil {
					continue
				}
				status = run.Status
				results, _ := h.db.GetCheckResults(ctx, runID)
				checkResults = results
			}

			if string(status) != lastStatus || len(checkResults) != lastCheckCount {
				msg := models.WSMessage{
					Type: "run_update",
					Payload: map[string]interface{}{
						"run_id":        runID,
						"status":        status,
						"check_results": checkResults,
					},
				}
				conn.WriteJSON(msg)

				lastStatus = string(status)
				lastCheckCount = len(checkResults)

				if status == models.StatusPassed || status == models.StatusFailed || status == models.StatusCanceled {
					return
				}
			}
		}
	}
}

// ==================== Screenshot Handlers ====================

// ServeScreenshot serves a screenshot file
func (h *Handlers) ServeScreenshot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	filename := vars["filename"]

	// Only files directly in the screenshot directory
	filePath := filepath.Join(h.screenshotDir, filepath.Base(filename))

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.Error(w, "Screenshot not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFile(w, r, filePath)
}

// ==================== Helpers ====================

func respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}
