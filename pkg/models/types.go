package models

import (
	"time"
)

// ==================== Check Types ====================

// CheckType represents the kind of assertion a check performs
type CheckType string

const (
	CheckNavigate      CheckType = "navigate"       // Open the target URL
	CheckToggleClass   CheckType = "toggle_class"   // Click a control, assert a body class appeared/disappeared
	CheckReloadPersist CheckType = "reload_persist" // Reload, assert body class state survives
	CheckViewportWidth CheckType = "viewport_width" // Resize viewport, assert element width > 0
)

// CheckSpec describes a single check within a suite
type CheckSpec struct {
	SequenceID  int       `json:"sequence_id" yaml:"sequence_id"`
	Type        CheckType `json:"type" yaml:"type"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`

	// Selector of the element to click or measure (CSS)
	Selector string `json:"selector,omitempty" yaml:"selector,omitempty"`

	// Class asserted on document.body after the action
	Class string `json:"class,omitempty" yaml:"class,omitempty"`

	// ExpectPresent controls the direction of the class assertion
	ExpectPresent bool `json:"expect_present" yaml:"expect_present"`

	// Viewport used by viewport_width checks
	Viewport *Viewport `json:"viewport,omitempty" yaml:"viewport,omitempty"`
}

// Viewport is a device metrics override for responsive checks
type Viewport struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// CheckSuite is an ordered list of checks executed against one page session
type CheckSuite struct {
	Name      string      `json:"name" yaml:"name"`
	TargetURL string      `json:"target_url" yaml:"target_url"`
	Checks    []CheckSpec `json:"checks" yaml:"checks"`
}

// ==================== Run Types ====================

// RunStatus represents the status of a suite run or a single check
type RunStatus string

const (
	StatusPending  RunStatus = "pending"
	StatusRunning  RunStatus = "running"
	StatusPassed   RunStatus = "passed"
	StatusFailed   RunStatus = "failed"
	StatusCanceled RunStatus = "canceled"
)

// SuiteRun represents a single execution of a check suite
type SuiteRun struct {
	ID                 string     `json:"id" db:"id"`
	SuiteName          string     `json:"suite_name" db:"suite_name"`
	TargetURL          string     `json:"target_url" db:"target_url"`
	TemporalRunID      string     `json:"temporal_run_id" db:"temporal_run_id"`
	TemporalWorkflowID string     `json:"temporal_workflow_id" db:"temporal_workflow_id"`
	Status             RunStatus  `json:"status" db:"status"`
	StartedAt          *time.Time `json:"started_at" db:"started_at"`
	CompletedAt        *time.Time `json:"completed_at" db:"completed_at"`
	ErrorMessage       string     `json:"error_message,omitempty" db:"error_message"`

	// Computed, not stored directly
	CheckResults []CheckResult `json:"check_results,omitempty"`
}

// CheckResult represents the outcome of executing a single check
type CheckResult struct {
	ID             string     `json:"id" db:"id"`
	RunID          string     `json:"run_id" db:"run_id"`
	SequenceID     int        `json:"sequence_id" db:"sequence_id"`
	Type           CheckType  `json:"type" db:"check_type"`
	Status         RunStatus  `json:"status" db:"status"`
	Observed       string     `json:"observed,omitempty" db:"observed"`
	Expected       string     `json:"expected,omitempty" db:"expected"`
	ScreenshotPath string     `json:"screenshot_path,omitempty" db:"screenshot_path"`
	ErrorMessage   string     `json:"error_message,omitempty" db:"error_message"`
	ExecutedAt     *time.Time `json:"executed_at" db:"executed_at"`
	Duration       int64      `json:"duration_ms,omitempty" db:"duration_ms"`
}

// Failed reports whether the result is a hard failure. A failed comparison and
// a browser error are both failures; the suite outcome must reflect either.
func (r CheckResult) Failed() bool {
	return r.Status == StatusFailed
}

// ==================== Workflow Types ====================

// SuiteInput is the input for a suite run workflow
type SuiteInput struct {
	RunID         string     `json:"run_id"`
	Suite         CheckSuite `json:"suite"`
	Headless      bool       `json:"headless"`
	Timeout       int        `json:"timeout_seconds"`
	RetryAttempts int        `json:"retry_attempts"`
}

// SuiteResult is the result of a suite run workflow
type SuiteResult struct {
	RunID         string        `json:"run_id"`
	Status        RunStatus     `json:"status"`
	CheckResults  []CheckResult `json:"check_results"`
	TotalDuration int64         `json:"total_duration_ms"`
	ErrorMessage  string        `json:"error_message,omitempty"`
}

// ==================== API Request/Response Types ====================

// ExecuteRequest represents a request to execute a suite
type ExecuteRequest struct {
	SuiteName string `json:"suite_name"`
	TargetURL string `json:"target_url,omitempty"`
	Headless  bool   `json:"headless"`
}

// ==================== WebSocket Message Types ====================

// WSMessage represents a WebSocket message for real-time updates
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// CheckStatusUpdate represents a status update for a single check
type CheckStatusUpdate struct {
	RunID      string    `json:"run_id"`
	SequenceID int       `json:"sequence_id"`
	Status     RunStatus `json:"status"`
	Message    string    `json:"message,omitempty"`
}
