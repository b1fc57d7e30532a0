package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"dev/bravebird/ui-check-go/pkg/models"
)

// UICheckWorkflow executes a check suite in one browser session
func UICheckWorkflow(ctx workflow.Context, input models.SuiteInput) (models.SuiteResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting UI check workflow", "suite", input.Suite.Name, "runID", input.RunID)

	result := models.SuiteResult{
		RunID:        input.RunID,
		Status:       models.StatusRunning,
		CheckResults: make([]models.CheckResult, 0, len(input.Suite.Checks)),
	}

	// Register query handler for real-time progress
	err := workflow.SetQueryHandler(ctx, "getProgress", func() (models.SuiteResult, error) {
		return result, nil
	})
	if err != nil {
		logger.Error("Failed to register query handler", "error", err)
	}

	startTime := workflow.Now(ctx)

	timeout := input.Timeout
	if timeout <= 0 {
		timeout = 120
	}
	retryAttempts := input.RetryAttempts
	if retryAttempts <= 0 {
		retryAttempts = 3
	}

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Duration(timeout) * time.Second,
		HeartbeatTimeout:    30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        time.Minute,
			MaximumAttempts:        int32(retryAttempts),
			NonRetryableErrorTypes: []string{"FatalBrowserError", "InvalidSelectorError"},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	// Initialize the browser session
	var session BrowserSession
	err = workflow.ExecuteActivity(ctx, "InitializeBrowserActivity", BrowserInitInput{
		Headless: input.Headless,
	}).Get(ctx, &session)
	if err != nil {
		result.Status = models.StatusFailed
		result.ErrorMessage = "Failed to initialize browser: " + err.Error()
		return result, nil
	}

	defer func() {
		_ = workflow.ExecuteActivity(ctx, "CloseBrowserActivity", session.SessionID).Get(ctx, nil)
	}()

	// Execute each check sequentially. A failed check fails the suite but does
	// not stop the remaining checks.
	for _, check := range input.Suite.Checks {
		logger.Info("Executing check", "sequence", check.SequenceID, "type", check.Type)

		checkInput := CheckInput{
			SessionID: session.SessionID,
			TargetURL: input.Suite.TargetURL,
			Check:     check,
		}

		var checkResult models.CheckResult
		err := workflow.ExecuteActivity(ctx, "RunCheckActivity", checkInput).Get(ctx, &checkResult)
		if err != nil {
			checkResult = models.CheckResult{
				SequenceID:   check.SequenceID,
				Type:         check.Type,
				Status:       models.StatusFailed,
				ErrorMessage: err.Error(),
			}
		}

		if checkResult.Failed() {
			result.Status = models.StatusFailed

			// Capture the page as it looked when the check failed
			var screenshotPath string
			_ = workflow.ExecuteActivity(ctx, "TakeScreenshotActivity", ScreenshotInput{
				SessionID: session.SessionID,
				Filename:  fmt.Sprintf("%s_check_%d_failure.png", input.RunID, check.SequenceID),
			}).Get(ctx, &screenshotPath)
			checkResult.ScreenshotPath = screenshotPath
		}

		result.CheckResults = append(result.CheckResults, checkResult)
	}

	result.TotalDuration = workflow.Now(ctx).Sub(startTime).Milliseconds()

	if result.Status != models.StatusFailed {
		result.Status = models.StatusPassed
	}

	if err := workflow.ExecuteActivity(ctx, "RecordResultsActivity", result).Get(ctx, nil); err != nil {
		logger.Warn("Failed to record run results", "error", err)
	}

	logger.Info("UI check workflow completed", "status", result.Status, "duration", result.TotalDuration)
	return result, nil
}

// BrowserSession holds browser session information
type BrowserSession struct {
	SessionID string `json:"session_id"`
	PageURL   string `json:"page_url"`
}

// BrowserInitInput is the input for browser initialization
type BrowserInitInput struct {
	Headless bool `json:"headless"`
}

// CheckInput is the input for executing a single check
type CheckInput struct {
	SessionID string           `json:"session_id"`
	TargetURL string           `json:"target_url"`
	Check     models.CheckSpec `json:"check"`
}

// ScreenshotInput is the input for taking a screenshot
type ScreenshotInput struct {
	SessionID string `json:"session_id"`
	Filename  string `json:"filename"`
}
