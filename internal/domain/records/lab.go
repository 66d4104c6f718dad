package records

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LabStatus tracks a laboratory result through its lifecycle.
type LabStatus string

const (
	LabPending   LabStatus = "pending"
	LabCompleted LabStatus = "completed"
	LabReviewed  LabStatus = "reviewed"
)

// LabValue is a single measured analyte.
type LabValue struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Unit        string `json:"unit,omitempty"`
	NormalRange string `json:"normal_range,omitempty"`
	Abnormal    bool   `json:"abnormal"`
}

// LabResult is a laboratory test attached to a patient file.
type LabResult struct {
	ID          string     `json:"id"`
	TestName    string     `json:"test_name"`
	Date        time.Time  `json:"date"`
	Status      LabStatus  `json:"status"`
	Values      []LabValue `json:"values,omitempty"`
	RequestedBy string     `json:"requested_by"`
	ReviewedBy  string     `json:"reviewed_by,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// NewLabResult creates a pending lab request.
func NewLabResult(now time.Time, testName, requestedBy string) (LabResult, error) {
	if testName == "" {
		return LabResult{}, fmt.Errorf("test name is required")
	}
	if requestedBy == "" {
		return LabResult{}, fmt.Errorf("requesting doctor is required")
	}
	return LabResult{
		ID:          uuid.New().String(),
		TestName:    testName,
		Date:        now,
		Status:      LabPending,
		RequestedBy: requestedBy,
	}, nil
}

// Complete attaches measured values to a pending result and returns the
// completed copy.
func (r LabResult) Complete(values []LabValue) (LabResult, error) {
	if r.Status != LabPending {
		return LabResult{}, fmt.Errorf("lab result %s is %s, only pending results can be completed", r.ID, r.Status)
	}
	if len(values) == 0 {
		return LabResult{}, fmt.Errorf("completing a lab result requires at least one value")
	}
	r.Values = values
	r.Status = LabCompleted
	return r, nil
}

// Review marks a completed result as reviewed by the given doctor.
func (r LabResult) Review(reviewedBy string) (LabResult, error) {
	if r.Status != LabCompleted {
		return LabResult{}, fmt.Errorf("lab result %s is %s, only completed results can be reviewed", r.ID, r.Status)
	}
	if reviewedBy == "" {
		return LabResult{}, fmt.Errorf("reviewing doctor is required")
	}
	r.Status = LabReviewed
	r.ReviewedBy = reviewedBy
	return r, nil
}

// HasAbnormalValues reports whether any measured value is flagged abnormal.
func (r LabResult) HasAbnormalValues() bool {
	for _, v := range r.Values {
		if v.Abnormal {
			return true
		}
	}
	return false
}
