package report_utilization

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OrgID <= 0 {
		return fmt.Errorf("%w: orgID must be positive", ErrInvalidInput)
	}

	if req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	if req.ResourceID != nil && *req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: end date before start date", ErrInvalidInput)
	}

	if req.EndDate.Sub(req.StartDate).Hours() > 24*MaxReportRangeDays {
		return fmt.Errorf("%w: report range exceeds %d days", ErrInvalidInput, MaxReportRangeDays)
	}

	return nil
}
