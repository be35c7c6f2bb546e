package get_availability

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OrgID <= 0 {
		return fmt.Errorf("%w: orgID must be positive", ErrInvalidInput)
	}

	if req.ResourceID == nil && req.LocationID == nil {
		return fmt.Errorf("%w: either resourceID or locationID is required", ErrInvalidInput)
	}

	if req.ResourceID != nil && req.LocationID != nil {
		return fmt.Errorf("%w: resourceID and locationID are mutually exclusive", ErrInvalidInput)
	}

	if req.ResourceID != nil && *req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.LocationID != nil && *req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
