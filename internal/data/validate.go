package data

import "fmt"

// ValidationError reports a fetched record that is missing a required field
// or has the wrong row count. It is raised before any state is touched.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func missingFieldError(field string) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf("Missing %q in the input data", field)}
}

// ValidateFields checks that every required key is present in record, in the
// caller-specified order, and returns a *ValidationError for the first absent
// one. Values are not inspected; presence is the contract.
func ValidateFields(record map[string]any, required []string) error {
	for _, field := range required {
		if _, ok := record[field]; !ok {
			return missingFieldError(field)
		}
	}
	return nil
}
