package constraints

import "fmt"

const (
	CodeInvalidOperator = "INVALID_OPERATOR"
	CodeInvalidSize     = "INVALID_SIZE"
)

// ConstraintError reports a malformed constraint row.
type ConstraintError struct {
	Code         string
	ConstraintID int64
	Detail       string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("constraints: %s on constraint %d: %s", e.Code, e.ConstraintID, e.Detail)
}
