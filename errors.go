package turndown

import (
	"errors"
	"fmt"

	"github.com/alnah/go-turndown/markdown"
)

// Sentinel errors for library operations.
var (
	ErrParseHTML     = errors.New("failed to parse HTML")
	ErrNilNode       = errors.New("node cannot be nil")
	ErrRuleExecution = errors.New("rule execution failed")

	// Option validation errors. Every field error is reported together
	// with ErrInvalidOptions.
	ErrInvalidOptions            = markdown.ErrInvalidOptions
	ErrInvalidHeadingStyle       = markdown.ErrInvalidHeadingStyle
	ErrInvalidHR                 = markdown.ErrInvalidHR
	ErrInvalidBulletMarker       = markdown.ErrInvalidBulletMarker
	ErrInvalidCodeBlockStyle     = markdown.ErrInvalidCodeBlockStyle
	ErrInvalidFence              = markdown.ErrInvalidFence
	ErrInvalidEmDelimiter        = markdown.ErrInvalidEmDelimiter
	ErrInvalidStrongDelimiter    = markdown.ErrInvalidStrongDelimiter
	ErrInvalidLinkStyle          = markdown.ErrInvalidLinkStyle
	ErrInvalidLinkReferenceStyle = markdown.ErrInvalidLinkReferenceStyle
	ErrInvalidLineBreak          = markdown.ErrInvalidLineBreak
)

// RuleError reports a custom rule whose replacement failed or panicked.
// errors.Is(err, ErrRuleExecution) holds for every RuleError.
type RuleError struct {
	Rule string // rule name
	Tag  string // tag of the matched element
	Err  error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%v: rule %q on <%s>: %v", ErrRuleExecution, e.Rule, e.Tag, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// Is makes RuleError match ErrRuleExecution.
func (e *RuleError) Is(target error) bool {
	return target == ErrRuleExecution
}
