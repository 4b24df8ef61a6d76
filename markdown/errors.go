package markdown

import "errors"

// Sentinel errors for option validation.
// Every field error is reported together with ErrInvalidOptions.
var (
	ErrInvalidOptions            = errors.New("invalid options")
	ErrInvalidHeadingStyle       = errors.New("invalid heading style")
	ErrInvalidHR                 = errors.New("invalid horizontal rule")
	ErrInvalidBulletMarker       = errors.New("invalid bullet list marker")
	ErrInvalidCodeBlockStyle     = errors.New("invalid code block style")
	ErrInvalidFence              = errors.New("invalid fence")
	ErrInvalidEmDelimiter        = errors.New("invalid emphasis delimiter")
	ErrInvalidStrongDelimiter    = errors.New("invalid strong delimiter")
	ErrInvalidLinkStyle          = errors.New("invalid link style")
	ErrInvalidLinkReferenceStyle = errors.New("invalid link reference style")
	ErrInvalidLineBreak          = errors.New("invalid line break")
)
