package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSender indicates no From address was configured or given.
	ErrNoSender = errors.New("email must have a sender")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNoContent indicates neither HTML nor text content was provided.
	ErrNoContent = errors.New("email must have content")

	// ErrTemplateNotFound indicates the template file was not found.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrLayoutNotFound indicates the layout file was not found.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrRenderFailed indicates template rendering failed.
	ErrRenderFailed = errors.New("failed to render template")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")

	// ErrMissingConfig indicates the delivery strategy lacks required settings.
	ErrMissingConfig = errors.New("mail delivery is not configured")
)

// ConfigError reports missing delivery settings with a message fit for end users.
type ConfigError struct {
	Message string   // Human readable explanation
	Missing []string // Names of the missing variables
}

func (e *ConfigError) Error() string { return e.Message }

// Is makes ConfigError match ErrMissingConfig.
func (e *ConfigError) Is(target error) bool { return target == ErrMissingConfig }

// DeliveryError reports a delivery the provider or transport refused.
// Detail is the provider's own explanation and is safe to show to the caller.
type DeliveryError struct {
	Detail string
	Err    error
}

func (e *DeliveryError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ErrSendFailed.Error()
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Is makes DeliveryError match ErrSendFailed.
func (e *DeliveryError) Is(target error) bool { return target == ErrSendFailed }
