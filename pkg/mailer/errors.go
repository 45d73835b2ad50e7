package mailer

import "errors"

// ErrNotConfigured is returned when sending is attempted without SMTP settings.
var ErrNotConfigured = errors.New("mailer: smtp is not configured")
