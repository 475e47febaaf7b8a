package model

import "time"

// Shared defaults used by both the terminal and web binaries.
const (
	DefaultEndpoint       = "http://0.0.0.0:8020"
	DefaultParentDomain   = "fosscu.org"
	DefaultRequestTimeout = time.Duration(0) // 0 = wait for the backend indefinitely
	DefaultLogLevel       = "info"
	DefaultWebAddr        = "127.0.0.1:8080"
)

// User-visible messages rendered by every surface.
const (
	MsgEmptySubdomain = "Please enter a subdomain"
	MsgCheckFailed    = "Failed to check subdomain availability. Please try again."
)
