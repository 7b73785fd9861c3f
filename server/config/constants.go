package config

import "fmt"

// Network server port constants.
// The port is fixed rather than configurable so every deployment,
// script and client default agrees on where the service lives.
const (
	// HTTP Server Port - REST API
	// Selected to avoid common development ports like 8080, 3000, 5000
	HTTP_SERVER_PORT = 2861
)

// Network server address constants
const (
	// Default bind address
	DEFAULT_SERVER_ADDRESS = "0.0.0.0"

	// Localhost address for development and client defaults
	LOCALHOST_ADDRESS = "127.0.0.1"
)

// Port validation constants
const (
	MIN_PORT = 1
	MAX_PORT = 65535
)

// IsValidPort checks if a port number is within valid range
func IsValidPort(port int) bool {
	return port >= MIN_PORT && port <= MAX_PORT
}

// GetLocalHTTPURL returns the base URL clients use to reach a server on
// this machine.
func GetLocalHTTPURL() string {
	return fmt.Sprintf("http://%s:%d", LOCALHOST_ADDRESS, HTTP_SERVER_PORT)
}
