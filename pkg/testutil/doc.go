// Package testutil provides utilities for testing termlinks components.
//
// Key components:
//   - TestEnvironment: isolated config directory with helpers to write
//     configuration files
//   - MockPrompter and MockOpener: scripted stand-ins for the host
//     capabilities used by the activation flow
package testutil
