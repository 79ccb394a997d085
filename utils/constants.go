// File: utils/constants.go
package utils

// SessionKeyPrefix is the prefix used for Redis session keys.
const SessionKeyPrefix = "session:"
