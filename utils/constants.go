// File: utils/constants.go
package utils

import "time"

// BlacklistPrefix is the prefix used for Redis token blacklist keys.
const BlacklistPrefix = "blacklist:"

// AccessTokenTTL is the lifetime of issued access tokens.
const AccessTokenTTL = time.Hour
