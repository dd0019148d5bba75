// Package common contains shared constants and sentinel errors used across
// userconsole components.
package common

// APIKeyHeaderName is the HTTP header carrying the upstream API key on
// outbound requests.
const APIKeyHeaderName = "x-api-key"

// Session store keys.
const (
	UserDataKey  = "userData"
	AuthDataKey  = "authData"
	LoggedOutKey = "loggedOut"
)

// DemoPassword is the password the reqres demo accepts for every user.
const DemoPassword = "cityslicka"
