// Package remote contains the contract of the upstream user service and a
// REST implementation of it.
//
// # Overview
//
// Client is transport-agnostic: Login, ListUsers, UpdateUser, DeleteUser.
// RESTClient talks to a reqres-shaped JSON API using resty. It performs no
// retries; a failed call is reported once and the caller decides.
//
// # Error Handling
//
// Failures are mapped to sentinel errors from package common so callers can
// match them with errors.Is:
//
//   - ErrUnavailable: the request never produced a response.
//   - ErrUserNotFound, ErrInvalidPassword, ErrInvalidCredentials: login
//     rejections, classified by the upstream's reason string.
//   - ErrUnexpectedStatus: any other non-2xx response.
//   - ErrMalformedResponse: a 2xx response that cannot be decoded.
package remote
