// Package validator provides composable, rule-based validation for request
// payloads. Rules are plain values so callers can build them conditionally
// and apply them in one shot:
//
//	err := validator.Apply(
//		validator.Required("email", req.Email),
//		validator.ValidEmail("email", req.Email),
//		validator.MinLen("password", req.Password, 8),
//	)
//
// Apply returns ValidationErrors aggregating every failed rule, which the
// HTTP layer renders as a field->messages detail map.
package validator
