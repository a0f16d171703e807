// Package core provides the shared HTTP plumbing for JSON APIs: request
// body decoding, response rendering, and an error taxonomy that maps
// domain errors onto status codes and a consistent error envelope.
package core
