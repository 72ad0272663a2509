// Package shared contains the JSON response, request decoding and request
// context helpers used by every HTTP handler.
package shared
