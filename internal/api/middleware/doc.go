// Package middleware holds HTTP middleware shared by all API routes.
package middleware
