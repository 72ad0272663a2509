// Package memory provides an in-process BlobStore. Nothing survives a restart.
package memory
