// Package file provides a BlobStore that keeps one JSON file per key in a
// directory. Writes go to a temporary file that is renamed into place, so a
// crash never leaves a half-written blob behind.
package file
