// Package sanitizer normalizes untrusted user input before it reaches
// storage or lookups. Sanitization is intentionally lossy and must happen
// before validation so that equivalent inputs map to the same stored value.
package sanitizer
