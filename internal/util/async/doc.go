// Package async provides utilities for parallel task execution.
//
// Tasks run on an errgroup bounded by a concurrency limit. The CLI uses it to
// validate several request files at once.
package async
