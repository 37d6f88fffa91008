// Package retry provides exponential backoff retry logic for transient failures.
//
// The [Do] function retries an operation with configurable max attempts,
// initial delay, and maximum delay. It is used for remote stack fetches,
// where object storage may fail transiently. Errors marked with [Fatal]
// stop the loop immediately.
package retry
