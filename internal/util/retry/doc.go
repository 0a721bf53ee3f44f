// Package retry provides exponential backoff retry logic for transient failures.
//
// The [Do] function retries an operation with configurable max attempts,
// initial delay, and maximum delay. It is used around blob-store calls and
// other operations that may fail transiently. Errors wrapped with [Fatal]
// stop the retry loop immediately.
package retry
