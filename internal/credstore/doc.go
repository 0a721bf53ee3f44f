// Package credstore persists platform credentials in the per-user
// appforge configuration file.
//
// The file is an open JSON document: unrelated keys written by other
// appforge versions or by the user survive every rewrite untouched. Writes
// go to a sibling temporary file first and are renamed over the
// destination, so a crash mid-write never corrupts the previous version.
// The store assumes single-process, single-in-flight-call usage and takes
// no locks.
package credstore
