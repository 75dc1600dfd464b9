// Package medinfo holds the read-only medical reference tables for the
// detection pipeline: the English-Vietnamese disease class mapping and the
// per-condition health guidance shown alongside detections.
//
// The tables are plain compile-time literals with a defined construction
// point and no hidden reinitialization, and lookups never mutate state, so
// the package is safe for concurrent use.
//
// Language selection for user-facing strings goes through MatchLanguage,
// which resolves an Accept-Language header against the supported set
// (English and Vietnamese) using golang.org/x/text language matching.
package medinfo
