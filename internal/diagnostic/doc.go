// Package diagnostic collects structured errors and warnings produced while
// binding record schemas and validating mapping files.
//
// Key capabilities:
//   - Duplicate and negative column reports
//   - Unsupported member types and malformed tags
//   - Default values that do not convert
//   - A single joined error that keeps every cause reachable by errors.Is/As
package diagnostic
