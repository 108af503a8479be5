// Package validation checks generated section code before it is saved or
// previewed. Validation never fails with an error: every rule reports a
// pass/fail Issue and the aggregate SchemaValidationResult is valid as long
// as no error-severity rule failed.
package validation
