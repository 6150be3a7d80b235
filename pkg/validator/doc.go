// Package validator provides a small set of composable, type-safe validation
// helpers and rule-building utilities for strings, formats, and choice sets.
//
// The package promotes declarative validation by letting you build small Rule
// values that encapsulate a boolean Check function together with field-level
// error metadata. Rules are evaluated with the Apply helper which aggregates
// any failures into a ValidationErrors slice that satisfies the error
// interface, making it convenient to bubble up multiple field-specific
// problems in a single error return.
//
// # Architecture
//
// Each source file groups a family of rules for a specific domain
// (`string_rules.go`, `format_rules.go`, `choice_rules.go`). Every exported
// validation function simply constructs and returns a Rule instance; there is
// no hidden global state, therefore the package is completely stateless,
// allocation-light, and goroutine-safe.
//
// Core building blocks:
//   - Rule              – lightweight struct containing Check func and error meta
//   - ValidationError   – describes a single failure for one field
//   - ValidationErrors  – slice type that implements the error interface
//
// # Usage
//
//	err := validator.Apply(
//	    validator.Required("fullName", name),
//	    validator.ValidEmail("email", email),
//	    validator.ValidRole("role", role, allowedRoles),
//	)
//	if err != nil {
//	    if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	        // iterate over field-level messages
//	    }
//	}
//
// # Error Handling
//
// ValidationErrors implements the error interface, so you can use
// `errors.As` (or the IsValidationError helper) to detect validation
// problems while preserving field-level details. Individual field errors can
// be inspected with the helper methods Has, Get, and Fields.
package validator
