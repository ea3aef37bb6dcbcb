// Package sanitizer provides input normalization for user-supplied text.
//
// All functions are idempotent - applying them multiple times produces the
// same result. Invalid input is handled gracefully by returning empty
// strings rather than errors.
//
// Normalization includes:
//   - Free text (titles, descriptions, participant names): strip control
//     characters, collapse internal whitespace, trim
//   - Emails: trim and lowercase
//   - Client IPs: first entry of a forwarded-for list, port stripped
package sanitizer
