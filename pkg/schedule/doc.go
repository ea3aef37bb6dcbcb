// Package schedule holds the scheduling core: expanding a date range into
// discrete candidate time slots, and aggregating participant responses into
// a ranked best-times report.
//
// Both operations are pure functions over their inputs - no clock, no store,
// no timezone conversion. Timestamps are naive wall-clock values in the
// location of the input dates, matching what participants see on screen.
package schedule
