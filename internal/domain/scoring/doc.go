// Package scoring holds the two pure scores the portal gates and ranks on:
// how well a student's skills cover an opportunity's required tags, and how
// complete a student's profile is. Both are deterministic, allocate no shared
// state and are safe to call from any number of goroutines.
package scoring
