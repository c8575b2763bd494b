// Package summary holds the end-of-run record written when a run finishes.
package summary
