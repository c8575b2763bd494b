// Package runs keeps one run session per route in memory and drives it
// through start, deliver, skip, back, jump and reset, persisting every step
// through the session store and the outcome repository before it becomes
// visible.
package runs
