// Package desktop tracks the windows open on the simulated desktop:
// stacking order, focus, geometry and minimize state. Snapshots of the
// whole desktop feed session persistence.
package desktop
