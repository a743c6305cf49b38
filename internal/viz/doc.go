// Package viz provides the terminal front end for the cloth simulation.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live cloth view driven by the wall clock
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [RunInteractive]: preset and fabric picker in front of the live view
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	1/2/3 - Cotton, silk, denim
//	R     - Reset to the rest pose
//	T     - Cycle color themes
//	?     - Show help overlay
//	[]    - Time travel (rewind/forward)
//
// Dragging with the left mouse button grabs every free particle within
// cloth.PointerRadius of the cursor.
package viz
