// Package viz renders curves and direction fields in the terminal.
//
//   - [Canvas]: Braille cells addressed by dot, 2x4 dots per cell
//   - [Plot]: maps world coordinates onto a Canvas
//   - [RunInteractive]: a Bubble Tea explorer for functions and slope fields
//
// # Key Bindings
//
//	Enter  - Apply the expression being edited
//	Tab    - Switch between graph and slope-field mode
//	Arrows - Pan
//	+/-    - Zoom in/out
//	WASD   - Move the seed point (slope-field mode)
//	T      - Cycle colour themes
//	R      - Reset the view
//	/      - Edit the expression
//	Q      - Quit
package viz
