// Package cloth implements a mass-spring cloth as a grid of point masses
// joined by distance constraints.
//
// The package is organized around three pieces of state and one operation:
//
//   - [Grid]: row-major particles, top row locked
//   - [Constraint]: structural links between horizontal and vertical neighbors
//   - [Material]: the force, energy and constraint rules of one fabric
//   - [Step]: force pass, pointer interaction, then [RelaxationPasses]
//     Gauss-Seidel sweeps over the constraints
//
// [Cloth] owns a grid and its constraints together with the active material
// and is what drivers normally hold.
//
// # Example
//
//	c, err := cloth.New(cloth.DefaultLayout(), cloth.Cotton{})
//	if err != nil {
//	    return err
//	}
//	for frame := 0; frame < 600; frame++ {
//	    c.Step(1.0/60, cloth.Pointer{})
//	}
//
// # Thread Safety
//
// A Cloth is NOT safe for concurrent use. Relaxation reads positions written
// earlier in the same pass, so constraint solving must stay sequential.
// Separate Cloth values share no state and may be stepped in parallel.
package cloth
