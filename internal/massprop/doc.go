// Package massprop provides the rigid-body mass-property primitives shared by
// every part model in the airframe engine.
//
// The package defines:
//
//   - [MassProperty]: mass, center of gravity and inertia tensor about that CG
//   - [Tensor]: 3×3 symmetric inertia tensor, a value type
//   - [Aggregate]: parallel-axis combination of many records into one
//   - [Principal]: principal moments of an inertia tensor
//
// # Coordinates
//
// Every record uses the body frame of the vehicle: X runs along the
// longitudinal axis with x = 0 at the tail, increasing toward the nose.
// Y and Z complete a right-handed frame. Inertia tensors are expressed about
// the record's own CG with axes parallel to the body axes.
//
// # Example
//
//	shell := massprop.MassProperty{Mass: 1.2, CG: massprop.OnAxis(0.5), Inertia: massprop.Diag(0.01, 0.2, 0.2)}
//	bay := massprop.PointMass(2.0, massprop.OnAxis(1.4))
//	total, err := massprop.Aggregate([]massprop.MassProperty{shell, bay})
//
// # Thread Safety
//
// All values are immutable and every function is pure, so records may be
// shared freely across goroutines.
package massprop
