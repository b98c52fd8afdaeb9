// Package parts provides closed-form mass models for the physical parts of an
// axisymmetric airframe.
//
// Each model is a pure function from geometry and material to a
// [massprop.MassProperty] placed in the tail-to-nose body frame:
//
//   - [NoseconeMass]: thin shell of revolution, per-profile volume and centroid
//   - [CylinderMass]: cylindrical fuselage shell
//   - [FrustumMass]: conical boattail shell
//   - [StackBays], [CouplerMass], [PropulsionStructMass]: point-mass bays
//   - [FinSetMass]: flat-plate fins placed radially around the tube
//
// Enumerated inputs ([Material], [NoseconeKind], [TailKind], [FinAirfoil]) are
// closed sets; values outside the set yield [massprop.ErrUnsupportedGeometryKind].
package parts
