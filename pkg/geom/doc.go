// Package geom holds the small amount of shared math used across the
// kernel: helpers over sdfx's v3.Vec, parameter-space coordinates,
// quaternion rotations and the affine transform carried by tori.
package geom
