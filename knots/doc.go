// Package knots implements knot placement for time-varying coefficient
// models.
//
// A knot is a control point in time at which a coefficient is directly
// parameterized; the full curve between knots is interpolated by a kernel
// basis. Placement runs in one of two mutually exclusive modes per model
// component:
//
//   - Even segmentation: a segment count or explicit spacing spreads knots
//     evenly over the training range, anchored at the segment midpoint.
//   - Explicit dates: a caller-supplied date list is filtered to the
//     training range and converted to time positions with calendar
//     arithmetic.
//
// The resulting Placement records dates, observation indices and normalized
// time positions for each knot, in strictly increasing time order.
package knots
