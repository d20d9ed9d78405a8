// Package geometry owns the planar model used by the region monitor.
//
// Responsibilities: 2D points in the sensor's horizontal (Y, Z) plane,
// polygons with holes, oriented detection boxes, attributed regions, and
// the area, validity, containment and intersection-area algorithms that
// operate on them.
// Key types: Point, Segment, Polygon, Region.
//
// Rings are stored as orb rings (X=Y, Y=Z). After construction every ring
// is closed, the outer ring is counter-clockwise and holes are clockwise.
package geometry
