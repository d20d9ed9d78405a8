// Package roi owns the region-of-interest filter.
//
// A DisjointSet is a keyed collection of polygons in which no two members
// overlap; every insertion is transactional. ROI wraps a DisjointSet with
// an interest flag and a coverage rate and decides whether a detection is
// useful.
package roi
