// Package monitor owns the region monitor: the registry of attributed
// regions, the ROI filter and the optional sensor extrinsic correction,
// all guarded by a single mutex.
//
// A host application feeds region configuration through Add/Remove from one
// goroutine and issues per-frame overlap queries (FindRelatedMessage,
// IsUseful) from another.
package monitor
