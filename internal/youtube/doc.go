// Package youtube fetches playlist snapshots from the YouTube Data API v3.
//
// A snapshot is one complete read of a playlist: its metadata plus every item,
// gathered by following page tokens until the API stops returning one. Any
// failed request fails the whole fetch; callers never see a partial snapshot.
// Failures are reported as *RemoteError values whose Kind can be matched with
// errors.Is against the exported sentinels.
package youtube
