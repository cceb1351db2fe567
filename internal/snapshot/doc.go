// Package snapshot captures the mounted state of a renderer and writes it to
// a file directory or an S3 bucket.
//
// A snapshot records the host markup of the mount container, every assigned
// address and the events bound at each address. It can be encoded as plain
// HTML or as msgpack:
//
//	snap, err := snapshot.Capture("counter", r, doc)
//	data, contentType, err := snap.Encode(snapshot.FormatMsgpack)
//	err = store.Put(ctx, snap.Key(snapshot.FormatMsgpack), data, contentType)
package snapshot
