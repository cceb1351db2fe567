// Package errors provides structured, actionable error values for vdomkit.
//
// Every error carries a registered code (e.g. "V001") that maps to a
// category, a short message and a longer explanation:
//
//	err := errors.New("V001").WithDetail("CreateElement was called with an empty tag")
//	fmt.Println(err.Format())
//
// # Categories
//
//   - validation: malformed calls into the engine (missing tag, display name,
//     mount target). These abort the render cycle before the host is touched.
//   - render: failures while patching a mounted document.
//   - config: configuration files that cannot be read or parsed.
//   - snapshot: snapshot encoding and storage failures.
package errors
