// Package wire provides the byte-level primitives that protocol
// layers are built from: byte orders extended with arbitrary-width
// unsigned fields, a bounded sequential reader, and output sinks in
// two flavors, random-access and append-only.
//
// The provided reader and sinks are very low level, and do not encode
// any protocol semantics. It is the caller's responsibility to
// produce valid frames using these tools.
//
// You should not need to use this package directly unless you are
// writing your own embxx.Message body codecs or a custom protocol
// layer, in which case your code will be handed a [wire.Reader] or a
// [wire.Writer] and expected to stay within the byte budget it was
// given.
package wire
