// Package embxx implements a layered, composable codec for binary
// protocols on resource-constrained links such as serial lines, I2C
// and packet radios.
//
// A wire format is assembled from independent layers, each owning one
// envelope field: a [SyncPrefixLayer] for the synchronization marker,
// a [ChecksumLayer] for the integrity field, a [MsgSizeLayer] for the
// explicit length field, a [MsgIdLayer] for the message-type
// identifier, and the terminal [MsgDataLayer] for the message body.
// All layers except the terminal one are optional and composable in
// any order; the composition is fixed at construction and wrapped in
// a [Stack], whose Read, Write and Update methods are the caller's
// entry points.
//
// A minimal stack with a two-byte big-endian ID field:
//
//	idLayer, err := embxx.NewMsgIdLayer(
//		embxx.Traits{IDFieldWidth: 2},
//		embxx.DynAllocator{},
//		[]embxx.Factory{
//			{ID: 1, New: func() embxx.Message { return new(Heartbeat) }},
//		},
//		embxx.NewMsgDataLayer(),
//	)
//	if err != nil {
//		// a duplicate ID or a bad trait is a configuration error
//	}
//	stack, err := embxx.NewStack(idLayer)
//
// Reading allocates the message through the stack's [Allocator] and
// hands it to the caller as a single-owner [MsgPtr]; with an
// [InPlaceAllocator] the handle must be released before the next
// message can be decoded.
//
// Layers whose field value depends on bytes written by layers nested
// inside them, the size and checksum fields, reserve the field and
// patch it once the inner layers return. On a random-access sink
// ([wire.Buffer]) this happens transparently. On an append-only sink
// ([wire.AppendWriter]) Write returns [ErrUpdateRequired] instead,
// and the caller must run [Stack.Update] over the finished frame;
// that second pass is mandatory, not optional cleanup.
//
// Protocol conditions are ordinary return values from the closed
// error set in this package, never panics. All operations are
// synchronous and non-blocking; insufficient input is reported as
// [ErrNotEnoughData] and the caller re-invokes once more bytes are
// available.
package embxx
