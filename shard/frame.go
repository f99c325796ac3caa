package shard

// Frame is one contiguous slice of the payload, tagged with its byte offset.
// The first frame of a plan has offset 0 and is embedded by position in the
// Initialize operation; every later frame carries an explicit offset tag on
// the wire. Frames are immutable once planned.
type Frame struct {
	Offset int
	Data   []byte
}

// OffsetTag returns the little-endian encoding of the frame offset used as
// the Write operation's prefix.
func (f Frame) OffsetTag() [OffsetTagLength]byte {
	var tag [OffsetTagLength]byte
	tag[0] = byte(f.Offset)
	tag[1] = byte(f.Offset >> 8)
	tag[2] = byte(f.Offset >> 16)
	return tag
}

// End returns the first payload offset past this frame.
func (f Frame) End() int {
	return f.Offset + len(f.Data)
}
