package huffzip

// Info describes a Container without decoding its payload.
type Info struct {
	Symbols      int          `json:"symbols"`
	HeaderBytes  int          `json:"headerBytes"`
	PayloadBytes int          `json:"payloadBytes"`
	Padding      byte         `json:"padding"`
	EncodedBits  int          `json:"encodedBits"`
	MinCodeSize  byte         `json:"minCodeSize"`
	MaxCodeSize  byte         `json:"maxCodeSize"`
	Table        []TableEntry `json:"table"`
}

// Inspect parses a serialized Container and validates its code table.
func Inspect(data []byte) (*Info, error) {
	c, err := ParseContainer(data)
	if err != nil {
		return nil, err
	}

	d, err := NewDecoder(c.Table)
	if err != nil {
		return nil, err
	}

	return &Info{
		Symbols:      d.NumSymbols(),
		HeaderBytes:  c.HeaderSize(),
		PayloadBytes: len(c.Payload),
		Padding:      c.Padding,
		EncodedBits:  c.NumBits(),
		MinCodeSize:  d.MinSize(),
		MaxCodeSize:  d.MaxSize(),
		Table:        d.Table(),
	}, nil
}
