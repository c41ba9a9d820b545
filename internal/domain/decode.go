package domain

// DecodeStats counts what happened to each scanned line of a return file.
type DecodeStats struct {
	Lines        int `json:"lines"`
	Short        int `json:"short"`        // narrower than the record width
	Ignored      int `json:"ignored"`      // segments other than T and U
	Orphans      int `json:"orphans"`      // U without an open T
	Failed       int `json:"failed"`       // recovered decode failures
	Unterminated int `json:"unterminated"` // T never completed by a U
	Emitted      int `json:"emitted"`
}

// DecodedFile is the outcome of decoding one return file.
type DecodedFile struct {
	Transactions []*Transaction
	Stats        DecodeStats
}
