package notation

// Option adjusts linearizing and importing.
type Option func(*options)

type options struct {
	maxLineLength  int
	keepComments   bool
	keepGlyphs     bool
	keepVariations bool
	maxDepth       int
}

func newOptions(opts []Option) options {
	o := options{
		keepComments:   true,
		keepGlyphs:     true,
		keepVariations: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxLineLength wraps output at n columns; 0 keeps everything on one line.
func WithMaxLineLength(n int) Option {
	return func(o *options) { o.maxLineLength = n }
}

// WithComments controls whether {comments} are written.
func WithComments(keep bool) Option {
	return func(o *options) { o.keepComments = keep }
}

// WithGlyphs controls whether annotation symbols are written.
func WithGlyphs(keep bool) Option {
	return func(o *options) { o.keepGlyphs = keep }
}

// WithVariations controls whether variations are written.
func WithVariations(keep bool) Option {
	return func(o *options) { o.keepVariations = keep }
}

// WithMaxDepth makes Import reject variations nested deeper than n.
// Zero or less means unbounded.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}
