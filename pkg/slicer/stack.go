package slicer

// Stack is the ordered list of accepted layers, ascending in z, with a
// navigation cursor. A Stack is replaced as a whole on every slice request.
type Stack struct {
	layers []*Layer
	cursor int
}

// NewStack wraps layers, which must already be sorted by z.
func NewStack(layers []*Layer) *Stack {
	return &Stack{layers: layers}
}

// Len returns the number of layers.
func (s *Stack) Len() int {
	return len(s.layers)
}

// Layer returns layer i, or nil when i is out of range.
func (s *Stack) Layer(i int) *Layer {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i]
}

// Layers returns the layers in ascending z. The slice must not be modified.
func (s *Stack) Layers() []*Layer {
	return s.layers
}

// Index returns the cursor position.
func (s *Stack) Index() int {
	return s.cursor
}

// Current returns the layer under the cursor, or nil for an empty stack.
func (s *Stack) Current() *Layer {
	return s.Layer(s.cursor)
}

// Next advances the cursor, wrapping from the top layer to the bottom.
func (s *Stack) Next() *Layer {
	if len(s.layers) == 0 {
		return nil
	}
	s.cursor = (s.cursor + 1) % len(s.layers)
	return s.Current()
}

// Prev moves the cursor down, wrapping from the bottom layer to the top.
func (s *Stack) Prev() *Layer {
	if len(s.layers) == 0 {
		return nil
	}
	s.cursor = (s.cursor - 1 + len(s.layers)) % len(s.layers)
	return s.Current()
}

// Seek moves the cursor to layer i. It reports false and leaves the cursor
// unchanged when i is out of range.
func (s *Stack) Seek(i int) bool {
	if i < 0 || i >= len(s.layers) {
		return false
	}
	s.cursor = i
	return true
}
