package format

// writer accumulates output and holds back blanks until something other
// than a line end follows them.
type writer struct {
	buf     []byte
	pending string
}

func (w *writer) blank(s string) {
	w.pending += s
}

func (w *writer) flush() {
	if w.pending != "" {
		w.buf = append(w.buf, w.pending...)
		w.pending = ""
	}
}

func (w *writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.flush()
	w.buf = append(w.buf, s...)
}

// lineBlank reports whether the current output line holds only blanks.
func (w *writer) lineBlank() bool {
	for i := len(w.buf) - 1; i >= 0 && w.buf[i] != '\n'; i-- {
		if w.buf[i] != ' ' && w.buf[i] != '\t' {
			return false
		}
	}
	return true
}

func (w *writer) newline() {
	w.pending = ""
	w.buf = append(w.buf, '\n')
}

// finish drops trailing blanks and ends non-empty output with exactly one
// newline.
func (w *writer) finish() []byte {
	w.pending = ""
	for len(w.buf) > 0 && w.buf[len(w.buf)-1] == '\n' {
		w.buf = w.buf[:len(w.buf)-1]
	}
	if len(w.buf) == 0 {
		return []byte{}
	}
	return append(w.buf, '\n')
}
