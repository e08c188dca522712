package groupby

// Column is a single named field of a [Row].
type Column struct {
	Name  string
	Value Value
}

// Row is an ordered mapping from unique column names to values.
type Row struct {
	cols  []Column
	index map[string]int
}

// NewRow builds a row from cols. A repeated name overwrites the earlier value
// in place.
func NewRow(cols ...Column) *Row {
	r := &Row{index: make(map[string]int, len(cols))}
	for _, c := range cols {
		r.Set(c.Name, c.Value)
	}
	return r
}

// Len returns the number of columns.
func (r *Row) Len() int {
	if r == nil {
		return 0
	}
	return len(r.cols)
}

// Get looks up a column by name.
func (r *Row) Get(name string) (Value, bool) {
	if r == nil {
		return Value{}, false
	}
	i, ok := r.index[name]
	if !ok {
		return Value{}, false
	}
	return r.cols[i].Value, true
}

// Set replaces the value of an existing column or appends a new one.
func (r *Row) Set(name string, v Value) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[name]; ok {
		r.cols[i].Value = v
		return
	}
	r.index[name] = len(r.cols)
	r.cols = append(r.cols, Column{Name: name, Value: v})
}

// Names returns the column names in order.
func (r *Row) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.cols))
	for i, c := range r.cols {
		out[i] = c.Name
	}
	return out
}

// Columns returns a copy of the columns in order.
func (r *Row) Columns() []Column {
	if r == nil {
		return nil
	}
	out := make([]Column, len(r.cols))
	copy(out, r.cols)
	return out
}

// Equal compares names, order and values, ignoring spans.
func (r *Row) Equal(o *Row) bool {
	if r.Len() != o.Len() {
		return false
	}
	for i := range r.Len() {
		if r.cols[i].Name != o.cols[i].Name || !r.cols[i].Value.Equal(o.cols[i].Value) {
			return false
		}
	}
	return true
}
