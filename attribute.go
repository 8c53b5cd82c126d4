package wordnet

// Attribute is an arbitrary value attached to a synset. Merge folds the
// value of another synset's attribute of the same name into this one and
// returns the result.
type Attribute interface {
	Merge(other Attribute) Attribute
	Object() any
}

// VectorAttribute is a dense vector; merging adds element-wise.
type VectorAttribute []float64

func (v VectorAttribute) Merge(other Attribute) Attribute {
	o, ok := other.(VectorAttribute)
	if !ok {
		return v
	}
	n := len(v)
	if len(o) > n {
		n = len(o)
	}
	out := make(VectorAttribute, n)
	copy(out, v)
	for i, x := range o {
		out[i] += x
	}
	return out
}

func (v VectorAttribute) Object() any { return []float64(v) }

// CountAttribute is a counter; merging sums.
type CountAttribute int

func (c CountAttribute) Merge(other Attribute) Attribute {
	if o, ok := other.(CountAttribute); ok {
		return c + o
	}
	return c
}

func (c CountAttribute) Object() any { return int(c) }

// StringAttribute keeps the receiver's value on merge.
type StringAttribute string

func (s StringAttribute) Merge(Attribute) Attribute { return s }

func (s StringAttribute) Object() any { return string(s) }
