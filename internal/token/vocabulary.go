package token

// Vocabulary resolves token types and channels to their symbolic names.
// It is immutable once built and safe to share between goroutines.
type Vocabulary struct {
	symbolic []string // indexed by Type; index 0 is the invalid type
	channels []string // indexed by Channel
	byName   map[string]Type
}

// NewVocabulary copies the name tables. symbolic[0] names InvalidType.
func NewVocabulary(symbolic, channels []string) Vocabulary {
	v := Vocabulary{
		symbolic: append([]string(nil), symbolic...),
		channels: append([]string(nil), channels...),
		byName:   make(map[string]Type, len(symbolic)),
	}
	for i, name := range v.symbolic {
		if i == 0 || name == "" {
			continue
		}
		v.byName[name] = Type(i)
	}
	return v
}

// SymbolicName returns the grammar name for typ, "EOF" for the sentinel and
// "" for types the grammar does not define.
func (v Vocabulary) SymbolicName(typ Type) string {
	if typ == EOF {
		return "EOF"
	}
	if typ < 0 || int(typ) >= len(v.symbolic) {
		return ""
	}
	return v.symbolic[typ]
}

// ChannelName returns the grammar name of ch or "" when unknown.
func (v Vocabulary) ChannelName(ch Channel) string {
	if ch < 0 || int(ch) >= len(v.channels) {
		return ""
	}
	return v.channels[ch]
}

// Lookup finds a type by its symbolic name.
func (v Vocabulary) Lookup(name string) (Type, bool) {
	if name == "EOF" {
		return EOF, true
	}
	t, ok := v.byName[name]
	return t, ok
}

// MaxType is the largest type the vocabulary names.
func (v Vocabulary) MaxType() Type {
	return Type(len(v.symbolic) - 1)
}

// SymbolicNames returns a copy of the type name table.
func (v Vocabulary) SymbolicNames() []string {
	return append([]string(nil), v.symbolic...)
}

// ChannelNames returns a copy of the channel name table.
func (v Vocabulary) ChannelNames() []string {
	return append([]string(nil), v.channels...)
}
