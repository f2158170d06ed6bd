package sound

// ResolveReferences returns a copy of the document with every named
// envelope/filter reference replaced by its definition. The input document
// is not mutated. A missing name fails with *UnresolvedReferenceError.
func ResolveReferences(doc *Document) (*Document, error) {
	out := &Document{
		Version:   doc.Version,
		Envelopes: doc.Envelopes,
		Filters:   doc.Filters,
		Sounds:    make([]Node, len(doc.Sounds)),
	}
	for i, n := range doc.Sounds {
		resolved, err := resolveNode(doc, n)
		if err != nil {
			return nil, err
		}
		out.Sounds[i] = resolved
	}
	return out, nil
}

func resolveNode(doc *Document, n Node) (Node, error) {
	switch n.Kind {
	case KindTone, KindNoise:
		if n.Envelope != nil {
			ref := *n.Envelope
			if ref.Env == nil {
				env, ok := doc.Envelopes[ref.Name]
				if !ok {
					return n, &UnresolvedReferenceError{Name: ref.Name, Kind: "envelope"}
				}
				ref.Env = &env
			} else {
				env := *ref.Env
				ref.Env = &env
			}
			n.Envelope = &ref
		}
		if n.Filter != nil {
			ref := *n.Filter
			if ref.Filter == nil {
				f, ok := doc.Filters[ref.Name]
				if !ok {
					return n, &UnresolvedReferenceError{Name: ref.Name, Kind: "filter"}
				}
				ref.Filter = &f
			} else {
				f := *ref.Filter
				ref.Filter = &f
			}
			n.Filter = &ref
		}
		return n, nil
	case KindGroup:
		children := make([]Node, len(n.Children))
		for i, c := range n.Children {
			resolved, err := resolveNode(doc, c)
			if err != nil {
				return n, err
			}
			children[i] = resolved
		}
		n.Children = children
		return n, nil
	case KindSequence:
		elements := make([]Element, len(n.Elements))
		for i, el := range n.Elements {
			resolved, err := resolveNode(doc, el.Sound)
			if err != nil {
				return n, err
			}
			elements[i] = Element{At: el.At, Sound: resolved}
		}
		n.Elements = elements
		return n, nil
	default:
		return n, nil
	}
}
