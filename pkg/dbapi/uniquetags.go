package dbapi

// RecursiveMap holds unique tag values found under a selection, nested
// one level per requested tag type: the first tag type's distinct
// values are the top-level keys, and each key's children are the
// unique values of the next tag type among only the songs sharing that
// first value, and so on. A leaf tag type produces entries with no
// children.
type RecursiveMap struct {
	Children map[string]*RecursiveMap
}

func newRecursiveMap() *RecursiveMap {
	return &RecursiveMap{Children: map[string]*RecursiveMap{}}
}

func (m *RecursiveMap) child(key string) *RecursiveMap {
	c, ok := m.Children[key]
	if !ok {
		c = newRecursiveMap()
		m.Children[key] = c
	}
	return c
}

// Keys returns the top-level values in the map, in no particular order.
func (m *RecursiveMap) Keys() []string {
	keys := make([]string, 0, len(m.Children))
	for k := range m.Children {
		keys = append(keys, k)
	}
	return keys
}

// CollectUniqueTags drives a full recursive Visit over selection and
// buckets every visited song's tag values into a RecursiveMap keyed by
// tagTypes, in order. It is the generic helper §4.H of the adapter
// delegates to: it knows nothing about UPnP, only the Database
// contract, so any Database implementation can reuse it.
func CollectUniqueTags(db Database, selection Selection, tagTypes []TagType) (*RecursiveMap, error) {
	root := newRecursiveMap()
	if len(tagTypes) == 0 {
		return root, nil
	}

	sel := selection
	sel.Recursive = true

	err := db.Visit(sel, nil, func(song LightSong) error {
		insertTags(root, song.Tag, tagTypes)
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return root, nil
}

func insertTags(node *RecursiveMap, tag Tag, tagTypes []TagType) {
	if len(tagTypes) == 0 {
		return
	}
	value := tag.Get(tagTypes[0])
	child := node.child(value)
	insertTags(child, tag, tagTypes[1:])
}
