package sexy

import "fmt"

// Match reports whether actual has the shape described by pattern. The
// returned error names the path of the first mismatch.
//
// An ellipsis as the whole pattern matches any datum. An ellipsis as the
// last item of a list or array matches any number of remaining items.
func Match(pattern, actual *Node) error {
	return match(pattern, actual, "root")
}

func match(pattern, actual *Node, path string) error {
	if pattern.Type == NodeEllipsis {
		return nil
	}
	if pattern.Type != actual.Type {
		return fmt.Errorf("at %s: expected %s %s, got %s %s",
			path, pattern.Type, pattern, actual.Type, actual)
	}

	switch pattern.Type {
	case NodeSymbol, NodeString, NodeInteger:
		if pattern.Text != actual.Text {
			return fmt.Errorf("at %s: expected %s, got %s", path, pattern, actual)
		}
		return nil
	case NodeList, NodeArray:
		return matchItems(pattern, actual, path)
	default:
		return fmt.Errorf("at %s: cannot match %s", path, pattern.Type)
	}
}

func matchItems(pattern, actual *Node, path string) error {
	for i, item := range pattern.Items {
		if item.Type == NodeEllipsis {
			if i != len(pattern.Items)-1 {
				return fmt.Errorf("at %s: ellipsis must be the last item", path)
			}
			return nil
		}
		if i >= len(actual.Items) {
			return fmt.Errorf("at %s: expected %s at item %d, got end of %s",
				path, item, i, actual.Type)
		}
		if err := match(item, actual.Items[i], fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}

	if len(actual.Items) > len(pattern.Items) {
		return fmt.Errorf("at %s: unexpected extra item %s", path, actual.Items[len(pattern.Items)])
	}
	return nil
}
