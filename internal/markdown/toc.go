package markdown

import "github.com/goliatone/go-blog/pkg/interfaces"

// BuildTOC nests a flat heading sequence by level: each heading becomes a
// child of the nearest preceding heading with a lower level, and headings
// that appear before any such parent stay top-level.
func BuildTOC(headings []interfaces.Heading) []interfaces.Heading {
	if len(headings) == 0 {
		return nil
	}

	var top []interfaces.Heading
	// Stack of pointers into the tree being built; parents precede children.
	var stack []*interfaces.Heading

	for _, heading := range headings {
		entry := interfaces.Heading{
			Level:    heading.Level,
			Text:     heading.Text,
			AnchorID: heading.AnchorID,
		}

		for len(stack) > 0 && stack[len(stack)-1].Level >= entry.Level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			top = append(top, entry)
			stack = append(stack, &top[len(top)-1])
			continue
		}

		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, entry)
		stack = append(stack, &parent.Children[len(parent.Children)-1])
	}

	return top
}
