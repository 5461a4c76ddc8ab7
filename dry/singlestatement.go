package dry

import "github.com/thai-lint/thailint-go/models"

// isSingleStatement implements the single-statement detector (§4.6, I5): a
// window that coincides with exactly one syntactic unit must never be
// reported as a duplicate. When ctx has a parsed Tree, a window is judged
// single-statement if some node in the tree spans exactly
// [startLine, endLine] and that node (or its sole meaningful child chain)
// represents one statement — approximated here as "a node whose own span
// matches the window and which has no sibling statement beginning inside
// the window". Without a tree (parse failure, or a language with no
// analyzer), the check is skipped — text-only rules still apply to the
// window, matching §7's "parse errors are non-fatal" contract.
func isSingleStatement(ctx *models.LintContext, startLine, endLine int) bool {
	tree, err := ctx.Tree()
	if err != nil || tree == nil {
		return false
	}
	return spansSingleNode(tree.Root(), startLine, endLine)
}

// spansSingleNode walks the tree looking for a node whose StartLine/EndLine
// exactly bracket the window and whose children do not themselves contain
// more than one node starting within the window — i.e. the window is not
// simply a concatenation of several independent statements.
func spansSingleNode(node models.Node, startLine, endLine int) bool {
	if node.StartLine() == startLine && node.EndLine() == endLine {
		return true
	}
	childrenInWindow := 0
	var matched bool
	for _, child := range node.Children() {
		if child.StartLine() >= startLine && child.EndLine() <= endLine {
			childrenInWindow++
			if spansSingleNode(child, startLine, endLine) {
				matched = true
			}
		} else if child.StartLine() <= endLine && child.EndLine() >= startLine {
			// partial overlap at a boundary: recurse to find the exact node
			if spansSingleNode(child, startLine, endLine) {
				return true
			}
		}
	}
	return matched && childrenInWindow == 1
}

// tsInterfaceRanges returns the line ranges of top-level TypeScript
// "interface X {...}" and "type X = {...}" declarations, so windows
// overlapping them can be excluded from DRY reporting (§4.6 "TypeScript
// interface bodies are excluded").
func tsInterfaceRanges(ctx *models.LintContext) [][2]int {
	if ctx.Language != models.LanguageTypeScript {
		return nil
	}
	tree, err := ctx.Tree()
	if err != nil || tree == nil {
		return nil
	}
	var ranges [][2]int
	for _, child := range tree.Root().Children() {
		switch child.Kind() {
		case "interface_declaration", "type_alias_declaration":
			ranges = append(ranges, [2]int{child.StartLine(), child.EndLine()})
		}
	}
	return ranges
}
