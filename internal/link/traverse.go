package link

import "strings"

// Traverse computes the relative path that reaches to when resolved
// against the directory containing from. Identical paths yield "";
// absolute paths are never relativized and come back unchanged.
func Traverse(from, to string) string {
	from = strings.TrimSuffix(from, "/")
	to = strings.TrimSuffix(to, "/")
	if from == to {
		return ""
	}
	if strings.HasPrefix(from, "/") || strings.HasPrefix(to, "/") {
		return to
	}

	fp := strings.Split(from, "/")
	tp := strings.Split(to, "/")
	common := 0
	for common < len(fp)-1 && common < len(tp)-1 && fp[common] == tp[common] {
		common++
	}

	var b strings.Builder
	for range fp[common : len(fp)-1] {
		b.WriteString("../")
	}
	for _, dir := range tp[common : len(tp)-1] {
		b.WriteString(dir)
		b.WriteByte('/')
	}
	b.WriteString(tp[len(tp)-1])
	return b.String()
}
