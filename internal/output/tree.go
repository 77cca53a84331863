package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/maxvaer/dfuzz/internal/scanner"
)

type treeNode struct {
	name     string
	children []*treeNode
}

func (n *treeNode) findOrCreate(name string) *treeNode {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	child := &treeNode{name: name}
	n.children = append(n.children, child)
	return child
}

// DirectoryPaths returns the directory hits found under base, relative to
// it (e.g. "admin", "admin/config").
func DirectoryPaths(base string, results []scanner.ScanResult) []string {
	prefix := strings.TrimRight(base, "/") + "/"
	var dirs []string
	for _, r := range results {
		if !scanner.IsDirectory(r.URL) || !strings.HasPrefix(r.URL, prefix) {
			continue
		}
		if rel := strings.Trim(strings.TrimPrefix(r.URL, prefix), "/"); rel != "" {
			dirs = append(dirs, rel)
		}
	}
	return dirs
}

// PrintTree renders the directories discovered under base as a tree.
func PrintTree(w io.Writer, base string, dirs []string) {
	if len(dirs) == 0 {
		return
	}

	sorted := append([]string(nil), dirs...)
	sort.Strings(sorted)

	root := &treeNode{name: "/"}
	for _, d := range sorted {
		node := root
		for _, p := range strings.Split(d, "/") {
			if p == "" {
				continue
			}
			node = node.findOrCreate(p)
		}
	}

	fmt.Fprintf(w, "\n  Discovered directories under %s:\n", base)
	printChildren(w, root, "  ")
}

func printChildren(w io.Writer, node *treeNode, prefix string) {
	for i, child := range node.children {
		isLast := i == len(node.children)-1
		connector := "├── "
		nextPrefix := prefix + "│   "
		if isLast {
			connector = "└── "
			nextPrefix = prefix + "    "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, child.name)
		printChildren(w, child, nextPrefix)
	}
}

// Tree prints the directory tree for base on the status stream.
func (c *Console) Tree(base string, results []scanner.ScanResult) {
	dirs := DirectoryPaths(base, results)
	c.mu.Lock()
	defer c.mu.Unlock()
	PrintTree(c.errOut, base, dirs)
}
