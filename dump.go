package artspell

import (
	"bytes"
	"fmt"
	"strings"
)

// dumper renders a compiled image as a tree of box-drawing lines, for
// debugging a Compile/Open round trip by eye. It walks the same decodeNode/
// eachChild path Search does rather than an owning in-memory tree, since
// nodes here are never anything but a view over the backing buffer.
//
// For an image compiled from cart=2, cat=9, dog=4 it prints:
//
//	─── Node4 (off=90)
//	    prefix: ""
//	├── 'c' -> Node4 (off=27)
//	│       prefix: "a"
//	│   ├── 'r' -> Leaf (off=1) freq=2
//	│   └── 't' -> Leaf (off=14) freq=9
//	└── 'd' -> Leaf (off=77) freq=4
type dumper struct {
	buf        []byte
	out        *bytes.Buffer
	childsLeft []int
}

// Dump renders idx's image starting from its root, for use in tests and
// ad hoc debugging. It is not part of the query path.
func Dump(idx *Index) string {
	d := &dumper{buf: idx.buf, out: &bytes.Buffer{}}
	d.dumpNode(decodeNode(idx.buf, idx.rootOff), "")
	return d.out.String()
}

// dumpKindLabel matches the capitalized names hashicorp/go-immutable-radix's
// dumper used, distinct from kindName's lowercase Report bucket keys.
func dumpKindLabel(kind uint8) string {
	switch kind {
	case kindLeaf:
		return "Leaf"
	case kindNode4:
		return "Node4"
	case kindNode16:
		return "Node16"
	case kindNode48:
		return "Node48"
	case kindNode256:
		return "Node256"
	default:
		return "Unknown"
	}
}

func (d *dumper) padding() (head, cont string) {
	depth := len(d.childsLeft)
	if depth == 0 {
		return "───", ""
	}
	pad := strings.Repeat("│   ", depth-1)
	if d.childsLeft[depth-1] == 1 {
		return pad + "└── ", pad + "    "
	}
	return pad + "├── ", pad + "│   "
}

func (d *dumper) dumpNode(n node, branchLabel string) {
	head, cont := d.padding()
	label := branchLabel
	if n.kind == kindLeaf && label != "" {
		fmt.Fprintf(d.out, "%s%s -> Leaf (off=%d) freq=%d\n", head, label, n.off, n.freq)
		return
	}

	prefix := string(n.prefix[:n.prefixLen])
	kindLabel := dumpKindLabel(n.kind)
	if label != "" {
		fmt.Fprintf(d.out, "%s%s -> %s (off=%d)\n", head, label, kindLabel, n.off)
	} else {
		fmt.Fprintf(d.out, "%s %s (off=%d)\n", head, kindLabel, n.off)
	}
	fmt.Fprintf(d.out, "%s    prefix: %q", cont, prefix)
	if n.isTerminal() {
		fmt.Fprintf(d.out, " freq=%d", n.freq)
	}
	d.out.WriteByte('\n')

	count := n.childCount(d.buf)
	if count == 0 {
		return
	}
	d.childsLeft = append(d.childsLeft, count)
	seen := 0
	n.eachChild(d.buf, func(key byte, childOff uint64) {
		seen++
		d.childsLeft[len(d.childsLeft)-1] = count - seen + 1
		child := decodeNode(d.buf, childOff)
		d.dumpNode(child, fmt.Sprintf("%q", key))
	})
	d.childsLeft = d.childsLeft[:len(d.childsLeft)-1]
}
