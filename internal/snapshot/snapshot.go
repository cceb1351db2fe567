package snapshot

import (
	"sort"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/net/html"

	"github.com/vango-dev/vdomkit/internal/errors"
	"github.com/vango-dev/vdomkit/pkg/host/memdom"
	"github.com/vango-dev/vdomkit/pkg/render"
	"github.com/vango-dev/vdomkit/pkg/vdom"
)

// Format selects the snapshot encoding.
type Format string

const (
	FormatHTML    Format = "html"
	FormatMsgpack Format = "msgpack"
)

// Hook lists the events bound at one address.
type Hook struct {
	Address string   `msgpack:"address"`
	Events  []string `msgpack:"events"`
}

// Snapshot is the captured state of a mounted tree.
type Snapshot struct {
	Name      string    `msgpack:"name"`
	Markup    string    `msgpack:"markup"`
	Addresses []string  `msgpack:"addresses"`
	Hooks     []Hook    `msgpack:"hooks"`
	Taken     time.Time `msgpack:"taken"`
}

// now is replaced in tests.
var now = time.Now

// Capture records the state of r, which must be mounted into doc.
func Capture(name string, r *render.Renderer, doc *memdom.Document) (*Snapshot, error) {
	tree := r.Tree()
	root, ok := r.Root().(*html.Node)
	if tree == nil || !ok {
		return nil, errors.New("V003").WithDetail("renderer has no mounted tree")
	}

	snap := &Snapshot{
		Name:   name,
		Markup: doc.InnerHTML(root),
		Taken:  now().UTC(),
	}

	vdom.Walk(tree, func(n *vdom.Node) bool {
		if n.Kind != vdom.KindElement {
			return false
		}
		if n.Address != "" {
			snap.Addresses = append(snap.Addresses, n.Address)
		}
		return true
	})

	hooks := render.ToHooks(tree)
	addrs := make([]string, 0, len(hooks))
	for addr := range hooks {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	for _, addr := range addrs {
		h := Hook{Address: addr}
		for _, hook := range hooks[addr] {
			h.Events = append(h.Events, hook.Event)
		}
		snap.Hooks = append(snap.Hooks, h)
	}

	return snap, nil
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatHTML, FormatMsgpack:
		return f, nil
	default:
		return "", errors.New("S002").WithDetailf("format %q", s)
	}
}

// Ext returns the file extension for f.
func (f Format) Ext() string {
	if f == FormatMsgpack {
		return ".msgpack"
	}
	return ".html"
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatMsgpack {
		return "application/msgpack"
	}
	return "text/html; charset=utf-8"
}

// Key returns the object key for s encoded as f.
func (s *Snapshot) Key(f Format) string {
	return s.Name + "-" + s.Taken.Format("20060102T150405Z") + f.Ext()
}

// Encode serializes s as f and returns the bytes and their content type.
func (s *Snapshot) Encode(f Format) ([]byte, string, error) {
	switch f {
	case FormatHTML:
		return []byte(s.Markup), f.ContentType(), nil
	case FormatMsgpack:
		data, err := msgpack.Marshal(s)
		if err != nil {
			return nil, "", errors.FromError(err, "S001")
		}
		return data, f.ContentType(), nil
	default:
		return nil, "", errors.New("S002").WithDetailf("format %q", f)
	}
}

// Decode reads a snapshot encoded as f. An HTML snapshot only carries markup.
func Decode(f Format, data []byte) (*Snapshot, error) {
	switch f {
	case FormatHTML:
		return &Snapshot{Markup: string(data)}, nil
	case FormatMsgpack:
		var s Snapshot
		if err := msgpack.Unmarshal(data, &s); err != nil {
			return nil, errors.New("S001").WithDetail("decode msgpack snapshot").Wrap(err)
		}
		return &s, nil
	default:
		return nil, errors.New("S002").WithDetailf("format %q", f)
	}
}
