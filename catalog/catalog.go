// Package catalog reads the inventory file the simulator ships
// (Resources/plugins/DataRefs.txt) listing every stock data accessor with
// its type, writability, units, and description. The developer CLI
// searches it, and tests use it to seed a simulated host with realistic
// accessors instead of hand-written fixtures.
package catalog

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xplm-go/xplm/host"
)

// Entry is one row of the inventory.
type Entry struct {
	Name        string
	Type        string // raw type text, e.g. "float", "int[73]", "byte[40]"
	Writable    bool
	Units       string
	Description string
}

// Flags maps the row's type text onto the host's type bitmask.
func (e Entry) Flags() host.DataTypeFlags {
	flags, _ := parseType(e.Type)
	return flags
}

// ArrayLen returns the declared element count for array and data types,
// or zero for scalars.
func (e Entry) ArrayLen() int {
	_, n := parseType(e.Type)
	return n
}

// parseType splits "float[10]" into the host type bit and element count.
func parseType(s string) (host.DataTypeFlags, int) {
	base := s
	n := 0
	if i := strings.IndexByte(s, '['); i >= 0 && strings.HasSuffix(s, "]") {
		base = s[:i]
		n, _ = strconv.Atoi(s[i+1 : len(s)-1])
	}
	switch base {
	case "int":
		if n > 0 {
			return host.TypeIntArray, n
		}
		return host.TypeInt, 0
	case "float":
		if n > 0 {
			return host.TypeFloatArray, n
		}
		return host.TypeFloat, 0
	case "double":
		return host.TypeDouble, 0
	case "byte", "data":
		return host.TypeData, n
	default:
		return host.TypeUnknown, 0
	}
}

// Catalog is a parsed inventory, ordered as the file was.
type Catalog struct {
	entries []Entry
	byName  map[string]int
}

// Parse reads an inventory from r. The two header lines and anything else
// that is not a tab-separated accessor row are skipped, so partial or
// hand-trimmed files parse fine.
func Parse(r io.Reader) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]int)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 256*1024), 256*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 || (fields[2] != "y" && fields[2] != "n") {
			continue
		}
		e := Entry{
			Name:     fields[0],
			Type:     fields[1],
			Writable: fields[2] == "y",
		}
		if len(fields) > 3 {
			e.Units = fields[3]
		}
		if len(fields) > 4 {
			e.Description = strings.Join(fields[4:], " ")
		}
		c.byName[e.Name] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads an inventory file from disk.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Len reports the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// All returns the entries in file order.
func (c *Catalog) All() []Entry { return c.entries }

// Find returns the entry for an exact accessor name.
func (c *Catalog) Find(name string) (Entry, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Search returns every entry whose name contains substr, case
// insensitively, in file order.
func (c *Catalog) Search(substr string) []Entry {
	needle := strings.ToLower(substr)
	var out []Entry
	for _, e := range c.entries {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			out = append(out, e)
		}
	}
	return out
}

// Registrar is the part of a simulated host that Seed fills; an
// xplmtest.Sim satisfies it.
type Registrar interface {
	AddIntDataRef(name string, writable bool, v int32) host.DataRef
	AddFloatDataRef(name string, writable bool, v float32) host.DataRef
	AddDoubleDataRef(name string, writable bool, v float64) host.DataRef
	AddIntArrayDataRef(name string, writable bool, v []int32) host.DataRef
	AddFloatArrayDataRef(name string, writable bool, v []float32) host.DataRef
	AddByteDataRef(name string, writable bool, v []byte) host.DataRef
}

// Seed registers every entry with a simulated host, zero-valued, typed
// and sized as the inventory declares. It returns the number registered;
// rows with types the host cannot hold are skipped.
func (c *Catalog) Seed(r Registrar) int {
	seeded := 0
	for _, e := range c.entries {
		flags, n := parseType(e.Type)
		if n <= 0 {
			n = 8
		}
		switch flags {
		case host.TypeInt:
			r.AddIntDataRef(e.Name, e.Writable, 0)
		case host.TypeFloat:
			r.AddFloatDataRef(e.Name, e.Writable, 0)
		case host.TypeDouble:
			r.AddDoubleDataRef(e.Name, e.Writable, 0)
		case host.TypeIntArray:
			r.AddIntArrayDataRef(e.Name, e.Writable, make([]int32, n))
		case host.TypeFloatArray:
			r.AddFloatArrayDataRef(e.Name, e.Writable, make([]float32, n))
		case host.TypeData:
			r.AddByteDataRef(e.Name, e.Writable, make([]byte, n))
		default:
			continue
		}
		seeded++
	}
	return seeded
}
