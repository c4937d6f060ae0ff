package ifconfig

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/aicers/roxy/protocol"
)

// NamedNic pairs an interface name with its record inside a document.
type NamedNic struct {
	Name string
	Nic  Nic
}

// Ethernets is the document's interface list. It round-trips as a YAML
// mapping but is kept as an ordered list so rendering is deterministic;
// the list is re-sorted by name after every mutation.
type Ethernets []NamedNic

// MarshalYAML renders the list as a mapping in list order.
func (e Ethernets) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i := range e {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: e[i].Name}
		val := &yaml.Node{}
		if err := val.Encode(e[i].Nic); err != nil {
			return nil, fmt.Errorf("encode interface %q: %w", e[i].Name, err)
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping in document order. A name repeated
// within one fragment keeps only the last value written.
func (e *Ethernets) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("ethernets: expected mapping, got %s", value.Tag)
	}
	out := make(Ethernets, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		name := value.Content[i].Value
		var nic Nic
		if err := value.Content[i+1].Decode(&nic); err != nil {
			return fmt.Errorf("decode interface %q: %w", name, err)
		}
		if idx := out.index(name); idx >= 0 {
			out[idx].Nic = nic
		} else {
			out = append(out, NamedNic{Name: name, Nic: nic})
		}
	}
	*e = out
	return nil
}

func (e Ethernets) index(name string) int {
	for i := range e {
		if e[i].Name == name {
			return i
		}
	}
	return -1
}

func (e Ethernets) sortByName() {
	sort.Slice(e, func(i, j int) bool { return e[i].Name < e[j].Name })
}

// Bridge is a bridge device's declared configuration. Bridges are
// carried through load, merge, and apply but are not managed by any
// command.
type Bridge struct {
	Interfaces  []string    `yaml:"interfaces"`
	Addresses   []string    `yaml:"addresses"`
	Gateway4    *string     `yaml:"gateway4,omitempty"`
	Nameservers Nameservers `yaml:"nameservers"`
}

// Nameservers is the nested nameserver block used by bridges.
type Nameservers struct {
	Search    []string `yaml:"search,omitempty"`
	Addresses []string `yaml:"addresses"`
}

// Network is the body of a netplan document. Only ethernets and
// bridges are supported; wifis are not.
type Network struct {
	Version   *int              `yaml:"version,omitempty"`
	Renderer  *string           `yaml:"renderer,omitempty"`
	Ethernets Ethernets         `yaml:"ethernets"`
	Bridges   map[string]Bridge `yaml:"bridges,omitempty"`
}

// Document is one netplan YAML document, or the merge of several.
type Document struct {
	Network Network `yaml:"network"`
}

// ParseDocument reads one fragment. Unknown fields are rejected so a
// typo in a fragment fails loudly instead of being silently dropped
// on the next apply.
func ParseDocument(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse netplan document: %w", err)
	}
	return &doc, nil
}

// Render serializes the document back to netplan YAML.
func (d *Document) Render() ([]byte, error) {
	return yaml.Marshal(d)
}

// Merge folds in into d, fragment order mattering: scalars are
// last-writer-wins, a matching interface name has its entire record
// replaced, unmatched names are appended, and the interface list is
// re-sorted by name. Bridges replace by key or insert; unmentioned
// keys are preserved.
func (d *Document) Merge(in *Document) {
	if in.Network.Version != nil {
		d.Network.Version = in.Network.Version
	}
	if in.Network.Renderer != nil {
		d.Network.Renderer = in.Network.Renderer
	}
	for i := range in.Network.Ethernets {
		item := in.Network.Ethernets[i]
		if idx := d.Network.Ethernets.index(item.Name); idx >= 0 {
			d.Network.Ethernets[idx].Nic = item.Nic
		} else {
			d.Network.Ethernets = append(d.Network.Ethernets, item)
		}
	}
	d.Network.Ethernets.sortByName()

	if len(in.Network.Bridges) > 0 {
		if d.Network.Bridges == nil {
			d.Network.Bridges = make(map[string]Bridge, len(in.Network.Bridges))
		}
		for name, bridge := range in.Network.Bridges {
			d.Network.Bridges[name] = bridge
		}
	}
}

// SetInterface overwrites the named interface's record, inserting it
// (sorted) if new. Apply must be run for the change to take effect.
func (d *Document) SetInterface(name string, nic Nic) {
	if idx := d.Network.Ethernets.index(name); idx >= 0 {
		d.Network.Ethernets[idx].Nic = nic
		return
	}
	d.Network.Ethernets = append(d.Network.Ethernets, NamedNic{Name: name, Nic: nic})
	d.Network.Ethernets.sortByName()
}

// InitInterface resets the named interface's record to empty.
func (d *Document) InitInterface(name string) {
	d.SetInterface(name, Nic{})
}

// DeleteFrom removes only the values listed in the projection from the
// named interface: listed addresses by set difference, the gateway
// only when it equals the supplied one, and listed nameserver values
// from every nameserver key. Absent targets are no-ops.
func (d *Document) DeleteFrom(name string, out *protocol.NicOutput) error {
	idx := d.Network.Ethernets.index(name)
	if idx < 0 {
		return fmt.Errorf("interface %q not found", name)
	}
	nic := &d.Network.Ethernets[idx].Nic

	if nic.Addresses != nil {
		for _, addr := range out.Addresses {
			nic.Addresses = remove(nic.Addresses, addr)
		}
	}

	if out.Gateway4 != nil && nic.Gateway4 != nil && *nic.Gateway4 == *out.Gateway4 {
		nic.Gateway4 = nil
	}

	if nic.Nameservers != nil {
		for _, addr := range out.Nameservers {
			for key, values := range nic.Nameservers {
				nic.Nameservers[key] = remove(values, addr)
			}
		}
	}

	return nil
}

func remove(values []string, target string) []string {
	kept := values[:0]
	for _, v := range values {
		if v != target {
			kept = append(kept, v)
		}
	}
	return kept
}
