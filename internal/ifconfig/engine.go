package ifconfig

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/aicers/roxy/internal/logging"
	"github.com/aicers/roxy/internal/oscmd"
	"github.com/aicers/roxy/protocol"
)

const (
	// DefaultDir is where netplan fragments live.
	DefaultDir = "/etc/netplan"
	// defaultFragment is the canonical fragment name used when the
	// directory holds no fragment to inherit a name from.
	defaultFragment = "01-netcfg.yaml"
	// lockFile serializes load-merge-apply across processes. Dotted so
	// neither fragment discovery nor netplan itself picks it up.
	lockFile = ".roxy.lock"
)

// ErrNotFound is returned when the configuration directory holds no
// fragment at all.
var ErrNotFound = errors.New("netplan configuration not found")

// Engine loads, merges, mutates, and applies netplan configuration.
// It holds no document state between calls; only the wiring to the
// filesystem and the live network stack. Every public operation runs
// load-merge-apply under a directory flock, so concurrent invocations
// (including from separate processes) serialize instead of clobbering
// each other's fragment writes.
type Engine struct {
	// Dir is the fragment directory.
	Dir string
	// TmpDir is where rendered documents are staged before the copy
	// into Dir. It must be outside Dir.
	TmpDir string
	// Netlink is the live network stack.
	Netlink Netlinker
	// Exec runs the external apply command.
	Exec oscmd.Executor

	log *logging.Logger
}

// NewEngine returns an engine wired to the host defaults.
func NewEngine() *Engine {
	return &Engine{
		Dir:     DefaultDir,
		TmpDir:  os.TempDir(),
		Netlink: DefaultNetlinker(),
		Exec:    oscmd.Default,
		log:     logging.WithComponent("ifconfig"),
	}
}

func (e *Engine) logger() *logging.Logger {
	if e.log == nil {
		e.log = logging.WithComponent("ifconfig")
	}
	return e.log
}

// lock takes the directory lock so load, mutate, and apply run as one
// critical section even across processes. Shared for reads, exclusive
// for writes. The returned func releases the lock.
func (e *Engine) lock(how int) (func(), error) {
	f, err := os.OpenFile(filepath.Join(e.Dir, lockFile), os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := unix.Flock(int(f.Fd()), how); err != nil {
		f.Close()
		return nil, fmt.Errorf("lock netplan directory: %w", err)
	}
	return func() {
		unix.Flock(int(f.Fd()), unix.LOCK_UN)
		f.Close()
	}, nil
}

// fragments lists the fragment file names in Dir, lexicographically.
// Dotfiles are not fragments.
func (e *Engine) fragments() ([]string, error) {
	entries, err := os.ReadDir(e.Dir)
	if err != nil {
		return nil, fmt.Errorf("read netplan directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && !strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load reads every fragment in listing order and merges them into one
// document. An empty directory is ErrNotFound; a fragment that fails
// to parse aborts the whole load.
func (e *Engine) Load() (*Document, error) {
	names, err := e.fragments()
	if err != nil {
		return nil, err
	}
	var merged *Document
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(e.Dir, name))
		if err != nil {
			return nil, fmt.Errorf("read fragment %s: %w", name, err)
		}
		doc, err := ParseDocument(data)
		if err != nil {
			return nil, fmt.Errorf("fragment %s: %w", name, err)
		}
		if merged == nil {
			merged = doc
		} else {
			merged.Merge(doc)
		}
	}
	if merged == nil {
		return nil, ErrNotFound
	}
	return merged, nil
}

// Apply renders the document and replaces the on-disk fragment set
// with a single canonical fragment: write to a temporary path outside
// Dir, copy over the canonical path (keeping the first discovered
// fragment's name so other tooling's references stay valid), remove
// the temporary file, then remove every other fragment since the
// canonical one now subsumes them, and finally invoke netplan apply.
// Completed steps are not rolled back on failure.
func (e *Engine) Apply(doc *Document) error {
	names, err := e.fragments()
	if err != nil {
		return err
	}
	canonical := defaultFragment
	if len(names) > 0 {
		canonical = names[0]
	}
	target := filepath.Join(e.Dir, canonical)
	staging := filepath.Join(e.TmpDir, canonical)

	rendered, err := doc.Render()
	if err != nil {
		return fmt.Errorf("render netplan document: %w", err)
	}
	if err := os.WriteFile(staging, rendered, 0o600); err != nil {
		return fmt.Errorf("write staging file: %w", err)
	}
	if err := copyFile(staging, target); err != nil {
		return fmt.Errorf("install fragment %s: %w", canonical, err)
	}
	if err := os.Remove(staging); err != nil {
		return fmt.Errorf("remove staging file: %w", err)
	}
	for _, name := range names {
		if name == canonical {
			continue
		}
		if err := os.Remove(filepath.Join(e.Dir, name)); err != nil {
			return fmt.Errorf("remove subsumed fragment %s: %w", name, err)
		}
	}
	if err := e.Exec.Run("netplan", "apply"); err != nil {
		return fmt.Errorf("netplan apply: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Get returns the projection for the named interface, or for every
// interface when name is nil. An unknown name yields a nil slice, not
// an error.
func (e *Engine) Get(name *string) ([]protocol.NamedNic, error) {
	unlock, err := e.lock(unix.LOCK_SH)
	if err != nil {
		return nil, err
	}
	defer unlock()

	doc, err := e.Load()
	if err != nil {
		return nil, err
	}
	if name != nil {
		if idx := doc.Network.Ethernets.index(*name); idx >= 0 {
			nic := doc.Network.Ethernets[idx].Nic
			return []protocol.NamedNic{{Name: *name, Nic: ToOutput(&nic)}}, nil
		}
		return nil, nil
	}
	out := make([]protocol.NamedNic, 0, len(doc.Network.Ethernets))
	for i := range doc.Network.Ethernets {
		item := doc.Network.Ethernets[i]
		out = append(out, protocol.NamedNic{Name: item.Name, Nic: ToOutput(&item.Nic)})
	}
	return out, nil
}

// List returns interface names known to the live network stack,
// filtered by optional prefix. This reads the kernel, not the
// document.
func (e *Engine) List(prefix *string) ([]string, error) {
	names, err := e.Netlink.LinkNames()
	if err != nil {
		return nil, err
	}
	if prefix == nil {
		return names, nil
	}
	filtered := names[:0]
	for _, name := range names {
		if strings.HasPrefix(name, *prefix) {
			filtered = append(filtered, name)
		}
	}
	return filtered, nil
}

// Set validates the projection and fully overwrites the named
// interface's record. Validation failures abort before any mutation:
// every address must be a CIDR network, every nameserver a plain
// address, a supplied gateway must be valid and unique across the
// document, and dhcp4 excludes static addresses and nameservers.
func (e *Engine) Set(name string, out *protocol.NicOutput) error {
	unlock, err := e.lock(unix.LOCK_EX)
	if err != nil {
		return err
	}
	defer unlock()

	doc, err := e.Load()
	if err != nil {
		return err
	}

	for _, cidr := range out.Addresses {
		if err := validateNetwork(cidr); err != nil {
			return fmt.Errorf("invalid interface address %q: %w", cidr, err)
		}
	}
	if out.Gateway4 != nil {
		if err := validateAddress(*out.Gateway4); err != nil {
			return fmt.Errorf("invalid gateway4 address %q: %w", *out.Gateway4, err)
		}
		for i := range doc.Network.Ethernets {
			item := &doc.Network.Ethernets[i]
			if item.Name != name && item.Nic.Gateway4 != nil {
				return errors.New("only one interface can have gateway")
			}
		}
	}
	for _, addr := range out.Nameservers {
		if err := validateAddress(addr); err != nil {
			return fmt.Errorf("invalid nameserver address %q: %w", addr, err)
		}
	}
	if out.DHCP4 != nil && *out.DHCP4 && (len(out.Addresses) > 0 || len(out.Nameservers) > 0) {
		return errors.New("dhcp4 and static address cannot be set in the same interface")
	}

	doc.SetInterface(name, FromOutput(out))
	return e.Apply(doc)
}

// Init requires the name to exist on the live network stack, resets
// its record to empty, applies, and then flushes the live addresses
// and re-raises the link, because the declarative apply alone does
// not retract addresses already present on a running interface.
func (e *Engine) Init(name string) error {
	live, err := e.Netlink.LinkNames()
	if err != nil {
		return err
	}
	found := false
	for _, n := range live {
		if n == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("interface %q not found", name)
	}

	unlock, err := e.lock(unix.LOCK_EX)
	if err != nil {
		return err
	}
	defer unlock()

	doc, err := e.Load()
	if err != nil {
		return err
	}
	doc.InitInterface(name)
	if err := e.Apply(doc); err != nil {
		return err
	}

	if err := e.Netlink.AddrFlush4(name); err != nil {
		return fmt.Errorf("flush %q: %w", name, err)
	}
	if err := e.Netlink.LinkSetUp(name); err != nil {
		return fmt.Errorf("raise %q: %w", name, err)
	}
	return nil
}

// Delete removes the listed values from the named interface, applies,
// and removes each deleted address from the live interface as well.
// The kernel may have already dropped an address the document still
// listed, so live removal failures are logged, not fatal.
func (e *Engine) Delete(name string, out *protocol.NicOutput) error {
	unlock, err := e.lock(unix.LOCK_EX)
	if err != nil {
		return err
	}
	defer unlock()

	doc, err := e.Load()
	if err != nil {
		return err
	}
	if err := doc.DeleteFrom(name, out); err != nil {
		return err
	}
	if err := e.Apply(doc); err != nil {
		return err
	}

	for _, addr := range out.Addresses {
		if err := e.Netlink.AddrDel(name, addr); err != nil {
			e.logger().Warn("live address removal failed",
				"interface", name, "address", addr, "error", err)
		}
	}
	return nil
}

func validateNetwork(cidr string) error {
	if _, _, err := net.ParseCIDR(cidr); err != nil {
		return err
	}
	return nil
}

func validateAddress(addr string) error {
	if net.ParseIP(addr) == nil {
		return fmt.Errorf("invalid IP address %q", addr)
	}
	return nil
}
