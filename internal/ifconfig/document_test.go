package ifconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aicers/roxy/protocol"
)

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }
func intptr(i int) *int       { return &i }

func docWith(ethernets ...NamedNic) *Document {
	return &Document{Network: Network{
		Version:   intptr(2),
		Renderer:  strptr("networkd"),
		Ethernets: Ethernets(ethernets),
	}}
}

func names(d *Document) []string {
	out := make([]string, 0, len(d.Network.Ethernets))
	for _, item := range d.Network.Ethernets {
		out = append(out, item.Name)
	}
	return out
}

func TestParseDocumentValid(t *testing.T) {
	doc, err := ParseDocument([]byte(`network:
  version: 2
  renderer: networkd
  ethernets:
    eth0:
      addresses:
        - 10.0.0.1/24
      gateway4: 10.0.0.254
`))
	require.NoError(t, err)
	require.NotNil(t, doc.Network.Version)
	assert.Equal(t, 2, *doc.Network.Version)
	require.NotNil(t, doc.Network.Renderer)
	assert.Equal(t, "networkd", *doc.Network.Renderer)
	require.Len(t, doc.Network.Ethernets, 1)
	assert.Equal(t, "eth0", doc.Network.Ethernets[0].Name)
	assert.Equal(t, []string{"10.0.0.1/24"}, doc.Network.Ethernets[0].Nic.Addresses)
	require.NotNil(t, doc.Network.Ethernets[0].Nic.Gateway4)
	assert.Equal(t, "10.0.0.254", *doc.Network.Ethernets[0].Nic.Gateway4)
}

func TestParseDocumentRejectsMalformedYAML(t *testing.T) {
	_, err := ParseDocument([]byte("network: ["))
	assert.Error(t, err)
}

func TestParseDocumentRejectsUnknownFields(t *testing.T) {
	_, err := ParseDocument([]byte(`network:
  version: 2
  wifis:
    wlan0: {}
`))
	assert.Error(t, err)
}

func TestParseDocumentPreservesFragmentOrder(t *testing.T) {
	doc, err := ParseDocument([]byte(`network:
  ethernets:
    eth2: {}
    eth0: {}
    eth1: {}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"eth2", "eth0", "eth1"}, names(doc))
}

func TestParseDocumentDuplicateNameKeepsLast(t *testing.T) {
	doc, err := ParseDocument([]byte(`network:
  ethernets:
    eth0:
      addresses: [192.168.1.10/24]
    eth0:
      addresses: [192.168.1.20/24]
`))
	require.NoError(t, err)
	require.Len(t, doc.Network.Ethernets, 1)
	assert.Equal(t, []string{"192.168.1.20/24"}, doc.Network.Ethernets[0].Nic.Addresses)
}

func TestRenderRoundTrip(t *testing.T) {
	doc := docWith(
		NamedNic{Name: "eth0", Nic: Nic{
			Addresses: []string{"10.0.0.1/24"},
			Gateway4:  strptr("10.0.0.254"),
			Nameservers: map[string][]string{
				"addresses": {"8.8.8.8"},
				"search":    {},
			},
		}},
		NamedNic{Name: "eth1", Nic: Nic{DHCP4: boolptr(true)}},
	)

	rendered, err := doc.Render()
	require.NoError(t, err)
	assert.Contains(t, string(rendered), "network:")
	assert.Contains(t, string(rendered), "eth0:")
	assert.Contains(t, string(rendered), "10.0.0.1/24")

	parsed, err := ParseDocument(rendered)
	require.NoError(t, err)
	assert.Equal(t, doc.Network.Ethernets, parsed.Network.Ethernets)
	assert.Equal(t, *doc.Network.Version, *parsed.Network.Version)
}

func TestRenderOmitsAbsentFields(t *testing.T) {
	doc := docWith(NamedNic{Name: "eth0", Nic: Nic{}})
	doc.Network.Renderer = nil

	rendered, err := doc.Render()
	require.NoError(t, err)
	s := string(rendered)
	assert.NotContains(t, s, "renderer")
	assert.NotContains(t, s, "dhcp4")
	assert.NotContains(t, s, "gateway4")
	assert.NotContains(t, s, "optional")
}

func TestRenderEmitsMappingForEthernets(t *testing.T) {
	doc := docWith(
		NamedNic{Name: "eth0", Nic: Nic{Addresses: []string{"10.0.0.1/24"}}},
	)
	rendered, err := doc.Render()
	require.NoError(t, err)

	// The ethernets node must parse as a plain mapping for netplan.
	var generic struct {
		Network struct {
			Ethernets map[string]any `yaml:"ethernets"`
		} `yaml:"network"`
	}
	require.NoError(t, yaml.Unmarshal(rendered, &generic))
	assert.Contains(t, generic.Network.Ethernets, "eth0")
}

func TestMergeAddsNewInterfaceSorted(t *testing.T) {
	base := docWith(NamedNic{Name: "eth2", Nic: Nic{}})
	in := docWith(NamedNic{Name: "eth0", Nic: Nic{}}, NamedNic{Name: "eth1", Nic: Nic{}})

	base.Merge(in)
	assert.Equal(t, []string{"eth0", "eth1", "eth2"}, names(base))
}

func TestMergeReplacesWholeRecord(t *testing.T) {
	base := docWith(NamedNic{Name: "eth0", Nic: Nic{
		Addresses: []string{"10.0.0.1/24"},
		Gateway4:  strptr("10.0.0.254"),
	}})
	in := docWith(NamedNic{Name: "eth0", Nic: Nic{
		Addresses: []string{"192.168.1.1/24"},
	}})

	base.Merge(in)
	require.Len(t, base.Network.Ethernets, 1)
	nic := base.Network.Ethernets[0].Nic
	assert.Equal(t, []string{"192.168.1.1/24"}, nic.Addresses)
	// Whole-record replacement: the old gateway does not survive.
	assert.Nil(t, nic.Gateway4)
}

func TestMergeScalarsLastWriterWins(t *testing.T) {
	base := docWith()
	in := docWith()
	in.Network.Version = intptr(3)
	in.Network.Renderer = strptr("NetworkManager")

	base.Merge(in)
	assert.Equal(t, 3, *base.Network.Version)
	assert.Equal(t, "NetworkManager", *base.Network.Renderer)
}

func TestMergeScalarsPreservedWhenAbsent(t *testing.T) {
	base := docWith()
	in := docWith()
	in.Network.Version = nil
	in.Network.Renderer = nil

	base.Merge(in)
	assert.Equal(t, 2, *base.Network.Version)
	assert.Equal(t, "networkd", *base.Network.Renderer)
}

func TestMergeIdempotentWithSelf(t *testing.T) {
	doc := docWith(
		NamedNic{Name: "eth0", Nic: Nic{Addresses: []string{"10.0.0.1/24"}}},
		NamedNic{Name: "eth1", Nic: Nic{DHCP4: boolptr(true)}},
	)
	clone := docWith(
		NamedNic{Name: "eth0", Nic: Nic{Addresses: []string{"10.0.0.1/24"}}},
		NamedNic{Name: "eth1", Nic: Nic{DHCP4: boolptr(true)}},
	)

	doc.Merge(clone)
	assert.Equal(t, []string{"eth0", "eth1"}, names(doc))
	assert.Equal(t, clone.Network.Ethernets, doc.Network.Ethernets)
}

func TestMergeDuplicateAcrossFragmentsKeepsLast(t *testing.T) {
	base := docWith(NamedNic{Name: "eth0", Nic: Nic{Addresses: []string{"10.0.0.1/24"}}})
	in := docWith(
		NamedNic{Name: "eth0", Nic: Nic{Addresses: []string{"192.168.1.20/24"}, Gateway4: strptr("192.168.1.254")}},
	)

	base.Merge(in)
	require.Len(t, base.Network.Ethernets, 1)
	assert.Equal(t, []string{"192.168.1.20/24"}, base.Network.Ethernets[0].Nic.Addresses)
	assert.Equal(t, "192.168.1.254", *base.Network.Ethernets[0].Nic.Gateway4)
}

func TestMergeBridges(t *testing.T) {
	base := docWith()
	base.Network.Bridges = map[string]Bridge{
		"br0": {Interfaces: []string{"eth0"}, Addresses: []string{"10.0.0.10/24"}},
		"br9": {Interfaces: []string{"eth9"}, Addresses: []string{"172.16.9.10/24"}},
	}
	in := docWith()
	in.Network.Bridges = map[string]Bridge{
		"br0": {Interfaces: []string{"eth1"}, Addresses: []string{"192.168.1.10/24"}},
		"br1": {Interfaces: []string{"eth2"}, Addresses: []string{"172.16.0.10/24"}},
	}

	base.Merge(in)
	require.Len(t, base.Network.Bridges, 3)
	assert.Equal(t, []string{"eth1"}, base.Network.Bridges["br0"].Interfaces)
	assert.Equal(t, []string{"eth2"}, base.Network.Bridges["br1"].Interfaces)
	// Unmentioned keys survive.
	assert.Equal(t, []string{"eth9"}, base.Network.Bridges["br9"].Interfaces)
}

func TestMergeBridgesIntoEmptyBase(t *testing.T) {
	base := docWith()
	in := docWith()
	in.Network.Bridges = map[string]Bridge{
		"br0": {Interfaces: []string{"eth0"}, Addresses: []string{"10.0.0.10/24"}},
	}

	base.Merge(in)
	require.Len(t, base.Network.Bridges, 1)
	assert.Equal(t, []string{"eth0"}, base.Network.Bridges["br0"].Interfaces)
}

func TestSetInterfaceUpdatesExisting(t *testing.T) {
	doc := docWith(NamedNic{Name: "eth0", Nic: Nic{Addresses: []string{"10.0.0.1/24"}}})
	doc.SetInterface("eth0", Nic{Addresses: []string{"192.168.1.1/24"}, Gateway4: strptr("192.168.1.254")})

	require.Len(t, doc.Network.Ethernets, 1)
	assert.Equal(t, []string{"192.168.1.1/24"}, doc.Network.Ethernets[0].Nic.Addresses)
}

func TestSetInterfaceInsertsSorted(t *testing.T) {
	doc := docWith(NamedNic{Name: "eth1", Nic: Nic{}})
	doc.SetInterface("eth0", Nic{Addresses: []string{"10.0.0.1/24"}})

	assert.Equal(t, []string{"eth0", "eth1"}, names(doc))
}

func TestInitInterfaceResetsFields(t *testing.T) {
	doc := docWith(NamedNic{Name: "eth0", Nic: Nic{
		Addresses:   []string{"10.0.0.1/24"},
		DHCP4:       boolptr(false),
		Gateway4:    strptr("10.0.0.254"),
		Nameservers: map[string][]string{"addresses": {"8.8.8.8"}},
	}})
	doc.InitInterface("eth0")

	nic := doc.Network.Ethernets[0].Nic
	assert.Nil(t, nic.Addresses)
	assert.Nil(t, nic.DHCP4)
	assert.Nil(t, nic.Gateway4)
	assert.Nil(t, nic.Nameservers)
}

func TestDeleteFromRemovesListedAddress(t *testing.T) {
	doc := docWith(NamedNic{Name: "eth0", Nic: Nic{
		Addresses: []string{"10.0.0.1/24", "10.0.0.2/24"},
	}})

	err := doc.DeleteFrom("eth0", &protocol.NicOutput{Addresses: []string{"10.0.0.1/24"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.2/24"}, doc.Network.Ethernets[0].Nic.Addresses)
}

func TestDeleteFromAbsentAddressIsNoOp(t *testing.T) {
	doc := docWith(NamedNic{Name: "eth0", Nic: Nic{Addresses: []string{"10.0.0.1/24"}}})

	err := doc.DeleteFrom("eth0", &protocol.NicOutput{Addresses: []string{"10.0.0.99/24"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1/24"}, doc.Network.Ethernets[0].Nic.Addresses)
}

func TestDeleteFromGatewayOnlyWhenEqual(t *testing.T) {
	doc := docWith(NamedNic{Name: "eth0", Nic: Nic{Gateway4: strptr("10.0.0.254")}})

	err := doc.DeleteFrom("eth0", &protocol.NicOutput{Gateway4: strptr("192.168.1.1")})
	require.NoError(t, err)
	require.NotNil(t, doc.Network.Ethernets[0].Nic.Gateway4)

	err = doc.DeleteFrom("eth0", &protocol.NicOutput{Gateway4: strptr("10.0.0.254")})
	require.NoError(t, err)
	assert.Nil(t, doc.Network.Ethernets[0].Nic.Gateway4)
}

func TestDeleteFromNameserversAllKeys(t *testing.T) {
	doc := docWith(NamedNic{Name: "eth0", Nic: Nic{
		Nameservers: map[string][]string{
			"addresses": {"shared"},
			"search":    {"shared", "keep"},
		},
	}})

	err := doc.DeleteFrom("eth0", &protocol.NicOutput{Nameservers: []string{"shared"}})
	require.NoError(t, err)
	ns := doc.Network.Ethernets[0].Nic.Nameservers
	assert.Empty(t, ns["addresses"])
	assert.Equal(t, []string{"keep"}, ns["search"])
}

func TestDeleteFromUnknownInterface(t *testing.T) {
	doc := docWith(NamedNic{Name: "eth0", Nic: Nic{}})

	err := doc.DeleteFrom("eth99", &protocol.NicOutput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestProjectionRoundTripFull(t *testing.T) {
	out := protocol.NicOutput{
		Addresses:   []string{"10.0.0.1/24", "10.0.0.2/24"},
		DHCP4:       boolptr(true),
		Gateway4:    strptr("10.0.0.254"),
		Nameservers: []string{"8.8.8.8", "1.1.1.1"},
	}

	nic := FromOutput(&out)
	assert.Equal(t, out.Addresses, nic.Addresses)
	assert.Equal(t, []string{"8.8.8.8", "1.1.1.1"}, nic.Nameservers["addresses"])
	assert.Empty(t, nic.Nameservers["search"])
	assert.Nil(t, nic.Optional)

	back := ToOutput(&nic)
	assert.Equal(t, out, back)
}

func TestProjectionRoundTripEmpty(t *testing.T) {
	out := protocol.NicOutput{}

	nic := FromOutput(&out)
	assert.Nil(t, nic.Addresses)
	assert.Nil(t, nic.Nameservers)

	back := ToOutput(&nic)
	assert.Equal(t, out, back)
}

func TestProjectionDropsSearchOnlyNameservers(t *testing.T) {
	nic := Nic{Nameservers: map[string][]string{"search": {"example.local"}}}
	out := ToOutput(&nic)
	assert.Nil(t, out.Nameservers)
}
