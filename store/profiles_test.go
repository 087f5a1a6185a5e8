package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yllada/vpn-composer/common"
	"github.com/yllada/vpn-composer/profile"
)

func newTestProfileStore(t *testing.T) *ProfileStore {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewProfileStore(db, nil)
	require.NoError(t, err)
	return s
}

func buildTestProfile(t *testing.T, name string) *profile.Profile {
	t.Helper()
	ep := profile.NewEditableProfile(name)

	ovpn := profile.NewModule(profile.KindOpenVPN)
	ovpn.OpenVPN.Remotes = []profile.Endpoint{{Host: "vpn.example.com", Port: 1194, Proto: "udp"}}
	ovpn.OpenVPN.Username = "alice"
	ep.InsertOrReplace(ovpn, true)

	dns := profile.NewModule(profile.KindDNS)
	dns.DNS.Protocol = profile.DNSProtocolHTTPS
	dns.DNS.DoHURL = "https://cloudflare-dns.com/dns-query"
	ep.InsertOrReplace(dns, false)

	p, err := profile.Build(&ep)
	require.NoError(t, err)
	return p
}

func TestProfileStore_SaveAndLoad(t *testing.T) {
	s := newTestProfileStore(t)
	ctx := context.Background()
	p := buildTestProfile(t, "home")

	require.NoError(t, s.Save(ctx, p, true, false))

	loaded, err := s.Profile(ctx, p.ID())
	require.NoError(t, err)
	require.Equal(t, p.ID(), loaded.ID())
	require.Equal(t, "home", loaded.Name())

	mods := loaded.Modules()
	require.Len(t, mods, 2)
	require.Equal(t, profile.KindOpenVPN, mods[0].Kind)
	require.Equal(t, "alice", mods[0].OpenVPN.Username)
	require.Equal(t, profile.KindDNS, mods[1].Kind)
	require.Equal(t, "https://cloudflare-dns.com/dns-query", mods[1].DNS.DoHURL)

	require.True(t, loaded.IsActive(mods[0].ID))
	require.False(t, loaded.IsActive(mods[1].ID))
}

func TestProfileStore_SaveUpserts(t *testing.T) {
	s := newTestProfileStore(t)
	ctx := context.Background()
	p := buildTestProfile(t, "home")

	require.NoError(t, s.Save(ctx, p, true, false))

	renamed := p.Editable()
	renamed.Attributes.Name = "home v2"
	p2, err := profile.Build(&renamed)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, p2, true, true))

	infos, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	require.Equal(t, "home v2", infos[0].Name)
	require.True(t, infos[0].RemotelyShared)
}

func TestProfileStore_List_SortedByName(t *testing.T) {
	s := newTestProfileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, buildTestProfile(t, "zebra"), true, false))
	require.NoError(t, s.Save(ctx, buildTestProfile(t, "Alpha"), false, false))
	require.NoError(t, s.Save(ctx, buildTestProfile(t, "beta"), true, false))

	infos, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 3)
	require.Equal(t, "Alpha", infos[0].Name)
	require.Equal(t, "beta", infos[1].Name)
	require.Equal(t, "zebra", infos[2].Name)
	require.False(t, infos[0].IsLocal)
}

func TestProfileStore_Profile_NotFound(t *testing.T) {
	s := newTestProfileStore(t)
	_, err := s.Profile(context.Background(), uuid.New())
	require.ErrorIs(t, err, common.ErrProfileNotFound)
}

func TestProfileStore_Delete(t *testing.T) {
	s := newTestProfileStore(t)
	ctx := context.Background()
	p := buildTestProfile(t, "home")

	require.NoError(t, s.Save(ctx, p, true, false))
	require.NoError(t, s.Delete(ctx, p.ID()))

	_, err := s.Profile(ctx, p.ID())
	require.ErrorIs(t, err, common.ErrProfileNotFound)

	require.ErrorIs(t, s.Delete(ctx, p.ID()), common.ErrProfileNotFound)
}
