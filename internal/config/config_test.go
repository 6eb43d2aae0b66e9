package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdminUIDListUnsetYieldsEmpty(t *testing.T) {
	cfg := Config{}
	require.Empty(t, cfg.AdminUIDList())

	cfg.AdminUIDs = "   "
	require.Empty(t, cfg.AdminUIDList())
}

func TestAdminUIDListSplitsTrimsAndDropsEmpties(t *testing.T) {
	cfg := Config{AdminUIDs: " uid-a , uid-b ,, uid-c ,"}
	require.Equal(t, []string{"uid-a", "uid-b", "uid-c"}, cfg.AdminUIDList())
}

func TestAdminUIDListSingleEntry(t *testing.T) {
	cfg := Config{AdminUIDs: "only-uid"}
	require.Equal(t, []string{"only-uid"}, cfg.AdminUIDList())
}

func TestHTTPAddress(t *testing.T) {
	require.Equal(t, ":8080", Config{AppPort: "8080"}.HTTPAddress())
	require.Equal(t, ":3000", Config{AppPort: ":3000"}.HTTPAddress())
}
