package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.Validate(), ErrAddressRequired)

	cfg = &Config{Address: "localhost:6379"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "embedapi", cfg.Prefix)
}

func TestConfig_PrefixKey(t *testing.T) {
	cfg := &Config{Prefix: "test"}
	assert.Equal(t, "test:articles", cfg.PrefixKey("articles"))

	cfg = &Config{}
	assert.Equal(t, "articles", cfg.PrefixKey("articles"))
}

func TestNewOptions(t *testing.T) {
	opt, err := NewOptions(&Config{Address: "localhost:6379", DB: 2, Password: "secret", DialTimeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opt.Addr)
	assert.Equal(t, 2, opt.DB)
	assert.Equal(t, "secret", opt.Password)
	assert.Equal(t, time.Second, opt.DialTimeout)

	opt, err = NewOptions(&Config{Address: "redis://cache:6380/3"})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opt.Addr)
	assert.Equal(t, 3, opt.DB)

	_, err = NewOptions(&Config{Address: "redis://cache:6380/notadb"})
	assert.Error(t, err)

	_, err = NewOptions(&Config{})
	assert.ErrorIs(t, err, ErrAddressRequired)
}

func TestNew(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := New(context.Background(), &Config{Address: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	mr.CheckGet(t, "k", "v")
}
