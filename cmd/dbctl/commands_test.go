package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/SukhanRumanov/prac3/internal/app"
	"github.com/SukhanRumanov/prac3/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func loadOK(...string) (config.Config, error) {
	return config.Config{Redis: config.RedisConfig{Addr: "localhost:6379"}}, nil
}

func run(t *testing.T, connect connector, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmdWith(zap.NewNop(), loadOK, connect)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCreateUser_ValidatesBeforeConnecting(t *testing.T) {
	connect := func(config.Config, *zap.Logger) (*app.Infra, error) {
		t.Fatal("connect must not be called")
		return nil, nil
	}

	_, err := run(t, connect, "create-user", "--username", "bob", "--email", "not-an-email", "--password", "secret1")

	assert.EqualError(t, err, "Email is invalid")
}

func TestCreateUser_RequiredFlags(t *testing.T) {
	_, err := run(t, nil, "create-user", "--username", "bob")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestMigrate_ConnectFailure(t *testing.T) {
	var seen config.Config
	connect := func(cfg config.Config, _ *zap.Logger) (*app.Infra, error) {
		seen = cfg
		return nil, errors.New("connection refused")
	}

	_, err := run(t, connect, "migrate")

	assert.EqualError(t, err, "connection refused")
	assert.Empty(t, seen.Redis.Addr)
}

func TestLoadFailure(t *testing.T) {
	cmd := newRootCmdWith(zap.NewNop(), func(...string) (config.Config, error) {
		return config.Config{}, errors.New("JWT_SECRET is required")
	}, nil)
	cmd.SetArgs([]string{"seed"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.EqualError(t, cmd.Execute(), "JWT_SECRET is required")
}
